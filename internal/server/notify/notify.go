// Package notify hands freshly issued activation keys to whatever delivers
// them to the user. Delivery itself happens elsewhere.
package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/workshops/internal/logging"
	"github.com/google/uuid"
)

// ActivationNotice is the message published after a successful registration.
// It never carries the password.
type ActivationNotice struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	UserName      string    `json:"username"`
	Email         string    `json:"email"`
	ActivationKey string    `json:"activation_key"`
	ExpiresAt     time.Time `json:"expires_at"`
	IssuedAt      time.Time `json:"issued_at"`
}

// NewActivationNotice stamps a notice with a fresh id.
func NewActivationNotice(accountID, userName, email, key string, expiresAt, issuedAt time.Time) *ActivationNotice {
	return &ActivationNotice{
		ID:            uuid.NewString(),
		AccountID:     accountID,
		UserName:      userName,
		Email:         email,
		ActivationKey: key,
		ExpiresAt:     expiresAt,
		IssuedAt:      issuedAt,
	}
}

type Notifier interface {
	NotifyActivation(ctx context.Context, n *ActivationNotice) error
	Close() error
}

// LogNotifier only records the notice. Used when no brokers are configured.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("module", "notify")}
}

func (n *LogNotifier) NotifyActivation(ctx context.Context, notice *ActivationNotice) error {
	n.log.Info(ctx, "activation notice",
		"id", notice.ID,
		"username", notice.UserName,
		"email", notice.Email,
		"expires_at", notice.ExpiresAt)
	return nil
}

func (n *LogNotifier) Close() error { return nil }
