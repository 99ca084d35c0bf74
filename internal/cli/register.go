package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/workshops/internal/server/forms"
	"github.com/dmitrijs2005/workshops/internal/server/models"
	"github.com/dmitrijs2005/workshops/internal/server/services"
	"github.com/dmitrijs2005/workshops/internal/server/validation"
)

// Register prompts for every registration field and creates the account.
func (a *App) Register(ctx context.Context) error {
	var f services.RegistrationForm

	texts := []struct {
		prompt string
		dst    *string
	}{
		{"Username (letters, digits, period only)", &f.UserName},
		{"Email", &f.Email},
	}
	for _, t := range texts {
		v, err := GetSimpleText(a.reader, t.prompt, a.out)
		if err != nil {
			return err
		}
		*t.dst = v
	}

	var err error
	if f.Password, err = GetPassword(a.reader, a.fd, "Password", a.out); err != nil {
		return err
	}
	if f.ConfirmPassword, err = GetPassword(a.reader, a.fd, "Confirm password", a.out); err != nil {
		return err
	}

	texts = []struct {
		prompt string
		dst    *string
	}{
		{"First name", &f.FirstName},
		{"Last name", &f.LastName},
		{"Phone number (+999999999)", &f.PhoneNumber},
		{"Institute/Organization", &f.Institute},
		{"Department", &f.Department},
		{positionPrompt(), &f.Position},
	}
	for _, t := range texts {
		v, err := GetSimpleText(a.reader, t.prompt, a.out)
		if err != nil {
			return err
		}
		*t.dst = v
	}

	res, err := a.registrar.Register(ctx, f)
	if err != nil {
		var fe *validation.FieldError
		if errors.As(err, &fe) {
			fmt.Fprintf(a.out, "Registration failed: %s: %v\n", fe.Field, fe.Err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Registered %s\n", res.UserName)
	fmt.Fprintf(a.out, "Activation key: %s (valid until %s)\n", res.ActivationKey, res.KeyExpiresAt.Format(forms.DateLayout+" 15:04 MST"))
	return nil
}

func positionPrompt() string {
	p := "Position ("
	for i, pos := range models.Positions {
		if i > 0 {
			p += ", "
		}
		p += string(pos)
	}
	return p + ")"
}
