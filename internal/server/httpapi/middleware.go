package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const accountIDKey ctxKey = "accountID"

// accessToken requires a valid bearer token and stores its account id in the
// request context.
func (h *Handler) accessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			h.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		claims, err := h.sessions.VerifyToken(token)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey, claims.AccountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accountID(ctx context.Context) string {
	id, _ := ctx.Value(accountIDKey).(string)
	return id
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
