package middleware

import (
	"net/http"
	"strings"

	"cowork-booking/internal/data/repository"
	"cowork-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session resolves the caller's identity from a Bearer session token when
// one is present. Anonymous requests pass through without a user in the
// context; handlers decide what an anonymous caller may do.
func Session(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Debug("Invalid or expired session, continuing anonymously",
					zap.String("path", r.URL.Path))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the session token from an Authorization header.
// Tokens are UUIDs; anything else is treated as no token.
func bearerToken(header string) (uuid.UUID, bool) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return uuid.Nil, false
	}
	token, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, false
	}
	return token, true
}
