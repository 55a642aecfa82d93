package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/identity"
)

// UserIDHeader заголовок с id пользователя, выставляется gateway
const UserIDHeader = "X-User-ID"

type contextKey string

const identityKey contextKey = "identity"

// Auth определяет пользователя один раз на запрос.
// Без заголовка пользователь анонимный, защищенные маршруты дополнительно используют RequireAuth.
func Auth(resolver IdentityResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerID := r.Header.Get(UserIDHeader)

			id, err := resolver.Resolve(r.Context(), callerID)
			if err != nil {
				switch {
				case errors.Is(err, identity.ErrUnknownCaller):
					logger.Warn("Auth: unknown caller=%s path=%s", callerID, r.URL.Path)
					handlers.RespondUnauthorized(w, "unknown user")
				default:
					logger.Error("Auth: failed to resolve caller=%s: %v", callerID, err)
					handlers.RespondUnauthorized(w, "identity could not be verified")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAuth отклоняет анонимные запросы
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetIdentity(r.Context()).IsAuthenticated() {
			handlers.RespondUnauthorized(w, "missing "+UserIDHeader+" header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithIdentity сохраняет пользователя в контексте
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity возвращает пользователя запроса, Anonymous если он не определен
func GetIdentity(ctx context.Context) domain.Identity {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	if !ok {
		return domain.Anonymous()
	}
	return id
}
