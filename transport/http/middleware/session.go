package middleware

import (
	"context"
	"hotelres/config"
	"hotelres/infras/jwt"
	"hotelres/infras/otel"
	authModel "hotelres/internal/domains/auth/model"
	authService "hotelres/internal/domains/auth/service"
	"hotelres/shared/constant"
	"hotelres/shared/failure"
	"hotelres/transport/http/response"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Session resolves the bearer token, when one is sent, into the signed-in guest.
type Session interface {
	Session(next http.Handler) http.Handler
	RequireSession(next http.Handler) http.Handler
	APIKey(next http.Handler) http.Handler
}

type sessionImpl struct {
	auth authService.Auth
	otel otel.Otel
	cfg  *config.Config
}

func NewSessionMiddleware(auth authService.Auth, otel otel.Otel, cfg *config.Config) Session {
	return &sessionImpl{
		auth: auth,
		otel: otel,
		cfg:  cfg,
	}
}

// IdentityFromContext returns the guest stored by Session.
func IdentityFromContext(ctx context.Context) (authModel.Identity, bool) {
	identity, ok := ctx.Value(constant.ContextKeyIdentity).(authModel.Identity)

	return identity, ok && !identity.IsZero()
}

// Session lets anonymous requests through. A token that is sent must be valid.
func (m *sessionImpl) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == constant.Empty {
			next.ServeHTTP(w, r)

			return
		}

		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "session.middleware")

		token, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err = failure.Unauthorized("Invalid authorization header format")
			scope.TraceError(err)
			scope.End()

			response.WithError(w, err)

			return
		}

		identity, err := m.auth.Restore(ctx, token)
		if err != nil {
			scope.TraceError(err)
			scope.End()
			log.Debug().Err(err).Msg("session rejected")

			response.WithError(w, err)

			return
		}

		scope.SetAttribute("account_id", identity.ID)
		scope.End()

		ctx = context.WithValue(r.Context(), constant.ContextKeyIdentity, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession rejects requests Session did not resolve to a guest.
func (m *sessionImpl) RequireSession(next http.Handler) http.Handler {
	return m.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			response.WithError(w, failure.Unauthorized("Missing authorization header"))

			return
		}

		next.ServeHTTP(w, r)
	}))
}

// APIKey guards internal endpoints. Without a configured key they stay open.
func (m *sessionImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.cfg.App.APIKey == constant.Empty {
			next.ServeHTTP(w, r)

			return
		}

		if r.Header.Get(constant.RequestHeaderAPIKey) != m.cfg.App.APIKey {
			response.WithError(w, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(w, r)
	})
}
