package httputil

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Prodbylino/shiftflow/pkg/caller"
	"github.com/Prodbylino/shiftflow/pkg/config"
	"github.com/Prodbylino/shiftflow/pkg/errors"
)

// Claims are the access-token claims issued by the identity platform.
// Tokens are minted elsewhere; this service only verifies them.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// CallerMiddleware verifies the bearer token and places the resulting
// Caller in the request context.
//
// A request without an Authorization header proceeds with an anonymous
// Caller; the service layer rejects it where authentication is required.
// A request with a malformed or expired token is rejected outright.
// Tokens carrying the configured service role become a Privileged caller,
// everything else an Authenticated caller keyed by the token subject.
func CallerMiddleware(cfg *config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				Error(w, errors.Unauthorized("authorization header must use the Bearer scheme"))
				return
			}

			claims, err := verifyToken(tokenString, cfg)
			if err != nil {
				Error(w, err)
				return
			}

			var c caller.Caller
			if claims.Role == cfg.ServiceRole {
				c = caller.Privileged()
			} else {
				c = caller.Authenticated(claims.Subject)
			}

			ctx := caller.WithCaller(r.Context(), c)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyToken(tokenString string, cfg *config.AuthConfig) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("unexpected token signing method")
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "token is expired") {
			return nil, errors.Unauthorized("token has expired")
		}
		return nil, errors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.Unauthorized("invalid token")
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return nil, errors.Unauthorized("invalid token issuer")
	}

	if claims.Role != cfg.ServiceRole && claims.Subject == "" {
		return nil, errors.Unauthorized("token is missing a subject")
	}

	return claims, nil
}
