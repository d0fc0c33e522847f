package middleware

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/cardfolio/cardfolio-api/auth"
	"github.com/cardfolio/cardfolio-api/config"
)

// CustomClaims carries the Auth0 profile claims we care about.
type CustomClaims struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// EnsureValidToken validates bearer tokens on every request. With
// AUTH0_DOMAIN configured it validates Auth0-issued RS256 tokens
// against the tenant's JWKS; otherwise it validates the local HS256
// tokens issued by the auth package. In both modes requests without
// credentials pass through unauthenticated — handlers that need a user
// sit behind SyncUserMiddleware, which rejects them.
func EnsureValidToken() func(next http.Handler) http.Handler {
	if config.Env.Auth0Domain != "" {
		return auth0Middleware()
	}
	return localTokenMiddleware()
}

func auth0Middleware() func(next http.Handler) http.Handler {
	issuerURL, err := url.Parse("https://" + config.Env.Auth0Domain + "/")
	if err != nil {
		log.Fatalf("EnsureValidToken: failed to parse issuer url: %v", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{config.Env.Auth0Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		log.Fatalf("EnsureValidToken: failed to set up jwt validator: %v", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("EnsureValidToken: token validation failed: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Failed to validate token"}`))
	}

	mw := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithCredentialsOptional(true),
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return mw.CheckJWT
}

// localTokenMiddleware mirrors the Auth0 path: a valid token puts
// *validator.ValidatedClaims into the context under the same key, so
// downstream code never cares which mode issued the credential.
func localTokenMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "Malformed Authorization header", http.StatusUnauthorized)
				return
			}

			subject, err := auth.VerifyToken(tokenString)
			if err != nil {
				log.Printf("EnsureValidToken: invalid local token: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims := &validator.ValidatedClaims{
				RegisteredClaims: validator.RegisteredClaims{Subject: subject},
			}
			ctx := context.WithValue(r.Context(), jwtmiddleware.ContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
