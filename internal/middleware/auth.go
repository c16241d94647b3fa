package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ClerkClaims are the token claims the gateway consumes. Clerk JWT templates
// expose the email under either key depending on template configuration.
type ClerkClaims struct {
	Email               string `json:"email"`
	PrimaryEmailAddress string `json:"primary_email_address"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	UserID string
	Email  string
}

type identityKey struct{}

const pemHeader = "-----BEGIN PUBLIC KEY-----"
const pemFooter = "-----END PUBLIC KEY-----"

// ParsePublicKey accepts a PEM-encoded RSA public key, tolerating the
// flattened form environment variables tend to produce, and rewraps it before
// decoding.
func ParsePublicKey(raw string) (*rsa.PublicKey, error) {
	body := strings.ReplaceAll(raw, pemHeader, "")
	body = strings.ReplaceAll(body, pemFooter, "")
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.New("empty public key")
	}
	pem := fmt.Sprintf("%s\n%s\n%s", pemHeader, body, pemFooter)
	return jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
}

// Auth verifies the bearer token against the Clerk RS256 public key and puts
// the caller identity on the request context. There is no unverified
// fallback: a missing key fails configuration loading long before this
// middleware runs.
func Auth(key *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Not authenticated")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "Invalid authentication credentials")
				return
			}

			claims := &ClerkClaims{}
			_, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{"RS256"}))
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					unauthorized(w, "Token has expired")
					return
				}
				unauthorized(w, "Invalid authentication credentials")
				return
			}
			if claims.Subject == "" {
				unauthorized(w, "Invalid authentication credentials")
				return
			}

			identity := Identity{
				UserID: claims.Subject,
				Email:  firstNonEmpty(claims.Email, claims.PrimaryEmailAddress),
			}
			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the verified caller identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// ContextWithIdentity is a test helper for handlers that expect an
// authenticated request.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
