// Package auth is the session collaborator: it turns a bearer token into a
// viewer identity and puts it on the request context. Issuing credentials,
// signup, and password handling live in a separate service; this package
// only needs to know who is asking.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const RoleAdmin = "admin"

type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Viewer is the identity the middleware extracts for downstream handlers.
type Viewer struct {
	UserID string
	Role   string
}

func (v Viewer) IsAdmin() bool {
	return v.Role == RoleAdmin
}

type contextKey struct{}

type Sessions struct {
	secret []byte
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret)}
}

// Issue mints a signed token for a user. The API itself never calls this in
// request handling; it exists for tests and operational tooling.
func (s *Sessions) Issue(userID, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a bearer token and returns the viewer it names.
func (s *Sessions) Parse(tokenString string) (Viewer, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Viewer{}, err
	}
	if !token.Valid || claims.Subject == "" {
		return Viewer{}, fmt.Errorf("invalid token")
	}
	return Viewer{UserID: claims.Subject, Role: claims.Role}, nil
}

// Middleware resolves the Authorization header into a context viewer.
// Anonymous and invalid-token requests pass through with no viewer; read
// endpoints serve them, mutation endpoints reject them downstream.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := bearerToken(r); raw != "" {
			if viewer, err := s.Parse(raw); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), contextKey{}, viewer))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ViewerFrom returns the authenticated viewer on the request, if any.
func ViewerFrom(r *http.Request) (Viewer, bool) {
	v, ok := r.Context().Value(contextKey{}).(Viewer)
	return v, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
