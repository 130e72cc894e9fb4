// apps/go-solver/internal/httpserver/auth.go
//
// Admin authentication for control endpoints.
// A single admin password, stored as a bcrypt hash, is exchanged for an
// HS256 JWT which must then be sent as "Authorization: Bearer <token>".

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

// Auth configures admin tokens. An empty PasswordHash disables /auth/token.
type Auth struct {
	Secret       string
	Expires      time.Duration
	PasswordHash string
}

func (a Auth) withDefaults() Auth {
	if a.Secret == "" {
		a.Secret = "dev_secret_change_me"
	}
	if a.Expires <= 0 {
		a.Expires = 12 * time.Hour
	}
	return a
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

type tokenReq struct {
	Password string `json:"password"`
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleToken exchanges the admin password for a JWT.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.auth.PasswordHash == "" {
		http.Error(w, `{"error":"auth_disabled"}`, http.StatusServiceUnavailable)
		return
	}
	var body tokenReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	if !checkPassword(s.auth.PasswordHash, body.Password) {
		http.Error(w, `{"error":"Invalid password"}`, http.StatusUnauthorized)
		return
	}
	tok, exp, err := s.signJWT(time.Now())
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(tokenRes{Token: tok, ExpiresAt: exp.UTC()})
}

// signJWT creates an HS256 JWT for the admin subject.
func (s *Server) signJWT(now time.Time) (string, time.Time, error) {
	exp := now.Add(s.auth.Expires)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": adminSubject,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.auth.Secret))
	return ss, exp, err
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// requireAuth enforces a valid admin JWT.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(s.auth.Secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			if sub, _ := claims.GetSubject(); sub != adminSubject {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
