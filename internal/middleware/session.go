package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionKey contextKey = "admin_session"

const sessionIssuer = "business-admin"

// ErrInvalidToken - токен сессии отсутствует, подделан или истёк
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims - данные сессии администратора в JWT
type SessionClaims struct {
	jwt.RegisteredClaims
	AdminID    int64  `json:"aid"`
	EmployeeID int64  `json:"eid"`
	Username   string `json:"usr"`
}

// Sessions выпускает и проверяет подписанные токены сессий (HS256)
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions создаёт менеджер сессий
func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue выпускает токен для вошедшего администратора
func (s *Sessions) Issue(adminID, employeeID int64, username string) (string, error) {
	now := s.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatInt(employeeID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		AdminID:    adminID,
		EmployeeID: employeeID,
		Username:   username,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Parse проверяет подпись и срок действия токена
func (s *Sessions) Parse(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Username == "" || claims.AdminID <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RequireAdmin пропускает только запросы с действующим токеном сессии
func (s *Sessions) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
			return
		}

		claims, err := s.Parse(raw)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired session"}`, http.StatusUnauthorized)
			return
		}

		ctx := WithSession(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithSession кладёт данные сессии в контекст
func WithSession(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, sessionKey, claims)
}

// GetSession возвращает данные сессии из контекста
func GetSession(ctx context.Context) (*SessionClaims, bool) {
	claims, ok := ctx.Value(sessionKey).(*SessionClaims)
	return claims, ok && claims != nil
}
