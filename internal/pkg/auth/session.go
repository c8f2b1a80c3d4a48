package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the cookie that carries the session token.
const SessionCookie = "shiptrack_session"

var (
	ErrInvalidSession     = errors.New("invalid session")
	ErrSessionSecretEmpty = errors.New("session secret is required")
)

// Claims are the session token contents. Subject is the principal id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Session is a freshly issued token.
type Session struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// SessionManager issues and verifies HS256 session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, clock func() time.Time) (*SessionManager, error) {
	if secret == "" {
		return nil, ErrSessionSecretEmpty
	}
	if clock == nil {
		clock = time.Now
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: clock}, nil
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func (m *SessionManager) Issue(subject, role string) (Session, error) {
	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)
	id := uuid.NewString()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, ID: id, ExpiresAt: expiresAt.Truncate(time.Second)}, nil
}

// Parse verifies signature and expiry. Every failure wraps ErrInvalidSession.
func (m *SessionManager) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	if !parsed.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
