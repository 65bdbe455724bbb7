// Package auth issues and validates the tokens that grant access to
// editing sessions and stored scenes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrDisabled     = errors.New("auth disabled")
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongSession = errors.New("token not valid for session")
)

// AnySession in a token's sid claim grants every session.
const AnySession = "*"

const DefaultTTL = 24 * time.Hour

type Service struct {
	jwtSecret []byte
	now       func() time.Time
}

// NewService returns a service signing with secret. An empty secret
// disables auth: every request is let through.
func NewService(jwtSecret string) *Service {
	return &Service{
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// Enabled reports whether tokens are checked.
func (s *Service) Enabled() bool { return len(s.jwtSecret) > 0 }

// Claims are the fields carried by a token.
type Claims struct {
	Subject   string
	SessionID string
	ExpiresAt time.Time
}

// IssueToken signs a token naming subject for sessionID.
func (s *Service) IssueToken(subject, sessionID string, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := s.now()
	claims := jwt.MapClaims{
		"sub": subject,
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses tokenString and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	sessionID, _ := claims["sid"].(string)

	result := &Claims{Subject: subject, SessionID: sessionID}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		result.ExpiresAt = exp.Time
	}
	return result, nil
}

// Authorize validates tokenString for sessionID and returns the subject.
func (s *Service) Authorize(tokenString, sessionID string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.SessionID != AnySession && claims.SessionID != sessionID {
		return "", fmt.Errorf("%q: %w", sessionID, ErrWrongSession)
	}
	return claims.Subject, nil
}
