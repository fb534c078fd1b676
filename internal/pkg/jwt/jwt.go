package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies bearer tokens issued by the identity provider sharing our secret.
// Tokens are never minted here outside of tests and tooling.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	Enabled() bool
	GenerateToken(subject string, ttl time.Duration) (token string, expiresAt int64, err error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	s := &JWTService{secretKey: secretKey}
	if secretKey != "" {
		s.tokenAuth = jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second))
	}
	return s
}

// JWTAuth returns nil when no secret is configured.
func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) Enabled() bool {
	return j.tokenAuth != nil
}

// GenerateToken signs an access token for subject. Used by tests and local tooling.
func (j *JWTService) GenerateToken(subject string, ttl time.Duration) (token string, expiresAt int64, err error) {
	if j.tokenAuth == nil {
		return "", 0, jwt.ErrInvalidJWT()
	}
	expiresAt = time.Now().Add(ttl).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"type": "access",
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}
