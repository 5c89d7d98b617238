package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
)

// JWTConfig defines JWT verification settings
type JWTConfig struct {
	SecretKey string
	// TokenIssuer is checked against the iss claim when set
	TokenIssuer string
	// Leeway tolerates clock skew with the identity provider
	Leeway time.Duration
}

// JWTService verifies tokens issued by the identity provider. It never issues tokens.
type JWTService struct {
	config JWTConfig
	parser *jwt.Parser
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(config.Leeway),
	}
	if config.TokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(config.TokenIssuer))
	}
	return &JWTService{
		config: config,
		parser: jwt.NewParser(opts...),
	}
}

// Claims defines JWT token content. The subject is the member id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// MemberID returns the id of the authenticated member
func (c *Claims) MemberID() string {
	return c.Subject
}

// ValidateToken validates a token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}
	if !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", apperrors.ErrUnauthorized
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", apperrors.ErrInvalidFormat
	}
	return strings.TrimSpace(token), nil
}
