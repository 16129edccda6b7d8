package utils

import (
	"errors"
	"time"

	"slotwise/config"

	"github.com/golang-jwt/jwt"
)

// Roles carried in the "role" claim.
const (
	RoleUser     = "user"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// Caller identifies the account behind a request.
type Caller struct {
	ID   string
	Role string
}

// ErrNoSecret is returned while JWT_SECRET is unset. An empty HMAC key would
// let anyone sign tokens.
var ErrNoSecret = errors.New("jwt secret is not configured")

func secretKey() ([]byte, error) {
	if config.AppConfig.JWTSecret == "" {
		return nil, ErrNoSecret
	}
	return []byte(config.AppConfig.JWTSecret), nil
}

// GenerateToken creates a signed JWT token for subject with the given role.
// Tokens are normally minted by the identity service; this exists for tooling.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// CallerFromToken extracts the subject and role from a valid token string.
func CallerFromToken(tokenString string) (Caller, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return Caller{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Caller{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Caller{}, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)
	switch role {
	case RoleUser, RoleProvider, RoleAdmin:
	default:
		return Caller{}, errors.New("token does not contain a valid 'role' claim")
	}

	return Caller{ID: sub, Role: role}, nil
}
