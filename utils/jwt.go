package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrTokenExpired = errors.New("token expired")

// GenerateToken creates a signed JWT for subject (the user's email) carrying
// tokenID as its jti. The token expires ttl after issuedAt.
func GenerateToken(secret []byte, subject, tokenID string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := jwt.StandardClaims{
		Id:        tokenID,
		Subject:   subject,
		IssuedAt:  issuedAt.Unix(),
		ExpiresAt: issuedAt.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken checks the signature of tokenString and its expiry against
// now, and returns its claims.
func ValidateToken(secret []byte, tokenString string, now time.Time) (*jwt.StandardClaims, error) {
	parser := &jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	claims := &jwt.StandardClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyExpiresAt(now.Unix(), true) {
		return nil, ErrTokenExpired
	}
	if claims.Id == "" || claims.Subject == "" {
		return nil, errors.New("token is missing its id or subject")
	}
	return claims, nil
}
