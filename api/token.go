package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jcortes-dev/portfolio-backend/config"
	"github.com/jcortes-dev/portfolio-backend/errs"
)

// tokenIssuer signs and validates the HS256 access tokens handed out by the
// login exchange. The subject claim carries the user ID.
type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func newTokenIssuer(c map[string]string) tokenIssuer {
	secret := config.GetString(c, "JWT_SECRET", "your-secret-key-change-in-production")
	ttlMinutes := config.GetInt(c, "ACCESS_TOKEN_EXPIRE_MINUTES", 60*24*7)

	return tokenIssuer{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

func (t tokenIssuer) issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t tokenIssuer) parse(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errs.NewExpiredTokenError()
		}
		return 0, errs.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, errs.NewInvalidTokenError()
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errs.NewInvalidTokenError()
	}

	return userID, nil
}
