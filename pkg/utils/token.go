package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const reservationAudience = "reservation"

var ErrInvalidReservationToken = errors.New("invalid reservation token")

// ReservationToken is the short-lived credential handed out after a
// successful self-service lookup. It authorizes edits of exactly one reservation.
type ReservationToken struct {
	Token     string
	ExpiresAt time.Time
}

func NewReservationToken(secret, reservationID string, ttl time.Duration) (ReservationToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)

	claims := jwt.RegisteredClaims{
		Subject:   reservationID,
		Audience:  jwt.ClaimStrings{reservationAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return ReservationToken{}, fmt.Errorf("sign reservation token: %w", err)
	}

	return ReservationToken{Token: signed, ExpiresAt: exp}, nil
}

// ParseReservationToken verifies signature, audience and expiry and returns
// the reservation id carried in the subject.
func ParseReservationToken(secret, raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(reservationAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidReservationToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidReservationToken
	}

	return claims.Subject, nil
}
