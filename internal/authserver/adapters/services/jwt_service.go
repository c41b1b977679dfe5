package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"loginapp/internal/authserver/domain/services"
	svc "loginapp/internal/authserver/ports/services"
)

// Константы для работы с JWT.
const (
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken = "error parsing token"
)

// ErrInvalidAlgorithm представляет ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService поверх HS256.
type ServiceJWT struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, tokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// Generate выпускает токен сессии для пользователя.
func (s *ServiceJWT) Generate(_ context.Context, userID int64) (string, error) {
	if len(s.secretKey) == 0 {
		return "", fmt.Errorf("%s: %w: empty secret key", errSigningToken, services.ErrTokenGenerationFailed)
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errSigningToken, err)
	}

	return signed, nil
}

// Verify проверяет токен и возвращает ID пользователя.
// Просроченный, поврежденный или подписанный другим ключом токен отклоняется.
func (s *ServiceJWT) Verify(_ context.Context, tokenString string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errParsingToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return 0, fmt.Errorf("%s: %w", errParsingToken, services.ErrInvalidToken)
	}

	return claims.UserID, nil
}
