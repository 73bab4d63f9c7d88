package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
)

type JWTClaims struct {
	jwt.RegisteredClaims
	TenantID      string `json:"tenantId,omitempty"`
	Role          string `json:"role"`
	ApprovalState string `json:"approvalState,omitempty"`
}

type TokenService interface {
	Issue(account *domain.Account, approval domain.ApprovalState, rememberDays int) (string, time.Duration, error)
	Parse(tokenString string) (*JWTClaims, error)
}

type tokenService struct {
	log        *logger.Logger
	secretKey  string
	defaultTTL time.Duration
}

func NewTokenService(log *logger.Logger, secretKey string, defaultTTL time.Duration) TokenService {
	serviceLog := log.With("service", "TokenService")
	return &tokenService{
		log:        serviceLog,
		secretKey:  secretKey,
		defaultTTL: defaultTTL,
	}
}

// Issue signs an access token for the account. rememberDays of 7 or 30
// extends the session; any other value falls back to the default TTL.
func (ts *tokenService) Issue(account *domain.Account, approval domain.ApprovalState, rememberDays int) (string, time.Duration, error) {
	ttl := ts.defaultTTL
	if rememberDays == 7 || rememberDays == 30 {
		ttl = time.Duration(rememberDays) * 24 * time.Hour
	}
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role:          string(account.Role),
		ApprovalState: string(approval),
	}
	if account.TenantID != nil {
		claims.TenantID = account.TenantID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(ts.secretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, ttl, nil
}

func (ts *tokenService) Parse(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(ts.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apierr.Unauthenticated("invalid or expired token")
	}
	if _, pErr := uuid.Parse(claims.Subject); pErr != nil {
		return nil, apierr.Unauthenticated("malformed token subject")
	}
	return claims, nil
}
