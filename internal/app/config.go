package app

import (
	"time"

	"github.com/salonledger/salonledger-backend/internal/platform/envutil"
)

type Config struct {
	JWTSecretKey  string
	AccessTTL     time.Duration
	DedupeWindow  time.Duration
	LoginLimit    int
	LoginWindow   time.Duration
	UploadLimit   int
	UploadWindow  time.Duration
	ListenAddress string
}

func LoadConfig() Config {
	return Config{
		JWTSecretKey:  envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTTL:     time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 86400)) * time.Second,
		DedupeWindow:  time.Duration(envutil.Int("DEDUPE_WINDOW_MINUTES", 120)) * time.Minute,
		LoginLimit:    envutil.Int("LOGIN_RATE_LIMIT", 10),
		LoginWindow:   time.Duration(envutil.Int("LOGIN_RATE_WINDOW_SECONDS", 60)) * time.Second,
		UploadLimit:   envutil.Int("UPLOAD_RATE_LIMIT", 20),
		UploadWindow:  time.Duration(envutil.Int("UPLOAD_RATE_WINDOW_SECONDS", 60)) * time.Second,
		ListenAddress: ":" + envutil.String("PORT", "8080"),
	}
}
