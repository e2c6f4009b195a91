package providers

import (
	"github.com/samber/do/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/auth"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/config"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/ratelimit"
)

// AuthKey is the hex-encoded PASETO key loaded from the data directory.
type AuthKey string

// ProvideAuthKey loads or generates the PASETO signing key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)

	key, err := auth.LoadOrGenerateKey(cfg.Storage.BasePath)
	if err != nil {
		return "", err
	}
	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(
		string(key),
		cfg.Auth.AccessTokenDuration,
		cfg.Auth.RefreshTokenDuration,
	)
}

// ProvideLoginRateLimiter provides the per-IP login attempt limiter.
func ProvideLoginRateLimiter(i do.Injector) (*ratelimit.KeyedRateLimiter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return ratelimit.New(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst), nil
}
