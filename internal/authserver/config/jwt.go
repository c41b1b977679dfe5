package config

import "time"

// JWTConfig содержит настройки для JWT токенов.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"AUTHSERVER_JWT_SECRET_KEY" env-default:"your-secret-key-change-in-production"`
	TokenTTL   string `yaml:"token_ttl" env:"AUTHSERVER_JWT_TOKEN_TTL" env-default:"720h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"AUTHSERVER_JWT_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает продолжительность времени жизни токена.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 720 * time.Hour
	}
	return duration
}
