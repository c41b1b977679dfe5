package config

import (
	"fmt"
	"time"
)

// APIConfig представляет конфигурацию подключения к сервису авторизации.
// Нулевой таймаут означает отсутствие таймаута: запрос ждет ответа,
// пока его не прервет вызывающая сторона.
type APIConfig struct {
	Scheme         string        `yaml:"scheme" env:"LOGINAPP_API_SCHEME" env-default:"http"`
	Host           string        `yaml:"host" env:"LOGINAPP_API_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"LOGINAPP_API_PORT" env-default:"5000"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"LOGINAPP_API_REQUEST_TIMEOUT" env-default:"0s"`
}

// GetBaseURL возвращает базовый URL API сервиса авторизации.
func (c *APIConfig) GetBaseURL() string {
	return fmt.Sprintf("%s://%s:%d/api", c.Scheme, c.Host, c.Port)
}
