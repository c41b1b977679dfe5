package config

// TokenConfig представляет конфигурацию файлового хранилища токена.
type TokenConfig struct {
	Path string `yaml:"path" env:"LOGINAPP_TOKEN_PATH" env-default:".loginapp/token"`
}
