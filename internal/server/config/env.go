package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays GOPHSOCIAL_* environment variables. Unset variables
// leave the current value untouched.
func parseEnv(config *Config) error {
	return cleanenv.ReadEnv(config)
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	u, _ := cleanenv.GetDescription(&Config{}, nil)
	return u
}
