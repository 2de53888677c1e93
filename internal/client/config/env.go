package config

import "github.com/ilyakaznacheev/cleanenv"

func parseEnv(cfg *Config) error {
	return cleanenv.ReadEnv(cfg)
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	u, _ := cleanenv.GetDescription(&Config{}, nil)
	return u
}
