// Package config loads application configuration from the environment.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup. It is built once in
// main and handed to the components that need it; nothing reads the
// environment after Load returns.
type Config struct {
	MongoURI   string
	DBName     string
	JWTSecret  string
	Port       string
	BcryptCost int
	GinMode    string
}

// Load reads configuration from environment variables with sane defaults.
// JWT_SECRET is the only required value.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("MONGODB_URI", "mongodb://127.0.0.1:27017")
	viper.SetDefault("DB_NAME", "devconnect")
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("BCRYPT_COST", 10)

	cfg := &Config{
		MongoURI:   viper.GetString("MONGODB_URI"),
		DBName:     viper.GetString("DB_NAME"),
		JWTSecret:  viper.GetString("JWT_SECRET"),
		Port:       viper.GetString("PORT"),
		BcryptCost: viper.GetInt("BCRYPT_COST"),
		GinMode:    viper.GetString("GIN_MODE"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}
