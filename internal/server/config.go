package server

import (
	"os"
	"time"
)

type Config struct {
	Addr    string
	MongoURI string
	MongoDB  string

	AccountsCollection string
	ContactsCollection string

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.MongoDB == "" {
		c.MongoDB = "danceacademy"
	}
	if c.AccountsCollection == "" {
		c.AccountsCollection = "users"
	}
	if c.ContactsCollection == "" {
		c.ContactsCollection = "contacts"
	}
	if c.JWTIssuer == "" {
		c.JWTIssuer = "danceacademy"
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 30 * time.Minute
	}
}

// FromEnv builds a Config from the process environment. DB_URL is accepted
// as a legacy alias for MONGO_URI.
func FromEnv() Config {
	cfg := Config{
		MongoURI:  os.Getenv("MONGO_URI"),
		MongoDB:   os.Getenv("MONGO_DB"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = os.Getenv("DB_URL")
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}
	return cfg
}
