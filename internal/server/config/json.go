package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/workshops/internal/flagx"
	"github.com/dmitrijs2005/workshops/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// both "30m" strings and integer nanoseconds. Pointer fields distinguish
// "absent" from the zero value so a partial file only overrides what it sets.
type JsonConfig struct {
	HTTPAddr                    string          `json:"http_addr"`
	GRPCAddr                    string          `json:"grpc_addr"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int             `json:"bcrypt_cost"`
	EnforceUniqueEmail          *bool           `json:"enforce_unique_email"`
	KafkaBrokers                []string        `json:"kafka_brokers"`
	KafkaTopic                  string          `json:"kafka_topic"`
	AllowedOrigins              []string        `json:"allowed_origins"`
	LogLevel                    string          `json:"log_level"`
}

// parseJson overlays the JSON file named by -c/-config in args onto config.
// Without the flag nothing happens; an unreadable or invalid file panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}
	if c.GRPCAddr != "" {
		config.GRPCAddr = c.GRPCAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.EnforceUniqueEmail != nil {
		config.EnforceUniqueEmail = *c.EnforceUniqueEmail
	}
	if len(c.KafkaBrokers) > 0 {
		config.KafkaBrokers = c.KafkaBrokers
	}
	if c.KafkaTopic != "" {
		config.KafkaTopic = c.KafkaTopic
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
