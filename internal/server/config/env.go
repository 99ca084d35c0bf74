package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "WORKSHOP_"

// loadDotEnv seeds the process environment from ./.env. Variables that are
// already set are not overridden; a missing file is not an error.
var loadDotEnv = func() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// parseEnv overlays WORKSHOP_* environment variables onto config. lookup is
// os.LookupEnv outside of tests.
//
//	WORKSHOP_HTTP_ADDR             HTTP bind address
//	WORKSHOP_GRPC_ADDR             gRPC bind address
//	WORKSHOP_DATABASE_DSN          PostgreSQL DSN
//	WORKSHOP_SECRET_KEY            JWT HMAC secret
//	WORKSHOP_ACCESS_TOKEN_TTL      Go duration, e.g. "30m"
//	WORKSHOP_BCRYPT_COST           integer
//	WORKSHOP_ENFORCE_UNIQUE_EMAIL  bool
//	WORKSHOP_KAFKA_BROKERS         comma separated host:port list
//	WORKSHOP_KAFKA_TOPIC           topic for activation notices
//	WORKSHOP_ALLOWED_ORIGINS       comma separated CORS origins
//	WORKSHOP_LOG_LEVEL             debug|info|warn|error
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if v, ok := get("HTTP_ADDR"); ok {
		config.HTTPAddr = v
	}
	if v, ok := get("GRPC_ADDR"); ok {
		config.GRPCAddr = v
	}
	if v, ok := get("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := get("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := get("ACCESS_TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%sACCESS_TOKEN_TTL: %w", envPrefix, err))
		}
		config.AccessTokenValidityDuration = d
	}
	if v, ok := get("BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%sBCRYPT_COST: %w", envPrefix, err))
		}
		config.BcryptCost = n
	}
	if v, ok := get("ENFORCE_UNIQUE_EMAIL"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%sENFORCE_UNIQUE_EMAIL: %w", envPrefix, err))
		}
		config.EnforceUniqueEmail = b
	}
	if v, ok := get("KAFKA_BROKERS"); ok {
		config.KafkaBrokers = splitList(v)
	}
	if v, ok := get("KAFKA_TOPIC"); ok {
		config.KafkaTopic = v
	}
	if v, ok := get("ALLOWED_ORIGINS"); ok {
		config.AllowedOrigins = splitList(v)
	}
	if v, ok := get("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
}

// splitList splits a comma separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
