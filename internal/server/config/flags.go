package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/workshops/internal/flagx"
)

// parseFlags overlays command-line flags from args onto config.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-b int      bcrypt cost
//	-k string   comma separated Kafka brokers
//	-q string   Kafka topic for activation notices
//	-o string   comma separated CORS origins
//	-l string   log level
//	-u          enforce unique email addresses (boolean)
//
// Only these flags are looked at, so the JSON -c flag and anything else on
// the command line pass through untouched.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-b", "-k", "-q", "-o", "-l"}, "-u")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port of the HTTP API")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port of the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	brokers := fs.String("k", strings.Join(config.KafkaBrokers, ","), "Kafka brokers")
	fs.StringVar(&config.KafkaTopic, "q", config.KafkaTopic, "Kafka topic")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "CORS allowed origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.EnforceUniqueEmail, "u", config.EnforceUniqueEmail, "enforce unique email")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.KafkaBrokers = splitList(*brokers)
	config.AllowedOrigins = splitList(*origins)
}
