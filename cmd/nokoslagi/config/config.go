package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/RyuuXiaoo/nokoslagii/internal/nokos"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/atlantic"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data/database"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/jasaotp"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/otppoller"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	serverAddressFlag         = "a"
	serverAddressEnv          = "RUN_ADDRESS"
	serverAddressDefault      = "localhost:8080"
	dbConnectionStringFlag    = "d"
	dbConnectionStringEnv     = "DATABASE_URI"
	dbConnectionStringDefault = ""
	jasaOTPAPIKeyEnv          = "JASAOTP_API_KEY"
	jasaOTPBaseURLEnv         = "JASAOTP_BASE_URL"
	jasaOTPBaseURLDefault     = "https://api.jasaotp.id/v1"
	atlanticAPIKeyEnv         = "ATLANTIC_API_KEY"
	atlanticBaseURLEnv        = "ATLANTIC_BASE_URL"
	atlanticBaseURLDefault    = "https://atlantich2h.com"
	marginEnv                 = "MARGIN_V1"
	otpPollInterval           = 15 * time.Second
	otpPollMaxAttempts        = 36
)

type Config struct {
	Server   nokos.Config
	DB       database.Config
	JasaOTP  jasaotp.Config
	Atlantic atlantic.Config
	Poller   otppoller.Config
	Margin   decimal.Decimal

	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	serverAddress := flag.String(
		serverAddressFlag,
		serverAddressDefault,
		"Server address host:port",
	)

	dbConnectionString := flag.String(
		dbConnectionStringFlag,
		dbConnectionStringDefault,
		"PostgreSQL connection string (empty keeps everything in memory)",
	)

	flag.Parse()

	if valStr, ok := os.LookupEnv(serverAddressEnv); ok {
		*serverAddress = valStr
	}

	if valStr, ok := os.LookupEnv(dbConnectionStringEnv); ok {
		*dbConnectionString = valStr
	}

	margin := decimal.Zero
	if valStr, ok := os.LookupEnv(marginEnv); ok {
		parsed, err := decimal.NewFromString(valStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", marginEnv, err)
		}
		margin = parsed
	}

	return &Config{
		Server: nokos.Config{
			ServerAddress:   *serverAddress,
			ShutdownTimeout: time.Second * 5,
		},
		DB: database.Config{
			ConnectionString: *dbConnectionString,
			RetryAttemptDelays: []time.Duration{
				time.Second,
				time.Second * 3,
				time.Second * 5,
			},
		},
		JasaOTP: jasaotp.Config{
			BaseURL: envOrDefault(jasaOTPBaseURLEnv, jasaOTPBaseURLDefault),
			APIKey:  os.Getenv(jasaOTPAPIKeyEnv),
		},
		Atlantic: atlantic.Config{
			BaseURL: envOrDefault(atlanticBaseURLEnv, atlanticBaseURLDefault),
			APIKey:  os.Getenv(atlanticAPIKeyEnv),
		},
		Poller: otppoller.Config{
			PollInterval: otpPollInterval,
			MaxAttempts:  otpPollMaxAttempts,
		},
		Margin:          margin,
		ShutdownTimeout: time.Second * 5,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if valStr, ok := os.LookupEnv(key); ok {
		return valStr
	}
	return fallback
}
