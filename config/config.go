package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		Metrics struct {
			Enable    bool   `envconfig:"ENABLE"`
			Path      string `envconfig:"PATH"      default:"/metrics"`
			Namespace string `envconfig:"NAMESPACE" default:"hotelres"`
		} `envconfig:"METRICS"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	// Catalog documents. Empty paths use the embedded defaults.
	Catalog struct {
		HotelPath    string `envconfig:"HOTEL_PATH"`
		RoomsPath    string `envconfig:"ROOMS_PATH"`
		ServicesPath string `envconfig:"SERVICES_PATH"`
	} `envconfig:"CATALOG"`

	Checkout struct {
		PaymentTimeoutSeconds int `envconfig:"PAYMENT_TIMEOUT_SECONDS" default:"30"`
		IdleTTLSeconds        int `envconfig:"IDLE_TTL_SECONDS"        default:"3600"`
	} `envconfig:"CHECKOUT"`

	Payment struct {
		SimulatedLatencyMillis int      `envconfig:"SIMULATED_LATENCY_MILLIS" default:"3000"`
		DeclinedCards          []string `envconfig:"DECLINED_CARDS"`
		BankTransfer           struct {
			Bank          string `envconfig:"BANK"           default:"BDO Unibank"`
			AccountName   string `envconfig:"ACCOUNT_NAME"   default:"LuxuryStay Hotel Corp"`
			AccountNumber string `envconfig:"ACCOUNT_NUMBER" default:"1234-5678-9012"`
			SwiftCode     string `envconfig:"SWIFT_CODE"     default:"BNORPHMM"`
			ReceiptEmail  string `envconfig:"RECEIPT_EMAIL"  default:"reservations@luxurystay.ph"`
		} `envconfig:"BANK_TRANSFER"`
	} `envconfig:"PAYMENT"`

	Auth struct {
		AcceptAnyLogin bool `envconfig:"ACCEPT_ANY_LOGIN"`
	} `envconfig:"AUTH"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
		} `envconfig:"S3"`
		Kafka struct {
			Brokers []string `envconfig:"BROKERS"`
			SASL    struct {
				Username string `envconfig:"USERNAME"`
				Password string `envconfig:"PASSWORD"`
			} `envconfig:"SASL"`
			ConsumerGroup  string `envconfig:"CONSUMER_GROUP"`
			ConfirmedTopic string `envconfig:"CONFIRMED_TOPIC" default:"booking.confirmed"`
		} `envconfig:"KAFKA"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
