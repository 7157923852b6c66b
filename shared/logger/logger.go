package logger

import (
	"hotelres/config"
	"hotelres/shared/constant"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const fieldCheckoutID = "checkout_id"

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// ForCheckout returns a child of the global logger tagged with the checkout id.
func ForCheckout(checkoutID string) zerolog.Logger {
	return log.With().Str(fieldCheckoutID, checkoutID).Logger()
}

// SetLogLevel applies SERVER_LOG_LEVEL. Outside development the console writer
// is replaced by plain JSON lines.
func SetLogLevel(config *config.Config) {
	if config.Server.Env != constant.Empty && config.Server.Env != constant.ServerEnvDevelopment {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	// ParseLevel maps "" to NoLevel without an error.
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if config.Server.LogLevel == constant.Empty || err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
