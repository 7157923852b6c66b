package postgres

//nolint:revive
import (
	"errors"
	"hotelres/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Endpoint is one side of the read/write split.
type Endpoint struct {
	Name     string
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
	SSLMode  string
	Params   url.Values
}

// DSN renders the endpoint as a lib/pq connection URL.
func (e Endpoint) DSN() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(e.Username, e.Password),
		Host:   net.JoinHostPort(e.Host, e.Port),
		Path:   e.DBName,
	}

	query := url.Values{}
	for key, values := range e.Params {
		query[key] = values
	}

	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	dsn.RawQuery = query.Encode()

	return dsn.String()
}

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres
	read, write := ReadEndpoint(config), WriteEndpoint(config)

	conn := &Connection{
		Read:  Connect(read, pg.MaxRetry, pg.RetryWaitTime),
		Write: Connect(write, pg.MaxRetry, pg.RetryWaitTime),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Str("read", read.Host).Str("write", write.Host).Msg("Could not reach the receipt database")
	}

	return conn
}

func ReadEndpoint(config *config.Config) Endpoint {
	read := config.DB.Postgres.Read

	return Endpoint{
		Name:     "read",
		Host:     read.Host,
		Port:     read.Port,
		Username: read.Username,
		Password: read.Password,
		DBName:   DBName(config, read.Name),
		SSLMode:  read.SSLMode,
	}
}

func WriteEndpoint(config *config.Config) Endpoint {
	write := config.DB.Postgres.Write

	return Endpoint{
		Name:     "write",
		Host:     write.Host,
		Port:     write.Port,
		Username: write.Username,
		Password: write.Password,
		DBName:   DBName(config, write.Name),
		SSLMode:  write.SSLMode,
	}
}

// Close releases both pools.
func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

// DBName returns the database name with prefix if configured
func DBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// Connect opens a pool, retrying up to maxRetry times. It returns nil when every attempt failed.
func Connect(endpoint Endpoint, maxRetry, waitTime int) *sqlx.DB {
	logger := log.With().
		Str("name", endpoint.Name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.DBName).
		Logger()

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", endpoint.DSN())
		if err == nil {
			logger.Info().Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", retry+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
