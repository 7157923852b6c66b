package di

import (
	"context"
	"errors"
	"hotelres/config"
	"hotelres/infras/kafka"
	"hotelres/infras/otel"
	"hotelres/infras/postgres"
	checkoutService "hotelres/internal/domains/checkout/service"
	receiptService "hotelres/internal/domains/receipt/service"
	"hotelres/transport/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const flushTimeout = 5 * time.Second

// App is the process: the HTTP API plus the workers that live beside it.
type App struct {
	Config   *config.Config
	HTTP     *http.HTTP
	Registry checkoutService.Registry
	Receipt  receiptService.Receipt
	Kafka    kafka.Client
	Otel     otel.Otel
	Postgres *postgres.Connection
}

// Run serves until ctx is done, then stops the workers and releases connections.
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorkers := context.WithCancel(ctx)

	var workers sync.WaitGroup

	workers.Add(1)

	go func() {
		defer workers.Done()

		a.Registry.Run(workerCtx)
	}()

	if kafkaConfig := a.Config.External.Kafka; len(kafkaConfig.Brokers) > 0 {
		workers.Add(1)

		go func() {
			defer workers.Done()

			a.Kafka.Consume(workerCtx, kafkaConfig.ConsumerGroup, kafkaConfig.ConfirmedTopic, a.Receipt.NotifyConfirmed)
		}()
	} else {
		log.Warn().Msg("No Kafka brokers configured, booking confirmations are not consumed")
	}

	err := a.HTTP.Serve(ctx)

	stopWorkers()
	workers.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	closeErr := errors.Join(a.Kafka.Close(), a.Postgres.Close(), a.Otel.Shutdown(flushCtx))
	if closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to release resources")
	}

	return errors.Join(err, closeErr)
}
