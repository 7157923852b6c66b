package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Receipt=MockReceiptService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hotelres/config"
	"hotelres/infras/kafka"
	"hotelres/infras/otel"
	"hotelres/infras/s3"
	bookingModel "hotelres/internal/domains/booking/model"
	catalogService "hotelres/internal/domains/catalog/service"
	paymentModel "hotelres/internal/domains/payment/model"
	"hotelres/internal/domains/receipt/model"
	"hotelres/internal/domains/receipt/model/dto"
	"hotelres/internal/domains/receipt/repository"
	"hotelres/shared"
	"hotelres/shared/cache"
	"hotelres/shared/constant"
	"hotelres/shared/failure"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	cacheGetReceipt   = "receipt:get"
	documentDirectory = "receipts"
	documentExtension = ".json"
)

// Receipt archives confirmed bookings and serves them back.
type Receipt interface {
	Archive(ctx context.Context, booking bookingModel.Booking, result paymentModel.Result) (model.Receipt, error)
	Get(ctx context.Context, transactionID string) (dto.ReceiptResponse, error)
	NotifyConfirmed(ctx context.Context, message kafkaGo.Message)
}

type serviceImpl struct {
	repo    repository.Receipt
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	s3      s3.S3
	kafka   kafka.Client
	catalog catalogService.Catalog
}

func New(
	repo repository.Receipt,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	kafka kafka.Client,
	catalog catalogService.Catalog,
) Receipt {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		s3:      s3,
		kafka:   kafka,
		catalog: catalog,
	}
}

// Archive uploads the receipt document, stores the row and announces the
// booking. The document is removed again when the row cannot be stored,
// unless the row already exists and owns it. A failed announcement is logged
// only; the receipt stays archived.
func (s *serviceImpl) Archive(ctx context.Context, booking bookingModel.Booking, result paymentModel.Result) (receipt model.Receipt, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Archive")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("transaction_id", result.TransactionID)

	receipt = model.NewReceipt(booking, result)

	document, err := json.MarshalIndent(model.NewDocument(s.catalog.Hotel(), booking, result), constant.Empty, "  ")
	if err != nil {
		log.Error().Err(err).Msg("failed to render receipt document")

		return receipt, fmt.Errorf("failed to render receipt document: %w", err)
	}

	url, err := s.s3.UploadFileBytes(ctx, documentDirectory, receipt.TransactionID+documentExtension, constant.ContentTypeJSON, document)
	if err != nil {
		log.Error().Err(err).Str("transaction_id", receipt.TransactionID).Msg("failed to upload receipt document")

		return receipt, fmt.Errorf("failed to upload receipt document: %w", err)
	}

	receipt.DocumentURL = url

	if err = s.repo.Insert(ctx, receipt); err != nil {
		log.Error().Err(err).Str("transaction_id", receipt.TransactionID).Msg("failed to store receipt")

		if errors.Is(err, repository.ErrDuplicateReceipt) {
			return receipt, failure.Conflict("receipt already archived")
		}

		if delErr := s.s3.DeleteFile(ctx, url); delErr != nil {
			log.Error().Err(delErr).Str("url", url).Msg("failed to delete orphaned receipt document")
		}

		return receipt, fmt.Errorf("failed to store receipt: %w", err)
	}

	message := kafka.Message{Key: receipt.BookingID, Value: receipt.ToBookingConfirmed()}
	if err := s.kafka.SendMessages(ctx, s.cfg.External.Kafka.ConfirmedTopic, message); err != nil {
		log.Warn().Err(err).Str("transaction_id", receipt.TransactionID).Msg("failed to publish booking confirmation")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		var res dto.ReceiptResponse
		res.FromModel(receipt)

		if err := s.cache.Save(c, shared.BuildCacheKey(cacheGetReceipt, receipt.TransactionID), res, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("transaction_id", receipt.TransactionID).Msg("failed to cache receipt")
		}
	}()

	log.Info().
		Str("transaction_id", receipt.TransactionID).
		Str("booking_id", receipt.BookingID).
		Msg("receipt archived")

	return receipt, nil
}

func (s *serviceImpl) Get(ctx context.Context, transactionID string) (res dto.ReceiptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReceipt, transactionID)

	return cache.Remember(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (dto.ReceiptResponse, error) {
		var res dto.ReceiptResponse

		receipt, err := s.repo.GetByTransactionID(ctx, transactionID)
		if err != nil {
			return res, err
		}

		res.FromModel(receipt)

		return res, nil
	})
}

// NotifyConfirmed consumes booking confirmations and sends the guest email.
// Mail delivery is outside this service, so the notification is logged.
func (s *serviceImpl) NotifyConfirmed(ctx context.Context, message kafkaGo.Message) {
	_, scope := s.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".NotifyConfirmed")
	defer scope.End()

	event, err := kafka.Decode[model.BookingConfirmed](message)
	if err != nil {
		scope.TraceError(err)

		return
	}

	if event.GuestEmail == constant.Empty {
		log.Warn().Str("transaction_id", event.TransactionID).Msg("booking confirmation without guest email")

		return
	}

	log.Info().
		Str("transaction_id", event.TransactionID).
		Str("email", event.GuestEmail).
		Str("document_url", event.DocumentURL).
		Msgf("confirmation email sent to %s", event.GuestEmail)
}
