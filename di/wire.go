//go:build wireinject
// +build wireinject

package di

import (
	"hotelres/config"
	"hotelres/infras/jwt"
	"hotelres/infras/kafka"
	"hotelres/infras/metrics"
	"hotelres/infras/otel"
	"hotelres/infras/postgres"
	"hotelres/infras/redis"
	"hotelres/infras/s3"
	"hotelres/shared/cache"
	"hotelres/transport/http"
	"hotelres/transport/http/middleware"
	"hotelres/transport/http/router"

	authRepository "hotelres/internal/domains/auth/repository"
	authService "hotelres/internal/domains/auth/service"
	catalogService "hotelres/internal/domains/catalog/service"
	checkoutService "hotelres/internal/domains/checkout/service"
	paymentService "hotelres/internal/domains/payment/service"
	receiptRepository "hotelres/internal/domains/receipt/repository"
	receiptService "hotelres/internal/domains/receipt/service"

	authHandler "hotelres/internal/handlers/auth"
	catalogHandler "hotelres/internal/handlers/catalog"
	checkoutHandler "hotelres/internal/handlers/checkout"
	paymentHandler "hotelres/internal/handlers/payment"
	receiptHandler "hotelres/internal/handlers/receipt"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	metrics.Provide,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewSessionMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var catalogDomain = wire.NewSet(
	catalogService.Provide,
)

var authDomain = wire.NewSet(
	authRepository.NewMemory,
	authService.New,
)

var checkoutDomain = wire.NewSet(
	paymentService.NewSimulated,
	checkoutService.NewRegistry,
)

var receiptDomain = wire.NewSet(
	receiptRepository.New,
	receiptService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	authDomain,
	checkoutDomain,
	receiptDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	catalogHandler.New,
	authHandler.New,
	paymentHandler.New,
	checkoutHandler.New,
	receiptHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
