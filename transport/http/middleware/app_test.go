package middleware_test

import (
	"context"
	"errors"
	"hotelres/config"
	"hotelres/infras/metrics"
	otelMocks "hotelres/infras/otel/mocks"
	"hotelres/shared/cache"
	cacheMocks "hotelres/shared/cache/mocks"
	"hotelres/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func limiterConfig(enable bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestAppMiddleware_RateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("disabled skips the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		app := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(false), cacheMocks.NewMockRedisCache(ctrl), nil)

		assert.Equal(t, http.StatusOK, serve(app.RateLimit(ok), nil).Code)
	})

	t.Run("first request starts the window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)
		app := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(true), mockCache, nil)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)

		rec := serve(app.RateLimit(ok), nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Window"))
	})

	t.Run("over the limit is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)
		app := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(true), mockCache, nil)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*int) = 2

				return nil
			})

		rec := serve(app.RateLimit(ok), nil)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "REQUEST LIMIT EXCEEDED")
	})

	t.Run("cache outage lets the request through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)
		app := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(true), mockCache, nil)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		assert.Equal(t, http.StatusOK, serve(app.RateLimit(ok), nil).Code)
	})
}

func TestAppMiddleware_MetricsUseRoutePattern(t *testing.T) {
	m := metrics.New("test")
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil, m)

	r := chi.NewRouter()
	r.Use(app.Tracing)
	r.Use(app.Metrics)
	r.Get("/v1/checkouts/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/checkouts/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/checkouts/def", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Body.String(), `test_http_requests_total{method="GET",route="/v1/checkouts/{id}",status="404"} 2`)
}

func TestAppMiddleware_MetricsDisabled(t *testing.T) {
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil, nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	assert.Equal(t, http.StatusAccepted, serve(app.Metrics(next), nil).Code)
}
