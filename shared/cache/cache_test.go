package cache_test

import (
	"context"
	"errors"
	"fmt"
	"hotelres/shared/cache"
	"hotelres/shared/cache/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRemember(t *testing.T) {
	ctx := context.Background()

	t.Run("hit skips the loader", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := mocks.NewMockRedisCache(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), "catalog", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*[]string) = []string{"standard", "deluxe"}

				return nil
			})

		got, err := cache.Remember(ctx, mockCache, "catalog", 60, func(context.Context) ([]string, error) {
			t.Fatal("loader must not run on a cache hit")

			return nil, nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"standard", "deluxe"}, got)
	})

	t.Run("miss loads and populates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := mocks.NewMockRedisCache(ctrl)
		saved := make(chan any, 1)

		mockCache.EXPECT().
			Get(gomock.Any(), "catalog", gomock.Any()).
			Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))

		mockCache.EXPECT().
			Save(gomock.Any(), "catalog", []string{"suite"}, 60).
			DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
				saved <- value

				return nil
			})

		got, err := cache.Remember(ctx, mockCache, "catalog", 60, func(context.Context) ([]string, error) {
			return []string{"suite"}, nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"suite"}, got)

		select {
		case value := <-saved:
			assert.Equal(t, []string{"suite"}, value)
		case <-time.After(time.Second):
			t.Fatal("expected the loaded value to be cached")
		}
	})

	t.Run("loader error is returned and not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := mocks.NewMockRedisCache(ctrl)
		loadErr := errors.New("database down")

		mockCache.EXPECT().
			Get(gomock.Any(), "receipt", gomock.Any()).
			Return(errors.New("connection refused"))

		_, err := cache.Remember(ctx, mockCache, "receipt", 60, func(context.Context) (int, error) {
			return 0, loadErr
		})

		assert.ErrorIs(t, err, loadErr)
	})
}
