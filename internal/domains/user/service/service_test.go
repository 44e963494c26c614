package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"peakpath/config"
	"peakpath/infras/otel/mocks"
	userMocks "peakpath/internal/domains/user/mocks"
	"peakpath/internal/domains/user/model"
	"peakpath/internal/domains/user/service"
	cacheMocks "peakpath/shared/cache/mocks"
	"peakpath/shared/constant"
)

func newService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mockOtel), mockRepo, mockCache
}

func TestUserService_ResolveByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the existing account", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "customer-1", Email: "jane@example.com", Level: constant.RoleCustomer}, nil)

		user, err := svc.ResolveByEmail(ctx, "jane@example.com", "Jane Walker", "+628123")

		assert.NoError(t, err)
		assert.Equal(t, "customer-1", user.ID)
	})

	t.Run("creates a guest customer on first contact", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.NotEmpty(t, user.ID)
				assert.Equal(t, "jane@example.com", user.Email)
				assert.Equal(t, constant.RoleCustomer, user.Level)
				assert.False(t, user.IsVerified)
				assert.True(t, user.Active)

				return nil
			})

		user, err := svc.ResolveByEmail(ctx, "jane@example.com", "Jane Walker", "+628123")

		assert.NoError(t, err)
		assert.NotEmpty(t, user.ID)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("propagates lookup errors", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, errors.New("database error"))

		_, err := svc.ResolveByEmail(ctx, "jane@example.com", "Jane Walker", "+628123")

		assert.Error(t, err)
	})

	t.Run("propagates insert errors", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := svc.ResolveByEmail(ctx, "jane@example.com", "Jane Walker", "+628123")

		assert.Error(t, err)
	})
}
