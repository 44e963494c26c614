package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"peakpath/config"
	"peakpath/infras/otel/mocks"
	tourMocks "peakpath/internal/domains/tour/mocks"
	instanceMocks "peakpath/internal/domains/tourinstance/mocks"
	"peakpath/internal/domains/tourinstance/model"
	"peakpath/internal/domains/tourinstance/model/dto"
	"peakpath/internal/domains/tourinstance/service"
	cacheMocks "peakpath/shared/cache/mocks"
	"peakpath/shared/constant"
	"peakpath/shared/failure"
	"peakpath/shared/timezone"
)

func newService(t *testing.T) (service.TourInstance, *instanceMocks.MockTourInstance, *tourMocks.MockTour, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := instanceMocks.NewMockTourInstance(ctrl)
	mockTourRepo := tourMocks.NewMockTour(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTourRepo, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockTourRepo, mockCache
}

func allowCacheInvalidation(mockCache *cacheMocks.MockRedisCache) {
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestTourInstanceService_Create(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "operator-1")

	validRequest := func() dto.CreateTourInstanceRequest {
		return dto.CreateTourInstanceRequest{
			TourID:      "tour-1",
			StartsAt:    timezone.Now().Add(72 * time.Hour).Format(constant.DateFormat),
			EndsAt:      timezone.Now().Add(80 * time.Hour).Format(constant.DateFormat),
			CapacityMax: 12,
		}
	}

	t.Run("schedules a new departure", func(t *testing.T) {
		svc, mockRepo, mockTourRepo, mockCache := newService(t)
		allowCacheInvalidation(mockCache)

		mockTourRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, instance model.TourInstance) error {
				assert.Equal(t, model.StatusScheduled, instance.Status)
				assert.Equal(t, 0, instance.CapacityBooked)
				assert.Equal(t, 12, instance.CapacityMax)

				return nil
			})

		err := svc.Create(ctx, validRequest())

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("rejects a window that ends before it starts", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		req := validRequest()
		req.EndsAt = timezone.Now().Add(60 * time.Hour).Format(constant.DateFormat)

		err := svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects unparseable timestamps", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		req := validRequest()
		req.StartsAt = "next tuesday"

		err := svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects unknown tours", func(t *testing.T) {
		svc, _, mockTourRepo, _ := newService(t)

		mockTourRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Create(ctx, validRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestTourInstanceService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("computes remaining availability", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.TourInstance{
				ID:             "instance-1",
				CapacityMax:    10,
				CapacityBooked: 7,
				Status:         model.StatusScheduled,
			}, nil)
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(ctx, "instance-1")

		assert.NoError(t, err)
		assert.Equal(t, 3, res.Available)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("reports missing instances", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.TourInstance{}, nil)

		_, err := svc.Get(ctx, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestTourInstanceService_Update(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "operator-1")

	t.Run("refuses to shrink capacity below booked spots", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.TourInstance{ID: "instance-1", CapacityMax: 10, CapacityBooked: 6}, nil)

		smaller := 4
		err := svc.Update(ctx, dto.UpdateTourInstanceRequest{CapacityMax: &smaller}, "instance-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("allows growing capacity", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)
		allowCacheInvalidation(mockCache)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.TourInstance{ID: "instance-1", CapacityMax: 10, CapacityBooked: 6}, nil)

		bigger := 20
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Update(ctx, dto.UpdateTourInstanceRequest{CapacityMax: &bigger}, "instance-1")

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("reports missing instances", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.TourInstance{}, nil)

		err := svc.Update(ctx, dto.UpdateTourInstanceRequest{}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestTourInstanceService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an empty instance", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)
		allowCacheInvalidation(mockCache)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.TourInstance{ID: "instance-1", CapacityBooked: 0}, nil)
		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(ctx, "instance-1")

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("refuses to delete instances with bookings", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.TourInstance{ID: "instance-1", CapacityBooked: 4}, nil)

		err := svc.Delete(ctx, "instance-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}
