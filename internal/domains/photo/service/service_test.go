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
	s3Mocks "peakpath/infras/s3/mocks"
	photoMocks "peakpath/internal/domains/photo/mocks"
	"peakpath/internal/domains/photo/model"
	"peakpath/internal/domains/photo/model/dto"
	"peakpath/internal/domains/photo/service"
	tourMocks "peakpath/internal/domains/tour/mocks"
	cacheMocks "peakpath/shared/cache/mocks"
	"peakpath/shared/constant"
	"peakpath/shared/failure"
)

func newService(t *testing.T) (service.Album, *photoMocks.MockAlbum, *tourMocks.MockTour, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := photoMocks.NewMockAlbum(ctrl)
	mockTourRepo := tourMocks.NewMockTour(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "peakpath-media"

	svc := service.New(mockRepo, mockTourRepo, cfg, mockCache, mockOtel, mockS3)

	return svc, mockRepo, mockTourRepo, mockCache, mockS3
}

func TestAlbumService_Create(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "operator-1")

	t.Run("creates an album for an existing tour", func(t *testing.T) {
		svc, mockRepo, mockTourRepo, mockCache, _ := newService(t)

		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		mockTourRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Create(ctx, dto.CreateAlbumRequest{
			TourID: "tour-1",
			Title:  "Summit day",
		})

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("rejects albums for unknown tours", func(t *testing.T) {
		svc, _, mockTourRepo, _, _ := newService(t)

		mockTourRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Create(ctx, dto.CreateAlbumRequest{TourID: "missing", Title: "Summit day"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestAlbumService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("reports missing albums", func(t *testing.T) {
		svc, mockRepo, _, mockCache, _ := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Album{}, nil)

		_, err := svc.Get(ctx, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestAlbumService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the album and its stored images", func(t *testing.T) {
		svc, mockRepo, _, mockCache, mockS3 := newService(t)

		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		album := model.Album{
			ID:     "album-1",
			TourID: "tour-1",
			Images: []string{"https://cdn.example.com/album/one.jpg"},
		}

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(album, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockS3.EXPECT().
			GetObjectNameFromURL("peakpath-media", album.Images[0]).
			Return("one.jpg").
			AnyTimes()
		mockS3.EXPECT().
			DeleteFile(gomock.Any(), "peakpath-media", model.EntityName, "one.jpg").
			Return(nil).
			AnyTimes()

		err := svc.Delete(ctx, "album-1")

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestAlbumService_DeleteImagesFromS3(t *testing.T) {
	ctx := context.Background()

	t.Run("collects individual delete failures", func(t *testing.T) {
		svc, _, _, _, mockS3 := newService(t)

		mockS3.EXPECT().
			GetObjectNameFromURL("peakpath-media", "https://cdn.example.com/album/bad.jpg").
			Return("bad.jpg")
		mockS3.EXPECT().
			DeleteFile(gomock.Any(), "peakpath-media", model.EntityName, "bad.jpg").
			Return(errors.New("s3 error"))

		err := svc.DeleteImagesFromS3(ctx, dto.DeleteImagesRequest{
			ImageURLs: []string{"https://cdn.example.com/album/bad.jpg"},
		})

		assert.ErrorIs(t, err, service.ErrDeleteImagesFromS3)
	})

	t.Run("skips urls it cannot parse", func(t *testing.T) {
		svc, _, _, _, mockS3 := newService(t)

		mockS3.EXPECT().
			GetObjectNameFromURL("peakpath-media", "not-a-url").
			Return("")

		err := svc.DeleteImagesFromS3(ctx, dto.DeleteImagesRequest{
			ImageURLs: []string{"not-a-url"},
		})

		assert.NoError(t, err)
	})
}
