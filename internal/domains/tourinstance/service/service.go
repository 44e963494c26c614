package service

import (
	"context"
	"fmt"
	"time"

	"peakpath/config"
	"peakpath/infras/otel"
	tourModel "peakpath/internal/domains/tour/model"
	tourRepository "peakpath/internal/domains/tour/repository"
	"peakpath/internal/domains/tourinstance/model"
	"peakpath/internal/domains/tourinstance/model/dto"
	"peakpath/internal/domains/tourinstance/repository"
	"peakpath/shared"
	"peakpath/shared/cache"
	"peakpath/shared/constant"
	gDto "peakpath/shared/dto"
	"peakpath/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetInstance    = "tourinstance:get"
	cacheGetAllInstance = "tourinstance:gets"
	cacheCountInstance  = "tourinstance:count"
)

type TourInstance interface {
	Create(ctx context.Context, req dto.CreateTourInstanceRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTourInstancesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.TourInstanceResponse, error)
	Update(ctx context.Context, req dto.UpdateTourInstanceRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.TourInstance
	tourRepo tourRepository.Tour
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.TourInstance, tourRepo tourRepository.Tour, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) TourInstance {
	return &serviceImpl{
		repo:     repo,
		tourRepo: tourRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTourInstanceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	instance, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("invalid departure window")

		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if !instance.EndsAt.After(instance.StartsAt) {
		return failure.BadRequestFromString("ends_at must be after starts_at") // nolint:wrapcheck
	}

	tourExist, err := s.tourRepo.Exist(ctx, shared.FilterByID(req.TourID, tourModel.FieldID, tourModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check tour existence")

		return fmt.Errorf("failed to check tour existence: %w", err)
	}

	if !tourExist {
		return failure.NotFound("tour not found") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, instance); err != nil {
		log.Error().Err(err).Msg("failed to insert tour instance")

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllInstance)
		shared.InvalidateCaches(c, s.cache, cacheCountInstance)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTourInstancesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInstance, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tour instances")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tour instances")

		return res, fmt.Errorf("failed to count tour instances: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tour instances")

		return res, fmt.Errorf("failed to get tour instances: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tour instances to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountInstance, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tour instance count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tour instances")

		return res, fmt.Errorf("failed to count tour instances: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tour instance count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TourInstanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetInstance, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tour instance")

		return res, nil
	}

	instance, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tour instance")

		return res, fmt.Errorf("failed to get tour instance: %w", err)
	}

	if instance.ID == constant.Empty {
		return res, failure.NotFound("tour instance not found") // nolint:wrapcheck
	}

	res.FromModel(instance)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tour instance to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTourInstanceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check tour instance existence")

		return err
	}

	if current.ID == constant.Empty {
		log.Error().Msg("tour instance not found")

		return failure.NotFound("tour instance not found")
	}

	// Shrinking below what is already booked would strand confirmed seats.
	if req.CapacityMax != nil && *req.CapacityMax < current.CapacityBooked {
		return failure.Conflict(fmt.Sprintf("capacity_max %d is below the %d spots already booked", *req.CapacityMax, current.CapacityBooked)) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.StartsAt != constant.Empty {
		startsAt, parseErr := time.Parse(constant.DateFormat, req.StartsAt)
		if parseErr != nil {
			return failure.BadRequest(parseErr) // nolint:wrapcheck
		}
		updatedFields[model.FieldStartsAt] = startsAt
	}

	if req.EndsAt != constant.Empty {
		endsAt, parseErr := time.Parse(constant.DateFormat, req.EndsAt)
		if parseErr != nil {
			return failure.BadRequest(parseErr) // nolint:wrapcheck
		}
		updatedFields[model.FieldEndsAt] = endsAt
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update tour instance")

		return fmt.Errorf("failed to update tour instance: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetInstance, current.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete tour instance cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllInstance)
		shared.InvalidateCaches(c, s.cache, cacheCountInstance)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	current, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if tour instance exists")

		return fmt.Errorf("failed to check if tour instance exists: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("tour instance not found")

		return failure.NotFound("tour instance not found") // nolint:wrapcheck
	}

	if current.CapacityBooked > 0 {
		return failure.Conflict("tour instance has active bookings") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete tour instance")

		return fmt.Errorf("failed to delete tour instance: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetInstance, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete tour instance from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllInstance)
		shared.InvalidateCaches(c, s.cache, cacheCountInstance)
	}()

	return nil
}
