package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"peakpath/config"
	"peakpath/infras/kafka"
	"peakpath/infras/otel"
	"peakpath/internal/domains/booking/model"
	"peakpath/internal/domains/booking/model/dto"
	"peakpath/internal/domains/booking/repository"
	tourModel "peakpath/internal/domains/tour/model"
	tourRepository "peakpath/internal/domains/tour/repository"
	"peakpath/internal/domains/tourinstance/capacity"
	instanceModel "peakpath/internal/domains/tourinstance/model"
	instanceRepository "peakpath/internal/domains/tourinstance/repository"
	userService "peakpath/internal/domains/user/service"
	"peakpath/shared"
	"peakpath/shared/cache"
	"peakpath/shared/constant"
	gDto "peakpath/shared/dto"
	"peakpath/shared/failure"
	gModel "peakpath/shared/model"
	"peakpath/shared/reference"
	"peakpath/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	referenceMaxAttempts = 5
	expireSweepBatchSize = 100
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id, actor, reason string) (dto.BookingResponse, error)
	ConfirmPayment(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	MarkNoShow(ctx context.Context, id string) error
	ExpireStale(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo         repository.Booking
	instanceRepo instanceRepository.TourInstance
	tourRepo     tourRepository.Tour
	users        userService.User
	reservations capacity.Controller
	events       kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	instanceRepo instanceRepository.TourInstance,
	tourRepo tourRepository.Tour,
	users userService.User,
	reservations capacity.Controller,
	events kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		instanceRepo: instanceRepo,
		tourRepo:     tourRepo,
		users:        users,
		reservations: reservations,
		events:       events,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create runs the two-step booking saga: reserve capacity, then persist
// the booking. A persist failure triggers a compensating release so the
// grant never leaks.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.ParticipantCount < 1 || req.ParticipantCount > s.cfg.Booking.MaxParticipants {
		return res, failure.BadRequestFromString(fmt.Sprintf("participant_count must be between 1 and %d", s.cfg.Booking.MaxParticipants)) // nolint:wrapcheck
	}

	instance, err := s.instanceRepo.Get(ctx, shared.FilterByID(req.TourInstanceID, instanceModel.FieldID, instanceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tour instance")

		return res, fmt.Errorf("failed to get tour instance: %w", err)
	}

	if instance.ID == constant.Empty {
		return res, failure.NotFound("tour instance not found") // nolint:wrapcheck
	}

	if !instance.Bookable(timezone.Now()) {
		return res, failure.Conflict("tour instance is not open for booking") // nolint:wrapcheck
	}

	tour, err := s.tourRepo.Get(ctx, shared.FilterByID(instance.TourID, tourModel.FieldID, tourModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tour")

		return res, fmt.Errorf("failed to get tour: %w", err)
	}

	customer, err := s.users.ResolveByEmail(ctx, req.LeadEmail, req.LeadName, req.LeadPhone)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve customer")

		return res, fmt.Errorf("failed to resolve customer: %w", err)
	}

	reservation, err := s.reservations.TryReserve(ctx, instance.ID, req.ParticipantCount)
	if err != nil {
		return res, s.mapReserveError(err)
	}

	booking, err := s.buildBooking(ctx, req, instance, tour, customer.ID)
	if err != nil {
		s.compensate(ctx, reservation)

		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to persist booking")

		s.compensate(ctx, reservation)

		return res, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.afterCommit(ctx, booking, EventBookingCreated)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) mapReserveError(err error) error {
	if capErr, ok := capacity.AsCapacityError(err); ok {
		if capErr.Available == 0 {
			return failure.Conflict("this tour is sold out") // nolint:wrapcheck
		}

		return failure.Conflict(fmt.Sprintf("only %d spots available", capErr.Available)) // nolint:wrapcheck
	}

	if _, ok := capacity.AsContentionError(err); ok {
		return failure.Conflict("booking is busy right now, please try again") // nolint:wrapcheck
	}

	if errors.Is(err, capacity.ErrInstanceNotFound) {
		return failure.NotFound("tour instance not found") // nolint:wrapcheck
	}

	return fmt.Errorf("failed to reserve capacity: %w", err)
}

func (s *serviceImpl) buildBooking(ctx context.Context, req dto.CreateBookingRequest, instance instanceModel.TourInstance, tour tourModel.Tour, customerID string) (model.Booking, error) {
	ref, err := s.uniqueReference(ctx)
	if err != nil {
		return model.Booking{}, err
	}

	now := timezone.Now()
	unitPrice := instance.UnitPrice(tour.BasePrice)

	return model.Booking{
		ID:                  uuid.NewString(),
		Reference:           ref,
		TourInstanceID:      instance.ID,
		CustomerID:          customerID,
		ParticipantCount:    req.ParticipantCount,
		LeadName:            req.LeadName,
		LeadEmail:           req.LeadEmail,
		LeadPhone:           req.LeadPhone,
		SpecialRequests:     req.SpecialRequests,
		DietaryRestrictions: req.DietaryRestrictions,
		TotalAmount:         unitPrice * int64(req.ParticipantCount),
		BookingStatus:       model.StatusPendingPayment,
		PaymentStatus:       model.PaymentPending,
		ExpiresAt:           now.Add(time.Duration(s.cfg.Booking.ExpiryMinutes) * time.Minute),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  customerID,
			ModifiedBy: customerID,
		},
	}, nil
}

// uniqueReference draws references until one is unused. Repeated
// collisions at 6 chars over a 32-char alphabet mean a broken random
// source, so the loop fails loudly instead of spinning.
func (s *serviceImpl) uniqueReference(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= referenceMaxAttempts; attempt++ {
		ref, err := reference.Generate(s.cfg.Booking.ReferencePrefix, s.cfg.Booking.ReferenceLength)
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to generate booking reference: %w", err)
		}

		refFilter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldReference,
					Operator: gDto.FilterOperatorEq,
					Value:    ref,
					Table:    model.TableName,
				},
			},
		}

		taken, err := s.repo.Exist(ctx, refFilter)
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to check reference uniqueness: %w", err)
		}

		if !taken {
			return ref, nil
		}

		log.Warn().Str("reference", ref).Int("attempt", attempt).Msg("booking reference collision, regenerating")
	}

	return constant.Empty, fmt.Errorf("booking reference collided %d times in a row", referenceMaxAttempts)
}

// compensate undoes a capacity grant after a failed persist. A failed
// compensation leaves a stuck grant that needs out-of-band correction,
// so it is logged as a reconciliation alert, never swallowed.
func (s *serviceImpl) compensate(ctx context.Context, reservation capacity.Reservation) {
	if err := s.reservations.Release(ctx, reservation.InstanceID, reservation.GrantedCount); err != nil {
		log.Error().
			Err(err).
			Str("alert", "reconciliation").
			Str("instanceID", reservation.InstanceID).
			Int("grantedCount", reservation.GrantedCount).
			Msg("compensating capacity release failed, grant is stuck")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Cancel releases the capacity grant first and only then commits the
// cancelled status. A crash between the two leaves the booking in its
// prior state with capacity already freed, which is recoverable; the
// reverse order would strand sold inventory forever.
func (s *serviceImpl) Cancel(ctx context.Context, id, actor, reason string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.BookingStatus == model.StatusCancelled {
		res.FromModel(booking)

		return res, nil
	}

	if !model.CanTransition(booking.BookingStatus, model.StatusCancelled) {
		return res, failure.Conflict(fmt.Sprintf("booking in status %s cannot be cancelled", booking.BookingStatus)) // nolint:wrapcheck
	}

	// The conditional claim arbitrates racing cancellations (say the
	// expiry sweep against an admin cancel): only the caller whose
	// claim lands gets to release the grant, keeping the release
	// exactly-once.
	claimed, err := s.repo.ClaimRelease(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to claim capacity release")

		return res, fmt.Errorf("failed to claim capacity release: %w", err)
	}

	if !claimed {
		booking, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return res, fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.BookingStatus == model.StatusCancelled {
			res.FromModel(booking)

			return res, nil
		}

		return res, failure.Conflict("booking cancellation already in progress") // nolint:wrapcheck
	}

	if err = s.reservations.Release(ctx, booking.TourInstanceID, booking.ParticipantCount); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("capacity release failed, cancellation aborted")

		if unclaimErr := s.repo.UnclaimRelease(ctx, id); unclaimErr != nil {
			log.Error().
				Err(unclaimErr).
				Str("alert", "reconciliation").
				Str("bookingID", booking.ID).
				Msg("failed to revert release claim, booking needs reconciliation")
		}

		return res, fmt.Errorf("failed to release capacity, cancellation aborted: %w", err)
	}

	now := timezone.Now()

	updatedFields := map[string]any{
		model.FieldBookingStatus:      model.StatusCancelled,
		model.FieldCancelledAt:        now,
		model.FieldCancelledBy:        actor,
		model.FieldCancellationReason: reason,
		constant.FieldModifiedAt:      now,
		constant.FieldModifiedBy:      actor,
	}

	if booking.PaymentStatus == model.PaymentPaid {
		updatedFields[model.FieldPaymentStatus] = model.PaymentRefunded
		updatedFields[model.FieldRefundAmount] = booking.TotalAmount
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().
			Err(err).
			Str("alert", "reconciliation").
			Str("bookingID", booking.ID).
			Msg("status commit failed after capacity release, booking needs reconciliation")

		return res, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	booking.BookingStatus = model.StatusCancelled
	booking.CapacityReleased = true
	booking.CancelledAt = &now
	booking.CancelledBy = &actor
	booking.CancellationReason = &reason
	if booking.PaymentStatus == model.PaymentPaid {
		booking.PaymentStatus = model.PaymentRefunded
		booking.RefundAmount = &booking.TotalAmount
	}

	s.afterCommit(ctx, booking, EventBookingCancelled)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) ConfirmPayment(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusConfirmed, map[string]any{
		model.FieldPaymentStatus: model.PaymentPaid,
	}, EventBookingConfirmed)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCompleted, map[string]any{
		model.FieldPaymentStatus: model.PaymentCompleted,
	}, EventBookingCompleted)
}

func (s *serviceImpl) MarkNoShow(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusNoShow, nil, EventBookingNoShow)
}

// transition moves a booking to a status with no capacity effect.
// Capacity-affecting moves (cancellation, expiry) never come through
// here.
func (s *serviceImpl) transition(ctx context.Context, id, next string, extraFields map[string]any, event string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.BookingStatus == next {
		return nil
	}

	if !model.CanTransition(booking.BookingStatus, next) {
		return failure.Conflict(fmt.Sprintf("booking cannot move from %s to %s", booking.BookingStatus, next)) // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if actor == constant.Empty {
		actor = constant.ActorSystem
	}

	updatedFields := map[string]any{
		model.FieldBookingStatus: next,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}
	for field, value := range extraFields {
		updatedFields[field] = value
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.BookingStatus = next

	s.afterCommit(ctx, booking, event)

	return nil
}

// ExpireStale cancels pending_payment bookings whose expiry passed,
// reusing the cancellation path so capacity release keeps its ordering
// guarantees. Individual failures are logged and skipped so one bad row
// cannot stall the sweep.
func (s *serviceImpl) ExpireStale(ctx context.Context) (expired int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExpireStale")
	defer scope.End()
	defer scope.TraceIfError(err)

	stale, err := s.repo.GetExpired(ctx, timezone.Now(), expireSweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired bookings: %w", err)
	}

	for _, booking := range stale {
		if _, cancelErr := s.Cancel(ctx, booking.ID, constant.ActorSystem, model.ReasonExpired); cancelErr != nil {
			log.Error().Err(cancelErr).Str("bookingID", booking.ID).Msg("failed to expire booking, continuing sweep")

			continue
		}

		expired++
	}

	return expired, nil
}

// afterCommit publishes the lifecycle event and drops stale cache
// entries. Both are best-effort and never affect the committed outcome.
func (s *serviceImpl) afterCommit(ctx context.Context, booking model.Booking, event string) {
	go func() {
		c := context.WithoutCancel(ctx)

		s.publish(c, booking, event)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, booking model.Booking, event string) {
	message := kafka.Message{
		Key: booking.ID,
		Value: BookingEvent{
			Event:          event,
			BookingID:      booking.ID,
			Reference:      booking.Reference,
			TourInstanceID: booking.TourInstanceID,
			BookingStatus:  booking.BookingStatus,
			PaymentStatus:  booking.PaymentStatus,
			OccurredAt:     timezone.Now(),
		},
	}

	if err := s.events.SendMessages(ctx, s.cfg.Kafka.BookingTopic, message); err != nil {
		log.Error().Err(err).Str("event", event).Str("bookingID", booking.ID).Msg("failed to publish booking event")
	}
}
