package capacity

//go:generate go run go.uber.org/mock/mockgen -source=./capacity.go -destination=./mocks/capacity_mock.go -package=mocks

import (
	"context"
	"fmt"

	"peakpath/config"
	"peakpath/infras/otel"
	"peakpath/internal/domains/tourinstance/model"
	"peakpath/internal/domains/tourinstance/repository"
	"peakpath/shared"
	"peakpath/shared/constant"

	"github.com/rs/zerolog/log"
)

const defaultMaxAttempts = 5

// Reservation records a granted slice of an instance's capacity. The
// holder must eventually return it through Release.
type Reservation struct {
	InstanceID   string
	GrantedCount int
}

// Controller is the only component allowed to mutate an instance's
// capacity_booked counter. Reservation and release go through the
// storage layer's conditional update, so concurrent callers serialize
// on the row without any in-process lock.
type Controller interface {
	TryReserve(ctx context.Context, instanceID string, count int) (Reservation, error)
	Release(ctx context.Context, instanceID string, count int) error
}

type controllerImpl struct {
	repo        repository.TourInstance
	otel        otel.Otel
	maxAttempts int
}

func New(repo repository.TourInstance, cfg *config.Config, otel otel.Otel) Controller {
	maxAttempts := cfg.Booking.ReserveMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	return &controllerImpl{
		repo:        repo,
		otel:        otel,
		maxAttempts: maxAttempts,
	}
}

// TryReserve re-reads the instance and retries the conditional
// increment until it wins, runs out of room, or exhausts its attempt
// budget. Each retry observes the state left behind by whichever
// competitor won the previous round.
func (c *controllerImpl) TryReserve(ctx context.Context, instanceID string, count int) (res Reservation, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".capacity.TryReserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	if count < 1 {
		return Reservation{}, fmt.Errorf("requested count must be positive, got %d", count)
	}

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		instance, err := c.repo.Get(ctx, shared.FilterByID(instanceID, model.FieldID, model.TableName))
		if err != nil {
			return Reservation{}, fmt.Errorf("failed to read tour instance: %w", err)
		}

		if instance.ID == constant.Empty {
			return Reservation{}, ErrInstanceNotFound
		}

		available := instance.Available()
		if available < count {
			return Reservation{}, &CapacityError{Available: available, Requested: count}
		}

		swapped, err := c.repo.CompareAndSetBooked(ctx, instanceID, instance.CapacityBooked, instance.CapacityBooked+count)
		if err != nil {
			return Reservation{}, fmt.Errorf("failed to commit capacity reservation: %w", err)
		}

		if swapped {
			scope.SetAttribute("capacity.attempts", attempt)

			return Reservation{InstanceID: instanceID, GrantedCount: count}, nil
		}

		log.Warn().
			Str("instanceID", instanceID).
			Int("attempt", attempt).
			Msg("capacity counter changed under us, retrying")
	}

	return Reservation{}, &ContentionError{Attempts: c.maxAttempts}
}

// Release returns count spots to the instance. The decrement is
// clamped at zero in storage; callers track exactly-once semantics
// through the booking's own state.
func (c *controllerImpl) Release(ctx context.Context, instanceID string, count int) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".capacity.Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	if count < 1 {
		return fmt.Errorf("released count must be positive, got %d", count)
	}

	if err := c.repo.DecrementBooked(ctx, instanceID, count); err != nil {
		return fmt.Errorf("failed to release capacity: %w", err)
	}

	return nil
}
