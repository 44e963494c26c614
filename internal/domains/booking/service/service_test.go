package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"peakpath/config"
	kafkaMocks "peakpath/infras/kafka/mocks"
	"peakpath/infras/otel/mocks"
	bookingMocks "peakpath/internal/domains/booking/mocks"
	"peakpath/internal/domains/booking/model"
	"peakpath/internal/domains/booking/model/dto"
	"peakpath/internal/domains/booking/service"
	tourMocks "peakpath/internal/domains/tour/mocks"
	tourModel "peakpath/internal/domains/tour/model"
	"peakpath/internal/domains/tourinstance/capacity"
	capacityMocks "peakpath/internal/domains/tourinstance/capacity/mocks"
	instanceMocks "peakpath/internal/domains/tourinstance/mocks"
	instanceModel "peakpath/internal/domains/tourinstance/model"
	userMocks "peakpath/internal/domains/user/mocks"
	userModel "peakpath/internal/domains/user/model"
	userService "peakpath/internal/domains/user/service"
	cacheMocks "peakpath/shared/cache/mocks"
	"peakpath/shared/constant"
	"peakpath/shared/failure"
	"peakpath/shared/timezone"
)

type testDeps struct {
	repo         *bookingMocks.MockBooking
	instanceRepo *instanceMocks.MockTourInstance
	tourRepo     *tourMocks.MockTour
	userRepo     *userMocks.MockUser
	reservations *capacityMocks.MockController
	events       *kafkaMocks.MockClient
	cache        *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Booking, *testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	deps := &testDeps{
		repo:         bookingMocks.NewMockBooking(ctrl),
		instanceRepo: instanceMocks.NewMockTourInstance(ctrl),
		tourRepo:     tourMocks.NewMockTour(ctrl),
		userRepo:     userMocks.NewMockUser(ctrl),
		reservations: capacityMocks.NewMockController(ctrl),
		events:       kafkaMocks.NewMockClient(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.ExpiryMinutes = 30
	cfg.Booking.MaxParticipants = 50
	cfg.Booking.ReferencePrefix = "PP"
	cfg.Booking.ReferenceLength = 6
	cfg.Kafka.BookingTopic = "peakpath.bookings"

	users := userService.New(deps.userRepo, cfg, deps.cache, mockOtel)

	svc := service.New(
		deps.repo,
		deps.instanceRepo,
		deps.tourRepo,
		users,
		deps.reservations,
		deps.events,
		cfg,
		deps.cache,
		mockOtel,
	)

	return svc, deps
}

// allowAsyncSideEffects covers the fire-and-forget event publish and
// cache invalidation that follow a committed write.
func (d *testDeps) allowAsyncSideEffects() {
	d.events.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func bookableInstance() instanceModel.TourInstance {
	return instanceModel.TourInstance{
		ID:             "instance-1",
		TourID:         "tour-1",
		StartsAt:       timezone.Now().Add(48 * time.Hour),
		EndsAt:         timezone.Now().Add(56 * time.Hour),
		CapacityMax:    10,
		CapacityBooked: 2,
		Status:         instanceModel.StatusScheduled,
	}
}

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		TourInstanceID:   "instance-1",
		ParticipantCount: 2,
		LeadName:         "Jane Walker",
		LeadEmail:        "jane@example.com",
		LeadPhone:        "+6281234567890",
	}
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves capacity then persists the booking", func(t *testing.T) {
		svc, deps := newService(t)
		deps.allowAsyncSideEffects()

		deps.instanceRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookableInstance(), nil)
		deps.tourRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(tourModel.Tour{ID: "tour-1", BasePrice: 150000}, nil)
		deps.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "customer-1"}, nil)
		deps.reservations.EXPECT().
			TryReserve(gomock.Any(), "instance-1", 2).
			Return(capacity.Reservation{InstanceID: "instance-1", GrantedCount: 2}, nil)
		deps.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)
		deps.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, model.StatusPendingPayment, booking.BookingStatus)
				assert.Equal(t, model.PaymentPending, booking.PaymentStatus)
				assert.Equal(t, int64(300000), booking.TotalAmount)
				assert.Equal(t, "customer-1", booking.CustomerID)
				assert.Regexp(t, `^PP-[23456789ABCDEFGHJKLMNPQRSTUVWXYZ]{6}$`, booking.Reference)

				return nil
			})

		res, err := svc.Create(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, int64(300000), res.TotalAmount)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("uses the instance price override when present", func(t *testing.T) {
		svc, deps := newService(t)
		deps.allowAsyncSideEffects()

		override := int64(200000)
		instance := bookableInstance()
		instance.PriceOverride = &override

		deps.instanceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(instance, nil)
		deps.tourRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tourModel.Tour{ID: "tour-1", BasePrice: 150000}, nil)
		deps.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "customer-1"}, nil)
		deps.reservations.EXPECT().
			TryReserve(gomock.Any(), "instance-1", 2).
			Return(capacity.Reservation{InstanceID: "instance-1", GrantedCount: 2}, nil)
		deps.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Create(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, int64(400000), res.TotalAmount)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("releases the grant when persisting fails", func(t *testing.T) {
		svc, deps := newService(t)

		deps.instanceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookableInstance(), nil)
		deps.tourRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tourModel.Tour{ID: "tour-1", BasePrice: 150000}, nil)
		deps.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "customer-1"}, nil)
		deps.reservations.EXPECT().
			TryReserve(gomock.Any(), "instance-1", 2).
			Return(capacity.Reservation{InstanceID: "instance-1", GrantedCount: 2}, nil)
		deps.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		deps.reservations.EXPECT().
			Release(gomock.Any(), "instance-1", 2).
			Return(nil)

		_, err := svc.Create(ctx, validCreateRequest())

		assert.Error(t, err)
	})

	t.Run("still fails cleanly when the compensating release also fails", func(t *testing.T) {
		svc, deps := newService(t)

		deps.instanceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookableInstance(), nil)
		deps.tourRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tourModel.Tour{ID: "tour-1", BasePrice: 150000}, nil)
		deps.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "customer-1"}, nil)
		deps.reservations.EXPECT().
			TryReserve(gomock.Any(), "instance-1", 2).
			Return(capacity.Reservation{InstanceID: "instance-1", GrantedCount: 2}, nil)
		deps.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		deps.reservations.EXPECT().
			Release(gomock.Any(), "instance-1", 2).
			Return(errors.New("release failed"))

		_, err := svc.Create(ctx, validCreateRequest())

		assert.Error(t, err)
	})

	t.Run("maps sold out to a conflict", func(t *testing.T) {
		svc, deps := newService(t)

		deps.instanceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookableInstance(), nil)
		deps.tourRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tourModel.Tour{ID: "tour-1"}, nil)
		deps.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "customer-1"}, nil)
		deps.reservations.EXPECT().
			TryReserve(gomock.Any(), "instance-1", 2).
			Return(capacity.Reservation{}, &capacity.CapacityError{Available: 0, Requested: 2})

		_, err := svc.Create(ctx, validCreateRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("maps exhausted retries to a conflict", func(t *testing.T) {
		svc, deps := newService(t)

		deps.instanceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookableInstance(), nil)
		deps.tourRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tourModel.Tour{ID: "tour-1"}, nil)
		deps.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "customer-1"}, nil)
		deps.reservations.EXPECT().
			TryReserve(gomock.Any(), "instance-1", 2).
			Return(capacity.Reservation{}, &capacity.ContentionError{Attempts: 5})

		_, err := svc.Create(ctx, validCreateRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("rejects participant counts over the limit", func(t *testing.T) {
		svc, _ := newService(t)

		req := validCreateRequest()
		req.ParticipantCount = 51

		_, err := svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects unknown tour instances", func(t *testing.T) {
		svc, deps := newService(t)

		deps.instanceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(instanceModel.TourInstance{}, nil)

		_, err := svc.Create(ctx, validCreateRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("rejects instances that already started", func(t *testing.T) {
		svc, deps := newService(t)

		instance := bookableInstance()
		instance.StartsAt = timezone.Now().Add(-time.Hour)

		deps.instanceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(instance, nil)

		_, err := svc.Create(ctx, validCreateRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("regenerates the reference after a collision", func(t *testing.T) {
		svc, deps := newService(t)
		deps.allowAsyncSideEffects()

		deps.instanceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookableInstance(), nil)
		deps.tourRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tourModel.Tour{ID: "tour-1", BasePrice: 150000}, nil)
		deps.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "customer-1"}, nil)
		deps.reservations.EXPECT().
			TryReserve(gomock.Any(), "instance-1", 2).
			Return(capacity.Reservation{InstanceID: "instance-1", GrantedCount: 2}, nil)

		gomock.InOrder(
			deps.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
			deps.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
		)
		deps.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Create(ctx, validCreateRequest())

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()

	pendingBooking := func() model.Booking {
		return model.Booking{
			ID:               "booking-1",
			Reference:        "PP-ABC234",
			TourInstanceID:   "instance-1",
			CustomerID:       "customer-1",
			ParticipantCount: 3,
			TotalAmount:      450000,
			BookingStatus:    model.StatusPendingPayment,
			PaymentStatus:    model.PaymentPending,
			ExpiresAt:        timezone.Now().Add(30 * time.Minute),
		}
	}

	t.Run("releases capacity before committing the status", func(t *testing.T) {
		svc, deps := newService(t)
		deps.allowAsyncSideEffects()

		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		gomock.InOrder(
			deps.repo.EXPECT().
				ClaimRelease(gomock.Any(), "booking-1").
				Return(true, nil),
			deps.reservations.EXPECT().
				Release(gomock.Any(), "instance-1", 3).
				Return(nil),
			deps.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					assert.Equal(t, model.StatusCancelled, fields[model.FieldBookingStatus])
					assert.Equal(t, "customer-1", fields[model.FieldCancelledBy])
					assert.Equal(t, "changed plans", fields[model.FieldCancellationReason])

					return nil
				}),
		)

		res, err := svc.Cancel(ctx, "booking-1", "customer-1", "changed plans")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.BookingStatus)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("refunds a paid booking on cancellation", func(t *testing.T) {
		svc, deps := newService(t)
		deps.allowAsyncSideEffects()

		booking := pendingBooking()
		booking.BookingStatus = model.StatusConfirmed
		booking.PaymentStatus = model.PaymentPaid

		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		deps.repo.EXPECT().ClaimRelease(gomock.Any(), "booking-1").Return(true, nil)
		deps.reservations.EXPECT().Release(gomock.Any(), "instance-1", 3).Return(nil)
		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.PaymentRefunded, fields[model.FieldPaymentStatus])
				assert.Equal(t, int64(450000), fields[model.FieldRefundAmount])

				return nil
			})

		res, err := svc.Cancel(ctx, "booking-1", "operator-1", "weather")

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentRefunded, res.PaymentStatus)
		if assert.NotNil(t, res.RefundAmount) {
			assert.Equal(t, int64(450000), *res.RefundAmount)
		}

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		svc, deps := newService(t)

		cancelledAt := timezone.Now()
		actor := "customer-1"
		reason := "changed plans"

		booking := pendingBooking()
		booking.BookingStatus = model.StatusCancelled
		booking.CancelledAt = &cancelledAt
		booking.CancelledBy = &actor
		booking.CancellationReason = &reason

		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		res, err := svc.Cancel(ctx, "booking-1", "customer-1", "changed plans again")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.BookingStatus)
		assert.Equal(t, "changed plans", res.CancellationReason)
	})

	t.Run("aborts when the capacity release fails", func(t *testing.T) {
		svc, deps := newService(t)

		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		deps.repo.EXPECT().ClaimRelease(gomock.Any(), "booking-1").Return(true, nil)
		deps.reservations.EXPECT().
			Release(gomock.Any(), "instance-1", 3).
			Return(errors.New("database error"))
		deps.repo.EXPECT().UnclaimRelease(gomock.Any(), "booking-1").Return(nil)

		_, err := svc.Cancel(ctx, "booking-1", "customer-1", "changed plans")

		assert.Error(t, err)
	})

	t.Run("racing cancellations release the grant once", func(t *testing.T) {
		svc, deps := newService(t)
		deps.allowAsyncSideEffects()

		// Both callers read the booking while it is still pending; the
		// conditional claim decides which one releases capacity.
		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil).
			AnyTimes()

		var claimed atomic.Bool
		deps.repo.EXPECT().
			ClaimRelease(gomock.Any(), "booking-1").
			DoAndReturn(func(context.Context, string) (bool, error) {
				return claimed.CompareAndSwap(false, true), nil
			}).
			Times(2)

		var releases atomic.Int32
		deps.reservations.EXPECT().
			Release(gomock.Any(), "instance-1", 3).
			DoAndReturn(func(context.Context, string, int) error {
				releases.Add(1)

				return nil
			}).
			AnyTimes()
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		var wg sync.WaitGroup
		for _, actor := range []string{constant.ActorSystem, "operator-1"} {
			wg.Add(1)

			go func(actor string) {
				defer wg.Done()

				_, _ = svc.Cancel(ctx, "booking-1", actor, "race")
			}(actor)
		}
		wg.Wait()

		assert.Equal(t, int32(1), releases.Load())

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("losing a claim against a committed cancellation is a no-op", func(t *testing.T) {
		svc, deps := newService(t)

		cancelledAt := timezone.Now()
		actor := constant.ActorSystem
		reason := model.ReasonExpired

		cancelled := pendingBooking()
		cancelled.BookingStatus = model.StatusCancelled
		cancelled.CapacityReleased = true
		cancelled.CancelledAt = &cancelledAt
		cancelled.CancelledBy = &actor
		cancelled.CancellationReason = &reason

		gomock.InOrder(
			deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil),
			deps.repo.EXPECT().ClaimRelease(gomock.Any(), "booking-1").Return(false, nil),
			deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil),
		)

		res, err := svc.Cancel(ctx, "booking-1", "customer-1", "changed plans")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.BookingStatus)
		assert.Equal(t, model.ReasonExpired, res.CancellationReason)
	})

	t.Run("losing a claim against an in-flight cancellation conflicts", func(t *testing.T) {
		svc, deps := newService(t)

		inFlight := pendingBooking()
		inFlight.CapacityReleased = true

		gomock.InOrder(
			deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil),
			deps.repo.EXPECT().ClaimRelease(gomock.Any(), "booking-1").Return(false, nil),
			deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inFlight, nil),
		)

		_, err := svc.Cancel(ctx, "booking-1", "customer-1", "changed plans")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("rejects cancelling terminal bookings", func(t *testing.T) {
		svc, deps := newService(t)

		booking := pendingBooking()
		booking.BookingStatus = model.StatusCompleted

		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := svc.Cancel(ctx, "booking-1", "customer-1", "too late")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("reports missing bookings", func(t *testing.T) {
		svc, deps := newService(t)

		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := svc.Cancel(ctx, "missing", "customer-1", "whatever")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Transitions(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "operator-1")

	booking := func(status string) model.Booking {
		return model.Booking{
			ID:               "booking-1",
			TourInstanceID:   "instance-1",
			ParticipantCount: 2,
			BookingStatus:    status,
			PaymentStatus:    model.PaymentPending,
		}
	}

	t.Run("confirm payment moves pending to confirmed", func(t *testing.T) {
		svc, deps := newService(t)
		deps.allowAsyncSideEffects()

		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPendingPayment), nil)
		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusConfirmed, fields[model.FieldBookingStatus])
				assert.Equal(t, model.PaymentPaid, fields[model.FieldPaymentStatus])
				assert.Equal(t, "operator-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.ConfirmPayment(ctx, "booking-1")

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("complete requires a confirmed booking", func(t *testing.T) {
		svc, deps := newService(t)

		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPendingPayment), nil)

		err := svc.Complete(ctx, "booking-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("no show requires a confirmed booking", func(t *testing.T) {
		svc, deps := newService(t)
		deps.allowAsyncSideEffects()

		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirmed), nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.MarkNoShow(ctx, "booking-1")

		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("repeating a transition is a no-op", func(t *testing.T) {
		svc, deps := newService(t)

		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirmed), nil)

		err := svc.ConfirmPayment(ctx, "booking-1")

		assert.NoError(t, err)
	})
}

func TestBookingService_ExpireStale(t *testing.T) {
	ctx := context.Background()

	staleBooking := func(id string) model.Booking {
		return model.Booking{
			ID:               id,
			TourInstanceID:   "instance-1",
			ParticipantCount: 2,
			BookingStatus:    model.StatusPendingPayment,
			PaymentStatus:    model.PaymentPending,
			ExpiresAt:        timezone.Now().Add(-time.Hour),
		}
	}

	t.Run("expires every stale booking", func(t *testing.T) {
		svc, deps := newService(t)
		deps.allowAsyncSideEffects()

		deps.repo.EXPECT().
			GetExpired(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{staleBooking("booking-1"), staleBooking("booking-2")}, nil)

		for _, id := range []string{"booking-1", "booking-2"} {
			deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staleBooking(id), nil)
			deps.repo.EXPECT().ClaimRelease(gomock.Any(), id).Return(true, nil)
			deps.reservations.EXPECT().Release(gomock.Any(), "instance-1", 2).Return(nil)
			deps.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					assert.Equal(t, constant.ActorSystem, fields[model.FieldCancelledBy])
					assert.Equal(t, model.ReasonExpired, fields[model.FieldCancellationReason])

					return nil
				})
		}

		expired, err := svc.ExpireStale(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, expired)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("one failing booking does not stall the sweep", func(t *testing.T) {
		svc, deps := newService(t)
		deps.allowAsyncSideEffects()

		deps.repo.EXPECT().
			GetExpired(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{staleBooking("booking-1"), staleBooking("booking-2")}, nil)

		gomock.InOrder(
			deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staleBooking("booking-1"), nil),
			deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staleBooking("booking-2"), nil),
		)

		gomock.InOrder(
			deps.repo.EXPECT().ClaimRelease(gomock.Any(), "booking-1").Return(true, nil),
			deps.repo.EXPECT().ClaimRelease(gomock.Any(), "booking-2").Return(true, nil),
		)

		gomock.InOrder(
			deps.reservations.EXPECT().Release(gomock.Any(), "instance-1", 2).Return(errors.New("database error")),
			deps.reservations.EXPECT().Release(gomock.Any(), "instance-1", 2).Return(nil),
		)

		deps.repo.EXPECT().UnclaimRelease(gomock.Any(), "booking-1").Return(nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		expired, err := svc.ExpireStale(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, expired)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("propagates listing errors", func(t *testing.T) {
		svc, deps := newService(t)

		deps.repo.EXPECT().
			GetExpired(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.ExpireStale(ctx)

		assert.Error(t, err)
	})
}

func TestBookingService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the booking on a cache miss", func(t *testing.T) {
		svc, deps := newService(t)

		deps.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Reference: "PP-ABC234", BookingStatus: model.StatusConfirmed}, nil)
		deps.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(ctx, "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "PP-ABC234", res.Reference)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("reports missing bookings", func(t *testing.T) {
		svc, deps := newService(t)

		deps.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Get(ctx, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
