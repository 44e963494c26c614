package worker

import (
	"context"
	"time"

	"peakpath/config"
	"peakpath/infras/otel"
	bookingService "peakpath/internal/domains/booking/service"
	"peakpath/shared/constant"

	"github.com/rs/zerolog/log"
)

// Sweeper periodically cancels bookings that sat in pending_payment
// past their expiry deadline, handing back the seats they held.
type Sweeper struct {
	bookings bookingService.Booking
	cfg      *config.Config
	otel     otel.Otel

	stop chan struct{}
	done chan struct{}
}

func NewSweeper(bookings bookingService.Booking, cfg *config.Config, otel otel.Otel) *Sweeper {
	return &Sweeper{
		bookings: bookings,
		cfg:      cfg,
		otel:     otel,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine. The first sweep
// runs after one full interval so startup traffic settles first.
func (s *Sweeper) Start() {
	interval := time.Duration(s.cfg.Booking.SweepIntervalSeconds) * time.Second

	log.Info().Dur("interval", interval).Msg("Starting booking expiry sweeper.")

	go s.run(interval)
}

func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) run(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelWorkerScopeName, "Sweeper.sweep")
	defer scope.End()

	expired, err := s.bookings.ExpireStale(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("Booking expiry sweep failed")

		return
	}

	if expired > 0 {
		log.Info().Int("expired", expired).Msg("Expired stale pending bookings")
	}
}
