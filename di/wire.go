//go:build wireinject
// +build wireinject

package di

import (
	"peakpath/config"
	"peakpath/infras/jwt"
	"peakpath/infras/kafka"
	"peakpath/infras/otel"
	"peakpath/infras/postgres"
	"peakpath/infras/redis"
	"peakpath/infras/s3"
	"peakpath/internal/worker"
	"peakpath/permissions"
	"peakpath/shared/cache"
	"peakpath/transport/http"
	"peakpath/transport/http/middleware"
	"peakpath/transport/http/router"

	"github.com/google/wire"

	authService "peakpath/internal/domains/auth/service"
	bookingRepository "peakpath/internal/domains/booking/repository"
	bookingService "peakpath/internal/domains/booking/service"
	photoRepository "peakpath/internal/domains/photo/repository"
	photoService "peakpath/internal/domains/photo/service"
	tourRepository "peakpath/internal/domains/tour/repository"
	tourService "peakpath/internal/domains/tour/service"
	"peakpath/internal/domains/tourinstance/capacity"
	tourInstanceRepository "peakpath/internal/domains/tourinstance/repository"
	tourInstanceService "peakpath/internal/domains/tourinstance/service"
	userRepository "peakpath/internal/domains/user/repository"
	userService "peakpath/internal/domains/user/service"

	authHandler "peakpath/internal/handlers/auth"
	bookingHandler "peakpath/internal/handlers/booking"
	healthHandler "peakpath/internal/handlers/health"
	photoHandler "peakpath/internal/handlers/photo"
	tourHandler "peakpath/internal/handlers/tour"
	tourInstanceHandler "peakpath/internal/handlers/tourinstance"
	userHandler "peakpath/internal/handlers/user"
)

// App bundles everything the process runs: the HTTP transport and the
// background expiry sweeper.
type App struct {
	HTTP    *http.HTTP
	Sweeper *worker.Sweeper
}

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var tourDomain = wire.NewSet(
	tourRepository.New,
	tourService.New,
)

var tourInstanceDomain = wire.NewSet(
	tourInstanceRepository.New,
	tourInstanceService.New,
	capacity.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var photoDomain = wire.NewSet(
	photoRepository.New,
	photoService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	tourDomain,
	tourInstanceDomain,
	bookingDomain,
	photoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	userHandler.New,
	tourHandler.New,
	tourInstanceHandler.New,
	bookingHandler.New,
	photoHandler.New,
	router.New,
)

var workers = wire.NewSet(
	worker.NewSweeper,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		workers,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
