package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"peakpath/infras/otel"
	"peakpath/infras/postgres"
	"peakpath/internal/domains/booking/model"
	"peakpath/shared/constant"
	gDto "peakpath/shared/dto"
	"peakpath/shared/logger"
	gRepo "peakpath/shared/repository"
	"peakpath/shared/timezone"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	// GetExpired returns pending_payment bookings whose expiry has
	// passed, oldest first, capped at limit rows per sweep.
	GetExpired(ctx context.Context, now time.Time, limit int) ([]model.Booking, error)

	// ClaimRelease flips capacity_released on a booking that still
	// holds its grant. At most one concurrent caller gets true; only
	// that caller may release the capacity.
	ClaimRelease(ctx context.Context, id string) (bool, error)

	// UnclaimRelease reverts a claim whose capacity release failed so
	// a later cancellation can retry.
	UnclaimRelease(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetExpired(ctx context.Context, now time.Time, limit int) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetExpired")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE %s = :status AND %s < :now ORDER BY %s ASC LIMIT :limit",
		model.TableName,
		model.FieldBookingStatus,
		model.FieldExpiresAt,
		model.FieldExpiresAt,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"status": model.StatusPendingPayment,
		"now":    now,
		"limit":  limit,
	}

	var models []model.Booking

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get expired bookings: %w", err)
	}

	return models, nil
}

func (repo *repositoryImpl) ClaimRelease(ctx context.Context, id string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ClaimRelease")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = TRUE, %s = :modified_at WHERE %s = :id AND %s = FALSE AND %s IN ('%s', '%s')",
		model.TableName,
		model.FieldCapacityReleased,
		constant.FieldModifiedAt,
		model.FieldID,
		model.FieldCapacityReleased,
		model.FieldBookingStatus,
		model.StatusPendingPayment,
		model.StatusConfirmed,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"id":          id,
		"modified_at": timezone.Now(),
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to claim capacity release (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected == 1, nil
}

func (repo *repositoryImpl) UnclaimRelease(ctx context.Context, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UnclaimRelease")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = FALSE, %s = :modified_at WHERE %s = :id",
		model.TableName,
		model.FieldCapacityReleased,
		constant.FieldModifiedAt,
		model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"id":          id,
		"modified_at": timezone.Now(),
	}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to revert release claim (%s): %w", model.EntityName, err)
	}

	return nil
}
