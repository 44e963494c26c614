package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"peakpath/infras/otel"
	"peakpath/infras/postgres"
	"peakpath/internal/domains/tourinstance/model"
	"peakpath/shared/constant"
	gDto "peakpath/shared/dto"
	"peakpath/shared/logger"
	gRepo "peakpath/shared/repository"
	"peakpath/shared/timezone"
)

type TourInstance interface {
	Insert(ctx context.Context, model model.TourInstance) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.TourInstance, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TourInstance, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	// CompareAndSetBooked bumps capacity_booked from expected to next on a
	// single row, succeeding only if the stored value still equals
	// expected at write time. Returns false when a concurrent writer got
	// there first.
	CompareAndSetBooked(ctx context.Context, id string, expected, next int) (bool, error)

	// DecrementBooked returns count spots to the instance, clamped so the
	// counter never drops below zero.
	DecrementBooked(ctx context.Context, id string, count int) error
}

type repositoryImpl struct {
	gRepo.Repository[model.TourInstance]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) TourInstance {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.TourInstance](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) CompareAndSetBooked(ctx context.Context, id string, expected, next int) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".CompareAndSetBooked")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = :next, %s = :modified_at WHERE %s = :id AND %s = :expected",
		model.TableName,
		model.FieldCapacityBooked,
		constant.FieldModifiedAt,
		model.FieldID,
		model.FieldCapacityBooked,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"id":          id,
		"expected":    expected,
		"next":        next,
		"modified_at": timezone.Now(),
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to update booked capacity (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected == 1, nil
}

func (repo *repositoryImpl) DecrementBooked(ctx context.Context, id string, count int) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".DecrementBooked")
	defer scope.End()

	// GREATEST keeps the counter non-negative even if a release is
	// replayed; exactly-once release is still the caller's job.
	query := fmt.Sprintf(
		"UPDATE %s SET %s = GREATEST(%s - :count, 0), %s = :modified_at WHERE %s = :id",
		model.TableName,
		model.FieldCapacityBooked,
		model.FieldCapacityBooked,
		constant.FieldModifiedAt,
		model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"id":          id,
		"count":       count,
		"modified_at": timezone.Now(),
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to release booked capacity (%s): %w", model.EntityName, err)
	}

	return nil
}
