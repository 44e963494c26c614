package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"peakpath/infras/otel"
	"peakpath/infras/postgres"
	"peakpath/internal/domains/photo/model"
	gDto "peakpath/shared/dto"
	gRepo "peakpath/shared/repository"
)

type Album interface {
	Insert(ctx context.Context, model model.Album) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Album, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Album, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Album]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Album {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Album](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
