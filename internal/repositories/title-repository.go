package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	"hr-system/pkg/types"
)

const titleTable = "titles"

type TitleRepositoryInterface interface {
	GetTitles(ctx context.Context, filter types.Filter) ([]entities.Title, uint64, error)
	FindTitle(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Title, error)
	NameTaken(ctx context.Context, tx pgx.Tx, name string, exceptID *uuid.UUID) (bool, error)
	CreateTitle(ctx context.Context, tx pgx.Tx, title entities.Title) (*entities.Title, error)
	UpdateTitle(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch DictionaryPatch) (*entities.Title, error)
	DeleteTitle(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type TitleRepository struct {
	store  *dictionaryStore
	logger *zap.Logger
}

func NewTitleRepository(storage *pgxpool.Pool, logger *zap.Logger) TitleRepositoryInterface {
	return &TitleRepository{
		store:  newDictionaryStore(storage, titleTable, "Должность с таким названием уже существует", logger),
		logger: logger,
	}
}

func toTitle(rec *dictionaryRecord, err error) (*entities.Title, error) {
	if err != nil {
		return nil, err
	}
	title := entities.Title(*rec)
	return &title, nil
}

func (r *TitleRepository) GetTitles(ctx context.Context, filter types.Filter) ([]entities.Title, uint64, error) {
	records, total, err := r.store.list(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	titles := make([]entities.Title, len(records))
	for i, rec := range records {
		titles[i] = entities.Title(rec)
	}
	return titles, total, nil
}

func (r *TitleRepository) FindTitle(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Title, error) {
	return toTitle(r.store.findByID(ctx, tx, id))
}

func (r *TitleRepository) NameTaken(ctx context.Context, tx pgx.Tx, name string, exceptID *uuid.UUID) (bool, error) {
	return r.store.nameTaken(ctx, tx, name, exceptID)
}

func (r *TitleRepository) CreateTitle(ctx context.Context, tx pgx.Tx, title entities.Title) (*entities.Title, error) {
	return toTitle(r.store.create(ctx, tx, dictionaryRecord(title)))
}

func (r *TitleRepository) UpdateTitle(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch DictionaryPatch) (*entities.Title, error) {
	return toTitle(r.store.update(ctx, tx, id, patch))
}

func (r *TitleRepository) DeleteTitle(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	return r.store.remove(ctx, tx, id)
}
