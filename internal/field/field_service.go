package field

import (
	"context"
	"database/sql"
	"errors"
	"time"

	fielderrors "github.com/kajugadaniels/eps-attendify-api/internal/field/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=field_service.go -destination=mock/field_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateFieldRequest) (FieldResponse, error)
	GetAll(ctx context.Context) ([]FieldResponse, error)
	GetByID(ctx context.Context, id string) (FieldResponse, error)
	Update(ctx context.Context, id string, req UpdateFieldRequest) (FieldResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateFieldRequest) (FieldResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FieldResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	f := &Field{
		ID:      uuid.New(),
		Name:    req.Name,
		Address: req.Address,
	}

	if err := qtx.Create(ctx, f); err != nil {
		return FieldResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return FieldResponse{}, err
	}

	return mapToResponse(*f), nil
}

func (s *service) GetAll(ctx context.Context) ([]FieldResponse, error) {
	fields, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(fields), nil
}

func (s *service) GetByID(ctx context.Context, id string) (FieldResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return FieldResponse{}, fielderrors.ErrInvalidFieldID
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FieldResponse{}, fielderrors.ErrFieldNotFound
		}
		return FieldResponse{}, err
	}
	return mapToResponse(*f), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateFieldRequest) (FieldResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return FieldResponse{}, fielderrors.ErrInvalidFieldID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FieldResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	f, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FieldResponse{}, fielderrors.ErrFieldNotFound
		}
		return FieldResponse{}, err
	}

	f.Name = req.Name
	f.Address = req.Address

	if err := qtx.Update(ctx, f); err != nil {
		return FieldResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return FieldResponse{}, err
	}

	return mapToResponse(*f), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fielderrors.ErrInvalidFieldID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fielderrors.ErrFieldNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(f Field) FieldResponse {
	return FieldResponse{
		ID:        f.ID.String(),
		Name:      f.Name,
		Address:   f.Address,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
		UpdatedAt: f.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(fields []Field) []FieldResponse {
	res := make([]FieldResponse, len(fields))
	for i, f := range fields {
		res[i] = mapToResponse(f)
	}
	return res
}
