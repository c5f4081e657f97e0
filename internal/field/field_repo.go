package field

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=field_repo.go -destination=mock/field_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, f *Field) error
	FindAll(ctx context.Context) ([]Field, error)
	FindByID(ctx context.Context, id string) (*Field, error)
	Update(ctx context.Context, f *Field) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, f *Field) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Field, error) {
	var rows []Field
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Field, error) {
	var f Field
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&f).Error
	return &f, err
}

func (r *repository) Update(ctx context.Context, f *Field) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Field{}).Error
}
