package department_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kajugadaniels/eps-attendify-api/internal/department"
	departmenterrors "github.com/kajugadaniels/eps-attendify-api/internal/department/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepository struct {
	withTxFn   func(tx *sql.Tx) department.Repository
	createFn   func(ctx context.Context, d *department.Department) error
	findAllFn  func(ctx context.Context) ([]department.Department, error)
	findByIDFn func(ctx context.Context, id string) (*department.Department, error)
	updateFn   func(ctx context.Context, d *department.Department) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeDepartmentRepository) WithTx(tx *sql.Tx) department.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeDepartmentRepository) Create(ctx context.Context, d *department.Department) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeDepartmentRepository) FindAll(ctx context.Context) ([]department.Department, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeDepartmentRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepository) Update(ctx context.Context, d *department.Department) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, d)
	}
	return nil
}

func (f *fakeDepartmentRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func setupDepartmentServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeDepartmentRepository, department.Service) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeDepartmentRepository{}
	return db, sqlMock, repo, department.NewService(db, repo)
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, repo, svc := setupDepartmentServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.createFn = func(ctx context.Context, d *department.Department) error {
			assert.Equal(t, "Field Operations", d.Name)
			assert.Equal(t, "85.50", d.DaySalary)
			return nil
		}

		resp, err := svc.Create(ctx, department.CreateDepartmentRequest{
			Name:      "Field Operations",
			DaySalary: "85.50",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Field Operations", resp.Name)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("negative day salary", func(t *testing.T) {
		db, _, _, svc := setupDepartmentServiceTest(t)
		defer db.Close()

		_, err := svc.Create(ctx, department.CreateDepartmentRequest{
			Name:      "Field Operations",
			DaySalary: "-1",
		})
		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDaySalary)
	})

	t.Run("non numeric day salary", func(t *testing.T) {
		db, _, _, svc := setupDepartmentServiceTest(t)
		defer db.Close()

		_, err := svc.Create(ctx, department.CreateDepartmentRequest{
			Name:      "Field Operations",
			DaySalary: "eighty",
		})
		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDaySalary)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, repo, svc := setupDepartmentServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.findByIDFn = func(ctx context.Context, _ string) (*department.Department, error) {
			return &department.Department{ID: id, Name: "Old", DaySalary: "80.00"}, nil
		}
		repo.updateFn = func(ctx context.Context, d *department.Department) error {
			assert.Equal(t, "New", d.Name)
			assert.Equal(t, "90.00", d.DaySalary)
			return nil
		}

		resp, err := svc.Update(ctx, id.String(), department.UpdateDepartmentRequest{
			Name:      "New",
			DaySalary: "90.00",
		})
		assert.NoError(t, err)
		assert.Equal(t, "New", resp.Name)
	})

	t.Run("not found", func(t *testing.T) {
		db, sqlMock, _, svc := setupDepartmentServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.Update(ctx, id.String(), department.UpdateDepartmentRequest{
			Name:      "New",
			DaySalary: "90.00",
		})
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	db, sqlMock, repo, svc := setupDepartmentServiceTest(t)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	repo.findByIDFn = func(ctx context.Context, _ string) (*department.Department, error) {
		return &department.Department{ID: id}, nil
	}
	deleted := false
	repo.deleteFn = func(ctx context.Context, did string) error {
		assert.Equal(t, id.String(), did)
		deleted = true
		return nil
	}

	assert.NoError(t, svc.Delete(ctx, id.String()))
	assert.True(t, deleted)
}
