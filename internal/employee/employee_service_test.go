package employee_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kajugadaniels/eps-attendify-api/internal/employee"
	employeeerrors "github.com/kajugadaniels/eps-attendify-api/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn    func(tx *sql.Tx) employee.Repository
	createFn    func(ctx context.Context, e *employee.Employee) error
	findAllFn   func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn  func(ctx context.Context, id string) (*employee.Employee, error)
	findByTagFn func(ctx context.Context, tag string) (*employee.Employee, error)
	updateFn    func(ctx context.Context, e *employee.Employee) error
	deleteFn    func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByTag(ctx context.Context, tag string) (*employee.Employee, error) {
	if f.findByTagFn != nil {
		return f.findByTagFn(ctx, tag)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func setupEmployeeServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeEmployeeRepository, employee.Service) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	return db, sqlMock, repo, employee.NewService(db, repo)
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Name:       "Jean Mukiza",
		Email:      "jean.mukiza@example.com",
		Phone:      "+250780000001",
		Tag:        "TAG-0001",
		NationalID: "1199000000000001",
		SSN:        "SSN-0001",
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, repo, svc := setupEmployeeServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "TAG-0001", e.Tag)
			return nil
		}

		resp, err := svc.Create(ctx, validCreateRequest())
		assert.NoError(t, err)
		assert.Equal(t, "jean.mukiza@example.com", resp.Email)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to domain conflict", func(t *testing.T) {
		db, sqlMock, repo, svc := setupEmployeeServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_email"}
		}

		_, err := svc.Create(ctx, validCreateRequest())
		assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyExists)
	})

	t.Run("duplicate tag maps to domain conflict", func(t *testing.T) {
		db, sqlMock, repo, svc := setupEmployeeServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_tag"}
		}

		_, err := svc.Create(ctx, validCreateRequest())
		assert.ErrorIs(t, err, employeeerrors.ErrTagAlreadyExists)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		db, _, _, svc := setupEmployeeServiceTest(t)
		defer db.Close()

		_, err := svc.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("not found", func(t *testing.T) {
		db, _, _, svc := setupEmployeeServiceTest(t)
		defer db.Close()

		_, err := svc.GetByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
