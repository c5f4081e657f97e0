package attendance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/kajugadaniels/eps-attendify-api/internal/assignment"
	"github.com/kajugadaniels/eps-attendify-api/internal/assignmentgroup"
	"github.com/kajugadaniels/eps-attendify-api/internal/attendance"
	attendanceerrors "github.com/kajugadaniels/eps-attendify-api/internal/attendance/errors"
	"github.com/kajugadaniels/eps-attendify-api/internal/events"
	"github.com/kajugadaniels/eps-attendify-api/internal/messaging/kafka"
	"github.com/kajugadaniels/eps-attendify-api/internal/tagresolver"
	tagresolvererrors "github.com/kajugadaniels/eps-attendify-api/internal/tagresolver/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	withTxFn                  func(tx *sql.Tx) attendance.Repository
	createFn                  func(ctx context.Context, a *attendance.Attendance) error
	updateFn                  func(ctx context.Context, a *attendance.Attendance) error
	findByAssignmentAndDateFn func(ctx context.Context, assignmentID string, date time.Time, isSupervisor bool) (*attendance.Attendance, error)
	findAllFn                 func(ctx context.Context, filter attendance.ListFilter) ([]attendance.Row, error)
	findByDateFn              func(ctx context.Context, date time.Time) ([]attendance.Row, error)
	lookupDaySalaryFn         func(ctx context.Context, groupID string) (string, error)
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindByAssignmentAndDate(ctx context.Context, assignmentID string, date time.Time, isSupervisor bool) (*attendance.Attendance, error) {
	if f.findByAssignmentAndDateFn != nil {
		return f.findByAssignmentAndDateFn(ctx, assignmentID, date, isSupervisor)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindAll(ctx context.Context, filter attendance.ListFilter) ([]attendance.Row, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindByDate(ctx context.Context, date time.Time) ([]attendance.Row, error) {
	if f.findByDateFn != nil {
		return f.findByDateFn(ctx, date)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) LookupDaySalary(ctx context.Context, groupID string) (string, error) {
	if f.lookupDaySalaryFn != nil {
		return f.lookupDaySalaryFn(ctx, groupID)
	}
	return "85.00", nil
}

type fakeResolver struct {
	resolveFn func(ctx context.Context, tagID string) (tagresolver.Resolution, error)
}

func (f *fakeResolver) Resolve(ctx context.Context, tagID string) (tagresolver.Resolution, error) {
	return f.resolveFn(ctx, tagID)
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type attendanceServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  attendance.Service
	repo     *fakeAttendanceRepository
	resolver *fakeResolver
	outbox   *fakeOutboxRepository
}

func workerResolution(groupID, assignmentID, employeeID uuid.UUID) tagresolver.Resolution {
	return tagresolver.Resolution{
		Kind: tagresolver.KindWorker,
		Group: &assignmentgroup.AssignmentGroup{
			ID:           groupID,
			DepartmentID: uuid.New(),
			IsActive:     true,
		},
		Assignment: &assignment.EmployeeAssignment{
			ID:                assignmentID,
			AssignmentGroupID: groupID,
			EmployeeID:        employeeID,
			Status:            assignment.StatusActive,
		},
	}
}

func setupAttendanceServiceTest(t *testing.T) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttendanceRepository{}
	resolver := &fakeResolver{}
	outbox := &fakeOutboxRepository{}
	svc := attendance.NewService(db, repo, resolver, outbox)

	return &attendanceServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		resolver: resolver,
		outbox:   outbox,
	}
}

func TestAttendanceService_Mark(t *testing.T) {
	ctx := context.Background()
	groupID := uuid.New()
	assignmentID := uuid.New()
	employeeID := uuid.New()

	t.Run("creates present record with salary snapshot", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.resolver.resolveFn = func(ctx context.Context, tagID string) (tagresolver.Resolution, error) {
			assert.Equal(t, "TAG-010", tagID)
			return workerResolution(groupID, assignmentID, employeeID), nil
		}
		var created *attendance.Attendance
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			created = a
			return nil
		}

		resp, err := deps.service.Mark(ctx, attendance.MarkRequest{TagID: "TAG-010", Date: "2026-08-20"})
		assert.NoError(t, err)
		assert.Equal(t, attendance.OutcomeCreated, resp.Outcome)
		assert.True(t, resp.Attendance.Attended)
		assert.Equal(t, "85.00", resp.Attendance.DaySalary)
		assert.False(t, resp.Attendance.IsSupervisor)

		assert.NotNil(t, created)
		assert.Equal(t, assignmentID, created.EmployeeAssignmentID)
		assert.Equal(t, "85.00", created.DaySalary)

		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, events.AttendanceMarkedTopic, deps.outbox.created[0].Topic)
		var event events.AttendanceMarkedEvent
		assert.NoError(t, json.Unmarshal(deps.outbox.created[0].Payload, &event))
		assert.Equal(t, employeeID.String(), event.EmployeeID)
		assert.Equal(t, "2026-08-20", event.Date)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("supervisor scan records against stand-in assignment", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		supervisorID := uuid.New()
		res := workerResolution(groupID, assignmentID, employeeID)
		res.Kind = tagresolver.KindSupervisor
		res.Group.SupervisorID = &supervisorID
		deps.resolver.resolveFn = func(ctx context.Context, tagID string) (tagresolver.Resolution, error) {
			return res, nil
		}

		resp, err := deps.service.Mark(ctx, attendance.MarkRequest{TagID: "TAG-020", Date: "2026-08-20"})
		assert.NoError(t, err)
		assert.True(t, resp.Attendance.IsSupervisor)
		assert.Equal(t, supervisorID.String(), resp.Attendance.EmployeeID)

		var event events.AttendanceMarkedEvent
		assert.NoError(t, json.Unmarshal(deps.outbox.created[0].Payload, &event))
		assert.True(t, event.IsSupervisor)
		assert.Equal(t, supervisorID.String(), event.EmployeeID)
	})

	t.Run("flip keeps original salary snapshot", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.resolver.resolveFn = func(ctx context.Context, tagID string) (tagresolver.Resolution, error) {
			return workerResolution(groupID, assignmentID, employeeID), nil
		}
		// The department rate moved to 85.00 after the absent record was
		// written at 80.00.
		deps.repo.lookupDaySalaryFn = func(ctx context.Context, gid string) (string, error) {
			return "85.00", nil
		}
		deps.repo.findByAssignmentAndDateFn = func(ctx context.Context, aid string, date time.Time, isSupervisor bool) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:                   uuid.New(),
				EmployeeAssignmentID: assignmentID,
				Date:                 date,
				Attended:             false,
				DaySalary:            "80.00",
			}, nil
		}
		var updated *attendance.Attendance
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			updated = a
			return nil
		}

		resp, err := deps.service.Mark(ctx, attendance.MarkRequest{TagID: "TAG-010", Date: "2026-08-20"})
		assert.NoError(t, err)
		assert.Equal(t, attendance.OutcomeUpdated, resp.Outcome)
		assert.NotNil(t, updated)
		assert.Equal(t, "80.00", updated.DaySalary)
		assert.Equal(t, "80.00", resp.Attendance.DaySalary)
	})

	t.Run("flips absent record to present", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.resolver.resolveFn = func(ctx context.Context, tagID string) (tagresolver.Resolution, error) {
			return workerResolution(groupID, assignmentID, employeeID), nil
		}
		recordID := uuid.New()
		deps.repo.findByAssignmentAndDateFn = func(ctx context.Context, aid string, date time.Time, isSupervisor bool) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:                   recordID,
				EmployeeAssignmentID: assignmentID,
				Date:                 date,
				Attended:             false,
				DaySalary:            "80.00",
			}, nil
		}
		var updated *attendance.Attendance
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			updated = a
			return nil
		}

		resp, err := deps.service.Mark(ctx, attendance.MarkRequest{TagID: "TAG-010", Date: "2026-08-20"})
		assert.NoError(t, err)
		assert.Equal(t, attendance.OutcomeUpdated, resp.Outcome)
		assert.Equal(t, recordID.String(), resp.Attendance.ID)
		assert.NotNil(t, updated)
		assert.True(t, updated.Attended)
	})

	t.Run("double scan is a conflict", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.resolver.resolveFn = func(ctx context.Context, tagID string) (tagresolver.Resolution, error) {
			return workerResolution(groupID, assignmentID, employeeID), nil
		}
		deps.repo.findByAssignmentAndDateFn = func(ctx context.Context, aid string, date time.Time, isSupervisor bool) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: uuid.New(), Attended: true}, nil
		}

		_, err := deps.service.Mark(ctx, attendance.MarkRequest{TagID: "TAG-010", Date: "2026-08-20"})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyMarked)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("future date rejected", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		future := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
		_, err := deps.service.Mark(ctx, attendance.MarkRequest{TagID: "TAG-010", Date: future})
		assert.ErrorIs(t, err, attendanceerrors.ErrFutureDate)
	})

	t.Run("inactive group rejected", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		res := workerResolution(groupID, assignmentID, employeeID)
		res.Group.IsActive = false
		deps.resolver.resolveFn = func(ctx context.Context, tagID string) (tagresolver.Resolution, error) {
			return res, nil
		}

		_, err := deps.service.Mark(ctx, attendance.MarkRequest{TagID: "TAG-010", Date: "2026-08-20"})
		assert.ErrorIs(t, err, attendanceerrors.ErrGroupInactive)
	})
}

func TestAttendanceService_MarkBatch(t *testing.T) {
	ctx := context.Background()
	groupID := uuid.New()

	deps := setupAttendanceServiceTest(t)
	defer deps.db.Close()

	// Two good tags open and commit their own transactions; the unknown
	// tag never reaches the database.
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	deps.resolver.resolveFn = func(ctx context.Context, tagID string) (tagresolver.Resolution, error) {
		if tagID == "TAG-BAD" {
			return tagresolver.Resolution{}, tagresolvererrors.ErrTagNotResolved
		}
		return workerResolution(groupID, uuid.New(), uuid.New()), nil
	}

	resp, err := deps.service.MarkBatch(ctx, attendance.MarkBatchRequest{
		TagIDs: []string{"TAG-001", "TAG-BAD", "TAG-002"},
		Date:   "2026-08-20",
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Recorded)
	assert.Equal(t, 1, resp.Rejected)
	assert.Len(t, resp.Results, 3)
	assert.Equal(t, attendance.OutcomeRejected, resp.Results[1].Outcome)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Len(t, deps.outbox.created, 2)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
