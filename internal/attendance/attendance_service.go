package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	attendanceerrors "github.com/kajugadaniels/eps-attendify-api/internal/attendance/errors"
	"github.com/kajugadaniels/eps-attendify-api/internal/events"
	"github.com/kajugadaniels/eps-attendify-api/internal/messaging/kafka"
	"github.com/kajugadaniels/eps-attendify-api/internal/shared/contextutil"
	"github.com/kajugadaniels/eps-attendify-api/internal/tagresolver"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkRequest) (MarkResponse, error)
	MarkBatch(ctx context.Context, req MarkBatchRequest) (MarkBatchResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
	GetToday(ctx context.Context) ([]AttendanceResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver tagresolver.Service
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	resolver tagresolver.Service,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, resolver: resolver, outbox: outbox, logger: l}
}

// Mark records presence for whoever the tag resolves to. Scanning a tag
// that already has a present record for the date is a conflict; a record
// previously stored as absent flips to present instead.
func (s *service) Mark(ctx context.Context, req MarkRequest) (MarkResponse, error) {
	date, err := resolveMarkDate(req.Date)
	if err != nil {
		return MarkResponse{}, err
	}

	res, err := s.resolver.Resolve(ctx, req.TagID)
	if err != nil {
		return MarkResponse{}, err
	}
	if !res.Group.IsActive {
		return MarkResponse{}, attendanceerrors.ErrGroupInactive
	}

	daySalary, err := s.repo.LookupDaySalary(ctx, res.Group.ID.String())
	if err != nil {
		if IsNotFound(err) {
			return MarkResponse{}, attendanceerrors.ErrDaySalaryUnavailable
		}
		return MarkResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark begin tx failed", zap.Error(err))
		return MarkResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	outcome := OutcomeCreated
	isSupervisor := res.Kind == tagresolver.KindSupervisor

	record, err := qtx.FindByAssignmentAndDate(ctx, res.Assignment.ID.String(), date, isSupervisor)
	switch {
	case err == nil && record.Attended:
		return MarkResponse{}, attendanceerrors.ErrAlreadyMarked

	case err == nil:
		// Absent record for the date flips to present, keeping its id
		// and its original salary snapshot.
		record.Attended = true
		if err := qtx.Update(ctx, record); err != nil {
			return MarkResponse{}, err
		}
		outcome = OutcomeUpdated

	case IsNotFound(err):
		record = &Attendance{
			ID:                   uuid.New(),
			EmployeeAssignmentID: res.Assignment.ID,
			Date:                 date,
			Attended:             true,
			DaySalary:            daySalary,
			IsSupervisor:         isSupervisor,
		}
		if err := qtx.Create(ctx, record); err != nil {
			return MarkResponse{}, mapRepositoryError(err)
		}

	default:
		return MarkResponse{}, err
	}

	employeeID := res.Assignment.EmployeeID.String()
	if res.Kind == tagresolver.KindSupervisor && res.Group.SupervisorID != nil {
		employeeID = res.Group.SupervisorID.String()
	}

	event := events.AttendanceMarkedEvent{
		EventType:    "attendance.marked",
		AttendanceID: record.ID.String(),
		AssignmentID: res.Assignment.ID.String(),
		EmployeeID:   employeeID,
		DepartmentID: res.Group.DepartmentID.String(),
		Date:         date.Format("2006-01-02"),
		DaySalary:    record.DaySalary,
		IsSupervisor: record.IsSupervisor,
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return MarkResponse{}, err
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance",
		AggregateID:   record.ID.String(),
		EventType:     event.EventType,
		Topic:         events.AttendanceMarkedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return MarkResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return MarkResponse{}, err
	}

	s.logger.Info("attendance marked",
		zap.String("attendance_id", record.ID.String()),
		zap.String("assignment_id", res.Assignment.ID.String()),
		zap.String("date", event.Date),
		zap.Bool("is_supervisor", record.IsSupervisor),
		zap.String("outcome", outcome),
	)

	return MarkResponse{
		Outcome: outcome,
		Attendance: AttendanceResponse{
			ID:                   record.ID.String(),
			EmployeeAssignmentID: record.EmployeeAssignmentID.String(),
			EmployeeID:           employeeID,
			GroupID:              res.Group.ID.String(),
			DepartmentID:         res.Group.DepartmentID.String(),
			Date:                 date.Format("2006-01-02"),
			Attended:             true,
			DaySalary:            record.DaySalary,
			IsSupervisor:         record.IsSupervisor,
		},
	}, nil
}

// MarkBatch runs one scan per tag and reports per-tag outcomes. A bad tag
// in the middle of the batch never blocks the rest.
func (s *service) MarkBatch(ctx context.Context, req MarkBatchRequest) (MarkBatchResponse, error) {
	date, err := resolveMarkDate(req.Date)
	if err != nil {
		return MarkBatchResponse{}, err
	}

	resp := MarkBatchResponse{
		Date:    date.Format("2006-01-02"),
		Total:   len(req.TagIDs),
		Results: make([]MarkOutcome, 0, len(req.TagIDs)),
	}

	for _, tagID := range req.TagIDs {
		single, err := s.Mark(ctx, MarkRequest{TagID: tagID, Date: req.Date})
		if err != nil {
			resp.Rejected++
			resp.Results = append(resp.Results, MarkOutcome{
				TagID:   tagID,
				Outcome: OutcomeRejected,
				Error:   err.Error(),
			})
			continue
		}
		resp.Recorded++
		attendance := single.Attendance
		resp.Results = append(resp.Results, MarkOutcome{
			TagID:      tagID,
			Outcome:    single.Outcome,
			Attendance: &attendance,
		})
	}

	return resp, nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapRows(rows), nil
}

func (s *service) GetToday(ctx context.Context) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindByDate(ctx, time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, err
	}
	return mapRows(rows), nil
}

func resolveMarkDate(raw string) (time.Time, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if raw == "" {
		return today, nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDate
	}
	if date.After(today) {
		return time.Time{}, attendanceerrors.ErrFutureDate
	}
	return date, nil
}

func mapRows(rows []Row) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		res[i] = AttendanceResponse{
			ID:                   row.ID,
			EmployeeAssignmentID: row.EmployeeAssignmentID,
			EmployeeID:           row.EmployeeID,
			GroupID:              row.GroupID,
			DepartmentID:         row.DepartmentID,
			Date:                 row.Date.Format("2006-01-02"),
			Attended:             row.Attended,
			DaySalary:            row.DaySalary,
			IsSupervisor:         row.IsSupervisor,
		}
	}
	return res
}
