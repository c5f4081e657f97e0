package assignment

import (
	"context"
	"database/sql"
	"time"

	assignmenterrors "github.com/kajugadaniels/eps-attendify-api/internal/assignment/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	Enroll(ctx context.Context, groupID, employeeID string) (AssignmentResponse, error)
	Remove(ctx context.Context, groupID, employeeID string) error
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (AssignmentResponse, error)
	GetByGroup(ctx context.Context, groupID string) ([]AssignmentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// validateActivation enforces the rules guarding the active status: one
// active assignment per employee across all groups, and supervisor/worker
// exclusivity. It runs on every path that persists an active row, not only
// at first enrollment.
func validateActivation(ctx context.Context, repo Repository, employeeID string, excludeID *uuid.UUID) error {
	existing, err := repo.FindActiveByEmployee(ctx, employeeID)
	if err != nil && !IsNotFound(err) {
		return err
	}
	if err == nil && (excludeID == nil || existing.ID != *excludeID) {
		return assignmenterrors.ErrHasActiveAssignment
	}

	supervises, err := repo.SupervisesActiveGroup(ctx, employeeID)
	if err != nil {
		return err
	}
	if supervises {
		return assignmenterrors.ErrIsSupervisor
	}

	return nil
}

func (s *service) Enroll(ctx context.Context, groupID, employeeID string) (AssignmentResponse, error) {
	groupUUID, err := uuid.Parse(groupID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidGroupID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("enroll begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	meta, err := qtx.FindGroupMeta(ctx, groupID)
	if err != nil {
		if IsNotFound(err) {
			return AssignmentResponse{}, assignmenterrors.ErrGroupNotFound
		}
		return AssignmentResponse{}, err
	}
	if !meta.IsActive {
		return AssignmentResponse{}, assignmenterrors.ErrGroupInactive
	}

	if _, err := qtx.FindByGroupAndEmployee(ctx, groupID, employeeID); err == nil {
		s.logger.Warn("enroll duplicate pair",
			zap.String("group_id", groupID),
			zap.String("employee_id", employeeID),
		)
		return AssignmentResponse{}, assignmenterrors.ErrAlreadyEnrolled
	} else if !IsNotFound(err) {
		return AssignmentResponse{}, err
	}

	if err := validateActivation(ctx, qtx, employeeID, nil); err != nil {
		s.logger.Warn("enroll activation rejected",
			zap.String("group_id", groupID),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return AssignmentResponse{}, err
	}

	a := &EmployeeAssignment{
		ID:                uuid.New(),
		AssignmentGroupID: groupUUID,
		EmployeeID:        employeeUUID,
		AssignedDate:      time.Now().UTC().Truncate(24 * time.Hour),
		Status:            StatusActive,
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("enroll persist failed", zap.Error(err))
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}

	s.logger.Info("employee enrolled",
		zap.String("assignment_id", a.ID.String()),
		zap.String("group_id", groupID),
		zap.String("employee_id", employeeID),
	)

	return ToResponse(*a), nil
}

// Remove deletes the membership row. Removal is blocked when attendance
// history exists, so payroll records keep a valid assignment reference.
func (s *service) Remove(ctx context.Context, groupID, employeeID string) error {
	if _, err := uuid.Parse(groupID); err != nil {
		return assignmenterrors.ErrInvalidGroupID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return assignmenterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByGroupAndEmployee(ctx, groupID, employeeID)
	if err != nil {
		if IsNotFound(err) {
			return assignmenterrors.ErrAssignmentNotFound
		}
		return err
	}

	hasHistory, err := qtx.HasAttendanceHistory(ctx, a.ID.String())
	if err != nil {
		return err
	}
	if hasHistory {
		return assignmenterrors.ErrHasAttendanceHistory
	}

	if err := qtx.Delete(ctx, a.ID.String()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("employee removed from group",
		zap.String("assignment_id", a.ID.String()),
		zap.String("group_id", groupID),
		zap.String("employee_id", employeeID),
	)

	return nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (AssignmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
	}
	if !IsValidStatus(req.Status) {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
		}
		return AssignmentResponse{}, err
	}

	switch req.Status {
	case StatusActive:
		if err := validateActivation(ctx, qtx, a.EmployeeID.String(), &a.ID); err != nil {
			return AssignmentResponse{}, err
		}
		a.Status = StatusActive
		a.EndDate = nil

	case StatusCompleted:
		endDate := time.Now().UTC().Truncate(24 * time.Hour)
		if req.EndDate != "" {
			endDate, err = time.Parse("2006-01-02", req.EndDate)
			if err != nil {
				return AssignmentResponse{}, assignmenterrors.ErrInvalidEndDate
			}
		}
		if endDate.Before(a.AssignedDate) {
			return AssignmentResponse{}, assignmenterrors.ErrInvalidEndDate
		}
		a.Status = StatusCompleted
		a.EndDate = &endDate

	case StatusSuspended:
		a.Status = StatusSuspended
	}

	if err := qtx.Update(ctx, a); err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}

	return ToResponse(*a), nil
}

func (s *service) GetByGroup(ctx context.Context, groupID string) ([]AssignmentResponse, error) {
	if _, err := uuid.Parse(groupID); err != nil {
		return nil, assignmenterrors.ErrInvalidGroupID
	}

	rows, err := s.repo.FindAllByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func ToResponse(a EmployeeAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:                a.ID.String(),
		AssignmentGroupID: a.AssignmentGroupID.String(),
		EmployeeID:        a.EmployeeID.String(),
		AssignedDate:      a.AssignedDate.Format("2006-01-02"),
		Status:            a.Status,
	}
	if a.EndDate != nil {
		v := a.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	return resp
}

func mapToListResponse(rows []EmployeeAssignment) []AssignmentResponse {
	res := make([]AssignmentResponse, len(rows))
	for i, a := range rows {
		res[i] = ToResponse(a)
	}
	return res
}
