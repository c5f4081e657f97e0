package assignmentgroup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kajugadaniels/eps-attendify-api/internal/assignment"
	assignmentgrouperrors "github.com/kajugadaniels/eps-attendify-api/internal/assignmentgroup/errors"
	"github.com/kajugadaniels/eps-attendify-api/internal/events"
	"github.com/kajugadaniels/eps-attendify-api/internal/messaging/kafka"
	"github.com/kajugadaniels/eps-attendify-api/internal/shared/contextutil"
	"github.com/kajugadaniels/eps-attendify-api/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=assignmentgroup_service.go -destination=mock/assignmentgroup_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateGroupRequest) (CreateGroupResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]GroupResponse, error)
	GetByID(ctx context.Context, id string) (GroupResponse, error)
	Update(ctx context.Context, id string, req UpdateGroupRequest) (CreateGroupResponse, error)
	End(ctx context.Context, id string, req EndGroupRequest) (EndGroupResponse, error)
	PreviewEnd(ctx context.Context, id string, req EndGroupRequest) (PreviewEndResponse, error)
	Delete(ctx context.Context, id string) (DeleteGroupResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	assignments assignment.Repository
	memberships assignment.Service
	counters    counter.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	assignments assignment.Repository,
	memberships assignment.Service,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("assignmentgroup.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignmentgroup.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		assignments: assignments,
		memberships: memberships,
		counters:    counters,
		outbox:      outbox,
		logger:      l,
	}
}

// validateSupervisor rejects a supervisor who holds an active worker
// assignment. The mirror rule lives in the membership tracker.
func (s *service) validateSupervisor(ctx context.Context, supervisorID string) (*uuid.UUID, error) {
	if supervisorID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(supervisorID)
	if err != nil {
		return nil, assignmentgrouperrors.ErrInvalidSupervisorID
	}

	_, err = s.assignments.FindActiveByEmployee(ctx, supervisorID)
	if err == nil {
		return nil, assignmentgrouperrors.ErrSupervisorHasAssignment
	}
	if !assignment.IsNotFound(err) {
		return nil, err
	}
	return &id, nil
}

func (s *service) Create(ctx context.Context, req CreateGroupRequest) (CreateGroupResponse, error) {
	supervisorID, err := s.validateSupervisor(ctx, req.SupervisorID)
	if err != nil {
		return CreateGroupResponse{}, err
	}

	next, err := s.counters.GetNextValue(ctx, GroupCounterType)
	if err != nil {
		s.logger.Error("group code allocation failed", zap.Error(err))
		return CreateGroupResponse{}, err
	}

	group := &AssignmentGroup{
		ID:           uuid.New(),
		Code:         fmt.Sprintf("GRP-%06d", next),
		Name:         req.Name,
		FieldID:      uuid.MustParse(req.FieldID),
		DepartmentID: uuid.MustParse(req.DepartmentID),
		SupervisorID: supervisorID,
		CreatedDate:  time.Now().UTC().Truncate(24 * time.Hour),
		IsActive:     true,
		Notes:        req.Notes,
	}

	if err := s.repo.Create(ctx, group); err != nil {
		s.logger.Error("group create failed", zap.Error(err))
		return CreateGroupResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("assignment group created",
		zap.String("group_id", group.ID.String()),
		zap.String("code", group.Code),
	)

	// The group exists at this point. Enrollment failures are reported
	// per employee and never roll the group back.
	outcomes := s.enrollBatch(ctx, group.ID.String(), req.EmployeeIDs)

	resp, err := s.toResponse(ctx, *group)
	if err != nil {
		return CreateGroupResponse{}, err
	}
	return CreateGroupResponse{Group: resp, Enrollments: outcomes}, nil
}

func (s *service) enrollBatch(ctx context.Context, groupID string, employeeIDs []string) []EnrollmentOutcome {
	if len(employeeIDs) == 0 {
		return nil
	}

	outcomes := make([]EnrollmentOutcome, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		outcome := EnrollmentOutcome{EmployeeID: employeeID, Action: "enroll", OK: true}
		if _, err := s.memberships.Enroll(ctx, groupID, employeeID); err != nil {
			outcome.OK = false
			outcome.Error = err.Error()
			s.logger.Warn("batch enrollment rejected",
				zap.String("group_id", groupID),
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]GroupResponse, error) {
	groups, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID.String()
	}
	counts, err := s.repo.CountMembers(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]GroupResponse, len(groups))
	for i, g := range groups {
		res[i] = mapToResponse(g, counts[g.ID.String()])
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (GroupResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return GroupResponse{}, assignmentgrouperrors.ErrInvalidGroupID
	}

	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return GroupResponse{}, assignmentgrouperrors.ErrGroupNotFound
		}
		return GroupResponse{}, err
	}
	return s.toResponse(ctx, *group)
}

func (s *service) Update(ctx context.Context, id string, req UpdateGroupRequest) (CreateGroupResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CreateGroupResponse{}, assignmentgrouperrors.ErrInvalidGroupID
	}

	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return CreateGroupResponse{}, assignmentgrouperrors.ErrGroupNotFound
		}
		return CreateGroupResponse{}, err
	}
	if !group.IsActive {
		return CreateGroupResponse{}, assignmentgrouperrors.ErrGroupAlreadyEnded
	}

	// Partial update: absent fields keep their current value.
	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.FieldID != nil {
		group.FieldID = uuid.MustParse(*req.FieldID)
	}
	if req.DepartmentID != nil {
		group.DepartmentID = uuid.MustParse(*req.DepartmentID)
	}
	if req.Notes != nil {
		group.Notes = *req.Notes
	}
	if req.SupervisorID != nil {
		current := ""
		if group.SupervisorID != nil {
			current = group.SupervisorID.String()
		}
		switch {
		case *req.SupervisorID == "":
			group.SupervisorID = nil
		case *req.SupervisorID == current:
			// unchanged, skip re-validation
		default:
			supervisorID, err := s.validateSupervisor(ctx, *req.SupervisorID)
			if err != nil {
				return CreateGroupResponse{}, err
			}
			group.SupervisorID = supervisorID
		}
	}

	if err := s.repo.Update(ctx, group); err != nil {
		return CreateGroupResponse{}, mapRepositoryError(err)
	}

	var outcomes []EnrollmentOutcome
	if req.EmployeeIDs != nil {
		outcomes, err = s.reconcileMembers(ctx, id, *req.EmployeeIDs)
		if err != nil {
			return CreateGroupResponse{}, err
		}
	}

	resp, err := s.toResponse(ctx, *group)
	if err != nil {
		return CreateGroupResponse{}, err
	}
	return CreateGroupResponse{Group: resp, Enrollments: outcomes}, nil
}

// reconcileMembers diffs the desired employee set against current
// memberships: missing employees are enrolled, surplus ones removed.
// Each change stands alone and failures are reported per employee.
func (s *service) reconcileMembers(ctx context.Context, groupID string, desired []string) ([]EnrollmentOutcome, error) {
	current, err := s.assignments.FindAllByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	desiredSet := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}
	currentSet := make(map[string]struct{}, len(current))
	for _, a := range current {
		currentSet[a.EmployeeID.String()] = struct{}{}
	}

	var outcomes []EnrollmentOutcome
	for _, employeeID := range desired {
		if _, ok := currentSet[employeeID]; ok {
			continue
		}
		outcome := EnrollmentOutcome{EmployeeID: employeeID, Action: "enroll", OK: true}
		if _, err := s.memberships.Enroll(ctx, groupID, employeeID); err != nil {
			outcome.OK = false
			outcome.Error = err.Error()
		}
		outcomes = append(outcomes, outcome)
	}
	for _, a := range current {
		employeeID := a.EmployeeID.String()
		if _, ok := desiredSet[employeeID]; ok {
			continue
		}
		outcome := EnrollmentOutcome{EmployeeID: employeeID, Action: "remove", OK: true}
		if err := s.memberships.Remove(ctx, groupID, employeeID); err != nil {
			outcome.OK = false
			outcome.Error = err.Error()
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// End deactivates the group and completes every active membership in one
// transaction. The ended event rides the same transaction through the
// outbox, so it is published only if the state change lands.
func (s *service) End(ctx context.Context, id string, req EndGroupRequest) (EndGroupResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EndGroupResponse{}, assignmentgrouperrors.ErrInvalidGroupID
	}

	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return EndGroupResponse{}, assignmentgrouperrors.ErrGroupNotFound
		}
		return EndGroupResponse{}, err
	}
	if !group.IsActive {
		return EndGroupResponse{}, assignmentgrouperrors.ErrGroupAlreadyEnded
	}

	endDate, err := resolveEndDate(req.EndDate, group.CreatedDate)
	if err != nil {
		return EndGroupResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("end group begin tx failed", zap.Error(err))
		return EndGroupResponse{}, err
	}
	defer tx.Rollback()

	group.IsActive = false
	group.EndDate = &endDate
	group.Notes = appendNote(group.Notes, endDate, req.Reason)

	if err := s.repo.WithTx(tx).Update(ctx, group); err != nil {
		return EndGroupResponse{}, err
	}

	updated, err := s.assignments.WithTx(tx).CompleteAllActiveByGroup(ctx, id, endDate)
	if err != nil {
		return EndGroupResponse{}, err
	}

	event := events.AssignmentGroupEndedEvent{
		EventType:        "assignment_group.ended",
		GroupID:          id,
		EndDate:          endDate.Format("2006-01-02"),
		EmployeesUpdated: int(updated),
		OccurredAt:       time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return EndGroupResponse{}, err
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "assignment_group",
		AggregateID:   id,
		EventType:     event.EventType,
		Topic:         events.AssignmentGroupEndedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return EndGroupResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EndGroupResponse{}, err
	}

	s.logger.Info("assignment group ended",
		zap.String("group_id", id),
		zap.String("end_date", endDate.Format("2006-01-02")),
		zap.Int64("employees_updated", updated),
	)

	resp, err := s.toResponse(ctx, *group)
	if err != nil {
		return EndGroupResponse{}, err
	}
	return EndGroupResponse{
		Group:            resp,
		EndDate:          endDate.Format("2006-01-02"),
		EmployeesUpdated: int(updated),
	}, nil
}

// PreviewEnd reports what End would change without touching anything:
// the active memberships that would complete and the supervisor who
// would be released.
func (s *service) PreviewEnd(ctx context.Context, id string, req EndGroupRequest) (PreviewEndResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PreviewEndResponse{}, assignmentgrouperrors.ErrInvalidGroupID
	}

	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return PreviewEndResponse{}, assignmentgrouperrors.ErrGroupNotFound
		}
		return PreviewEndResponse{}, err
	}
	if !group.IsActive {
		return PreviewEndResponse{}, assignmentgrouperrors.ErrGroupAlreadyEnded
	}

	endDate, err := resolveEndDate(req.EndDate, group.CreatedDate)
	if err != nil {
		return PreviewEndResponse{}, err
	}

	active, err := s.assignments.FindActiveByGroup(ctx, id)
	if err != nil {
		return PreviewEndResponse{}, err
	}

	members := make([]assignment.AssignmentResponse, len(active))
	for i, a := range active {
		members[i] = assignment.ToResponse(a)
	}

	resp, err := s.toResponse(ctx, *group)
	if err != nil {
		return PreviewEndResponse{}, err
	}

	preview := PreviewEndResponse{
		Group:            resp,
		EndDate:          endDate.Format("2006-01-02"),
		EmployeesUpdated: len(active),
		ActiveMembers:    members,
	}
	if group.SupervisorID != nil {
		v := group.SupervisorID.String()
		preview.SupervisorID = &v
	}
	return preview, nil
}

// Delete removes the group and all of its memberships, attendance rows
// included by cascade. The response carries a snapshot of what was deleted.
func (s *service) Delete(ctx context.Context, id string) (DeleteGroupResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DeleteGroupResponse{}, assignmentgrouperrors.ErrInvalidGroupID
	}

	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return DeleteGroupResponse{}, assignmentgrouperrors.ErrGroupNotFound
		}
		return DeleteGroupResponse{}, err
	}

	members, err := s.assignments.FindAllByGroup(ctx, id)
	if err != nil {
		return DeleteGroupResponse{}, err
	}
	resp, err := s.toResponse(ctx, *group)
	if err != nil {
		return DeleteGroupResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeleteGroupResponse{}, err
	}
	defer tx.Rollback()

	if err := s.assignments.WithTx(tx).DeleteAllByGroup(ctx, id); err != nil {
		return DeleteGroupResponse{}, err
	}
	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return DeleteGroupResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DeleteGroupResponse{}, err
	}

	s.logger.Info("assignment group deleted",
		zap.String("group_id", id),
		zap.Int("assignments_deleted", len(members)),
	)

	snapshots := make([]assignment.AssignmentResponse, len(members))
	for i, m := range members {
		snapshots[i] = assignment.ToResponse(m)
	}
	return DeleteGroupResponse{Group: resp, Assignments: snapshots}, nil
}

func (s *service) toResponse(ctx context.Context, group AssignmentGroup) (GroupResponse, error) {
	counts, err := s.repo.CountMembers(ctx, []string{group.ID.String()})
	if err != nil {
		return GroupResponse{}, err
	}
	return mapToResponse(group, counts[group.ID.String()]), nil
}

func resolveEndDate(raw string, createdDate time.Time) (time.Time, error) {
	endDate := time.Now().UTC().Truncate(24 * time.Hour)
	if raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, assignmentgrouperrors.ErrInvalidEndDate
		}
		endDate = parsed
	}
	if endDate.Before(createdDate) {
		return time.Time{}, assignmentgrouperrors.ErrInvalidEndDate
	}
	return endDate, nil
}

// appendNote keeps existing notes intact and adds a timestamped line for
// the group ending.
func appendNote(notes string, endDate time.Time, reason string) string {
	line := fmt.Sprintf("[%s] group ended", endDate.Format("2006-01-02"))
	if reason != "" {
		line += ": " + reason
	}
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n" + line
}

func mapToResponse(g AssignmentGroup, counts MemberCounts) GroupResponse {
	resp := GroupResponse{
		ID:              g.ID.String(),
		Code:            g.Code,
		Name:            g.Name,
		FieldID:         g.FieldID.String(),
		DepartmentID:    g.DepartmentID.String(),
		CreatedDate:     g.CreatedDate.Format("2006-01-02"),
		IsActive:        g.IsActive,
		Notes:           g.Notes,
		TotalEmployees:  counts.TotalEmployees,
		ActiveEmployees: counts.ActiveEmployees,
	}
	if g.SupervisorID != nil {
		v := g.SupervisorID.String()
		resp.SupervisorID = &v
	}
	if g.EndDate != nil {
		v := g.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	return resp
}
