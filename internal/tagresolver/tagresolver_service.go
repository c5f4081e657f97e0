package tagresolver

import (
	"context"
	"strings"

	"github.com/kajugadaniels/eps-attendify-api/internal/assignment"
	"github.com/kajugadaniels/eps-attendify-api/internal/assignmentgroup"
	tagresolvererrors "github.com/kajugadaniels/eps-attendify-api/internal/tagresolver/errors"

	"go.uber.org/zap"
)

const (
	KindSupervisor = "supervisor"
	KindWorker     = "worker"
)

// Resolution is the outcome of a tag scan: who the tag belongs to in the
// assignment structure and which assignment row attendance should be
// recorded against. Supervisor resolutions borrow the group's stand-in
// assignment because supervisors hold no worker membership of their own.
type Resolution struct {
	Kind       string
	Group      *assignmentgroup.AssignmentGroup
	Assignment *assignment.EmployeeAssignment
}

//go:generate mockgen -source=tagresolver_service.go -destination=mock/tagresolver_service_mock.go -package=mock
type Service interface {
	Resolve(ctx context.Context, tagID string) (Resolution, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("tagresolver.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tagresolver.service")
	}
	return &service{repo: repo, logger: l}
}

// Resolve tries the supervisor role first, then falls back to a worker
// assignment. A supervisor tag wins even if the same person somehow holds
// a worker row, mirroring the exclusivity checks on the write path.
func (s *service) Resolve(ctx context.Context, tagID string) (Resolution, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return Resolution{}, tagresolvererrors.ErrInvalidTag
	}

	group, err := s.repo.FindActiveGroupBySupervisorTag(ctx, tagID)
	if err != nil && !IsNotFound(err) {
		return Resolution{}, err
	}
	if err == nil {
		standIn, err := s.repo.FindStandInAssignment(ctx, group.ID.String())
		if err != nil {
			if IsNotFound(err) {
				s.logger.Warn("supervisor tag resolved to empty group",
					zap.String("group_id", group.ID.String()),
				)
				return Resolution{}, tagresolvererrors.ErrNoActiveMembers
			}
			return Resolution{}, err
		}
		return Resolution{Kind: KindSupervisor, Group: group, Assignment: standIn}, nil
	}

	a, err := s.repo.FindActiveAssignmentByEmployeeTag(ctx, tagID)
	if err != nil {
		if IsNotFound(err) {
			return Resolution{}, tagresolvererrors.ErrTagNotResolved
		}
		return Resolution{}, err
	}

	workerGroup, err := s.repo.FindGroupByID(ctx, a.AssignmentGroupID.String())
	if err != nil {
		if IsNotFound(err) {
			return Resolution{}, tagresolvererrors.ErrTagNotResolved
		}
		return Resolution{}, err
	}

	return Resolution{Kind: KindWorker, Group: workerGroup, Assignment: a}, nil
}
