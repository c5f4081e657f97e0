package tagresolver_test

import (
	"context"
	"testing"

	"github.com/kajugadaniels/eps-attendify-api/internal/assignment"
	"github.com/kajugadaniels/eps-attendify-api/internal/assignmentgroup"
	"github.com/kajugadaniels/eps-attendify-api/internal/tagresolver"
	tagresolvererrors "github.com/kajugadaniels/eps-attendify-api/internal/tagresolver/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeResolverRepository struct {
	findActiveGroupBySupervisorTagFn    func(ctx context.Context, tagID string) (*assignmentgroup.AssignmentGroup, error)
	findActiveAssignmentByEmployeeTagFn func(ctx context.Context, tagID string) (*assignment.EmployeeAssignment, error)
	findStandInAssignmentFn             func(ctx context.Context, groupID string) (*assignment.EmployeeAssignment, error)
	findGroupByIDFn                     func(ctx context.Context, groupID string) (*assignmentgroup.AssignmentGroup, error)
}

func (f *fakeResolverRepository) FindActiveGroupBySupervisorTag(ctx context.Context, tagID string) (*assignmentgroup.AssignmentGroup, error) {
	if f.findActiveGroupBySupervisorTagFn != nil {
		return f.findActiveGroupBySupervisorTagFn(ctx, tagID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResolverRepository) FindActiveAssignmentByEmployeeTag(ctx context.Context, tagID string) (*assignment.EmployeeAssignment, error) {
	if f.findActiveAssignmentByEmployeeTagFn != nil {
		return f.findActiveAssignmentByEmployeeTagFn(ctx, tagID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResolverRepository) FindStandInAssignment(ctx context.Context, groupID string) (*assignment.EmployeeAssignment, error) {
	if f.findStandInAssignmentFn != nil {
		return f.findStandInAssignmentFn(ctx, groupID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResolverRepository) FindGroupByID(ctx context.Context, groupID string) (*assignmentgroup.AssignmentGroup, error) {
	if f.findGroupByIDFn != nil {
		return f.findGroupByIDFn(ctx, groupID)
	}
	return nil, gorm.ErrRecordNotFound
}

func TestResolverService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("supervisor tag wins and borrows stand-in assignment", func(t *testing.T) {
		groupID := uuid.New()
		standInID := uuid.New()
		repo := &fakeResolverRepository{
			findActiveGroupBySupervisorTagFn: func(ctx context.Context, tagID string) (*assignmentgroup.AssignmentGroup, error) {
				assert.Equal(t, "TAG-001", tagID)
				return &assignmentgroup.AssignmentGroup{ID: groupID, IsActive: true}, nil
			},
			findStandInAssignmentFn: func(ctx context.Context, gid string) (*assignment.EmployeeAssignment, error) {
				assert.Equal(t, groupID.String(), gid)
				return &assignment.EmployeeAssignment{ID: standInID, AssignmentGroupID: groupID}, nil
			},
		}
		svc := tagresolver.NewService(repo)

		res, err := svc.Resolve(ctx, "TAG-001")
		assert.NoError(t, err)
		assert.Equal(t, tagresolver.KindSupervisor, res.Kind)
		assert.Equal(t, groupID, res.Group.ID)
		assert.Equal(t, standInID, res.Assignment.ID)
	})

	t.Run("supervisor of empty group", func(t *testing.T) {
		repo := &fakeResolverRepository{
			findActiveGroupBySupervisorTagFn: func(ctx context.Context, tagID string) (*assignmentgroup.AssignmentGroup, error) {
				return &assignmentgroup.AssignmentGroup{ID: uuid.New(), IsActive: true}, nil
			},
		}
		svc := tagresolver.NewService(repo)

		_, err := svc.Resolve(ctx, "TAG-001")
		assert.ErrorIs(t, err, tagresolvererrors.ErrNoActiveMembers)
	})

	t.Run("worker tag resolves to own assignment", func(t *testing.T) {
		groupID := uuid.New()
		assignmentID := uuid.New()
		repo := &fakeResolverRepository{
			findActiveAssignmentByEmployeeTagFn: func(ctx context.Context, tagID string) (*assignment.EmployeeAssignment, error) {
				return &assignment.EmployeeAssignment{
					ID:                assignmentID,
					AssignmentGroupID: groupID,
					Status:            assignment.StatusActive,
				}, nil
			},
			findGroupByIDFn: func(ctx context.Context, gid string) (*assignmentgroup.AssignmentGroup, error) {
				return &assignmentgroup.AssignmentGroup{ID: groupID, IsActive: true}, nil
			},
		}
		svc := tagresolver.NewService(repo)

		res, err := svc.Resolve(ctx, "TAG-002")
		assert.NoError(t, err)
		assert.Equal(t, tagresolver.KindWorker, res.Kind)
		assert.Equal(t, assignmentID, res.Assignment.ID)
		assert.Equal(t, groupID, res.Group.ID)
	})

	t.Run("unknown tag", func(t *testing.T) {
		svc := tagresolver.NewService(&fakeResolverRepository{})

		_, err := svc.Resolve(ctx, "TAG-999")
		assert.ErrorIs(t, err, tagresolvererrors.ErrTagNotResolved)
	})

	t.Run("blank tag", func(t *testing.T) {
		svc := tagresolver.NewService(&fakeResolverRepository{})

		_, err := svc.Resolve(ctx, "   ")
		assert.ErrorIs(t, err, tagresolvererrors.ErrInvalidTag)
	})
}
