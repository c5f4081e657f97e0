package assignmentgroup_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kajugadaniels/eps-attendify-api/internal/assignmentgroup"
	assignmentgrouperrors "github.com/kajugadaniels/eps-attendify-api/internal/assignmentgroup/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeGroupService struct {
	createFn     func(ctx context.Context, req assignmentgroup.CreateGroupRequest) (assignmentgroup.CreateGroupResponse, error)
	getAllFn     func(ctx context.Context, filter assignmentgroup.ListFilter) ([]assignmentgroup.GroupResponse, error)
	getByIDFn    func(ctx context.Context, id string) (assignmentgroup.GroupResponse, error)
	updateFn     func(ctx context.Context, id string, req assignmentgroup.UpdateGroupRequest) (assignmentgroup.CreateGroupResponse, error)
	endFn        func(ctx context.Context, id string, req assignmentgroup.EndGroupRequest) (assignmentgroup.EndGroupResponse, error)
	previewEndFn func(ctx context.Context, id string, req assignmentgroup.EndGroupRequest) (assignmentgroup.PreviewEndResponse, error)
	deleteFn     func(ctx context.Context, id string) (assignmentgroup.DeleteGroupResponse, error)
}

func (f *fakeGroupService) Create(ctx context.Context, req assignmentgroup.CreateGroupRequest) (assignmentgroup.CreateGroupResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeGroupService) GetAll(ctx context.Context, filter assignmentgroup.ListFilter) ([]assignmentgroup.GroupResponse, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakeGroupService) GetByID(ctx context.Context, id string) (assignmentgroup.GroupResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeGroupService) Update(ctx context.Context, id string, req assignmentgroup.UpdateGroupRequest) (assignmentgroup.CreateGroupResponse, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeGroupService) End(ctx context.Context, id string, req assignmentgroup.EndGroupRequest) (assignmentgroup.EndGroupResponse, error) {
	return f.endFn(ctx, id, req)
}

func (f *fakeGroupService) PreviewEnd(ctx context.Context, id string, req assignmentgroup.EndGroupRequest) (assignmentgroup.PreviewEndResponse, error) {
	return f.previewEndFn(ctx, id, req)
}

func (f *fakeGroupService) Delete(ctx context.Context, id string) (assignmentgroup.DeleteGroupResponse, error) {
	return f.deleteFn(ctx, id)
}

func TestHandler_CreateAndEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	groupID := uuid.New().String()

	svc := &fakeGroupService{
		createFn: func(ctx context.Context, req assignmentgroup.CreateGroupRequest) (assignmentgroup.CreateGroupResponse, error) {
			assert.Equal(t, "Harvest Crew A", req.Name)
			return assignmentgroup.CreateGroupResponse{
				Group: assignmentgroup.GroupResponse{ID: groupID, Code: "GRP-000001", Name: req.Name},
			}, nil
		},
		endFn: func(ctx context.Context, id string, req assignmentgroup.EndGroupRequest) (assignmentgroup.EndGroupResponse, error) {
			assert.Equal(t, groupID, id)
			return assignmentgroup.EndGroupResponse{
				EndDate:          "2026-08-20",
				EmployeesUpdated: 4,
			}, nil
		},
	}
	h := assignmentgroup.NewHandler(svc)

	body := `{"name":"Harvest Crew A","field_id":"` + uuid.New().String() + `","department_id":"` + uuid.New().String() + `"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/assignment-groups", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "GRP-000001")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Params = gin.Params{{Key: "id", Value: groupID}}
	c2.Request = httptest.NewRequest(http.MethodPost, "/assignment-groups/"+groupID+"/end", strings.NewReader(`{"end_date":"2026-08-20"}`))
	c2.Request.Header.Set("Content-Type", "application/json")
	h.End(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"employees_updated\":4")
}

func TestHandler_EndConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeGroupService{
		endFn: func(ctx context.Context, id string, req assignmentgroup.EndGroupRequest) (assignmentgroup.EndGroupResponse, error) {
			return assignmentgroup.EndGroupResponse{}, assignmentgrouperrors.ErrGroupAlreadyEnded
		},
	}
	h := assignmentgroup.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/assignment-groups/x/end", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.End(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}

func TestHandler_CreateValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := assignmentgroup.NewHandler(&fakeGroupService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/assignment-groups", strings.NewReader(`{"name":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}
