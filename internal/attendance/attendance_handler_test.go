package attendance_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kajugadaniels/eps-attendify-api/internal/attendance"
	"github.com/kajugadaniels/eps-attendify-api/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	markFn      func(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResponse, error)
	markBatchFn func(ctx context.Context, req attendance.MarkBatchRequest) (attendance.MarkBatchResponse, error)
	getAllFn    func(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error)
	getTodayFn  func(ctx context.Context) ([]attendance.AttendanceResponse, error)

	todayCalls int
}

func (f *fakeService) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResponse, error) {
	return f.markFn(ctx, req)
}

func (f *fakeService) MarkBatch(ctx context.Context, req attendance.MarkBatchRequest) (attendance.MarkBatchResponse, error) {
	return f.markBatchFn(ctx, req)
}

func (f *fakeService) GetAll(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakeService) GetToday(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	f.todayCalls++
	return f.getTodayFn(ctx)
}

func TestHandler_Mark(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rdb, redisMock := redismock.NewClientMock()
	svc := &fakeService{
		markFn: func(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResponse, error) {
			assert.Equal(t, "TAG-001", req.TagID)
			return attendance.MarkResponse{
				Outcome: attendance.OutcomeCreated,
				Attendance: attendance.AttendanceResponse{
					ID:       uuid.New().String(),
					Date:     "2026-08-20",
					Attended: true,
				},
			}, nil
		},
	}
	redisMock.ExpectDel("attendance:today:2026-08-20").SetVal(1)

	h := attendance.NewHandler(svc, rdb)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(`{"tag_id":"TAG-001","date":"2026-08-20"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Mark(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "\"created\"")
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestHandler_GetToday_CacheMissThenHit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rows := []attendance.AttendanceResponse{
		{ID: uuid.New().String(), Date: "2026-08-20", Attended: true},
	}
	payload, err := json.Marshal(rows)
	assert.NoError(t, err)

	key := fmt.Sprintf("attendance:today:%s", time.Now().UTC().Format("2006-01-02"))

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(key).RedisNil()
	redisMock.ExpectSet(key, payload, 30*time.Second).SetVal("OK")
	redisMock.ExpectGet(key).SetVal(string(payload))

	svc := &fakeService{
		getTodayFn: func(ctx context.Context) ([]attendance.AttendanceResponse, error) {
			return rows, nil
		},
	}
	h := attendance.NewHandler(svc, rdb)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances/today", nil)
	h.GetToday(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.todayCalls)

	// Second request is served from the cache.
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/attendances/today", nil)
	h.GetToday(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, 1, svc.todayCalls)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestHandler_GetPresentCount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	departmentID := uuid.New().String()
	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(events.PresentCounterKey(departmentID, "2026-08-20")).SetVal("7")

	h := attendance.NewHandler(&fakeService{}, rdb)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(
		http.MethodGet,
		"/attendances/present-count?department_id="+departmentID+"&date=2026-08-20",
		nil,
	)
	h.GetPresentCount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"present\":7")
}

func TestHandler_GetAll_Paginates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getAllFn: func(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
			return []attendance.AttendanceResponse{
				{ID: uuid.New().String()},
				{ID: uuid.New().String()},
				{ID: uuid.New().String()},
			}, nil
		},
	}
	h := attendance.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances?page=1&page_size=2", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"meta\"")
	assert.Contains(t, w.Body.String(), "\"totalPages\":2")
}
