package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kajugadaniels/eps-attendify-api/internal/events"
	"github.com/kajugadaniels/eps-attendify-api/internal/shared/apperror"
	"github.com/kajugadaniels/eps-attendify-api/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const todayCacheTTL = 30 * time.Second

func todayCacheKey(date string) string {
	return fmt.Sprintf("attendance:today:%s", date)
}

type Handler struct {
	service Service
	rdb     *redis.Client
	sf      singleflight.Group
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Mark(c *gin.Context) {
	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.invalidateTodayCache(c.Request.Context(), resp.Attendance.Date)

	status := http.StatusCreated
	if resp.Outcome == OutcomeUpdated {
		status = http.StatusOK
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) MarkBatch(c *gin.Context) {
	var req MarkBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.MarkBatch(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.invalidateTodayCache(c.Request.Context(), resp.Date)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	rows, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total := len(rows)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	meta := response.NewPaginationMeta(int64(total), page, pageSize)
	response.Success(c, http.StatusOK, rows[start:end], &meta)
}

// GetToday serves the current day's records from a short redis cache.
// Concurrent misses collapse into one database read via singleflight.
func (h *Handler) GetToday(c *gin.Context) {
	ctx := c.Request.Context()
	date := time.Now().UTC().Format("2006-01-02")
	key := todayCacheKey(date)

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, key).Result(); err == nil {
			var rows []AttendanceResponse
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				response.Success(c, http.StatusOK, rows, nil)
				return
			}
		}
	}

	v, err, _ := h.sf.Do(key, func() (any, error) {
		rows, err := h.service.GetToday(ctx)
		if err != nil {
			return nil, err
		}
		if h.rdb != nil {
			if payload, err := json.Marshal(rows); err == nil {
				if err := h.rdb.Set(ctx, key, payload, todayCacheTTL).Err(); err != nil {
					h.logger.Warn("today cache write failed", zap.Error(err))
				}
			}
		}
		return rows, nil
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, v, nil)
}

// GetPresentCount reads the per-department daily counter maintained by
// the attendance-marked consumer.
func (h *Handler) GetPresentCount(c *gin.Context) {
	departmentID := c.Query("department_id")
	if departmentID == "" {
		writeServiceError(c, apperror.RequiredField("department_id"))
		return
	}
	date := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeServiceError(c, apperror.InvalidField("date"))
		return
	}

	count := 0
	if h.rdb != nil {
		raw, err := h.rdb.Get(c.Request.Context(), events.PresentCounterKey(departmentID, date)).Result()
		if err == nil {
			count, _ = strconv.Atoi(raw)
		} else if err != redis.Nil {
			writeServiceError(c, err)
			return
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"department_id": departmentID,
		"date":          date,
		"present":       count,
	}, nil)
}

func (h *Handler) invalidateTodayCache(ctx context.Context, date string) {
	if h.rdb == nil {
		return
	}
	if err := h.rdb.Del(ctx, todayCacheKey(date)).Err(); err != nil {
		h.logger.Warn("today cache invalidation failed", zap.Error(err))
	}
}
