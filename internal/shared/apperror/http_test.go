package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/kajugadaniels/eps-attendify-api/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its triple", func(t *testing.T) {
		err := apperror.New("CONFLICT", "already marked", http.StatusConflict)

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, "CONFLICT", httpErr.Code)
		assert.Equal(t, "already marked", httpErr.Message)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		inner := apperror.New("NOT_FOUND", "group not found", http.StatusNotFound)
		err := fmt.Errorf("loading group: %w", inner)

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "NOT_FOUND", httpErr.Code)
	})

	t.Run("unknown error hides its message", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "connection refused")
	})
}
