package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leanh1541989-hash/taphoa39/internal/middleware"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ContextLogger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		contextutil.GetLogger(ctx, nil).Info("handled")
		c.String(http.StatusOK, contextutil.GetRequestID(ctx))
	})

	t.Run("generated id reaches context, header and log fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		rid := w.Header().Get("X-Request-ID")
		assert.NotEmpty(t, rid)
		assert.Equal(t, rid, w.Body.String(), "repo layer sees the same id via context")

		entries := logs.TakeAll()
		assert.Len(t, entries, 1)
		assert.Equal(t, rid, entries[0].ContextMap()["request_id"])
	})

	t.Run("caller-supplied id is kept", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-7")
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-7", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-7", w.Body.String())

		entries := logs.TakeAll()
		assert.Len(t, entries, 1)
		assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
	})
}
