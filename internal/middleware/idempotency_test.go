package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func idempotentRouter(t *testing.T) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/api/leave/approve/:id", Idempotency(rdb), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, mock
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/api/leave/approve/:id::abc-123"
	const lockKey = cacheKey + ":lock"

	t.Run("replays the cached response", func(t *testing.T) {
		r, mock := idempotentRouter(t)
		mock.ExpectGet(cacheKey).SetVal(`{"ok":true,"data":{"status":"approved"}}`)

		req := httptest.NewRequest(http.MethodPost, "/api/leave/approve/1", nil)
		req.Header.Set("Idempotency-Key", "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("X-Idempotent-Replay"))
		assert.Contains(t, w.Body.String(), "approved")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected while in flight", func(t *testing.T) {
		r, mock := idempotentRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/api/leave/approve/1", nil)
		req.Header.Set("Idempotency-Key", "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first request runs and caches its response", func(t *testing.T) {
		r, mock := idempotentRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, `{"ok":true}`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/api/leave/approve/1", nil)
		req.Header.Set("Idempotency-Key", "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no key passes straight through", func(t *testing.T) {
		r, mock := idempotentRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/leave/approve/1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
