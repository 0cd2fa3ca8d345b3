package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL  = 24 * time.Hour
	idempotencyLock = 30 * time.Second
)

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated Idempotency-Key
// on POST routes and rejects a concurrent duplicate while the first
// request is still in flight. Used on the leave transition endpoints,
// where a double-submitted approve must not surface as a spurious
// conflict to the client that legitimately won.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, key)
		lockKey := cacheKey + ":lock"

		if cached, err := rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			c.Header("X-Idempotent-Replay", "true")
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()
			return
		}

		// short-lived lock so a crash never wedges the key
		acquired, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLock).Result()
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "a request with this idempotency key is already in flight",
			})
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		ctx := c.Request.Context()
		if status := recorder.Status(); status >= 200 && status < 300 {
			rdb.Set(ctx, cacheKey, recorder.body.String(), idempotencyTTL)
		}
		rdb.Del(ctx, lockKey)
	}
}
