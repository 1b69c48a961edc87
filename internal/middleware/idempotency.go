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
	idempotencyTTL = 24 * time.Hour
	lockTTL        = 30 * time.Second
)

// responseRecorder menyalin body yang ditulis handler agar bisa
// disimpan untuk replay.
type responseRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated mutation
// carrying the same Idempotency-Key, and rejects a duplicate that
// arrives while the first attempt is still in flight. Reads pass
// through untouched.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.Request.Method, c.FullPath(), idempKey)
		lockKey := cacheKey + ":lock" // Key khusus untuk locking

		// 1. CEK CACHE: replay respons tersimpan apa adanya
		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			c.Header("X-Idempotent-Replay", "true")
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(val))
			c.Abort()
			return
		}

		// 2. ATOMIC LOCK (SetNX)
		// Jika key lock sudah ada, berarti request lain sedang jalan.
		// Expiry pendek agar lock otomatis hilang jika server crash.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", lockTTL).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is still being processed",
			})
			return
		}

		rec := &responseRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		// 3. Simpan hanya respons sukses; kegagalan boleh dicoba ulang
		ctx := c.Request.Context()
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			rdb.Set(ctx, cacheKey, rec.body.String(), idempotencyTTL)
		}
		rdb.Del(ctx, lockKey)
	}
}
