package middleware

import (
	"net/http"
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyLockTTL = 30 * time.Second
	idempotencyHeader  = "Idempotency-Key"
)

// Idempotency guards checkout against double submission. A cached response
// for the same key is replayed verbatim; a concurrent in-flight request
// with the same key is rejected. The handler is responsible for storing
// the final response under idempotency_cache_key and releasing
// idempotency_lock_key when it finishes.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			// No key, no guarantee. The client opted out.
			c.Next()
			return
		}

		userID := c.GetString("user_id_validated")
		cacheKey := "idem:res:" + userID + ":" + key
		lockKey := "idem:lock:" + userID + ":" + key

		ctx := c.Request.Context()

		// 1. Replay a finished request
		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			c.Header("X-Idempotent-Replay", "true")
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()
			return
		}

		// 2. Reject a concurrent duplicate
		ok, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			// Redis down: let the request through rather than blocking checkout.
			c.Next()
			return
		}
		if !ok {
			response.Error(c, http.StatusConflict, "DUPLICATE_REQUEST", "A request with this idempotency key is already in progress", nil)
			c.Abort()
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
