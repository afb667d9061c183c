package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
)

// luaRateLimit implements a sliding-window counter in Redis as one atomic
// script. KEYS[1]=window key, ARGV: now, window start, window seconds,
// member, limit. Returns the count inside the window, or -1 when over limit.
const luaRateLimit = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowSec = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '0', windowStart)

local count = redis.call('ZCARD', key)

if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, member)
  redis.call('EXPIRE', key, windowSec)
  return count + 1
else
  return -1
end
`

// RedisRateLimit limits how often a user may hit a route. Keyed by the
// authenticated user id when ValidateToken ran before us, by client IP
// otherwise. Fails open when Redis is unreachable.
func RedisRateLimit(rdb *rd.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var key string
		if userID, ok := AuthedUser(c); ok {
			key = fmt.Sprintf("rate_limit:payment:user:%d", userID)
		} else {
			key = fmt.Sprintf("rate_limit:payment:ip:%s", c.ClientIP())
		}

		now := time.Now().Unix()
		windowSec := int64(window.Seconds())
		windowStart := now - windowSec
		member := fmt.Sprintf("%d-%d", now, time.Now().UnixNano())

		res, err := rdb.Eval(c.Request.Context(), luaRateLimit, []string{key},
			now, windowStart, windowSec, member, limit).Int()
		if err != nil {
			c.Next()
			return
		}

		if res < 0 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many payment requests, try again later",
			})
			return
		}
		c.Next()
	}
}
