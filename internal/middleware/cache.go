package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-quality-api/pkg/middleware/requestid"
)

const requestStartKey = "request_start"

// WithResponseMeta records the request start so handlers can report timing.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Next()
	}
}

// ResponseMeta merges extra into the standard response metadata: the request
// id and, unless extra carries one, the elapsed processing time.
func ResponseMeta(c *gin.Context, extra map[string]interface{}) map[string]interface{} {
	meta := make(map[string]interface{}, len(extra)+2)
	for k, v := range extra {
		meta[k] = v
	}
	if id := requestid.Value(c); id != "" {
		meta["request_id"] = id
	}
	if _, ok := meta["processing_time_ms"]; !ok {
		if v, exists := c.Get(requestStartKey); exists {
			if start, ok := v.(time.Time); ok {
				meta["processing_time_ms"] = float64(time.Since(start).Microseconds()) / 1000
			}
		}
	}
	return meta
}
