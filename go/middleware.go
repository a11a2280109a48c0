package lendingserver

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	platformobs "github.com/Apurer/equipment-lending-api/internal/platform/observability"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates a caller supplied X-Request-ID or mints a UUID. The id
// travels on the request context so service logs and spans carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(platformobs.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// CORS allows the given origins. A single "*" allows any origin. It returns
// nil when no origin is configured.
func CORS(origins []string) gin.HandlerFunc {
	cleaned := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = strings.TrimSpace(origin); origin != "" {
			cleaned = append(cleaned, origin)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	cfg := cors.Config{
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", IdempotencyKeyHeader, RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		MaxAge:        12 * time.Hour,
	}
	if len(cleaned) == 1 && cleaned[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = cleaned
	}
	return cors.New(cfg)
}
