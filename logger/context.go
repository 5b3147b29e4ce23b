package logger

import "github.com/gin-gonic/gin"

const contextKey = "logger"

// SetToContext stores a request-scoped logger.
func SetToContext(c *gin.Context, l *Logger) {
	c.Set(contextKey, l)
}

// FromContext returns the request logger, or a no-op logger when none was set.
func FromContext(c *gin.Context) *Logger {
	if v, ok := c.Get(contextKey); ok {
		if l, ok := v.(*Logger); ok && l != nil {
			return l
		}
	}
	return Nop()
}
