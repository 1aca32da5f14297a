package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// RequestRecorder counts served requests.
type RequestRecorder interface {
	RecordHTTPRequest(method, route, status string)
}

// Metrics records every request against its route template, so path
// parameters do not explode label cardinality.
func Metrics(r RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
