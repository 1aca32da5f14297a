package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// DefaultAllowedOrigin is the local frontend dev server.
const DefaultAllowedOrigin = "http://localhost:3000"

// AllowedOriginsFromEnv reads a comma separated CORS_ALLOWED_ORIGINS.
func AllowedOriginsFromEnv() []string {
	v := os.Getenv("CORS_ALLOWED_ORIGINS")
	if v == "" {
		return []string{DefaultAllowedOrigin}
	}
	return splitList(v)
}

// TrustedProxiesFromEnv reads a comma separated TRUSTED_PROXIES of IPs or CIDRs.
// Unset means no proxy is trusted and the socket address identifies the client.
func TrustedProxiesFromEnv() []string {
	return splitList(os.Getenv("TRUSTED_PROXIES"))
}

func splitList(v string) []string {
	var out []string
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// CORS allows the given origins to call every endpoint with GET, POST, PUT and DELETE.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        time.Hour,
	})
}
