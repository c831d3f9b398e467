package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"
)

// CORSMiddleware adds the required headers to allow cross-origin requests.
// allowedOrigins is a comma separated list; "*" allows every origin.
func CORSMiddleware(allowedOrigins string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowWebSockets = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, []string{
		"Accept",
		"Accept-Language",
		"Accept-Encoding",
		"X-Requested-With",
	}...)

	origins := splitOrigins(allowedOrigins)
	if len(origins) == 0 || contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
		return cors.New(corsConfig)
	}

	corsConfig.AllowOrigins = origins
	corsConfig.AllowWildcard = true
	corsConfig.AllowCredentials = true
	return cors.New(corsConfig)
}

func splitOrigins(allowedOrigins string) []string {
	var origins []string
	for _, origin := range strings.Split(allowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
