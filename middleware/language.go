package middleware

import (
	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
)

const langKey = "lang"

// LanguageMiddleware stores the raw Accept-Language header for the error
// responders; the localizer does the matching.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if lang == "" {
			lang = translator.LanguageEn
		}
		c.Set(langKey, lang)
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
