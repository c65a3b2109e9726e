// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if defaultLang == "" {
		defaultLang = "en"
	}

	return func(c *gin.Context) {
		c.Set("lang", parseLanguage(c.GetHeader("Accept-Language"), defaultLang))
		c.Next()
	}
}

// parseLanguage maps the first Accept-Language entry to a supported locale.
func parseLanguage(header, defaultLang string) string {
	if header == "" {
		return defaultLang
	}

	// Handle cases like "zh-TW,zh;q=0.9,en;q=0.8"
	langs := strings.Split(header, ",")
	firstLang := strings.TrimSpace(strings.Split(langs[0], ";")[0])

	switch firstLang {
	case "zh-TW", "zh-Hant", "zh_TW":
		return "zh_TW"
	case "en", "en-US", "en-GB":
		return "en"
	default:
		return defaultLang
	}
}
