// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/soundwave/internal/i18n"
)

// I18nMiddleware picks the first Accept-Language entry we have a locale for.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if !i18n.Supported(defaultLang) {
		defaultLang = i18n.DefaultLang
	}

	return func(c *gin.Context) {
		c.Set("lang", negotiateLanguage(c.GetHeader("Accept-Language"), defaultLang))
		c.Next()
	}
}

// negotiateLanguage handles headers like "zh-TW,zh;q=0.9,en;q=0.8".
func negotiateLanguage(header, fallback string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		switch tag {
		case "zh-TW", "zh-Hant", "zh_TW", "zh-HK":
			return "zh_TW"
		case "":
			continue
		}
		if base := strings.SplitN(strings.ReplaceAll(tag, "_", "-"), "-", 2)[0]; i18n.Supported(base) {
			return base
		}
	}
	return fallback
}
