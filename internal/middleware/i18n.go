// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/catalog-importer/internal/i18n"
)

// I18nMiddleware stores the response language under "lang". The first
// Accept-Language entry wins when a catalog exists for it.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", resolveLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func resolveLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLanguage()
	}

	// Handle cases like "it-IT,it;q=0.9,en;q=0.8"
	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	lang := strings.ToLower(strings.SplitN(strings.ReplaceAll(first, "_", "-"), "-", 2)[0])

	if i18n.IsSupported(lang) {
		return lang
	}
	return i18n.DefaultLanguage()
}
