// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/haspco/safety-catalog/internal/i18n"
)

// I18nMiddleware stores the negotiated language under "lang". Requests
// without Accept-Language get defaultLang.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if defaultLang == "" {
		defaultLang = i18n.DefaultLanguage()
	}

	return func(c *gin.Context) {
		lang := defaultLang
		if header := c.GetHeader("Accept-Language"); header != "" {
			lang = i18n.Match(header)
		}

		c.Set("lang", lang)
		c.Header("Content-Language", lang)
		c.Next()
	}
}
