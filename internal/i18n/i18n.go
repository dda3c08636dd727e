// Package i18n resolves response messages for the storefront locales.
// Uzbek is the primary language, with Russian and English fallbacks.
package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleUz = "uz-UZ"
	LocaleRu = "ru-RU"
	LocaleEn = "en-US"

	DefaultLocale = LocaleUz
)

// ResolveLocale picks the response locale from the request. The
// explicit query parameter wins over Accept-Language.
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := normalizeLocale(c.Query("locale")); locale != "" {
		return locale
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := normalizeLocale(tag); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// T translates a message key. Unknown keys fall back to the default
// locale, then to the key itself so callers always get something
// renderable.
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf translates a message key and formats it with the given
// arguments.
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch {
	case tag == "":
		return ""
	case strings.HasPrefix(tag, "uz"):
		return LocaleUz
	case strings.HasPrefix(tag, "ru"):
		return LocaleRu
	case strings.HasPrefix(tag, "en"):
		return LocaleEn
	}
	return ""
}
