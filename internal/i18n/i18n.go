// Package i18n holds the editor's user-facing strings. A Context is built
// once from the configured language and handed to whatever shows text.
package i18n

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the languages with a catalog, the first being the fallback.
var Supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(Supported)

var builder = newBuilder()

func newBuilder() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Context translates keys for one language.
type Context struct {
	tag     language.Tag
	printer *message.Printer
}

// New picks the supported language closest to lang, e.g. "ru", "ru_RU" or
// "en-GB". Anything unmatched falls back to English.
func New(lang string) *Context {
	tag := language.English
	if lang = strings.ReplaceAll(strings.TrimSpace(lang), "_", "-"); lang != "" {
		_, i := language.MatchStrings(matcher, lang)
		tag = Supported[i]
	}
	return &Context{tag: tag, printer: message.NewPrinter(tag, message.Catalog(builder))}
}

func (c *Context) Language() language.Tag { return c.tag }

// T formats the message for key. Unknown keys come back as Label(key).
func (c *Context) T(key string, args ...any) string {
	if _, ok := messages[language.English][key]; !ok {
		return c.Label(key)
	}
	return c.printer.Sprintf(key, args...)
}

// Label is the display name of a catalog key such as a group or subgroup:
// its translation when there is one, otherwise the key made readable.
func (c *Context) Label(key string) string {
	if _, ok := messages[language.English][key]; ok {
		return c.printer.Sprintf(key)
	}
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		key = key[i+1:]
	}
	words := strings.TrimSpace(strings.ReplaceAll(key, "_", " "))
	if words == "" {
		return key
	}
	return cases.Title(c.tag).String(words)
}
