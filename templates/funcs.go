// templates/funcs.go
package templates

import (
	"html/template"
	"strings"
	"time"
)

// Funcs returns helpers available to all templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		// {{ .SubmitDelay | millis }} → "2000"; data-* attributes carry plain
		// millisecond counts so the bundle can parse them without a duration
		// grammar.
		"millis": func(d time.Duration) int64 { return d.Milliseconds() },
	}
}
