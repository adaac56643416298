package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the page templates with the helpers they use.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"won":     formatWon,
		"celsius": func(v float64) string { return fmt.Sprintf("%.1f°C", v) },
	}).ParseFS(templateFS, "templates/*.html")
}

// Static is the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// formatWon renders a rate without decimals and with thousands separators.
func formatWon(v float64) string {
	n := int64(math.Round(v))
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out) + " ₩"
}
