package components

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var views = template.Must(template.New("components").ParseFS(templateFS, "templates/*.tmpl"))
