package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// RenderWelcome renders the welcome email for a freshly registered user.
// data is the EmailJob payload; the template reads Email, AppName and
// RegisteredAt from it.
func RenderWelcome(data map[string]any) (string, error) {
	t, err := htmpl.ParseFS(FS, "welcome.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse welcome template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render welcome template: %w", err)
	}
	return buf.String(), nil
}
