package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const baseLayout = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.CompanyName}}</h2>
  {{template "content" .}}
  <p style="color:#888;font-size:12px;">Questions? Write to {{.SupportEmail}}.</p>
</body>
</html>`

var builtinTemplates = map[string]string{
	"verification": `{{define "content"}}
  <p>Hi{{if .UserName}} {{.UserName}}{{end}},</p>
  <p>Thanks for signing up{{if .Role}} as a {{.Role}}{{end}}. Please confirm your email address to finish creating your account.</p>
  <p><a href="{{.ActionURL}}">{{.ActionText}}</a></p>
{{end}}`,
}

// TemplateManager renders the built-in email templates.
type TemplateManager struct {
	templates map[string]*template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}

	for name, body := range builtinTemplates {
		tpl, err := template.New(name).Parse(baseLayout)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layout for %s: %w", name, err)
		}
		if _, err := tpl.Parse(body); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}
	return tm, nil
}

func (tm *TemplateManager) Render(name string, data interface{}) (string, error) {
	tpl, ok := tm.templates[name]
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
