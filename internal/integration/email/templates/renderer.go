// Package templates renders the embedded email templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both versions of a template. A missing text version yields
// an empty text body.
func (r *Renderer) Render(templateName string, data any) (string, string, error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	if r.textTemplates.Lookup(templateName+".txt") == nil {
		return htmlBuf.String(), "", nil
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to render text template %s: %w", templateName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// PasswordResetData contains data for the password reset email.
type PasswordResetData struct {
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// WelcomeData contains data for the welcome email.
type WelcomeData struct {
	UserName string
	AppURL   string
}

// GoalReachedData contains data for the goal reached email.
type GoalReachedData struct {
	UserName     string
	GoalName     string
	TargetAmount string
	SavedAmount  string
	AppURL       string
}

// SalaryDayData contains data for the salary day reminder.
type SalaryDayData struct {
	UserName      string
	Salary        string
	FixedExpenses string
	Available     string
	AppURL        string
}
