// Package template renders the e-mails sent to shoppers.
package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed data/*.tmpl
var files embed.FS

const OrderConfirmation = "order_confirmation"

type Engine struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

func NewEngine() (*Engine, error) {
	text, err := texttemplate.ParseFS(files, "data/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("texttemplate.ParseFS: %w", err)
	}

	html, err := htmltemplate.ParseFS(files, "data/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("htmltemplate.ParseFS: %w", err)
	}

	return &Engine{text: text, html: html}, nil
}

// Render returns the plain text and the HTML body of the named template.
func (e *Engine) Render(name string, data any) (string, string, error) {
	var text, html bytes.Buffer

	if err := e.text.ExecuteTemplate(&text, name, data); err != nil {
		return "", "", fmt.Errorf("text.ExecuteTemplate[%s]: %w", name, err)
	}

	if err := e.html.ExecuteTemplate(&html, name, data); err != nil {
		return "", "", fmt.Errorf("html.ExecuteTemplate[%s]: %w", name, err)
	}

	return text.String(), html.String(), nil
}
