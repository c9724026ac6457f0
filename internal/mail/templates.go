// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mail

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

const verifyEmailTemplate = "verify_email"

type templateData struct {
	Link string
}

// templates holds the plain text and HTML variant of every message.
type templates struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

func loadTemplates() (*templates, error) {
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html templates: %w", err)
	}

	return &templates{text: text, html: html}, nil
}

func (t *templates) render(name string, data templateData) (string, string, error) {
	var text, html strings.Builder

	if err := t.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	if err := t.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return text.String(), html.String(), nil
}
