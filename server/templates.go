package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/swiftship/courier-web/internal/utils"
)

//go:embed templates/*
var templateFiles embed.FS

const contentTypeHTML = "text/html; charset=utf-8"

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"humanTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return humanize.Time(t)
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"formatDatePtr": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"weight": func(kg float64) string {
		return fmt.Sprintf("%s kg", humanize.FtoaWithDigits(kg, 2))
	},
	"statusLabel": statusLabel,
	"str":         utils.Value[string],
	"add":         func(a, b int) int { return a + b },
	"sub":         func(a, b int) int { return a - b },
}

// statusLabel turns an API status like "out_for_delivery" into
// "Out For Delivery" for display.
func statusLabel(status string) string {
	words := strings.Split(status, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

type templateSet struct {
	templates map[string]*template.Template
}

func parseTemplates() (*templateSet, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(sub, ".")
	if err != nil {
		return nil, err
	}

	set := &templateSet{templates: make(map[string]*template.Template)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := fs.ReadFile(sub, entry.Name())
		if err != nil {
			return nil, err
		}
		tmpl, err := template.New(entry.Name()).Funcs(templateFuncs).Parse(string(content))
		if err != nil {
			return nil, err
		}
		set.templates[entry.Name()] = tmpl
	}
	return set, nil
}

// render writes the named template, falling back to a plain 500 when the
// template is missing or fails mid-write.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.templates.templates[name]
	if !ok {
		log.Error().Str("template", name).Msg("unknown template")
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Str("template", name).Msg("failed to render template")
	}
}
