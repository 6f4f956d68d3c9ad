package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/SaidSafwan/Project-DanceAcademy/internal/auth"
	"github.com/SaidSafwan/Project-DanceAcademy/internal/contact"
)

// PageData is the contract between handlers and the rendering collaborator:
// every page gets the pending flash message and the decoded identity claims
// (nil when anonymous).
type PageData struct {
	Message  string
	User     *auth.Claims
	Contacts []contact.Contact
}

type Renderer interface {
	Render(w http.ResponseWriter, page string, data PageData) error
}

//go:embed templates/*.html
var templateFS embed.FS

// templateRenderer is a thin html/template implementation. The real page
// design lives outside this core; these templates only exercise the
// {Message, User} contract.
type templateRenderer struct {
	tpl *template.Template
}

func NewTemplateRenderer() (Renderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &templateRenderer{tpl: tpl}, nil
}

func (t *templateRenderer) Render(w http.ResponseWriter, page string, data PageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.tpl.ExecuteTemplate(w, page+".html", data)
}

func (s *Server) render(w http.ResponseWriter, page string, data PageData) {
	if err := s.renderer.Render(w, page, data); err != nil {
		s.logger.Printf("render %s: %v", page, err)
	}
}
