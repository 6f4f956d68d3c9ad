package server

import (
	"net/http"
	"strings"

	"github.com/SaidSafwan/Project-DanceAcademy/internal/auth"
	"github.com/SaidSafwan/Project-DanceAcademy/internal/contact"
	"github.com/SaidSafwan/Project-DanceAcademy/internal/flash"
)

const (
	msgContactSaved  = "Your form has been successfully submitted"
	msgContactFailed = "There was an error saving the form"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	msg, _ := flash.Take(w, r)
	s.render(w, "home", PageData{
		Message: msg,
		User:    auth.PeekClaims(r, s.signer),
	})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		msg, _ := flash.Take(w, r)
		s.render(w, "contact", PageData{
			Message: msg,
			User:    auth.PeekClaims(r, s.signer),
		})
	case http.MethodPost:
		s.handleContactSubmit(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	c := &contact.Contact{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Phone:   strings.TrimSpace(r.PostFormValue("phone")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Age:     strings.TrimSpace(r.PostFormValue("age")),
		Address: strings.TrimSpace(r.PostFormValue("address")),
		Desc:    strings.TrimSpace(r.PostFormValue("desc")),
	}
	if err := s.contacts.Create(r.Context(), c); err != nil {
		s.logger.Printf("save contact: %v", err)
		flash.Set(w, msgContactFailed)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	flash.Set(w, msgContactSaved)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleUserData lists the submitted contact records. The route is gated by
// RequireAuth + RequireAdmin; claims are guaranteed to be present here.
func (s *Server) handleUserData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, err := auth.MustClaims(r)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	records, err := s.contacts.List(r.Context())
	if err != nil {
		s.logger.Printf("list contacts: %v", err)
		http.Error(w, "Error fetching user data. Please try again.", http.StatusInternalServerError)
		return
	}

	msg, _ := flash.Take(w, r)
	s.render(w, "userdata", PageData{
		Message:  msg,
		User:     claims,
		Contacts: records,
	})
}
