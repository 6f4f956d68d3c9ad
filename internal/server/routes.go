package server

import (
	"net/http"

	"github.com/SaidSafwan/Project-DanceAcademy/internal/auth"
)

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/register", s.handleRegister)
	s.mux.HandleFunc("/login", s.handleLogin)
	s.mux.HandleFunc("/logout", s.handleLogout)
	s.mux.HandleFunc("/contact", s.handleContact)
	s.mux.HandleFunc("/health", s.handleHealth)

	// Identity check always runs before the role check, so a tampered or
	// expired token never reaches RequireAdmin.
	protected := auth.RequireAuth(s.signer, s.logger)
	s.mux.Handle("/userdata", protected(auth.RequireAdmin(http.HandlerFunc(s.handleUserData))))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
