package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SaidSafwan/Project-DanceAcademy/internal/auth"
	"github.com/SaidSafwan/Project-DanceAcademy/internal/flash"
)

// User-facing auth outcome messages. Login failures stay generic enough to
// avoid confirming which account exists beyond what registration already
// reveals.
const (
	msgUsernameTaken   = "Username is already taken. Please choose another."
	msgEmailTaken      = "Email is already registered. Please use another email."
	msgRegisterOK      = "Registration successful! You can now log in."
	msgRegisterFailed  = "Registration failed. Please try again."
	msgUnknownIdentity = "Invalid username or email."
	msgWrongPassword   = "Invalid password."
	msgLoginFailed     = "An error occurred during login. Please try again."
	msgLoggedOut       = "Logged out successfully."
	msgTooManyAttempts = "Too many attempts. Please try again later."
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		msg, _ := flash.Take(w, r)
		s.render(w, "register", PageData{Message: msg})
	case http.MethodPost:
		s.handleRegisterSubmit(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.rlRegisterIP.allow(getClientIP(r)) {
		flash.Set(w, msgTooManyAttempts)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if username == "" || password == "" || !isValidEmail(email) {
		flash.Set(w, msgRegisterFailed)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := s.svc.Register(r.Context(), username, email, password)
	if err != nil {
		var dup *auth.DuplicateError
		switch {
		case errors.As(err, &dup) && dup.Field == "email":
			flash.Set(w, msgEmailTaken)
		case errors.As(err, &dup):
			flash.Set(w, msgUsernameTaken)
		default:
			s.logger.Printf("register: %v", err)
			flash.Set(w, msgRegisterFailed)
		}
		// The submitted password is never echoed back to the form.
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	flash.Set(w, msgRegisterOK)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		msg, _ := flash.Take(w, r)
		s.render(w, "login", PageData{Message: msg})
	case http.MethodPost:
		s.handleLoginSubmit(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	identifier := strings.TrimSpace(r.PostFormValue("usernameOrEmail"))
	password := r.PostFormValue("password")

	if !s.rlLoginIP.allow(getClientIP(r)) || (identifier != "" && !s.rlLoginID.allow(identifier)) {
		flash.Set(w, msgTooManyAttempts)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	res, err := s.svc.Login(r.Context(), identifier, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownIdentifier):
			flash.Set(w, msgUnknownIdentity)
		case errors.Is(err, auth.ErrWrongPassword):
			flash.Set(w, msgWrongPassword)
		default:
			s.logger.Printf("login: %v", err)
			flash.Set(w, msgLoginFailed)
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	auth.SetTokenCookie(w, res.Token, res.ExpiresAt)
	flash.Set(w, "Welcome back, "+res.Account.Username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if claims := auth.PeekClaims(r, s.signer); claims != nil {
		s.trail.Append("logout: " + claims.Username)
	}
	auth.ClearTokenCookie(w)
	flash.Set(w, msgLoggedOut)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
