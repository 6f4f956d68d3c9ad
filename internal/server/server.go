package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/SaidSafwan/Project-DanceAcademy/internal/audit"
	"github.com/SaidSafwan/Project-DanceAcademy/internal/auth"
	"github.com/SaidSafwan/Project-DanceAcademy/internal/contact"

	"golang.org/x/time/rate"
)

type Server struct {
	cfg Config

	mux      *http.ServeMux
	signer   *auth.Signer
	svc      *auth.Service
	accounts auth.AccountStore
	contacts contact.Store
	renderer Renderer
	logger   *log.Logger
	trail    *audit.Log

	rlLoginIP    *multiLimiter
	rlLoginID    *multiLimiter
	rlRegisterIP *multiLimiter

	closers []func(context.Context) error
}

// New wires the production server against MongoDB.
func New(ctx context.Context, cfg Config) (*Server, error) {
	cfg.setDefaults()
	if cfg.MongoURI == "" {
		return nil, errors.New("server: MongoURI required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("server: JWTSecret required")
	}

	accounts, err := auth.NewMongoAccountStore(ctx, cfg.MongoURI, cfg.MongoDB, cfg.AccountsCollection)
	if err != nil {
		return nil, err
	}
	contacts, err := contact.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB, cfg.ContactsCollection)
	if err != nil {
		_ = accounts.Close(context.Background())
		return nil, err
	}

	s, err := NewWithStores(cfg, accounts, contacts)
	if err != nil {
		_ = accounts.Close(context.Background())
		_ = contacts.Close(context.Background())
		return nil, err
	}
	s.closers = append(s.closers, accounts.Close, contacts.Close)
	return s, nil
}

// NewWithStores wires the server against injected stores. Tests and the dev
// loop hand in the memory implementations.
func NewWithStores(cfg Config, accounts auth.AccountStore, contacts contact.Store) (*Server, error) {
	cfg.setDefaults()
	if cfg.JWTSecret == "" {
		return nil, errors.New("server: JWTSecret required")
	}

	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)
	signer := auth.NewSigner([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.TokenTTL)
	trail := audit.New()

	s := &Server{
		cfg:      cfg,
		mux:      http.NewServeMux(),
		signer:   signer,
		svc:      auth.NewService(accounts, signer, logger, trail),
		accounts: accounts,
		contacts: contacts,
		renderer: renderer,
		logger:   logger,
		trail:    trail,
	}

	perWindow := func(n int, window time.Duration) float64 { return float64(n) / window.Seconds() }
	s.rlLoginIP = newMultiLimiter(rate.Limit(perWindow(10, time.Minute)), 10, time.Hour)
	s.rlLoginID = newMultiLimiter(rate.Limit(perWindow(5, time.Minute)), 5, time.Hour)
	s.rlRegisterIP = newMultiLimiter(rate.Limit(perWindow(5, time.Minute)), 5, time.Hour)

	s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Printf("panic: %v", rec)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}()
	s.mux.ServeHTTP(w, r)
}

func (s *Server) Handler() http.Handler { return s }

// Audit exposes the in-process auth event trail.
func (s *Server) Audit() *audit.Log { return s.trail }

// Close releases the store clients.
func (s *Server) Close(ctx context.Context) error {
	var errs []error
	for _, close := range s.closers {
		if err := close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
