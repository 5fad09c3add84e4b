package mockapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"moola/internal/domain"
)

// airtimeAccount is what the vendor accepts for airtime top-ups.
var airtimeAccount = regexp.MustCompile(`^\+2507[2389]\d{7}$`)

// Config configures a Server.
type Config struct {
	Secret    []byte
	AccessTTL time.Duration
	Logger    *slog.Logger
}

type account struct {
	reg          domain.Registration
	passwordHash []byte
}

type pendingTrx struct {
	owner    string
	service  domain.ServiceType
	account  string
	executed bool
}

// Server holds the in-memory API state.
type Server struct {
	cfg Config

	mu       sync.Mutex
	accounts map[string]account
	trx      map[string]*pendingTrx
	payments []domain.VendorPayment
}

// New returns an empty Server. Secret is required.
func New(cfg Config) (*Server, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("mockapi: jwt secret required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		accounts: make(map[string]account),
		trx:      make(map[string]*pendingTrx),
	}, nil
}

// Router returns the HTTP handler with every route mounted under /v1.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(s.accessLog)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)
		r.Get("/auth/find/{username}", s.handleFind)

		r.Group(func(r chi.Router) {
			r.Use(s.requireBearer)
			r.Post("/clients/validation/validate/vendor", s.handleValidateVendor)
			r.Post("/clients/payment/execute/vendor", s.handleExecutePayment)
		})
	})
	return r
}

// AddUser registers an account directly, bypassing validation.
func (s *Server) AddUser(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = account{
		reg:          domain.Registration{Username: username},
		passwordHash: hash,
	}
	return nil
}

// IssueAccess signs an access token for username that expires after ttl.
// A negative ttl yields an already-expired token.
func (s *Server) IssueAccess(username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}

// Payments returns the payments executed so far.
func (s *Server) Payments() []domain.VendorPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.VendorPayment(nil), s.payments...)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	acct, ok := s.accounts[creds.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(creds.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	access, err := s.IssueAccess(creds.Username, s.cfg.AccessTTL)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, domain.TokenPair{
		AccessToken:  access,
		RefreshToken: uuid.NewString(),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(reg.Username) < 3 || len(reg.Password) < 6 || reg.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Missing or invalid registration fields")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Could not register")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[reg.Username]; exists {
		writeMessage(w, http.StatusConflict, "Username already taken")
		return
	}
	reg.Password = ""
	s.accounts[reg.Username] = account{reg: reg, passwordHash: hash}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true})
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	s.mu.Lock()
	_, exists := s.accounts[username]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": exists})
}

func (s *Server) handleValidateVendor(w http.ResponseWriter, r *http.Request) {
	var req domain.VendorValidation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	acct := strings.TrimSpace(req.CustomerAccountNumber)
	switch {
	case acct == "":
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Customer account number is required"})
		return
	case req.ServiceType == domain.ServiceAirtime && !airtimeAccount.MatchString(acct):
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Number is not an airtime subscriber"})
		return
	}

	trxID := uuid.NewString()
	s.mu.Lock()
	s.trx[trxID] = &pendingTrx{owner: subjectOf(r), service: req.ServiceType, account: acct}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]string{"trxId": trxID},
	})
}

func (s *Server) handleExecutePayment(w http.ResponseWriter, r *http.Request) {
	var req domain.VendorPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil || amount <= 0 {
		writeMessage(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.trx[req.TrxID]
	switch {
	case !ok || p.owner != subjectOf(r):
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Unknown transaction"})
		return
	case p.executed:
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Transaction already executed"})
		return
	case p.service != req.ServiceType:
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Service type mismatch"})
		return
	}
	p.executed = true
	s.payments = append(s.payments, req)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type subjectKey struct{}

func subjectOf(r *http.Request) string {
	sub, _ := r.Context().Value(subjectKey{}).(string)
	return sub
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
