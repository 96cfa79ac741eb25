// Package server exposes the intake engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/concierge-cli/internal/config"
	"github.com/sells-group/concierge-cli/internal/intake"
	"github.com/sells-group/concierge-cli/internal/model"
)

// maxBodyBytes caps the size of a profile payload.
const maxBodyBytes = 1 << 20

// Server routes HTTP requests to an intake.Service.
type Server struct {
	svc     *intake.Service
	cfg     config.ServerConfig
	limiter *rate.Limiter
}

// New creates a Server. A zero rate limit disables throttling.
func New(svc *intake.Service, cfg config.ServerConfig) *Server {
	s := &Server{svc: svc, cfg: cfg}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.throttle)
		r.Post("/intakes", s.handleSubmit)
		r.Get("/intakes", s.handleList)
		r.Post("/quotes", s.handleQuote)
		r.Get("/plans", s.handlePlans)
		r.Get("/plans/{tier}", s.handlePlan)
		r.Get("/services", s.handleServices)
	})

	return r
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}

	res, err := s.svc.Submit(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	clients, err := s.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if clients == nil {
		clients = []model.ClientIntake{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": clients})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}

	rec, err := s.svc.Recommend(p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePlans(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"plans": s.svc.Catalog().Plans()})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	tier, err := model.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown tier")
		return
	}
	plan, ok := s.svc.Catalog().Plan(tier)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown tier")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type serviceEntry struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (s *Server) handleServices(w http.ResponseWriter, _ *http.Request) {
	rates := s.svc.Calculator().Rates()
	names := model.Services()
	out := make([]serviceEntry, 0, len(names))
	for _, name := range names {
		out = append(out, serviceEntry{
			Name:        name,
			Description: model.ServiceDescription(name),
			Price:       rates.Services[name],
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": out})
}

// decodeProfile reads a profile body, rejecting unknown fields and trailing data.
func decodeProfile(w http.ResponseWriter, r *http.Request) (model.Profile, bool) {
	var p model.Profile
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return model.Profile{}, false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return model.Profile{}, false
	}
	return p, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var verr *intake.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
		return
	}
	zap.L().Error("server: request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}
