package demoapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/antigravity/console/internal/middleware"
	"github.com/antigravity/console/internal/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server serves the simulated API.
type Server struct {
	mu   sync.Mutex
	data *dataset
	log  *zap.Logger
}

// NewServer returns a Server with a fresh simulated dataset.
func NewServer(logger *zap.Logger) *Server {
	return &Server{data: newDataset(), log: logger}
}

// Router builds the HTTP handler serving the demo endpoints. The paths
// match the real API so the regular client can be pointed at it unchanged.
//
// Routes:
//
//	GET  /api/me             → simulated profile
//	GET  /api/campaigns      → simulated campaign list
//	GET  /api/global-status  → simulated capacity summary
//	GET  /api/config         → simulated tenant config
//	POST /api/config         → accept config edits in memory
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(s.log))

	r.Route("/api", func(r chi.Router) {
		r.Get("/me", s.handleMe)
		r.Get("/campaigns", s.handleCampaigns)
		r.Get("/global-status", s.handleGlobalStatus)
		r.Get("/config", s.handleGetConfig)
		r.Post("/config", s.handleUpdateConfig)
	})

	return r
}

// Listen starts the demo API on an ephemeral loopback port and returns its
// base URL. The listener is closed when ctx is cancelled.
func (s *Server) Listen(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	srv := &http.Server{Handler: s.Router()}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Warn("demo api stopped", zap.Error(err))
		}
	}()

	return "http://" + ln.Addr().String(), nil
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	profile := s.data.profile
	s.mu.Unlock()
	writeJSON(w, profile)
}

func (s *Server) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	campaigns := make([]models.Campaign, len(s.data.campaigns))
	copy(campaigns, s.data.campaigns)
	s.mu.Unlock()
	writeJSON(w, campaigns)
}

func (s *Server) handleGlobalStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.data.status
	s.mu.Unlock()
	writeJSON(w, status)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cfg := s.data.config
	s.mu.Unlock()
	writeJSON(w, cfg)
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.TenantConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid config payload", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.data.config = cfg
	s.mu.Unlock()
	writeJSON(w, map[string]string{"status": "updated"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
