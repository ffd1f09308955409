// Package api provides the HTTP observation plane: read-only JSON endpoints
// over the current snapshot, plus Prometheus metrics. Nothing here mutates
// game state except the admin speed/pause endpoints.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayameworks/cafesim/internal/customer"
	"github.com/ayameworks/cafesim/internal/engine"
	"github.com/ayameworks/cafesim/internal/game"
	"github.com/ayameworks/cafesim/internal/staff"
)

// Server serves the cafe state over HTTP.
type Server struct {
	Driver   *engine.Driver
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/finance", s.handleFinance)
		r.Get("/staff", s.handleStaff)
		r.Get("/customers", s.handleCustomers)
		r.Get("/menu", s.handleMenu)
		r.Get("/events", s.handleEvents)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/tasks", s.handleTasks)

		r.Post("/speed", s.adminOnly(s.handleSpeed))
		r.Post("/pause", s.adminOnly(s.handlePause))
	})

	s.registerMetrics()
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")
	go func() {
		if err := http.ListenAndServe(addr, r); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// registerMetrics exposes a few gauges derived from the live snapshot.
func (s *Server) registerMetrics() {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: "cafesim_gold", Help: "Current gold balance."},
		func() float64 { return float64(s.Driver.Snapshot().Finance.Gold) },
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: "cafesim_reputation", Help: "Current reputation."},
		func() float64 { return s.Driver.Snapshot().Reputation },
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: "cafesim_customers_on_floor", Help: "Customers currently inside the cafe."},
		func() float64 { return float64(len(s.Driver.Snapshot().Customers)) },
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: "cafesim_day", Help: "Current in-game day."},
		func() float64 { return float64(s.Driver.Snapshot().Day) },
	))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("encode response", "error", err)
	}
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Driver.Snapshot()
	writeJSON(w, map[string]any{
		"day":         st.Day,
		"clock":       engine.SimClock(&st),
		"paused":      st.Paused,
		"open":        st.Open,
		"speed":       st.Speed,
		"reputation":  st.Reputation,
		"gold":        st.Finance.Gold,
		"customers":   len(st.Customers),
		"staff":       len(st.Maids),
		"cafe_level":  st.Facility.CafeLevel,
		"stats":       st.Stats,
	})
}

func (s *Server) handleFinance(w http.ResponseWriter, r *http.Request) {
	st := s.Driver.Snapshot()
	writeJSON(w, st.Finance)
}

type staffView struct {
	staff.Maid
	Efficiency float64 `json:"efficiency"`
	Role       string  `json:"role_name"`
}

func (s *Server) handleStaff(w http.ResponseWriter, r *http.Request) {
	st := s.Driver.Snapshot()
	out := make([]staffView, 0, len(st.Maids))
	for i := range st.Maids {
		m := st.Maids[i]
		out = append(out, staffView{
			Maid:       m,
			Efficiency: m.Efficiency(),
			Role:       staff.RoleName(m.Role),
		})
	}
	writeJSON(w, out)
}

type customerView struct {
	customer.Customer
	TypeName   string `json:"type_name"`
	StatusName string `json:"status_name"`
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	st := s.Driver.Snapshot()
	out := make([]customerView, 0, len(st.Customers))
	for i := range st.Customers {
		c := st.Customers[i]
		out = append(out, customerView{
			Customer:   c,
			TypeName:   customer.TypeName(c.Type),
			StatusName: customer.StatusName(c.Status),
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Driver.Snapshot().Menu)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	st := s.Driver.Snapshot()
	writeJSON(w, map[string]any{
		"active":  st.ActiveEvents,
		"history": st.EventHistory,
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Driver.Snapshot().Achievements)
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Driver.Snapshot().Tasks)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	st := s.Driver.Dispatch(game.SetGameSpeed{Speed: req.Speed})
	writeJSON(w, map[string]any{"speed": st.Speed})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	st := s.Driver.Dispatch(game.TogglePause{})
	writeJSON(w, map[string]any{"paused": st.Paused})
}
