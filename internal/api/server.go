// Package api serves the simulation over HTTP.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (the player control plane).
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/lvillegas/mandato/internal/engine"
	"github.com/lvillegas/mandato/internal/persistence"
	"github.com/lvillegas/mandato/internal/polity"
	"github.com/lvillegas/mandato/internal/runner"
)

// Server serves the simulation state over HTTP.
type Server struct {
	Run      *runner.Runner
	Eng      *engine.Engine
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// The debug report walks the full effect log; keep it cheap to abuse.
	debugLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/metrics", s.handleMetrics)
	mux.HandleFunc("/api/v1/factions", s.handleFactions)
	mux.HandleFunc("/api/v1/faction/", s.handleFactionDetail)
	mux.HandleFunc("/api/v1/provinces", s.handleProvinces)
	mux.HandleFunc("/api/v1/province/", s.handleProvinceDetail)
	mux.HandleFunc("/api/v1/events/eligible", s.handleEligibleEvents)
	mux.HandleFunc("/api/v1/events/pending", s.handlePendingEvents)
	mux.HandleFunc("/api/v1/decisions", s.handleDecisions)
	mux.HandleFunc("/api/v1/effects", s.handleEffects)
	mux.HandleFunc("/api/v1/decrees", s.handleDecrees)
	mux.HandleFunc("/api/v1/missions", s.handleMissions)
	mux.HandleFunc("/api/v1/debug", RateLimitMiddleware(debugLimiter, s.handleDebug))

	// Control plane (POST, require bearer token).
	mux.HandleFunc("/api/v1/decision", s.adminOnly(s.handleDecision))
	mux.HandleFunc("/api/v1/decree", s.adminOnly(s.handleDecree))
	mux.HandleFunc("/api/v1/mission", s.adminOnly(s.handleMission))
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
// GET requests pass through (for endpoints that support both).
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "control endpoints disabled (no MANDATO_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

// writeEngineError maps the engine's error taxonomy to HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, engine.ErrRequirementNotMet):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Run.State()

	var population uint64
	for _, p := range st.Provinces {
		population += p.Population
	}

	writeJSON(w, map[string]any{
		"name":           "Mandato",
		"president":      st.President,
		"tick":           st.Tick,
		"term_time":      runner.TermTime(st.Tick),
		"speed":          s.Run.Speed(),
		"running":        s.Run.Running(),
		"crisis_level":   st.CrisisLevel,
		"metrics":        st.Metrics,
		"population":     humanize.Comma(int64(population)),
		"provinces":      len(st.Provinces),
		"factions":       len(st.Factions),
		"decisions":      len(st.Decisions),
		"pending_events": len(st.PendingEvents),
		"active_decrees": len(s.Eng.ActiveDecrees(st)),
		"level":          st.Progress.Level,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	st := s.Run.State()
	out := make(map[string]float64, len(engine.AllMetrics()))
	for _, id := range engine.AllMetrics() {
		out[id.String()] = st.Metrics.Value(id)
	}
	writeJSON(w, out)
}

func (s *Server) handleFactions(w http.ResponseWriter, r *http.Request) {
	st := s.Run.State()

	type factionSummary struct {
		ID        polity.FactionID `json:"id"`
		Name      string           `json:"name"`
		Support   float64          `json:"support"`
		Power     float64          `json:"power"`
		Resources float64          `json:"resources"`
		Demands   []string         `json:"demands,omitempty"`
	}

	result := make([]factionSummary, 0, len(st.Factions))
	for _, id := range polity.AllFactions() {
		f, ok := st.Factions[id]
		if !ok {
			continue
		}
		result = append(result, factionSummary{
			ID: f.ID, Name: f.Name,
			Support: f.Support, Power: f.Power, Resources: f.Resources,
			Demands: f.Demands,
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleFactionDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "missing faction id", http.StatusBadRequest)
		return
	}
	st := s.Run.State()
	f, ok := st.Factions[polity.FactionID(parts[4])]
	if !ok {
		http.Error(w, "faction not found", http.StatusNotFound)
		return
	}

	type relEntry struct {
		Name     string  `json:"name"`
		Relation float64 `json:"relation"`
	}
	var relations []relEntry
	for _, other := range polity.AllFactions() {
		if rel, ok := f.Relations[other]; ok {
			name := string(other)
			if of, ok := st.Factions[other]; ok {
				name = of.Name
			}
			relations = append(relations, relEntry{Name: name, Relation: rel})
		}
	}

	// Provinces where this faction holds influence.
	influence := make(map[string]float64)
	for _, pid := range polity.AllProvinces() {
		if p, ok := st.Provinces[pid]; ok {
			if inf, ok := p.Influence[f.ID]; ok && inf > 0 {
				influence[p.Name] = inf
			}
		}
	}

	writeJSON(w, map[string]any{
		"id":            f.ID,
		"name":          f.Name,
		"support":       f.Support,
		"power":         f.Power,
		"resources":     f.Resources,
		"relations":     relations,
		"influence":     influence,
		"demands":       f.Demands,
		"unique_events": f.UniqueEvents,
	})
}

func (s *Server) handleProvinces(w http.ResponseWriter, r *http.Request) {
	st := s.Run.State()

	type provinceSummary struct {
		ID            polity.ProvinceID `json:"id"`
		Name          string            `json:"name"`
		Discontent    float64           `json:"discontent"`
		Loyalty       float64           `json:"loyalty"`
		EconomicLevel float64           `json:"economic_level"`
		Population    string            `json:"population"`
		Ideology      string            `json:"ideology"`
	}

	result := make([]provinceSummary, 0, len(st.Provinces))
	for _, id := range polity.AllProvinces() {
		p, ok := st.Provinces[id]
		if !ok {
			continue
		}
		result = append(result, provinceSummary{
			ID: p.ID, Name: p.Name,
			Discontent: p.Discontent, Loyalty: p.Loyalty, EconomicLevel: p.EconomicLevel,
			Population: humanize.Comma(int64(p.Population)),
			Ideology:   polity.IdeologyName(p.Ideology),
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleProvinceDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "missing province id", http.StatusBadRequest)
		return
	}
	st := s.Run.State()
	p, ok := st.Provinces[polity.ProvinceID(parts[4])]
	if !ok {
		http.Error(w, "province not found", http.StatusNotFound)
		return
	}

	influence := make(map[string]float64)
	for fid, inf := range p.Influence {
		name := string(fid)
		if f, ok := st.Factions[fid]; ok {
			name = f.Name
		}
		influence[name] = inf
	}

	writeJSON(w, map[string]any{
		"id":               p.ID,
		"name":             p.Name,
		"discontent":       p.Discontent,
		"loyalty":          p.Loyalty,
		"economic_level":   p.EconomicLevel,
		"population":       p.Population,
		"ideology":         polity.IdeologyName(p.Ideology),
		"influence":        influence,
		"active_events":    p.ActiveEvents,
		"regional_effects": p.RegionalEffects,
	})
}

func (s *Server) handleEligibleEvents(w http.ResponseWriter, r *http.Request) {
	st := s.Run.State()

	type choiceSummary struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	type eventSummary struct {
		ID          string          `json:"id"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Choices     []choiceSummary `json:"choices"`
	}

	var result []eventSummary
	for _, ev := range s.Eng.EligibleEvents(st) {
		es := eventSummary{
			ID: ev.ID, Title: ev.Title, Description: ev.Description,
			Category: ev.Category.String(),
		}
		for _, c := range ev.Choices {
			es.Choices = append(es.Choices, choiceSummary{ID: c.ID, Label: c.Label})
		}
		result = append(result, es)
	}
	if result == nil {
		result = []eventSummary{}
	}
	writeJSON(w, result)
}

func (s *Server) handlePendingEvents(w http.ResponseWriter, r *http.Request) {
	st := s.Run.State()

	type pendingSummary struct {
		EventID      string `json:"event_id"`
		Title        string `json:"title"`
		CascadeLevel int    `json:"cascade_level"`
		IssuedAt     uint64 `json:"issued_at"`
	}

	result := make([]pendingSummary, 0, len(st.PendingEvents))
	for _, pe := range st.PendingEvents {
		title := pe.EventID
		if ev, ok := s.Eng.Catalog.Events[pe.EventID]; ok {
			title = ev.Title
		}
		result = append(result, pendingSummary{
			EventID: pe.EventID, Title: title,
			CascadeLevel: pe.CascadeLevel, IssuedAt: pe.IssuedAt,
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleDecisions(w http.ResponseWriter, r *http.Request) {
	st := s.Run.State()
	limit := queryLimit(r, 50, 500)

	decisions := st.Decisions
	if len(decisions) > limit {
		decisions = decisions[len(decisions)-limit:]
	}
	writeJSON(w, decisions)
}

func (s *Server) handleEffects(w http.ResponseWriter, r *http.Request) {
	st := s.Run.State()
	limit := queryLimit(r, 100, 1000)
	writeJSON(w, st.RecentEffects(limit))
}

func (s *Server) handleDecrees(w http.ResponseWriter, r *http.Request) {
	st := s.Run.State()

	type decreeSummary struct {
		ID           string  `json:"id"`
		Title        string  `json:"title"`
		Status       string  `json:"status,omitempty"`
		EmittedAt    *uint64 `json:"emitted_at,omitempty"`
		ExpiresAt    *uint64 `json:"expires_at,omitempty"`
		ExpiresIn    string  `json:"expires_in,omitempty"`
		Eligible     bool    `json:"eligible"`
		LegalRisk    float64 `json:"legal_risk"`
		PoliticalCost float64 `json:"political_cost"`
	}

	eligible := make(map[string]bool)
	for _, d := range s.Eng.EligibleDecrees(st) {
		eligible[d.ID] = true
	}

	result := make([]decreeSummary, 0, len(s.Eng.Catalog.Decrees))
	for _, id := range s.Eng.Catalog.DecreeIDs() {
		d := s.Eng.Catalog.Decrees[id]
		ds := decreeSummary{
			ID: d.ID, Title: d.Title,
			Eligible: eligible[d.ID], LegalRisk: d.LegalRisk, PoliticalCost: d.PoliticalCost,
		}
		if inst, ok := st.Decrees[d.ID]; ok {
			ds.Status = inst.Status.String()
			ds.EmittedAt = &inst.EmittedAt
			ds.ExpiresAt = &inst.ExpiresAt
			if inst.Status == engine.DecreeActive && inst.ExpiresAt > st.Tick {
				ds.ExpiresIn = english.Plural(int(inst.ExpiresAt-st.Tick), "week", "")
			}
		}
		result = append(result, ds)
	}
	writeJSON(w, result)
}

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	st := s.Run.State()

	type missionSummary struct {
		ID         string   `json:"id"`
		Title      string   `json:"title"`
		Type       string   `json:"type"`
		Status     string   `json:"status"`
		Difficulty float64  `json:"difficulty,omitempty"`
		Objectives []string `json:"objectives,omitempty"`
	}

	var result []missionSummary
	for _, id := range s.Eng.Catalog.MissionIDs() {
		m := s.Eng.Catalog.Missions[id]
		ms, ok := st.Missions[id]
		if !ok {
			continue // still hidden
		}
		sum := missionSummary{
			ID: m.ID, Title: m.Title,
			Type: m.Type.String(), Status: ms.Status.String(),
		}
		if ms.Context != nil {
			sum.Difficulty = ms.Context.Difficulty
			sum.Objectives = ms.Context.Objectives
		}
		result = append(result, sum)
	}
	if result == nil {
		result = []missionSummary{}
	}

	writeJSON(w, map[string]any{
		"missions": result,
		"progress": st.Progress,
	})
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Eng.DebugInfo(s.Run.State()))
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		EventID  string `json:"event_id"`
		ChoiceID string `json:"choice_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.EventID == "" || req.ChoiceID == "" {
		http.Error(w, "event_id and choice_id required", http.StatusBadRequest)
		return
	}

	var result *engine.DecisionResult
	err := s.Run.Do(func(st *engine.State) (*engine.State, error) {
		next, res, err := s.Eng.ApplyDecision(st, req.EventID, req.ChoiceID)
		result = res
		return next, err
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleDecree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		DecreeID string `json:"decree_id"`
		Action   string `json:"action"` // emit | revoke | suspend | respond
		OptionID string `json:"option_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.DecreeID == "" {
		http.Error(w, "decree_id required", http.StatusBadRequest)
		return
	}

	switch req.Action {
	case "", "emit":
		var result *engine.DecreeResult
		err := s.Run.Do(func(st *engine.State) (*engine.State, error) {
			next, res, err := s.Eng.EmitDecree(st, req.DecreeID)
			result = res
			return next, err
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, result)
	case "revoke":
		var logs []engine.EffectLog
		s.Run.Do(func(st *engine.State) (*engine.State, error) {
			next, l := s.Eng.RevokeDecree(st, req.DecreeID)
			logs = l
			return next, nil
		})
		writeJSON(w, map[string]any{"revoked": true, "effects": logs})
	case "suspend":
		s.Run.Do(func(st *engine.State) (*engine.State, error) {
			return s.Eng.SuspendDecree(st, req.DecreeID), nil
		})
		writeJSON(w, map[string]any{"suspended": true})
	case "respond":
		if req.OptionID == "" {
			http.Error(w, "option_id required for respond", http.StatusBadRequest)
			return
		}
		var logs []engine.EffectLog
		err := s.Run.Do(func(st *engine.State) (*engine.State, error) {
			next, l, err := s.Eng.RespondToDecree(st, req.DecreeID, req.OptionID)
			logs = l
			return next, err
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"responded": true, "effects": logs})
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}

func (s *Server) handleMission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		MissionID string `json:"mission_id"`
		Action    string `json:"action"` // accept | resolve
		ChoiceID  string `json:"choice_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.MissionID == "" {
		http.Error(w, "mission_id required", http.StatusBadRequest)
		return
	}

	switch req.Action {
	case "accept":
		err := s.Run.Do(func(st *engine.State) (*engine.State, error) {
			return s.Eng.AcceptMission(st, req.MissionID)
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"accepted": true})
	case "", "resolve":
		if req.ChoiceID == "" {
			http.Error(w, "choice_id required for resolve", http.StatusBadRequest)
			return
		}
		var result *engine.MissionResult
		err := s.Run.Do(func(st *engine.State) (*engine.State, error) {
			next, res, err := s.Eng.ResolveMission(st, req.MissionID, req.ChoiceID)
			result = res
			return next, err
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		if result == nil {
			// Duplicate resolution: idempotent no-op.
			writeJSON(w, map[string]any{"resolved": false, "reason": "already resolved"})
			return
		}
		writeJSON(w, result)
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 1000 {
			http.Error(w, "speed must be 0-1000", http.StatusBadRequest)
			return
		}
		s.Run.SetSpeed(req.Speed)
	}
	writeJSON(w, map[string]float64{"speed": s.Run.Speed()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}
	st := s.Run.State()
	if err := s.DB.SaveState(st); err != nil {
		slog.Error("snapshot save failed", "error", err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"saved": true, "tick": st.Tick})
}

func queryLimit(r *http.Request, def, max int) int {
	limit := def
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= max {
			limit = n
		}
	}
	return limit
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
