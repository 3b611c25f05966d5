package rest

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/fortuna/dugout/internal/reconcile"
	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/store"
	"github.com/gorilla/mux"
)

// Runner starts collection runs. It is the collector in production.
type Runner interface {
	WeeklyUpdate(ctx context.Context) error
	FullWeeklyUpdate(ctx context.Context) error
	PlayerDataSetup(ctx context.Context) error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	archive       *store.Archive
	runner        Runner
	currentSeason int

	mu      sync.Mutex
	running bool
}

// NewHandler creates a new handler
func NewHandler(archive *store.Archive, runner Runner, currentSeason int) *Handler {
	return &Handler{archive: archive, runner: runner, currentSeason: currentSeason}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "dugout",
	})
}

// season reads the season query parameter, defaulting to the current one.
func (h *Handler) season(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return h.currentSeason, nil
	}
	return strconv.Atoi(raw)
}

// GetLeagueInfo returns the league metadata artifact
func (h *Handler) GetLeagueInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.archive.LoadLeagueInfo()
	if err != nil {
		respondError(w, http.StatusNotFound, "League info not collected yet", err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// GetStandings returns a season's standings
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	year, err := h.season(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	standings, err := h.archive.LoadStandings(year)
	if err != nil {
		respondError(w, http.StatusNotFound, "Standings not collected for season", err)
		return
	}
	respondJSON(w, http.StatusOK, standings)
}

// GetTeams returns a season's teams
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	year, err := h.season(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	teams, err := h.archive.LoadTeams(year)
	if err != nil {
		respondError(w, http.StatusNotFound, "Teams not collected for season", err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

// GetScores returns a season's weekly head-to-head scores
func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	year, err := h.season(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	scores, err := h.archive.LoadScores(year)
	if err != nil {
		respondError(w, http.StatusNotFound, "Scores not collected for season", err)
		return
	}
	respondJSON(w, http.StatusOK, scores)
}

// GetPlayers returns a season's enriched player list, sorted by fantasy
// points
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	year, err := h.season(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	players, err := h.archive.LoadPlayerStats(year)
	if err != nil {
		respondError(w, http.StatusNotFound, "Player stats not collected for season", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":  year,
		"players": players,
		"count":   len(players),
	})
}

// GetUnmatchedPlayers returns the roster entries that resolved to no stat
// row, with near-miss suggestions for manual review
func (h *Handler) GetUnmatchedPlayers(w http.ResponseWriter, r *http.Request) {
	year, err := h.season(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	unmatched, err := h.archive.LoadUnmatched(year)
	if err != nil {
		if store.IsNotExist(err) {
			respondJSON(w, http.StatusOK, []store.UnmatchedPlayer{})
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load unmatched players", err)
		return
	}
	respondJSON(w, http.StatusOK, unmatched)
}

// GetManagers returns the all-time manager records
func (h *Handler) GetManagers(w http.ResponseWriter, r *http.Request) {
	records, err := h.archive.LoadManagerStats()
	if err != nil {
		respondError(w, http.StatusNotFound, "Manager stats not built yet", err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// GetManagerHistory returns the flattened manager-season history
func (h *Handler) GetManagerHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.archive.LoadManagerHistory()
	if err != nil {
		respondError(w, http.StatusNotFound, "Manager history not built yet", err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// GetCareers returns every player's cross-season career
func (h *Handler) GetCareers(w http.ResponseWriter, r *http.Request) {
	careers, err := h.archive.LoadCareers()
	if err != nil {
		respondError(w, http.StatusNotFound, "Careers not built yet", err)
		return
	}
	respondJSON(w, http.StatusOK, careers)
}

// GetCareer returns one player's career, looked up by normalized name
func (h *Handler) GetCareer(w http.ResponseWriter, r *http.Request) {
	careers, err := h.archive.LoadCareers()
	if err != nil {
		respondError(w, http.StatusNotFound, "Careers not built yet", err)
		return
	}

	name := mux.Vars(r)["player"]
	career, ok := careers[reconcile.NormalizeName(name)]
	if !ok {
		respondError(w, http.StatusNotFound, "No career for player", nil)
		return
	}
	respondJSON(w, http.StatusOK, career)
}

// GetTransactions returns a season's transactions, newest first
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	year, err := h.season(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	transactions, err := h.archive.LoadTransactions(year)
	if err != nil {
		respondError(w, http.StatusNotFound, "Transactions not collected for season", err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

// TriggerCollection starts a collection run in the background. Only one run
// may be in flight at a time.
func (h *Handler) TriggerCollection(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "weekly"
	}

	var run func(context.Context) error
	switch mode {
	case "weekly":
		run = h.runner.WeeklyUpdate
	case "full":
		run = h.runner.FullWeeklyUpdate
	case "players":
		run = h.runner.PlayerDataSetup
	default:
		respondError(w, http.StatusBadRequest, "Unknown collection mode", nil)
		return
	}

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		respondError(w, http.StatusConflict, "A collection run is already in progress", nil)
		return
	}
	h.running = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			h.running = false
			h.mu.Unlock()
		}()
		if err := run(context.Background()); err != nil {
			log.Printf("⚠ [rest] %s collection run failed: %v", mode, err)
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "Collection run started",
		"mode":    mode,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}

var _ Runner = (*service.Collector)(nil)
