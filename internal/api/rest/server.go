package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortuna/dugout/internal/store"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, archive *store.Archive, runner Runner, currentSeason int) *Server {
	handler := NewHandler(archive, runner, currentSeason)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// League
	api.HandleFunc("/league", handler.GetLeagueInfo).Methods("GET")
	api.HandleFunc("/standings", handler.GetStandings).Methods("GET")
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/scores", handler.GetScores).Methods("GET")
	api.HandleFunc("/transactions", handler.GetTransactions).Methods("GET")

	// Players
	api.HandleFunc("/players", handler.GetPlayers).Methods("GET")
	api.HandleFunc("/players/unmatched", handler.GetUnmatchedPlayers).Methods("GET")

	// Managers
	api.HandleFunc("/managers", handler.GetManagers).Methods("GET")
	api.HandleFunc("/managers/history", handler.GetManagerHistory).Methods("GET")

	// Careers
	api.HandleFunc("/careers", handler.GetCareers).Methods("GET")
	api.HandleFunc("/careers/{player}", handler.GetCareer).Methods("GET")

	// Collection runs
	api.HandleFunc("/collect", handler.TriggerCollection).Methods("POST")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
