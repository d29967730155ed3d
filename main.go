package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	_ "github.com/joho/godotenv/autoload"

	"menu-profit-engine/internal/analysis"
	"menu-profit-engine/internal/benchmark"
	"menu-profit-engine/internal/copilot"
	"menu-profit-engine/internal/costing"
	"menu-profit-engine/internal/models"
	"menu-profit-engine/internal/pricebook"
	"menu-profit-engine/internal/pricing"
	"menu-profit-engine/internal/zones"
	"menu-profit-engine/pkg/config"
	"menu-profit-engine/pkg/database"
	apperrors "menu-profit-engine/pkg/errors"
	"menu-profit-engine/pkg/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: "stdout"})

	book, err := pricebook.Load()
	if err != nil {
		log.Error("loading embedded price table", "error", err)
		os.Exit(1)
	}

	// Optional persistence: without a DSN the server runs on embedded data only.
	var db *database.DB
	var catalog models.Catalog
	if cfg.DatabaseURL != "" {
		db, err = database.New(cfg.DatabaseURL)
		if err != nil {
			log.Error("connecting to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		catalog = db.Catalog()
	}

	var store benchmark.Store
	if db != nil {
		store = benchmark.NewSQLStore(db.Conn())
	} else {
		store, err = benchmark.LoadStaticStore()
		if err != nil {
			log.Error("loading embedded benchmark references", "error", err)
			os.Exit(1)
		}
	}

	resolver, err := zones.NewResolver(cfg.GoogleMapsAPIKey)
	if err != nil {
		log.Error("creating zone resolver", "error", err)
		os.Exit(1)
	}

	srv := &server{
		cfg:        cfg,
		log:        log.WithComponent("http"),
		aggregator: costing.New(book, catalog),
		comparator: benchmark.NewComparator(store),
		zones:      resolver,
		narrator:   copilot.NewNarrator(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		db:         db,
	}
	srv.engine = analysis.New(srv.aggregator, nil, analysis.Config{WorkerCount: cfg.WorkerCount}, log)

	router := mux.NewRouter()
	router.HandleFunc("/analyze", srv.analyzeHandler).Methods("POST")
	router.HandleFunc("/analyze/menu", srv.analyzeMenuHandler).Methods("POST")
	router.HandleFunc("/pricing/suggest", srv.pricingHandler).Methods("POST")
	router.HandleFunc("/benchmark/compare", srv.benchmarkHandler).Methods("POST")
	router.HandleFunc("/copilot/summary", srv.copilotHandler).Methods("POST")
	router.HandleFunc("/health", srv.healthHandler).Methods("GET")

	httpServer := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	go func() {
		log.Info("server starting", "port", cfg.Port, "database", db != nil)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown", "error", err)
	}
	log.Info("shutdown complete")
}

type server struct {
	cfg        *config.Config
	log        *logging.Logger
	aggregator *costing.Aggregator
	engine     *analysis.Engine
	comparator *benchmark.Comparator
	zones      *zones.Resolver
	narrator   *copilot.Narrator
	db         *database.DB
}

// engineFor returns the shared engine, or a request-scoped one when the
// caller supplies popularity scores.
func (s *server) engineFor(pop analysis.PopularityProvider) *analysis.Engine {
	if pop == nil {
		return s.engine
	}
	return analysis.New(s.aggregator, pop, analysis.Config{WorkerCount: s.cfg.WorkerCount}, s.log)
}

// settingsOr fills unset pricing settings from configured defaults.
func (s *server) settingsOr(in *models.Settings) models.Settings {
	if in != nil {
		return *in
	}
	return models.Settings{
		LaborCostPercentage: s.cfg.DefaultLaborPct,
		VATRate:             s.cfg.DefaultVATRate,
		TargetMargin:        s.cfg.DefaultTargetMargin,
	}
}

type analyzeRequest struct {
	Recipe     models.Recipe     `json:"recipe"`
	Settings   *models.Settings  `json:"settings,omitempty"`
	Popularity *float64          `json:"popularity,omitempty"`
	Overrides  costing.Overrides `json:"overrides,omitempty"`
}

func (s *server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	var pop analysis.PopularityProvider
	if req.Popularity != nil {
		pop = analysis.FixedPopularity{Score: *req.Popularity}
	}

	report, err := s.engineFor(pop).AnalyzeRecipe(r.Context(), req.Recipe, s.settingsOr(req.Settings), req.Overrides)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, report)
}

type analyzeMenuRequest struct {
	Recipes      []models.Recipe           `json:"recipes"`
	FromDatabase bool                      `json:"fromDatabase,omitempty"`
	Settings     *models.Settings          `json:"settings,omitempty"`
	Popularity   map[string]float64        `json:"popularity,omitempty"` // by recipe name
	Overrides    costing.Overrides         `json:"overrides,omitempty"`
	Profile      *models.RestaurantProfile `json:"profile,omitempty"`
	Narrate      bool                      `json:"narrate,omitempty"`
}

type analyzeMenuResponse struct {
	models.MenuReport
	Summary string `json:"summary,omitempty"`
}

func (s *server) analyzeMenuHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	recipes := req.Recipes
	if req.FromDatabase {
		if s.db == nil {
			http.Error(w, "no database configured", http.StatusBadRequest)
			return
		}
		var err error
		recipes, err = s.db.GetRecipes(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
	}

	var pop analysis.PopularityProvider
	if len(req.Popularity) > 0 {
		pop = namePopularity(req.Popularity)
	}

	// Free-text zones fold to benchmark zone keys before the advisories run.
	if req.Profile != nil && req.Profile.Zone != "" {
		req.Profile.Zone = s.zones.Resolve(r.Context(), req.Profile.Zone)
	}

	menu, err := s.engineFor(pop).AnalyzeMenu(r.Context(), recipes, s.settingsOr(req.Settings), req.Overrides, req.Profile)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := analyzeMenuResponse{MenuReport: menu}
	if req.Narrate {
		summary, err := s.narrator.Narrate(r.Context(), menu)
		if err != nil {
			s.log.Warn("narration degraded", "error", err)
		}
		resp.Summary = summary
	}
	s.respond(w, http.StatusOK, resp)
}

// namePopularity scores dishes by recipe name, neutral when absent.
type namePopularity map[string]float64

func (p namePopularity) Popularity(_ int64, name string) float64 {
	if score, ok := p[name]; ok {
		return score
	}
	return 50
}

type pricingRequest struct {
	TotalCost    float64  `json:"totalCost"`
	TargetMargin *float64 `json:"targetMargin,omitempty"`
	VATRate      *float64 `json:"vatRate,omitempty"`
}

func (s *server) pricingHandler(w http.ResponseWriter, r *http.Request) {
	var req pricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	margin := s.cfg.DefaultTargetMargin
	if req.TargetMargin != nil {
		margin = *req.TargetMargin
	}
	vat := s.cfg.DefaultVATRate
	if req.VATRate != nil {
		vat = *req.VATRate
	}

	result, err := pricing.SuggestPrice(req.TotalCost, margin, vat)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, result)
}

type benchmarkRequest struct {
	Price       float64 `json:"price"`
	Margin      float64 `json:"margin"`
	Zone        string  `json:"zone"`
	CuisineType string  `json:"cuisineType"`
	PriceRange  string  `json:"priceRange"`
}

func (s *server) benchmarkHandler(w http.ResponseWriter, r *http.Request) {
	var req benchmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	zone := s.zones.Resolve(r.Context(), req.Zone)
	result, err := s.comparator.Compare(req.Price, req.Margin, zone, req.CuisineType, req.PriceRange)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, result)
}

func (s *server) copilotHandler(w http.ResponseWriter, r *http.Request) {
	var report models.MenuReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.OpenAITimeout)
	defer cancel()

	summary, err := s.narrator.Narrate(ctx, report)
	if err != nil {
		// The narrator falls back to its deterministic digest on API failure.
		s.log.Warn("narration degraded", "error", err)
	}
	s.respond(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status": "ok",
		"stats":  s.engine.GetStats(),
	}
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			s.respond(w, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}
	s.respond(w, http.StatusOK, status)
}

func (s *server) respond(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", "error", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrBenchmarkUnavailable):
		http.Error(w, err.Error(), http.StatusNotFound)
	case apperrors.IsKind(err, &apperrors.ValidationError{}):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case apperrors.IsKind(err, &apperrors.DBError{}):
		s.log.Error("database failure", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	case apperrors.IsKind(err, &apperrors.ExternalAPIError{}):
		s.log.Error("external service failure", "error", err)
		http.Error(w, "upstream service error", http.StatusBadGateway)
	default:
		s.log.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
