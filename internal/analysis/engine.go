// Package analysis orchestrates the profitability pipeline: costing,
// pricing, classification, then restaurant-level advisories. Every step is
// pure over its inputs, so menu batches fan out across a bounded worker pool
// without locks around shared reference data.
package analysis

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"menu-profit-engine/internal/advisor"
	"menu-profit-engine/internal/classify"
	"menu-profit-engine/internal/costing"
	"menu-profit-engine/internal/models"
	"menu-profit-engine/internal/pricing"
	"menu-profit-engine/pkg/logging"
)

// PopularityProvider supplies the 0-100 demand score for a dish. How real
// popularity figures would be sourced in production is undefined upstream,
// so the engine only ever sees this interface; FixedPopularity is the
// deterministic default and test double.
type PopularityProvider interface {
	Popularity(recipeID int64, name string) float64
}

// FixedPopularity returns the same score for every dish.
type FixedPopularity struct {
	Score float64
}

func (p FixedPopularity) Popularity(int64, string) float64 { return p.Score }

// Config tunes the batch worker pool.
type Config struct {
	WorkerCount int
}

func DefaultConfig() Config { return Config{WorkerCount: 8} }

// Stats tracks engine activity counters.
type Stats struct {
	RecipesAnalyzed int64
	MenusAnalyzed   int64
	Incomplete      int64 // analyses that returned a degraded cost breakdown
}

// Engine runs the pipeline. Stateless apart from counters; one instance
// serves arbitrarily many concurrent callers.
type Engine struct {
	aggregator *costing.Aggregator
	popularity PopularityProvider
	workers    int
	log        *logging.Logger

	recipesAnalyzed atomic.Int64
	menusAnalyzed   atomic.Int64
	incomplete      atomic.Int64
}

// New builds an engine. A nil popularity provider defaults to a neutral
// fixed score.
func New(aggregator *costing.Aggregator, popularity PopularityProvider, cfg Config, log *logging.Logger) *Engine {
	if popularity == nil {
		popularity = FixedPopularity{Score: 50}
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	if log == nil {
		log = logging.New(logging.DefaultConfig())
	}
	return &Engine{
		aggregator: aggregator,
		popularity: popularity,
		workers:    cfg.WorkerCount,
		log:        log.WithComponent("analysis"),
	}
}

// AnalyzeRecipe runs the full pipeline for one recipe. The margin is the
// real margin when the recipe carries an existing price, otherwise the
// target margin of the cost-plus suggestion. Hard failures are limited to
// invalid portions and an impossible target margin; partial ingredient data
// degrades the breakdown instead.
func (e *Engine) AnalyzeRecipe(ctx context.Context, recipe models.Recipe, settings models.Settings, overrides costing.Overrides) (models.RecipeReport, error) {
	if err := ctx.Err(); err != nil {
		return models.RecipeReport{}, err
	}

	breakdown, err := e.aggregator.Cost(recipe, settings, overrides)
	if err != nil {
		return models.RecipeReport{}, err
	}

	suggestion, err := pricing.SuggestPrice(breakdown.TotalCostWithOverhead, settings.TargetMargin, settings.VATRate)
	if err != nil {
		return models.RecipeReport{}, err
	}

	margin := suggestion.Margin
	if recipe.Price != nil && *recipe.Price > 0 {
		margin = pricing.MarginFromPrice(*recipe.Price, breakdown.TotalCostWithOverhead)
	}

	popularity := e.popularity.Popularity(recipe.ID, recipe.Name)
	class := classify.Classify(margin, popularity)

	e.recipesAnalyzed.Add(1)
	if !breakdown.Complete {
		e.incomplete.Add(1)
		e.log.Warn("cost breakdown incomplete",
			"recipe", recipe.Name, "unresolved", len(breakdown.Unresolved))
	}

	return models.RecipeReport{
		ReportID:       uuid.NewString(),
		RecipeID:       recipe.ID,
		Name:           recipe.Name,
		Cost:           breakdown,
		Pricing:        &suggestion,
		Margin:         margin,
		Popularity:     popularity,
		Classification: class,
		GeneratedAt:    time.Now().UTC(),
	}, nil
}

// AnalyzeMenu analyzes a batch of recipes concurrently and derives the
// restaurant-level recommendations and alerts. Input order is preserved in
// the output. The first hard error aborts the batch.
func (e *Engine) AnalyzeMenu(ctx context.Context, recipes []models.Recipe, settings models.Settings, overrides costing.Overrides, profile *models.RestaurantProfile) (models.MenuReport, error) {
	type job struct {
		idx    int
		recipe models.Recipe
	}
	type outcome struct {
		idx    int
		report models.RecipeReport
		err    error
	}

	jobs := make(chan job)
	outcomes := make(chan outcome, len(recipes))

	workers := e.workers
	if workers > len(recipes) {
		workers = len(recipes)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				report, err := e.AnalyzeRecipe(ctx, j.recipe, settings, overrides)
				outcomes <- outcome{idx: j.idx, report: report, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, r := range recipes {
			select {
			case jobs <- job{idx: i, recipe: r}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	reports := make([]models.RecipeReport, len(recipes))
	var firstErr error
	for o := range outcomes {
		if o.err != nil && firstErr == nil {
			firstErr = o.err
			continue
		}
		if o.err == nil {
			reports[o.idx] = o.report
		}
	}
	if firstErr != nil {
		return models.MenuReport{}, firstErr
	}
	if err := ctx.Err(); err != nil {
		return models.MenuReport{}, err
	}

	results := make([]models.RecipeResult, len(reports))
	for i, r := range reports {
		results[i] = models.RecipeResult{
			Name:           r.Name,
			CostPerPortion: r.Cost.TotalCostWithOverhead,
			Margin:         r.Margin,
			Popularity:     r.Popularity,
			Classification: r.Classification,
		}
	}

	e.menusAnalyzed.Add(1)
	e.log.Info("menu analyzed", "recipes", len(recipes))

	return models.MenuReport{
		ReportID:        uuid.NewString(),
		Reports:         reports,
		Recommendations: advisor.Recommendations(results),
		Alerts:          advisor.Alerts(results, profile, time.Now().UTC().Month()),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// GetStats returns a snapshot of activity counters.
func (e *Engine) GetStats() Stats {
	return Stats{
		RecipesAnalyzed: e.recipesAnalyzed.Load(),
		MenusAnalyzed:   e.menusAnalyzed.Load(),
		Incomplete:      e.incomplete.Load(),
	}
}
