package constants

// Centralized threshold values used across the engine.
// Keep these stable; change deliberately and document why.
// These are not configuration knobs; use pkg/config for env-driven settings.

const (
	// Classification thresholds (margin and popularity in percent).
	// Evaluation order matters: remove beats optimize beats star beats good.
	ClassifyRemoveMargin    = 30.0
	ClassifyOptimizeMargin  = 50.0
	ClassifyOptimizePopular = 30.0
	ClassifyStarMargin      = 60.0
	ClassifyStarPopular     = 70.0

	// Benchmark recommendation thresholds.
	BenchmarkUnderpricedPct = -15.0 // price this far below market avg -> raise
	BenchmarkOverpricedPct  = 20.0  // price this far above market avg -> lower
	BenchmarkMarginGapPts   = -10.0 // margin this far below market avg -> improve

	// Restaurant-level advisory group thresholds.
	AdvisorLowMarginPct    = 40.0
	AdvisorHighCostPerUnit = 8.0 // absolute currency units per portion
	AdvisorUnpopularPct    = 30.0

	// Price resolution fallback when an ingredient matches nothing in the
	// reference book (per canonical unit).
	DefaultUnitPrice = 2.0

	// Canonical unit conversion factors.
	GramsPerKilogram    = 1000.0
	MillilitersPerLiter = 1000.0
)
