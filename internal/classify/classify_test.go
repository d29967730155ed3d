package classify

import (
	"testing"

	"menu-profit-engine/internal/models"
)

func TestClassify_RemoveDominatesPopularity(t *testing.T) {
	// margin 25 is below the removal floor; popularity is irrelevant.
	if got := Classify(25, 50); got != models.ClassRemove {
		t.Fatalf("expected remove, got %s", got)
	}
	if got := Classify(25, 99); got != models.ClassRemove {
		t.Fatalf("expected remove even at peak popularity, got %s", got)
	}
}

func TestClassify_UnpopularTriggersOptimize(t *testing.T) {
	// margin 55 clears the optimize-margin bar but popularity 20 does not.
	if got := Classify(55, 20); got != models.ClassOptimize {
		t.Fatalf("expected optimize, got %s", got)
	}
}

func TestClassify_Star(t *testing.T) {
	if got := Classify(65, 80); got != models.ClassStar {
		t.Fatalf("expected star, got %s", got)
	}
}

func TestClassify_GoodFallback(t *testing.T) {
	// Clears remove and optimize, misses star.
	if got := Classify(55, 50); got != models.ClassGood {
		t.Fatalf("expected good, got %s", got)
	}
}

func TestClassify_TotalOverExtremeInputs(t *testing.T) {
	valid := map[models.Classification]bool{
		models.ClassRemove: true, models.ClassOptimize: true,
		models.ClassGood: true, models.ClassStar: true,
	}
	for _, m := range []float64{-1e9, -50, 0, 29.999, 30, 50, 60, 100, 1e9} {
		for _, p := range []float64{-1e9, 0, 30, 70, 100, 1e9} {
			if got := Classify(m, p); !valid[got] {
				t.Fatalf("non-label result %q for (%v,%v)", got, m, p)
			}
		}
	}
}

func TestClassify_BoundaryValues(t *testing.T) {
	// Exactly at thresholds: 30 is not < 30, 60 is not > 60, 70 is not > 70.
	if got := Classify(30, 80); got != models.ClassOptimize {
		t.Fatalf("margin exactly 30 with high popularity should optimize, got %s", got)
	}
	if got := Classify(60, 90); got != models.ClassGood {
		t.Fatalf("margin exactly 60 misses star, got %s", got)
	}
	if got := Classify(75, 70); got != models.ClassGood {
		t.Fatalf("popularity exactly 70 misses star, got %s", got)
	}
}

func TestRuleOrder_Inspectable(t *testing.T) {
	order := RuleOrder()
	if len(order) != 4 || order[0] != "low-margin" || order[3] != "good" {
		t.Fatalf("unexpected rule order: %v", order)
	}
}
