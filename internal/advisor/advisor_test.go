package advisor

import (
	"reflect"
	"testing"
	"time"

	"menu-profit-engine/internal/models"
)

func sampleResults() []models.RecipeResult {
	return []models.RecipeResult{
		{Name: "Burger maison", CostPerPortion: 4.2, Margin: 35, Popularity: 80, Classification: models.ClassOptimize},
		{Name: "Homard grillé", CostPerPortion: 12.5, Margin: 55, Popularity: 25, Classification: models.ClassOptimize},
		{Name: "Risotto", CostPerPortion: 3.1, Margin: 68, Popularity: 85, Classification: models.ClassStar},
		{Name: "Salade verte", CostPerPortion: 1.2, Margin: 58, Popularity: 45, Classification: models.ClassGood},
	}
}

func TestRecommendations_GroupsAndOrder(t *testing.T) {
	recs := Recommendations(sampleResults())
	types := make([]string, len(recs))
	for i, r := range recs {
		types[i] = r.Type
	}
	want := []string{"low-margin", "high-cost", "unpopular", "star"}
	if !reflect.DeepEqual(types, want) {
		t.Fatalf("expected group order %v, got %v", want, types)
	}
}

func TestRecommendations_Membership(t *testing.T) {
	recs := Recommendations(sampleResults())
	byType := map[string]models.Recommendation{}
	for _, r := range recs {
		byType[r.Type] = r
	}
	if got := byType["low-margin"].Recipes; len(got) != 1 || got[0] != "Burger maison" {
		t.Fatalf("unexpected low-margin members: %v", got)
	}
	if got := byType["high-cost"].Recipes; len(got) != 1 || got[0] != "Homard grillé" {
		t.Fatalf("unexpected high-cost members: %v", got)
	}
	if got := byType["unpopular"].Recipes; len(got) != 1 || got[0] != "Homard grillé" {
		t.Fatalf("unexpected unpopular members: %v", got)
	}
	if got := byType["star"].Recipes; len(got) != 1 || got[0] != "Risotto" {
		t.Fatalf("unexpected star members: %v", got)
	}
}

func TestRecommendations_EmptyGroupsOmitted(t *testing.T) {
	recs := Recommendations([]models.RecipeResult{
		{Name: "Salade", CostPerPortion: 1.0, Margin: 58, Popularity: 45, Classification: models.ClassGood},
	})
	if len(recs) != 0 {
		t.Fatalf("expected no recommendations for a healthy menu, got %v", recs)
	}
}

func TestAlerts_SeasonalAndCompetitive(t *testing.T) {
	profile := &models.RestaurantProfile{Zone: "paris", CuisineType: "french", PriceRange: "mid"}
	alerts := Alerts(nil, profile, time.June)

	var categories []string
	for _, a := range alerts {
		categories = append(categories, a.Category)
	}
	want := []string{"seasonal", "competitive-pricing"}
	if !reflect.DeepEqual(categories, want) {
		t.Fatalf("expected %v, got %v", want, categories)
	}
}

func TestAlerts_NoProfileNoCompetitiveAlert(t *testing.T) {
	alerts := Alerts(nil, nil, time.June)
	for _, a := range alerts {
		if a.Category == "competitive-pricing" {
			t.Fatal("competitive alert emitted without a profile")
		}
	}
}

func TestAlerts_Reproducible(t *testing.T) {
	profile := &models.RestaurantProfile{Zone: "lyon", CuisineType: "french", PriceRange: "mid"}
	first := Alerts(sampleResults(), profile, time.October)
	for i := 0; i < 3; i++ {
		again := Alerts(sampleResults(), profile, time.October)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("alert set not reproducible:\n%+v\nvs\n%+v", first, again)
		}
	}
}
