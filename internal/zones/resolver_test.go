package zones

import (
	"context"
	"testing"
)

func TestResolve_StaticMatch(t *testing.T) {
	r, err := NewResolver("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Resolve(context.Background(), "12 rue de la République, Lyon"); got != "lyon" {
		t.Fatalf("expected lyon, got %q", got)
	}
}

func TestResolve_UnknownFoldsToLower(t *testing.T) {
	r, _ := NewResolver("")
	if got := r.Resolve(context.Background(), "  Strasbourg "); got != "strasbourg" {
		t.Fatalf("expected folded passthrough, got %q", got)
	}
}

func TestResolve_OrderedContainment(t *testing.T) {
	r, _ := NewResolver("")
	if got := r.Resolve(context.Background(), "PARIS 11e"); got != "paris" {
		t.Fatalf("expected paris, got %q", got)
	}
}
