package records

import (
	"testing"

	"github.com/healthify/portal/internal/ui/components"
)

func TestChart_Summary(t *testing.T) {
	s := sampleChart().Summary()
	if s.LatestBP != "120/80 mmHg" {
		t.Errorf("LatestBP = %q", s.LatestBP)
	}
	if s.RecentLabs != 2 {
		t.Errorf("RecentLabs = %d, want 2", s.RecentLabs)
	}
	if s.Managed != 2 {
		t.Errorf("Managed = %d, want 2", s.Managed)
	}
	if len(s.Severe) != 1 || s.Severe[0].Allergen != "Penicillin" {
		t.Errorf("expected only Penicillin as severe, got %+v", s.Severe)
	}
}

func TestChart_Summary_Empty(t *testing.T) {
	s := (&Chart{}).Summary()
	if s.LatestBP != "" || s.RecentLabs != 0 || s.Managed != 0 || s.Severe != nil {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestBadges(t *testing.T) {
	if b := (LabResult{Status: LabImproved}).Badge(); b.Label != "Improved" || b.Variant != components.BadgeDefault {
		t.Errorf("unexpected lab badge %+v", b)
	}
	if b := (Vital{}).Badge(); b.Variant != components.BadgeWarning {
		t.Errorf("abnormal vital should warn, got %+v", b)
	}
	if b := (Condition{Status: "Improving"}).StatusBadge(); b.Variant == components.BadgeSuccess {
		t.Error("an improving condition is not yet managed")
	}
	for _, a := range sampleChart().Allergies {
		if _, err := components.ParseSeverity(string(a.Severity)); err != nil {
			t.Errorf("allergy %s: %v", a.Allergen, err)
		}
	}
}
