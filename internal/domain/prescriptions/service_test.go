package prescriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/platform/auth"
	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/ui/components"
)

var testNow = time.Date(2025, 1, 27, 9, 0, 0, 0, time.UTC)

func newTestService() *Service {
	svc := NewService(NewMemoryRepo(), zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func userCtx(id string) context.Context {
	return auth.WithSession(context.Background(), &auth.Session{UserID: id, Role: auth.RolePatient})
}

func TestService_Lists(t *testing.T) {
	current, history, err := newTestService().Lists(userCtx("u-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(current) != 2 || current[0].Medication != "Lisinopril" || current[1].Status != components.PrescriptionNeedsRefill {
		t.Errorf("unexpected current list: %+v", current)
	}
	if len(history) != 1 || history[0].Medication != "Amoxicillin" {
		t.Errorf("unexpected history: %+v", history)
	}
	s := statsFor(current)
	if s != (Stats{Active: 2, RefillsLeft: 2, NeedsAttention: 1}) {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestService_RequestRefill(t *testing.T) {
	svc := newTestService()
	ctx := userCtx("u-1")
	p, err := svc.RequestRefill(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.RequestedAt == nil || !p.RequestedAt.Equal(testNow) {
		t.Errorf("expected request time recorded, got %v", p.RequestedAt)
	}
	stored, _ := svc.Get(ctx, "1")
	if !stored.RefillPending() || stored.CanRequestRefill() {
		t.Error("stored prescription should show a pending refill")
	}
	if _, err := svc.RequestRefill(ctx, "1"); !errors.Is(err, ErrRefillPending) {
		t.Errorf("expected ErrRefillPending, got %v", err)
	}
}

func TestService_RequestRefill_Rejects(t *testing.T) {
	tests := []struct {
		id   string
		want error
	}{
		{"2", ErrNoRefillsLeft},
		{"3", ErrNotRefillable},
		{"99", ErrNotFound},
	}
	svc := newTestService()
	for _, tt := range tests {
		if _, err := svc.RequestRefill(userCtx("u-1"), tt.id); !errors.Is(err, tt.want) {
			t.Errorf("RequestRefill(%s) = %v, want %v", tt.id, err, tt.want)
		}
	}
}

func TestService_RefillsArePerUser(t *testing.T) {
	svc := newTestService()
	if _, err := svc.RequestRefill(userCtx("u-1"), "1"); err != nil {
		t.Fatal(err)
	}
	p, err := svc.Get(userCtx("u-2"), "1")
	if err != nil {
		t.Fatal(err)
	}
	if p.RefillPending() {
		t.Error("another user's refill request leaked")
	}
}

func TestPrescription_ToFHIR(t *testing.T) {
	ps := samplePrescriptions()
	patient := fhir.NewReference("Patient", "p-1", "")

	active := ps[0].ToFHIR(patient)
	if active["resourceType"] != "MedicationRequest" || active["status"] != "active" || active["intent"] != "order" {
		t.Errorf("unexpected header fields: %v", active)
	}
	if active["authoredOn"] != "2025-01-15" {
		t.Errorf("authoredOn = %v", active["authoredOn"])
	}
	if req := active["requester"].(fhir.Reference); req.Reference != "Practitioner/1" || req.Display != "Dr. Nimal Silva" {
		t.Errorf("unexpected requester %+v", req)
	}
	if med := active["medicationCodeableConcept"].(fhir.CodeableConcept); med.Text != "Lisinopril 10mg" {
		t.Errorf("unexpected medication %+v", med)
	}

	done := ps[2].ToFHIR(patient)
	if done["status"] != "completed" {
		t.Errorf("completed prescription status = %v", done["status"])
	}
	dispense := done["dispenseRequest"].(map[string]interface{})
	if p := dispense["validityPeriod"].(fhir.Period); p.End != "2024-12-27" {
		t.Errorf("unexpected validity period %+v", p)
	}
}
