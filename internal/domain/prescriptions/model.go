package prescriptions

import (
	"errors"
	"time"

	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/ui/components"
)

var (
	ErrNotFound      = errors.New("prescription not found")
	ErrNotRefillable = errors.New("prescription is completed and cannot be refilled")
	ErrNoRefillsLeft = errors.New("no refills left, contact the prescriber")
	ErrRefillPending = errors.New("a refill has already been requested")
)

type Prescription struct {
	ID           string
	Medication   string
	Dosage       string
	Frequency    string
	Prescribed   string
	PrescribedBy string
	ProviderID   string
	RefillsLeft  int
	NextRefill   string
	Completed    string
	Status       components.PrescriptionStatus
	RequestedAt  *time.Time
}

// Current is true for prescriptions still being taken.
func (p Prescription) Current() bool {
	return p.Status != components.PrescriptionCompleted
}

func (p Prescription) RefillPending() bool { return p.RequestedAt != nil }

// CanRequestRefill is true when the patient can ask for a refill online.
// Current prescriptions with no refills left need a conversation with the
// prescriber instead.
func (p Prescription) CanRequestRefill() bool {
	return p.Current() && p.RefillsLeft > 0 && !p.RefillPending()
}

func (p Prescription) checkRefill() error {
	switch {
	case !p.Current():
		return ErrNotRefillable
	case p.RefillsLeft <= 0:
		return ErrNoRefillsLeft
	case p.RefillPending():
		return ErrRefillPending
	}
	return nil
}

// ToFHIR renders the prescription as a MedicationRequest.
func (p Prescription) ToFHIR(patient fhir.Reference) map[string]interface{} {
	status := "active"
	if !p.Current() {
		status = "completed"
	}
	dispense := map[string]interface{}{"numberOfRepeatsAllowed": p.RefillsLeft}
	if p.Completed != "" {
		dispense["validityPeriod"] = fhir.Period{Start: p.Prescribed, End: p.Completed}
	}
	result := map[string]interface{}{
		"resourceType": "MedicationRequest",
		"id":           p.ID,
		"status":       status,
		"intent":       "order",
		"medicationCodeableConcept": fhir.CodeableConcept{
			Text: p.Medication + " " + p.Dosage,
		},
		"subject":   patient,
		"requester": fhir.NewReference("Practitioner", p.ProviderID, p.PrescribedBy),
		"dosageInstruction": []map[string]interface{}{
			{"text": p.Frequency},
		},
		"dispenseRequest": dispense,
	}
	if fhir.ValidateDate(p.Prescribed) {
		result["authoredOn"] = p.Prescribed
	}
	return result
}

// Stats are the counters above the list.
type Stats struct {
	Active         int
	RefillsLeft    int
	NeedsAttention int
}

func statsFor(ps []Prescription) Stats {
	var s Stats
	for _, p := range ps {
		if !p.Current() {
			continue
		}
		s.Active++
		s.RefillsLeft += p.RefillsLeft
		if p.Status == components.PrescriptionNeedsRefill {
			s.NeedsAttention++
		}
	}
	return s
}

func samplePrescriptions() []Prescription {
	return []Prescription{
		{ID: "1", Medication: "Lisinopril", Dosage: "10mg", Frequency: "Once daily", Prescribed: "2025-01-15",
			PrescribedBy: "Dr. Nimal Silva", ProviderID: "1", RefillsLeft: 2, NextRefill: "2025-02-15",
			Status: components.PrescriptionActive},
		{ID: "2", Medication: "Atorvastatin", Dosage: "20mg", Frequency: "Once daily at bedtime", Prescribed: "2025-01-15",
			PrescribedBy: "Dr. Nimal Silva", ProviderID: "1", Status: components.PrescriptionNeedsRefill},
		{ID: "3", Medication: "Amoxicillin", Dosage: "500mg", Frequency: "Three times daily", Prescribed: "2024-12-20",
			PrescribedBy: "Dr. Kamani Perera", ProviderID: "3", Completed: "2024-12-27",
			Status: components.PrescriptionCompleted},
	}
}
