package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/platform/baas"
	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/web"
)

// -- Mock Patient Repository --

type mockPatientRepo struct {
	patients map[string]*fhir.PatientRecord
	next     int
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[string]*fhir.PatientRecord)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *fhir.PatientRecord) error {
	m.next++
	p.ID = fmt.Sprintf("p%d", m.next)
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id string) (*fhir.PatientRecord, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("get patient %s: %w", id, baas.ErrNotFound)
	}
	return p, nil
}

func (m *mockPatientRepo) FindByIdentifier(_ context.Context, system, value string) (*fhir.PatientRecord, error) {
	for _, p := range m.patients {
		var ids []fhir.Identifier
		if len(p.Identifier) > 0 {
			if err := json.Unmarshal(p.Identifier, &ids); err != nil {
				return nil, err
			}
		}
		for _, id := range ids {
			if id.System == system && id.Value == value {
				return p, nil
			}
		}
	}
	return nil, baas.ErrNotFound
}

// -- Mock Practitioner Repository --

type mockPractitionerRepo struct {
	practitioners map[string]*fhir.PractitionerRecord
	order         []string
}

func newMockPractitionerRepo() *mockPractitionerRepo {
	return &mockPractitionerRepo{practitioners: make(map[string]*fhir.PractitionerRecord)}
}

func (m *mockPractitionerRepo) Create(_ context.Context, p *fhir.PractitionerRecord) error {
	p.ID = fmt.Sprintf("pr%d", len(m.order)+1)
	m.practitioners[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockPractitionerRepo) GetByID(_ context.Context, id string) (*fhir.PractitionerRecord, error) {
	p, ok := m.practitioners[id]
	if !ok {
		return nil, fmt.Errorf("get practitioner %s: %w", id, baas.ErrNotFound)
	}
	return p, nil
}

func (m *mockPractitionerRepo) List(_ context.Context, limit, offset int) ([]fhir.PractitionerRecord, error) {
	var out []fhir.PractitionerRecord
	for i := offset; i < len(m.order) && len(out) < limit; i++ {
		out = append(out, *m.practitioners[m.order[i]])
	}
	return out, nil
}

func newTestService() (*Service, *mockPatientRepo, *mockPractitionerRepo) {
	pr := newMockPatientRepo()
	prr := newMockPractitionerRepo()
	return NewService(pr, prr, web.NewValidator(), zerolog.Nop()), pr, prr
}

func johnPerera() PatientInput {
	return PatientInput{
		Family:      "Perera",
		Given:       []string{"John"},
		Gender:      fhir.GenderMale,
		BirthDate:   "1985-04-12",
		NIC:         "198510302345",
		Phone:       "+94771234567",
		Email:       "john.perera@gmail.com",
		AddressLine: []string{"12 Galle Road"},
		City:        "Colombo",
		State:       "Western",
		PostalCode:  "00300",
	}
}

// -- Patient Tests --

func TestService_RegisterPatient(t *testing.T) {
	svc, repo, _ := newTestService()
	rec, err := svc.RegisterPatient(context.Background(), johnPerera())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == "" || repo.patients[rec.ID] == nil {
		t.Fatal("expected patient to be stored")
	}
	if rec.Active == nil || !*rec.Active {
		t.Error("expected new patient to be active")
	}

	var names []fhir.HumanName
	if err := json.Unmarshal(rec.Name, &names); err != nil {
		t.Fatal(err)
	}
	if names[0].Text != "John Perera" || names[0].Use != fhir.NameOfficial {
		t.Errorf("unexpected name %+v", names[0])
	}
	var addrs []fhir.Address
	if err := json.Unmarshal(rec.Address, &addrs); err != nil {
		t.Fatal(err)
	}
	if addrs[0].Text != "12 Galle Road, Colombo, Western 00300, LK" {
		t.Errorf("unexpected address text %q", addrs[0].Text)
	}
	if !strings.Contains(string(rec.Telecom), `"use":"mobile"`) {
		t.Errorf("expected mobile phone contact, got %s", rec.Telecom)
	}
}

func TestService_RegisterPatient_DuplicateNIC(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.RegisterPatient(context.Background(), johnPerera()); err != nil {
		t.Fatal(err)
	}
	_, err := svc.RegisterPatient(context.Background(), johnPerera())
	if !errors.Is(err, ErrDuplicatePatient) {
		t.Errorf("expected ErrDuplicatePatient, got %v", err)
	}
}

func TestService_RegisterPatient_Invalid(t *testing.T) {
	svc, _, _ := newTestService()

	missing := johnPerera()
	missing.Family = ""
	if _, err := svc.RegisterPatient(context.Background(), missing); web.FieldErrors(err)["family"] == "" {
		t.Errorf("expected family to be required, got %v", err)
	}

	badDate := johnPerera()
	badDate.BirthDate = "1985/04/12"
	if _, err := svc.RegisterPatient(context.Background(), badDate); web.FieldErrors(err)["birth_date"] == "" {
		t.Errorf("expected birth_date error, got %v", err)
	}

	badGender := johnPerera()
	badGender.Gender = "m"
	if _, err := svc.RegisterPatient(context.Background(), badGender); err == nil {
		t.Error("expected error for invalid gender")
	}

	badPhone := johnPerera()
	badPhone.Phone = "12345"
	if _, err := svc.RegisterPatient(context.Background(), badPhone); web.FieldErrors(err)["phone"] == "" {
		t.Errorf("expected phone error, got %v", err)
	}
}

func TestService_GetPatient_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.GetPatient(context.Background(), "missing"); !errors.Is(err, baas.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetPatient(context.Background(), ""); !errors.Is(err, baas.ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty id, got %v", err)
	}
}

// -- Practitioner Tests --

func nimalSilva() PractitionerInput {
	return PractitionerInput{
		Family:        "Silva",
		Given:         []string{"Nimal"},
		Prefix:        "Dr.",
		Gender:        fhir.GenderMale,
		SLMCNumber:    "SLMC-12345",
		SpecialtyCode: "394579002",
		Specialty:     "Cardiology",
	}
}

func TestService_RegisterPractitioner(t *testing.T) {
	svc, _, repo := newTestService()
	rec, err := svc.RegisterPractitioner(context.Background(), nimalSilva())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.practitioners[rec.ID] == nil {
		t.Fatal("expected practitioner to be stored")
	}
	var quals []Qualification
	if err := json.Unmarshal(rec.Qualification, &quals); err != nil {
		t.Fatal(err)
	}
	if quals[0].Identifier[0].System != fhir.SystemSLMC || quals[0].Code.Text != "Cardiology" {
		t.Errorf("unexpected qualification %+v", quals[0])
	}
	if got := DisplayName(rec.Name); got != "Nimal Silva" {
		t.Errorf("expected Nimal Silva, got %q", got)
	}
}

func TestService_RegisterPractitioner_MissingSLMC(t *testing.T) {
	svc, _, _ := newTestService()
	in := nimalSilva()
	in.SLMCNumber = ""
	if _, err := svc.RegisterPractitioner(context.Background(), in); web.FieldErrors(err)["slmc_number"] == "" {
		t.Errorf("expected slmc_number error, got %v", err)
	}
}

func TestService_ListPractitioners(t *testing.T) {
	svc, _, _ := newTestService()
	for i := 0; i < 3; i++ {
		if _, err := svc.RegisterPractitioner(context.Background(), nimalSilva()); err != nil {
			t.Fatal(err)
		}
	}
	page, err := svc.ListPractitioners(context.Background(), 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].ID != "pr2" {
		t.Errorf("unexpected page %+v", page)
	}
}
