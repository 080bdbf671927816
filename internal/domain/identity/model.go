package identity

import (
	"fmt"
	"strings"

	"github.com/healthify/portal/internal/platform/fhir"
)

// PatientInput is a patient registration as entered by a registrar or
// generated by the seed command.
type PatientInput struct {
	Family      string      `form:"family" validate:"required,max=100"`
	Given       []string    `form:"given" validate:"required,min=1,dive,required,max=100"`
	Gender      fhir.Gender `form:"gender" validate:"required"`
	BirthDate   string      `form:"birth_date" validate:"omitempty,fhirdate"`
	NIC         string      `form:"nic" validate:"omitempty,max=12"`
	Phone       string      `form:"phone" validate:"omitempty,lkphone"`
	Email       string      `form:"email" validate:"omitempty,email"`
	AddressLine []string    `form:"address_line"`
	City        string      `form:"city"`
	State       string      `form:"state"`
	PostalCode  string      `form:"postal_code"`
}

// Record builds the patients row. Every repeated FHIR element is built with
// the shape helpers so denormalized text fields are filled in.
func (in PatientInput) Record() (fhir.PatientRecord, error) {
	if !in.Gender.Valid() {
		return fhir.PatientRecord{}, fmt.Errorf("invalid gender %q", in.Gender)
	}
	if in.BirthDate != "" && !fhir.ValidateDate(in.BirthDate) {
		return fhir.PatientRecord{}, fmt.Errorf("invalid birth date %q", in.BirthDate)
	}

	var identifiers []fhir.Identifier
	if in.NIC != "" {
		identifiers = append(identifiers, fhir.NewSriLankanNICIdentifier(in.NIC))
	}
	names := []fhir.HumanName{fhir.NewHumanName(strings.TrimSpace(in.Family), trimAll(in.Given), fhir.NameOfficial)}
	telecom := contacts(in.Phone, in.Email)
	var addresses []fhir.Address
	if len(in.AddressLine) > 0 || in.City != "" {
		addresses = append(addresses, fhir.NewAddress(in.AddressLine, in.City, in.State, in.PostalCode, "", fhir.AddressHome))
	}

	active := true
	rec := fhir.PatientRecord{Active: &active, Gender: in.Gender, BirthDate: in.BirthDate}
	var err error
	if rec.Identifier, err = encodeIf(len(identifiers) > 0, identifiers); err != nil {
		return rec, err
	}
	if rec.Name, err = fhir.Encode(names); err != nil {
		return rec, err
	}
	if rec.Telecom, err = encodeIf(len(telecom) > 0, telecom); err != nil {
		return rec, err
	}
	if rec.Address, err = encodeIf(len(addresses) > 0, addresses); err != nil {
		return rec, err
	}
	return rec, nil
}

// Qualification is the FHIR Practitioner.qualification element.
type Qualification struct {
	Identifier []fhir.Identifier    `json:"identifier,omitempty"`
	Code       fhir.CodeableConcept `json:"code"`
}

// PractitionerInput registers a clinician with their SLMC registration.
type PractitionerInput struct {
	Family        string      `form:"family" validate:"required,max=100"`
	Given         []string    `form:"given" validate:"required,min=1,dive,required,max=100"`
	Prefix        string      `form:"prefix"`
	Gender        fhir.Gender `form:"gender" validate:"omitempty"`
	SLMCNumber    string      `form:"slmc_number" validate:"required,max=20"`
	SpecialtyCode string      `form:"specialty_code"`
	Specialty     string      `form:"specialty" validate:"required"`
	Phone         string      `form:"phone" validate:"omitempty,lkphone"`
	Email         string      `form:"email" validate:"omitempty,email"`
}

func (in PractitionerInput) Record() (fhir.PractitionerRecord, error) {
	if in.Gender != "" && !in.Gender.Valid() {
		return fhir.PractitionerRecord{}, fmt.Errorf("invalid gender %q", in.Gender)
	}
	name := fhir.NewHumanName(strings.TrimSpace(in.Family), trimAll(in.Given), fhir.NameOfficial)
	if in.Prefix != "" {
		name.Prefix = []string{in.Prefix}
	}
	slmc := fhir.NewIdentifier(fhir.SystemSLMC, in.SLMCNumber, fhir.IdentifierOfficial)
	quals := []Qualification{{
		Identifier: []fhir.Identifier{slmc},
		Code:       fhir.NewCodeableConcept(fhir.SystemSNOMED, in.SpecialtyCode, in.Specialty),
	}}

	active := true
	rec := fhir.PractitionerRecord{Active: &active, Gender: in.Gender}
	var err error
	if rec.Identifier, err = fhir.Encode([]fhir.Identifier{slmc}); err != nil {
		return rec, err
	}
	if rec.Name, err = fhir.Encode([]fhir.HumanName{name}); err != nil {
		return rec, err
	}
	if tel := contacts(in.Phone, in.Email); len(tel) > 0 {
		if rec.Telecom, err = fhir.Encode(tel); err != nil {
			return rec, err
		}
	}
	if rec.Qualification, err = fhir.Encode(quals); err != nil {
		return rec, err
	}
	return rec, nil
}

func contacts(phone, email string) []fhir.ContactPoint {
	var out []fhir.ContactPoint
	if phone != "" {
		out = append(out, fhir.NewSriLankanPhoneContact(phone))
	}
	if email != "" {
		out = append(out, fhir.NewContactPoint(fhir.ContactEmail, email, fhir.ContactHome))
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func encodeIf(ok bool, v interface{}) ([]byte, error) {
	if !ok {
		return nil, nil
	}
	return fhir.Encode(v)
}

// DisplayName is the first official name of a stored record, or "".
func DisplayName(raw []byte) string {
	names, err := fhir.DecodeNames(raw)
	if err != nil || len(names) == 0 {
		return ""
	}
	if names[0].Text != "" {
		return names[0].Text
	}
	return strings.TrimSpace(strings.Join(names[0].Given, " ") + " " + names[0].Family)
}
