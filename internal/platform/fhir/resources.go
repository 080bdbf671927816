package fhir

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"
)

// PatientRecord is a row of the patients table. JSON columns stay raw so
// that whatever the backend stored is passed through unchanged.
type PatientRecord struct {
	ID                   string          `json:"id,omitempty"`
	CreatedAt            *time.Time      `json:"created_at,omitempty"`
	UpdatedAt            *time.Time      `json:"updated_at,omitempty"`
	Active               *bool           `json:"active,omitempty"`
	Identifier           json.RawMessage `json:"identifier,omitempty"`
	Name                 json.RawMessage `json:"name,omitempty"`
	Telecom              json.RawMessage `json:"telecom,omitempty"`
	Gender               Gender          `json:"gender,omitempty"`
	BirthDate            string          `json:"birth_date,omitempty"`
	Address              json.RawMessage `json:"address,omitempty"`
	MaritalStatus        json.RawMessage `json:"marital_status,omitempty"`
	Contact              json.RawMessage `json:"contact,omitempty"`
	Communication        json.RawMessage `json:"communication,omitempty"`
	GeneralPractitioner  json.RawMessage `json:"general_practitioner,omitempty"`
	ManagingOrganization string          `json:"managing_organization,omitempty"`
	Link                 json.RawMessage `json:"link,omitempty"`
	Extension            json.RawMessage `json:"extension,omitempty"`
	Meta                 json.RawMessage `json:"meta,omitempty"`
}

type Patient struct {
	ResourceType         string          `json:"resourceType"`
	ID                   string          `json:"id,omitempty"`
	Meta                 json.RawMessage `json:"meta,omitempty"`
	Active               *bool           `json:"active,omitempty"`
	Identifier           json.RawMessage `json:"identifier,omitempty"`
	Name                 json.RawMessage `json:"name,omitempty"`
	Telecom              json.RawMessage `json:"telecom,omitempty"`
	Gender               Gender          `json:"gender,omitempty"`
	BirthDate            string          `json:"birthDate,omitempty"`
	Address              json.RawMessage `json:"address,omitempty"`
	MaritalStatus        json.RawMessage `json:"maritalStatus,omitempty"`
	Contact              json.RawMessage `json:"contact,omitempty"`
	Communication        json.RawMessage `json:"communication,omitempty"`
	GeneralPractitioner  json.RawMessage `json:"generalPractitioner,omitempty"`
	ManagingOrganization *Reference      `json:"managingOrganization,omitempty"`
	Link                 json.RawMessage `json:"link,omitempty"`
	Extension            json.RawMessage `json:"extension,omitempty"`
}

func (p PatientRecord) ToFHIR() Patient {
	out := Patient{
		ResourceType:        "Patient",
		ID:                  p.ID,
		Meta:                raw(p.Meta),
		Active:              p.Active,
		Identifier:          raw(p.Identifier),
		Name:                raw(p.Name),
		Telecom:             raw(p.Telecom),
		Gender:              p.Gender,
		BirthDate:           p.BirthDate,
		Address:             raw(p.Address),
		MaritalStatus:       raw(p.MaritalStatus),
		Contact:             raw(p.Contact),
		Communication:       raw(p.Communication),
		GeneralPractitioner: raw(p.GeneralPractitioner),
		Link:                raw(p.Link),
		Extension:           raw(p.Extension),
	}
	if p.ManagingOrganization != "" {
		out.ManagingOrganization = &Reference{Reference: "Organization/" + p.ManagingOrganization}
	}
	return out
}

type PractitionerRecord struct {
	ID            string          `json:"id,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
	Active        *bool           `json:"active,omitempty"`
	Identifier    json.RawMessage `json:"identifier,omitempty"`
	Name          json.RawMessage `json:"name,omitempty"`
	Telecom       json.RawMessage `json:"telecom,omitempty"`
	Address       json.RawMessage `json:"address,omitempty"`
	Gender        Gender          `json:"gender,omitempty"`
	BirthDate     string          `json:"birth_date,omitempty"`
	Photo         json.RawMessage `json:"photo,omitempty"`
	Qualification json.RawMessage `json:"qualification,omitempty"`
	Communication json.RawMessage `json:"communication,omitempty"`
	Extension     json.RawMessage `json:"extension,omitempty"`
	Meta          json.RawMessage `json:"meta,omitempty"`
}

type Practitioner struct {
	ResourceType  string          `json:"resourceType"`
	ID            string          `json:"id,omitempty"`
	Meta          json.RawMessage `json:"meta,omitempty"`
	Active        *bool           `json:"active,omitempty"`
	Identifier    json.RawMessage `json:"identifier,omitempty"`
	Name          json.RawMessage `json:"name,omitempty"`
	Telecom       json.RawMessage `json:"telecom,omitempty"`
	Address       json.RawMessage `json:"address,omitempty"`
	Gender        Gender          `json:"gender,omitempty"`
	BirthDate     string          `json:"birthDate,omitempty"`
	Photo         json.RawMessage `json:"photo,omitempty"`
	Qualification json.RawMessage `json:"qualification,omitempty"`
	Communication json.RawMessage `json:"communication,omitempty"`
	Extension     json.RawMessage `json:"extension,omitempty"`
}

func (p PractitionerRecord) ToFHIR() Practitioner {
	return Practitioner{
		ResourceType:  "Practitioner",
		ID:            p.ID,
		Meta:          raw(p.Meta),
		Active:        p.Active,
		Identifier:    raw(p.Identifier),
		Name:          raw(p.Name),
		Telecom:       raw(p.Telecom),
		Address:       raw(p.Address),
		Gender:        p.Gender,
		BirthDate:     p.BirthDate,
		Photo:         raw(p.Photo),
		Qualification: raw(p.Qualification),
		Communication: raw(p.Communication),
		Extension:     raw(p.Extension),
	}
}

type AppointmentRecord struct {
	ID                    string            `json:"id,omitempty"`
	CreatedAt             *time.Time        `json:"created_at,omitempty"`
	UpdatedAt             *time.Time        `json:"updated_at,omitempty"`
	Status                AppointmentStatus `json:"status"`
	ServiceCategory       json.RawMessage   `json:"service_category,omitempty"`
	ServiceType           json.RawMessage   `json:"service_type,omitempty"`
	Specialty             json.RawMessage   `json:"specialty,omitempty"`
	AppointmentType       json.RawMessage   `json:"appointment_type,omitempty"`
	ReasonCode            json.RawMessage   `json:"reason_code,omitempty"`
	ReasonReference       json.RawMessage   `json:"reason_reference,omitempty"`
	Priority              *int              `json:"priority,omitempty"`
	Description           string            `json:"description,omitempty"`
	SupportingInformation json.RawMessage   `json:"supporting_information,omitempty"`
	Start                 string            `json:"start,omitempty"`
	End                   string            `json:"end,omitempty"`
	MinutesDuration       *int              `json:"minutes_duration,omitempty"`
	Slot                  json.RawMessage   `json:"slot,omitempty"`
	Created               string            `json:"created,omitempty"`
	Comment               string            `json:"comment,omitempty"`
	PatientInstruction    string            `json:"patient_instruction,omitempty"`
	BasedOn               json.RawMessage   `json:"based_on,omitempty"`
	Participant           json.RawMessage   `json:"participant"`
	RequestedPeriod       json.RawMessage   `json:"requested_period,omitempty"`
	Extension             json.RawMessage   `json:"extension,omitempty"`
	Meta                  json.RawMessage   `json:"meta,omitempty"`
}

type Appointment struct {
	ResourceType          string            `json:"resourceType"`
	ID                    string            `json:"id,omitempty"`
	Meta                  json.RawMessage   `json:"meta,omitempty"`
	Status                AppointmentStatus `json:"status"`
	ServiceCategory       json.RawMessage   `json:"serviceCategory,omitempty"`
	ServiceType           json.RawMessage   `json:"serviceType,omitempty"`
	Specialty             json.RawMessage   `json:"specialty,omitempty"`
	AppointmentType       json.RawMessage   `json:"appointmentType,omitempty"`
	ReasonCode            json.RawMessage   `json:"reasonCode,omitempty"`
	ReasonReference       json.RawMessage   `json:"reasonReference,omitempty"`
	Priority              *int              `json:"priority,omitempty"`
	Description           string            `json:"description,omitempty"`
	SupportingInformation json.RawMessage   `json:"supportingInformation,omitempty"`
	Start                 string            `json:"start,omitempty"`
	End                   string            `json:"end,omitempty"`
	MinutesDuration       *int              `json:"minutesDuration,omitempty"`
	Slot                  json.RawMessage   `json:"slot,omitempty"`
	Created               string            `json:"created,omitempty"`
	Comment               string            `json:"comment,omitempty"`
	PatientInstruction    string            `json:"patientInstruction,omitempty"`
	BasedOn               json.RawMessage   `json:"basedOn,omitempty"`
	Participant           json.RawMessage   `json:"participant,omitempty"`
	RequestedPeriod       json.RawMessage   `json:"requestedPeriod,omitempty"`
	Extension             json.RawMessage   `json:"extension,omitempty"`
}

func (a AppointmentRecord) ToFHIR() Appointment {
	return Appointment{
		ResourceType:          "Appointment",
		ID:                    a.ID,
		Meta:                  raw(a.Meta),
		Status:                a.Status,
		ServiceCategory:       raw(a.ServiceCategory),
		ServiceType:           raw(a.ServiceType),
		Specialty:             raw(a.Specialty),
		AppointmentType:       raw(a.AppointmentType),
		ReasonCode:            raw(a.ReasonCode),
		ReasonReference:       raw(a.ReasonReference),
		Priority:              a.Priority,
		Description:           a.Description,
		SupportingInformation: raw(a.SupportingInformation),
		Start:                 a.Start,
		End:                   a.End,
		MinutesDuration:       a.MinutesDuration,
		Slot:                  raw(a.Slot),
		Created:               a.Created,
		Comment:               a.Comment,
		PatientInstruction:    a.PatientInstruction,
		BasedOn:               raw(a.BasedOn),
		Participant:           raw(a.Participant),
		RequestedPeriod:       raw(a.RequestedPeriod),
		Extension:             raw(a.Extension),
	}
}

// Participants decodes the participant column.
func (a AppointmentRecord) Participants() ([]AppointmentParticipant, error) {
	var out []AppointmentParticipant
	if len(raw(a.Participant)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(a.Participant, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeNames decodes a name column.
func DecodeNames(m json.RawMessage) ([]HumanName, error) {
	var out []HumanName
	if len(raw(m)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(m, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bundle is a searchset of resources.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type"`
	Total        *int          `json:"total,omitempty"`
	Link         []BundleLink  `json:"link,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

type BundleEntry struct {
	FullURL  string      `json:"fullUrl,omitempty"`
	Resource interface{} `json:"resource"`
}

// NewSearchBundle builds a searchset. A negative total means the match count
// is unknown and is left out.
func NewSearchBundle(total int, links []BundleLink, entries []BundleEntry) Bundle {
	b := Bundle{ResourceType: "Bundle", Type: "searchset", Link: links, Entry: entries}
	if total >= 0 {
		b.Total = &total
	}
	return b
}

// Encode marshals v for a JSON column.
func Encode(v interface{}) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// raw drops absent and null columns so they are omitted from the resource.
func raw(m json.RawMessage) json.RawMessage {
	if len(m) == 0 || bytes.Equal(bytes.TrimSpace(m), []byte("null")) {
		return nil
	}
	return m
}
