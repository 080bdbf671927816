package fhir

import (
	"regexp"
	"strings"
	"time"
)

// Sri Lankan identifier and contact systems.
const (
	SystemNIC      = "http://health.gov.lk/identifier/nic"
	SystemPassport = "http://health.gov.lk/identifier/passport"
	SystemSLMC     = "http://slmc.lk/identifier/registration"
	SystemPhone    = "http://health.gov.lk/identifier/phone"
	SystemAddress  = "http://health.gov.lk/address"
)

const SystemSNOMED = "http://snomed.info/sct"

// DefaultCountry is used by NewAddress when no country is given.
const DefaultCountry = "LK"

func NewIdentifier(system, value string, use IdentifierUse) Identifier {
	if use == "" {
		use = IdentifierUsual
	}
	return Identifier{Use: use, System: system, Value: value}
}

func NewHumanName(family string, given []string, use NameUse) HumanName {
	if use == "" {
		use = NameUsual
	}
	return HumanName{
		Use:    use,
		Family: family,
		Given:  given,
		Text:   strings.Join(given, " ") + " " + family,
	}
}

func NewContactPoint(system ContactSystem, value string, use ContactUse) ContactPoint {
	if use == "" {
		use = ContactHome
	}
	return ContactPoint{System: system, Value: value, Use: use}
}

// NewAddress builds a home address of type both with a display text of the
// form "line1, line2, city, state postalCode, country".
func NewAddress(line []string, city, state, postalCode, country string, use AddressUse) Address {
	if country == "" {
		country = DefaultCountry
	}
	if use == "" {
		use = AddressHome
	}
	return Address{
		Use:        use,
		Type:       AddressBoth,
		Line:       line,
		City:       city,
		State:      state,
		PostalCode: postalCode,
		Country:    country,
		Text:       strings.Join(line, ", ") + ", " + city + ", " + state + " " + postalCode + ", " + country,
	}
}

func NewCodeableConcept(system, code, display string) CodeableConcept {
	return CodeableConcept{
		Coding: []Coding{{System: system, Code: code, Display: display}},
		Text:   display,
	}
}

func NewReference(resourceType, id, display string) Reference {
	return Reference{Reference: resourceType + "/" + id, Display: display}
}

func NewAppointmentParticipant(actor Reference, status ParticipantStatus, required ParticipantRequired) AppointmentParticipant {
	if status == "" {
		status = ParticipantAccepted
	}
	if required == "" {
		required = ParticipantRequiredRequired
	}
	return AppointmentParticipant{Actor: &actor, Required: required, Status: status}
}

func NewSriLankanNICIdentifier(nic string) Identifier {
	return NewIdentifier(SystemNIC, nic, IdentifierOfficial)
}

func NewSriLankanPhoneContact(phone string) ContactPoint {
	return NewContactPoint(ContactPhone, phone, ContactMobile)
}

var datePattern = regexp.MustCompile(`^\d{4}(-\d{2})?(-\d{2})?$`)

// ValidateDate reports whether s has the FHIR date shape YYYY, YYYY-MM or
// YYYY-MM-DD. Month and day ranges are not checked.
func ValidateDate(s string) bool {
	return datePattern.MatchString(s)
}

// dateTimeLayouts accepts more than the FHIR dateTime grammar.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2, 2006 15:04:05",
	"01/02/2006",
}

// ValidateDateTime reports whether s parses as a calendar date-time under any
// accepted layout.
func ValidateDateTime(s string) bool {
	_, ok := ParseDateTime(s)
	return ok
}

func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
