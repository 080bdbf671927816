package fhir

// Meta is the resource metadata carried on persisted rows.
type Meta struct {
	VersionID   string   `json:"versionId,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
	Profile     []string `json:"profile,omitempty"`
}

type Coding struct {
	System       string `json:"system,omitempty"`
	Version      string `json:"version,omitempty"`
	Code         string `json:"code,omitempty"`
	Display      string `json:"display,omitempty"`
	UserSelected *bool  `json:"userSelected,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

type Reference struct {
	Reference  string      `json:"reference,omitempty"`
	Type       string      `json:"type,omitempty"`
	Identifier *Identifier `json:"identifier,omitempty"`
	Display    string      `json:"display,omitempty"`
}

type IdentifierUse string

const (
	IdentifierUsual     IdentifierUse = "usual"
	IdentifierOfficial  IdentifierUse = "official"
	IdentifierTemp      IdentifierUse = "temp"
	IdentifierSecondary IdentifierUse = "secondary"
	IdentifierOld       IdentifierUse = "old"
)

type Identifier struct {
	Use    IdentifierUse    `json:"use,omitempty"`
	Type   *CodeableConcept `json:"type,omitempty"`
	System string           `json:"system,omitempty"`
	Value  string           `json:"value,omitempty"`
	Period *Period          `json:"period,omitempty"`
}

type NameUse string

const (
	NameUsual     NameUse = "usual"
	NameOfficial  NameUse = "official"
	NameTemp      NameUse = "temp"
	NameNickname  NameUse = "nickname"
	NameAnonymous NameUse = "anonymous"
	NameOld       NameUse = "old"
	NameMaiden    NameUse = "maiden"
)

// HumanName.Text is derived when the name is built by NewHumanName and is
// not kept in sync with later edits to Given or Family.
type HumanName struct {
	Use    NameUse  `json:"use,omitempty"`
	Text   string   `json:"text,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
	Prefix []string `json:"prefix,omitempty"`
	Suffix []string `json:"suffix,omitempty"`
	Period *Period  `json:"period,omitempty"`
}

type ContactSystem string

const (
	ContactPhone ContactSystem = "phone"
	ContactFax   ContactSystem = "fax"
	ContactEmail ContactSystem = "email"
	ContactPager ContactSystem = "pager"
	ContactURL   ContactSystem = "url"
	ContactSMS   ContactSystem = "sms"
	ContactOther ContactSystem = "other"
)

type ContactUse string

const (
	ContactHome   ContactUse = "home"
	ContactWork   ContactUse = "work"
	ContactTemp   ContactUse = "temp"
	ContactOld    ContactUse = "old"
	ContactMobile ContactUse = "mobile"
)

type ContactPoint struct {
	System ContactSystem `json:"system,omitempty"`
	Value  string        `json:"value,omitempty"`
	Use    ContactUse    `json:"use,omitempty"`
	Rank   int           `json:"rank,omitempty"`
	Period *Period       `json:"period,omitempty"`
}

type AddressUse string

const (
	AddressHome    AddressUse = "home"
	AddressWork    AddressUse = "work"
	AddressTemp    AddressUse = "temp"
	AddressOld     AddressUse = "old"
	AddressBilling AddressUse = "billing"
)

type AddressType string

const (
	AddressPostal   AddressType = "postal"
	AddressPhysical AddressType = "physical"
	AddressBoth     AddressType = "both"
)

type Address struct {
	Use        AddressUse  `json:"use,omitempty"`
	Type       AddressType `json:"type,omitempty"`
	Text       string      `json:"text,omitempty"`
	Line       []string    `json:"line,omitempty"`
	City       string      `json:"city,omitempty"`
	District   string      `json:"district,omitempty"`
	State      string      `json:"state,omitempty"`
	PostalCode string      `json:"postalCode,omitempty"`
	Country    string      `json:"country,omitempty"`
	Period     *Period     `json:"period,omitempty"`
}

// Period bounds are FHIR dateTime strings.
type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type ParticipantRequired string

const (
	ParticipantRequiredRequired ParticipantRequired = "required"
	ParticipantOptional         ParticipantRequired = "optional"
	ParticipantInformationOnly  ParticipantRequired = "information-only"
)

type ParticipantStatus string

const (
	ParticipantAccepted    ParticipantStatus = "accepted"
	ParticipantDeclined    ParticipantStatus = "declined"
	ParticipantTentative   ParticipantStatus = "tentative"
	ParticipantNeedsAction ParticipantStatus = "needs-action"
)

type AppointmentParticipant struct {
	Type     []CodeableConcept   `json:"type,omitempty"`
	Actor    *Reference          `json:"actor,omitempty"`
	Required ParticipantRequired `json:"required,omitempty"`
	Status   ParticipantStatus   `json:"status"`
	Period   *Period             `json:"period,omitempty"`
}

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

type AppointmentStatus string

const (
	AppointmentProposed       AppointmentStatus = "proposed"
	AppointmentPending        AppointmentStatus = "pending"
	AppointmentBooked         AppointmentStatus = "booked"
	AppointmentArrived        AppointmentStatus = "arrived"
	AppointmentFulfilled      AppointmentStatus = "fulfilled"
	AppointmentCancelled      AppointmentStatus = "cancelled"
	AppointmentNoShow         AppointmentStatus = "noshow"
	AppointmentEnteredInError AppointmentStatus = "entered-in-error"
	AppointmentCheckedIn      AppointmentStatus = "checked-in"
	AppointmentWaitlist       AppointmentStatus = "waitlist"
)

// AppointmentStatuses lists every status in lifecycle order.
func AppointmentStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		AppointmentProposed, AppointmentPending, AppointmentBooked, AppointmentArrived,
		AppointmentFulfilled, AppointmentCancelled, AppointmentNoShow,
		AppointmentEnteredInError, AppointmentCheckedIn, AppointmentWaitlist,
	}
}

func (s AppointmentStatus) Valid() bool {
	for _, v := range AppointmentStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// OperationOutcome is the error body for FHIR JSON responses.
type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string           `json:"severity"`
	Code        string           `json:"code"`
	Details     *CodeableConcept `json:"details,omitempty"`
	Diagnostics string           `json:"diagnostics,omitempty"`
	Expression  []string         `json:"expression,omitempty"`
}

func NewOperationOutcome(severity, code, diagnostics string) *OperationOutcome {
	return &OperationOutcome{
		ResourceType: "OperationOutcome",
		Issue: []OperationOutcomeIssue{
			{
				Severity:    severity,
				Code:        code,
				Diagnostics: diagnostics,
			},
		},
	}
}

func ErrorOutcome(diagnostics string) *OperationOutcome {
	return NewOperationOutcome("error", "processing", diagnostics)
}

func NotFoundOutcome(resourceType, id string) *OperationOutcome {
	return NewOperationOutcome("error", "not-found", resourceType+"/"+id+" not found")
}

func InvalidOutcome(diagnostics string) *OperationOutcome {
	return NewOperationOutcome("error", "invalid", diagnostics)
}
