package profile

import (
	"strings"
	"time"

	"github.com/healthify/portal/internal/platform/auth"
)

type Role string

const (
	RolePatient      Role = "patient"
	RolePractitioner Role = "practitioner"
	RoleAdmin        Role = "admin"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionTrial     SubscriptionStatus = "trial"
)

type Plan string

const (
	PlanBasic    Plan = "basic"
	PlanPremium  Plan = "premium"
	PlanEvercare Plan = "evercare"
)

var plans = map[Plan]struct {
	tier  string
	price string
}{
	PlanBasic:    {"starter", "$9.99/month"},
	PlanPremium:  {"boost", "$19.99/month"},
	PlanEvercare: {"pro", "$29.99/month"},
}

// Tier is the subscription badge tier for the plan, or "" for no plan.
func (p Plan) Tier() string {
	return plans[p].tier
}

func (p Plan) Price() string {
	return plans[p].price
}

// Profile is a row of the profiles table. ID is the auth user id.
type Profile struct {
	ID                 string             `json:"id"`
	CreatedAt          *time.Time         `json:"created_at,omitempty"`
	UpdatedAt          *time.Time         `json:"updated_at,omitempty"`
	Email              string             `json:"email"`
	FullName           string             `json:"full_name,omitempty"`
	AvatarURL          string             `json:"avatar_url,omitempty"`
	Role               Role               `json:"role"`
	FHIRResourceID     string             `json:"fhir_resource_id,omitempty"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status,omitempty"`
	SubscriptionPlan   Plan               `json:"subscription_plan,omitempty"`
	LastLogin          *time.Time         `json:"last_login,omitempty"`
}

// Patch is a partial update of the editable profile fields.
type Patch struct {
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// DisplayName falls back to the email address.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}

func (p Profile) FirstName() string {
	if p.FullName == "" {
		return ""
	}
	return strings.Fields(p.FullName)[0]
}

func (p Profile) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(p.DisplayName()) {
		b.WriteString(strings.ToUpper(part[:1]))
		if b.Len() == 2 {
			break
		}
	}
	return b.String()
}

// PatientID is the id part of a linked Patient resource, or "".
func (p Profile) PatientID() string {
	return p.linked("Patient")
}

func (p Profile) PractitionerID() string {
	return p.linked("Practitioner")
}

func (p Profile) linked(resourceType string) string {
	id, ok := strings.CutPrefix(p.FHIRResourceID, resourceType+"/")
	if !ok {
		return ""
	}
	return id
}

// Subscription is the billing summary shown on the subscription tab.
type Subscription struct {
	Plan        Plan
	Tier        string
	Status      SubscriptionStatus
	Price       string
	NextBilling string
}

// Subscription summarises billing as of now. Billing renews monthly on the
// day the profile was created.
func (p Profile) Subscription(now time.Time) Subscription {
	s := Subscription{Plan: p.SubscriptionPlan, Tier: p.SubscriptionPlan.Tier(), Status: p.SubscriptionStatus, Price: p.SubscriptionPlan.Price()}
	if p.SubscriptionStatus == SubscriptionActive && p.CreatedAt != nil {
		s.NextBilling = nextBilling(*p.CreatedAt, now).Format("2006-01-02")
	}
	return s
}

func nextBilling(start, now time.Time) time.Time {
	next := start
	for months := 1; !next.After(now); months++ {
		next = start.AddDate(0, months, 0)
	}
	return next
}

// SampleProfile is shown to development sessions that have no backend user.
func SampleProfile(email string) Profile {
	created := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	return Profile{
		ID:                 auth.DevSession.UserID,
		CreatedAt:          &created,
		Email:              email,
		FullName:           "John Perera",
		Role:               RolePatient,
		SubscriptionStatus: SubscriptionActive,
		SubscriptionPlan:   PlanEvercare,
	}
}

// DisplayPatientID is the portal patient number shown on the profile page.
func (p Profile) DisplayPatientID() string {
	if id := p.PatientID(); id != "" {
		if len(id) > 8 {
			id = id[:8]
		}
		return "HP-" + strings.ToUpper(id)
	}
	if p.ID == auth.DevSession.UserID {
		return "HP-001234"
	}
	return "Not linked"
}
