package components

import (
	"html/template"

	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/ui/variant"
)

type BadgeVariant string

const (
	BadgeDefault   BadgeVariant = "default"
	BadgeSecondary BadgeVariant = "secondary"
	BadgeSuccess   BadgeVariant = "success"
	BadgeWarning   BadgeVariant = "warning"
	BadgeError     BadgeVariant = "error"
	BadgeOutline   BadgeVariant = "outline"
	BadgePatient   BadgeVariant = "patient"
	BadgeProvider  BadgeVariant = "provider"
	BadgeEmergency BadgeVariant = "emergency"
	BadgeCritical  BadgeVariant = "critical"
	BadgeActive    BadgeVariant = "active"
	BadgeInactive  BadgeVariant = "inactive"
	BadgePending   BadgeVariant = "pending"
	BadgeCancelled BadgeVariant = "cancelled"
	BadgeCompleted BadgeVariant = "completed"
)

var badgeStyles = variant.MustDefine("badge",
	"inline-flex items-center px-2.5 py-0.5 rounded-full text-xs font-medium transition-colors focus:outline-none focus:ring-2 focus:ring-ring focus:ring-offset-2",
	variant.AxisSpec{
		Name: "variant",
		Fragments: map[variant.Key]string{
			"default":   "bg-primary-100 text-primary-800 hover:bg-primary-200",
			"secondary": "bg-secondary-100 text-secondary-800 hover:bg-secondary-200",
			"success":   "bg-success-100 text-success-800 hover:bg-success-200",
			"warning":   "bg-warning-100 text-warning-800 hover:bg-warning-200",
			"error":     "bg-error-100 text-error-800 hover:bg-error-200",
			"outline":   "border border-gray-300 text-gray-700 hover:bg-gray-50",
			"patient":   "bg-primary-100 text-primary-800",
			"provider":  "bg-secondary-100 text-secondary-800",
			"emergency": "bg-error-500 text-white",
			"critical":  "bg-error-600 text-white animate-pulse",
			"active":    "bg-success-100 text-success-800",
			"inactive":  "bg-gray-100 text-gray-600",
			"pending":   "bg-warning-100 text-warning-800",
			"cancelled": "bg-error-100 text-error-800",
			"completed": "bg-success-100 text-success-800",
		},
		Default: "default",
	},
	variant.AxisSpec{
		Name: "size",
		Fragments: map[variant.Key]string{
			"sm":      "px-2 py-0.5 text-xs",
			"default": "px-2.5 py-0.5 text-xs",
			"lg":      "px-3 py-1 text-sm",
		},
		Default: "default",
	},
)

type Badge struct {
	Label     string
	Variant   BadgeVariant
	Size      Size
	Dot       bool
	Removable bool
	// RemoveAction is the form action posted by the remove button.
	RemoveAction string
	Class        string
}

func (b Badge) Render() (template.HTML, error) {
	class, err := badgeStyles.Resolve(variant.Selection{
		"variant": variant.Key(b.Variant),
		"size":    variant.Key(b.Size),
	}, b.Class)
	if err != nil {
		return "", err
	}
	v := struct {
		Badge
		ClassName string
		Remove    template.HTML
	}{Badge: b, ClassName: class}
	if b.Removable {
		if v.Remove, err = IconX.Render("h-3 w-3"); err != nil {
			return "", err
		}
	}
	return render("badge", v)
}

type labelled struct {
	variant BadgeVariant
	label   string
}

type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyCritical  Urgency = "critical"
	UrgencyEmergency Urgency = "emergency"
)

var urgencyBadges = map[Urgency]labelled{
	UrgencyLow:       {BadgeSuccess, "Low Priority"},
	UrgencyMedium:    {BadgeWarning, "Medium Priority"},
	UrgencyHigh:      {BadgeError, "High Priority"},
	UrgencyCritical:  {BadgeCritical, "Critical"},
	UrgencyEmergency: {BadgeEmergency, "Emergency"},
}

func ParseUrgency(s string) (Urgency, error) {
	if _, ok := urgencyBadges[Urgency(s)]; !ok {
		return "", unknown("urgency", "value", s)
	}
	return Urgency(s), nil
}

type UrgencyBadge struct {
	Urgency Urgency
	Size    Size
	Class   string
}

func (u UrgencyBadge) Render() (template.HTML, error) {
	l, ok := urgencyBadges[u.Urgency]
	if !ok {
		return "", unknown("urgencyBadge", "urgency", u.Urgency)
	}
	return Badge{Label: l.label, Variant: l.variant, Size: u.Size, Class: u.Class}.Render()
}

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var statusBadges = map[Status]labelled{
	StatusActive:    {BadgeActive, "Active"},
	StatusInactive:  {BadgeInactive, "Inactive"},
	StatusPending:   {BadgePending, "Pending"},
	StatusCancelled: {BadgeCancelled, "Cancelled"},
	StatusCompleted: {BadgeCompleted, "Completed"},
}

func ParseStatus(s string) (Status, error) {
	if _, ok := statusBadges[Status(s)]; !ok {
		return "", unknown("status", "value", s)
	}
	return Status(s), nil
}

// StatusBadge always carries a dot.
type StatusBadge struct {
	Status Status
	Size   Size
	Class  string
}

func (s StatusBadge) Render() (template.HTML, error) {
	l, ok := statusBadges[s.Status]
	if !ok {
		return "", unknown("statusBadge", "status", s.Status)
	}
	return Badge{Label: l.label, Variant: l.variant, Size: s.Size, Dot: true, Class: s.Class}.Render()
}

// Tier is a subscription plan as shown to patients.
type Tier string

const (
	TierStarter Tier = "starter"
	TierBoost   Tier = "boost"
	TierPro     Tier = "pro"
)

var tierBadges = map[Tier]struct{ class, label string }{
	TierStarter: {"bg-green-100 text-green-800", "Vital Starter"},
	TierBoost:   {"bg-blue-100 text-blue-800", "Boost"},
	TierPro:     {"bg-purple-100 text-purple-800", "Pro"},
}

func ParseTier(s string) (Tier, error) {
	if _, ok := tierBadges[Tier(s)]; !ok {
		return "", unknown("tier", "value", s)
	}
	return Tier(s), nil
}

type SubscriptionBadge struct {
	Tier  Tier
	Class string
}

func (s SubscriptionBadge) Render() (template.HTML, error) {
	t, ok := tierBadges[s.Tier]
	if !ok {
		return "", unknown("subscriptionBadge", "tier", s.Tier)
	}
	return render("subscription-badge", struct {
		ClassName string
		Label     string
	}{variant.Join("inline-flex items-center px-2.5 py-0.5 rounded-full text-xs font-medium", t.class, s.Class), t.label})
}

var appointmentBadges = map[fhir.AppointmentStatus]labelled{
	fhir.AppointmentProposed:       {BadgeOutline, "Proposed"},
	fhir.AppointmentPending:        {BadgePending, "Pending"},
	fhir.AppointmentBooked:         {BadgeActive, "Confirmed"},
	fhir.AppointmentArrived:        {BadgeSecondary, "Arrived"},
	fhir.AppointmentCheckedIn:      {BadgeSecondary, "Checked In"},
	fhir.AppointmentFulfilled:      {BadgeCompleted, "Completed"},
	fhir.AppointmentCancelled:      {BadgeCancelled, "Cancelled"},
	fhir.AppointmentNoShow:         {BadgeError, "No Show"},
	fhir.AppointmentEnteredInError: {BadgeInactive, "Entered in Error"},
	fhir.AppointmentWaitlist:       {BadgeWarning, "Waitlisted"},
}

func appointmentStatus(s string) fhir.AppointmentStatus {
	return fhir.AppointmentStatus(s)
}

type AppointmentStatusBadge struct {
	Status fhir.AppointmentStatus
	Size   Size
	Class  string
}

func (a AppointmentStatusBadge) Render() (template.HTML, error) {
	l, ok := appointmentBadges[a.Status]
	if !ok {
		return "", unknown("appointmentStatusBadge", "status", a.Status)
	}
	return Badge{Label: l.label, Variant: l.variant, Size: a.Size, Class: a.Class}.Render()
}

type PrescriptionStatus string

const (
	PrescriptionActive      PrescriptionStatus = "active"
	PrescriptionNeedsRefill PrescriptionStatus = "needs_refill"
	PrescriptionCompleted   PrescriptionStatus = "completed"
)

var prescriptionBadges = map[PrescriptionStatus]labelled{
	PrescriptionActive:      {BadgeActive, "Active"},
	PrescriptionNeedsRefill: {BadgeWarning, "Needs Refill"},
	PrescriptionCompleted:   {BadgeCompleted, "Completed"},
}

func ParsePrescriptionStatus(s string) (PrescriptionStatus, error) {
	if _, ok := prescriptionBadges[PrescriptionStatus(s)]; !ok {
		return "", unknown("prescriptionStatus", "value", s)
	}
	return PrescriptionStatus(s), nil
}

type PrescriptionStatusBadge struct {
	Status PrescriptionStatus
	Class  string
}

func (p PrescriptionStatusBadge) Render() (template.HTML, error) {
	l, ok := prescriptionBadges[p.Status]
	if !ok {
		return "", unknown("prescriptionStatusBadge", "status", p.Status)
	}
	return Badge{Label: l.label, Variant: l.variant, Class: p.Class}.Render()
}

type Severity string

const (
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

var severityBadges = map[Severity]BadgeVariant{
	SeverityMild:     BadgeSuccess,
	SeverityModerate: BadgeWarning,
	SeveritySevere:   BadgeError,
}

func ParseSeverity(s string) (Severity, error) {
	if _, ok := severityBadges[Severity(s)]; !ok {
		return "", unknown("severity", "value", s)
	}
	return Severity(s), nil
}

type SeverityBadge struct {
	Severity Severity
	Class    string
}

func (s SeverityBadge) Render() (template.HTML, error) {
	v, ok := severityBadges[s.Severity]
	if !ok {
		return "", unknown("severityBadge", "severity", s.Severity)
	}
	return Badge{Label: string(s.Severity), Variant: v, Class: s.Class}.Render()
}
