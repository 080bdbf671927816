package components

import (
	"html/template"

	"github.com/healthify/portal/internal/ui/variant"
)

type CardVariant string

const (
	CardDefault   CardVariant = "default"
	CardElevated  CardVariant = "elevated"
	CardOutlined  CardVariant = "outlined"
	CardPatient   CardVariant = "patient"
	CardClinical  CardVariant = "clinical"
	CardEmergency CardVariant = "emergency"
	CardSuccess   CardVariant = "success"
	CardWarning   CardVariant = "warning"
)

var cardStyles = variant.MustDefine("card",
	"rounded-lg border bg-white text-gray-950 shadow transition-shadow",
	variant.AxisSpec{
		Name: "variant",
		Fragments: map[variant.Key]string{
			"default":   "border-gray-200 shadow-soft",
			"elevated":  "border-gray-200 shadow-medium hover:shadow-large",
			"outlined":  "border-gray-300 shadow-none",
			"patient":   "border-primary-200 bg-primary-50/30 shadow-soft",
			"clinical":  "border-secondary-200 bg-secondary-50/30 shadow-soft",
			"emergency": "border-error-200 bg-error-50 shadow-medium",
			"success":   "border-success-200 bg-success-50/30 shadow-soft",
			"warning":   "border-warning-200 bg-warning-50/30 shadow-soft",
		},
		Default: "default",
	},
	variant.AxisSpec{
		Name: "size",
		Fragments: map[variant.Key]string{
			"sm":      "p-3",
			"default": "p-4",
			"lg":      "p-6",
			"xl":      "p-8",
		},
		Default: "default",
	},
	variant.AxisSpec{
		Name: "interactive",
		Fragments: map[variant.Key]string{
			"true":  "cursor-pointer hover:shadow-medium focus-visible:outline-none focus-visible:ring-2 focus-visible:ring-primary-500 focus-visible:ring-offset-2",
			"false": "",
		},
		Default: "false",
	},
)

var cardHeaderStyles = variant.MustDefine("cardHeader",
	"flex flex-col space-y-1.5",
	variant.AxisSpec{
		Name: "variant",
		Fragments: map[variant.Key]string{
			"default":   "",
			"patient":   "text-primary-900",
			"clinical":  "text-secondary-900",
			"emergency": "text-error-900",
		},
		Default: "default",
	},
)

var cardTitleSizes = map[int]string{
	1: "text-2xl", 2: "text-xl", 3: "text-lg", 4: "text-base", 5: "text-sm", 6: "text-xs",
}

func CardClasses(v CardVariant, size Size, interactive bool, class string) (string, error) {
	return cardStyles.Resolve(variant.Selection{
		"variant":     variant.Key(v),
		"size":        variant.Key(size),
		"interactive": variant.Bool(interactive),
	}, class)
}

func CardHeaderClasses(v CardVariant, class string) (string, error) {
	return cardHeaderStyles.Resolve(variant.Selection{"variant": variant.Key(v)}, class)
}

// CardTitleClasses accepts heading levels 1 to 6; 0 means the default 3.
func CardTitleClasses(level int, class string) (string, error) {
	if level == 0 {
		level = 3
	}
	size, ok := cardTitleSizes[level]
	if !ok {
		return "", unknown("cardTitle", "level", level)
	}
	return variant.Join("text-lg font-semibold leading-none tracking-tight", size, class), nil
}

type CardHeader struct {
	Variant     CardVariant
	Title       string
	Level       int
	Description string
	Class       string
	// Extra is appended inside the header after the description.
	Extra template.HTML
}

type Card struct {
	Variant     CardVariant
	Size        Size
	Interactive bool
	Class       string
	Header      *CardHeader
	Body        template.HTML
	BodyClass   string
	Footer      template.HTML
	FooterClass string
}

type cardHeaderView struct {
	CardHeader
	ClassName  string
	TitleClass string
}

type cardView struct {
	ClassName   string
	Header      *cardHeaderView
	Body        template.HTML
	BodyClass   string
	Footer      template.HTML
	FooterClass string
}

func (h CardHeader) view() (*cardHeaderView, error) {
	class, err := CardHeaderClasses(h.Variant, h.Class)
	if err != nil {
		return nil, err
	}
	level := h.Level
	if level == 0 {
		level = 3
	}
	titleClass, err := CardTitleClasses(level, "")
	if err != nil {
		return nil, err
	}
	h.Level = level
	return &cardHeaderView{CardHeader: h, ClassName: class, TitleClass: titleClass}, nil
}

func (c Card) Render() (template.HTML, error) {
	class, err := CardClasses(c.Variant, c.Size, c.Interactive, c.Class)
	if err != nil {
		return "", err
	}
	v := cardView{
		ClassName:   class,
		Body:        c.Body,
		BodyClass:   variant.Join("pt-0", c.BodyClass),
		Footer:      c.Footer,
		FooterClass: variant.Join("flex items-center pt-0", c.FooterClass),
	}
	if c.Header != nil {
		if v.Header, err = c.Header.view(); err != nil {
			return "", err
		}
	}
	return render("card", v)
}

// PatientStatus is the queue state shown as a coloured dot on a PatientCard.
type PatientStatus string

const (
	PatientActive    PatientStatus = "active"
	PatientWaiting   PatientStatus = "waiting"
	PatientCompleted PatientStatus = "completed"
	PatientCancelled PatientStatus = "cancelled"
)

var patientStatusDots = map[PatientStatus]string{
	PatientActive:    "bg-success-500",
	PatientWaiting:   "bg-warning-500",
	PatientCompleted: "bg-primary-500",
	PatientCancelled: "bg-error-500",
}

// PatientCard tints a card by urgency: critical is emergency, high is
// warning, medium is clinical, anything else (including no urgency) is
// patient.
type PatientCard struct {
	PatientName string
	PatientID   string
	Urgency     Urgency
	Status      PatientStatus
	Size        Size
	Interactive bool
	Body        template.HTML
	Class       string
}

func (p PatientCard) variants() (CardVariant, CardVariant) {
	switch p.Urgency {
	case UrgencyCritical:
		return CardEmergency, CardEmergency
	case UrgencyHigh:
		// The header table has no warning tint.
		return CardWarning, CardDefault
	case UrgencyMedium:
		return CardClinical, CardClinical
	default:
		return CardPatient, CardPatient
	}
}

func (p PatientCard) Render() (template.HTML, error) {
	if p.Urgency != "" {
		if _, ok := urgencyBadges[p.Urgency]; !ok {
			return "", unknown("patientCard", "urgency", p.Urgency)
		}
	}
	var dot string
	if p.Status != "" {
		var ok bool
		if dot, ok = patientStatusDots[p.Status]; !ok {
			return "", unknown("patientCard", "status", p.Status)
		}
	}

	cardVariant, headerVariant := p.variants()
	card := Card{
		Variant:     cardVariant,
		Size:        p.Size,
		Interactive: p.Interactive,
		Class:       variant.Join("space-y-3", p.Class),
		Body:        p.Body,
	}
	if p.PatientName != "" || p.PatientID != "" {
		extra, err := render("patient-card-status", struct {
			Status   PatientStatus
			DotClass string
		}{p.Status, dot})
		if err != nil {
			return "", err
		}
		if p.Urgency != "" {
			badge, err := UrgencyBadge{Urgency: p.Urgency, Size: SizeSM}.Render()
			if err != nil {
				return "", err
			}
			extra += badge
		}
		card.Header = &CardHeader{Variant: headerVariant, Title: p.PatientName, Level: 4, Extra: extra}
		if p.PatientID != "" {
			card.Header.Description = "Patient ID: " + p.PatientID
		}
	}
	return card.Render()
}
