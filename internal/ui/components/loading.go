package components

import (
	"html/template"

	"github.com/healthify/portal/internal/ui/variant"
)

type SpinnerVariant string

const (
	SpinnerDefault   SpinnerVariant = "default"
	SpinnerPatient   SpinnerVariant = "patient"
	SpinnerClinical  SpinnerVariant = "clinical"
	SpinnerEmergency SpinnerVariant = "emergency"
	SpinnerSuccess   SpinnerVariant = "success"
	SpinnerMuted     SpinnerVariant = "muted"
)

// LoadingIcon picks the glyph that spins or pulses.
type LoadingIcon string

const (
	LoadingSpinner  LoadingIcon = "spinner"
	LoadingHeart    LoadingIcon = "heart"
	LoadingActivity LoadingIcon = "activity"
)

var loadingIcons = map[LoadingIcon]Icon{
	LoadingSpinner:  IconLoader,
	LoadingHeart:    IconHeart,
	LoadingActivity: IconActivity,
}

var spinnerStyles = variant.MustDefine("spinner",
	"animate-spin flex-shrink-0",
	variant.AxisSpec{
		Name: "size",
		Fragments: map[variant.Key]string{
			"xs":      "h-3 w-3",
			"sm":      "h-4 w-4",
			"default": "h-5 w-5",
			"lg":      "h-6 w-6",
			"xl":      "h-8 w-8",
			"2xl":     "h-12 w-12",
		},
		Default: "default",
	},
	variant.AxisSpec{
		Name: "variant",
		Fragments: map[variant.Key]string{
			"default":   "text-primary-500",
			"patient":   "text-primary-600",
			"clinical":  "text-secondary-600",
			"emergency": "text-error-600",
			"success":   "text-success-600",
			"muted":     "text-gray-400",
		},
		Default: "default",
	},
)

var loadingTextSizes = map[Size]string{
	"":          "text-base",
	SizeDefault: "text-base",
	SizeXS:      "text-xs",
	SizeSM:      "text-sm",
	SizeLG:      "text-lg",
	SizeXL:      "text-xl",
	Size2XL:     "text-2xl",
}

type Loading struct {
	Size       Size
	Variant    SpinnerVariant
	Text       string
	FullScreen bool
	Overlay    bool
	Icon       LoadingIcon
	Class      string
	TextClass  string
}

func (l Loading) Render() (template.HTML, error) {
	spin, err := spinnerStyles.Resolve(variant.Selection{
		"size":    variant.Key(l.Size),
		"variant": variant.Key(l.Variant),
	})
	if err != nil {
		return "", err
	}
	kind := l.Icon
	if kind == "" {
		kind = LoadingSpinner
	}
	glyph, ok := loadingIcons[kind]
	if !ok {
		return "", unknown("loading", "icon", l.Icon)
	}
	icon, err := glyph.Render(spin)
	if err != nil {
		return "", err
	}

	container := "flex items-center justify-center"
	switch {
	case l.FullScreen:
		container = variant.Join(container, "fixed inset-0 bg-white/80 backdrop-blur-sm z-50")
	case l.Overlay:
		container = variant.Join(container, "absolute inset-0 bg-white/90 backdrop-blur-sm")
	}
	return render("loading", struct {
		ClassName string
		TextClass string
		Text      string
		Icon      template.HTML
	}{
		ClassName: variant.Join(container, l.Class),
		TextClass: variant.Join("text-gray-600 font-medium text-center", loadingTextSizes[l.Size], l.TextClass),
		Text:      l.Text,
		Icon:      icon,
	})
}

func PatientLoading() Loading {
	return Loading{Variant: SpinnerPatient, Icon: LoadingHeart, Text: "Loading your health information..."}
}

func ClinicalLoading() Loading {
	return Loading{Variant: SpinnerClinical, Icon: LoadingActivity, Text: "Processing clinical data..."}
}

func EmergencyLoading() Loading {
	return Loading{Variant: SpinnerEmergency, Size: SizeLG, Text: "Processing urgent request..."}
}

type SkeletonShape string

const (
	SkeletonRectangular SkeletonShape = "rectangular"
	SkeletonCircular    SkeletonShape = "circular"
	SkeletonText        SkeletonShape = "text"
)

var skeletonStyles = variant.MustDefine("skeleton",
	"animate-pulse bg-gray-200",
	variant.AxisSpec{
		Name: "shape",
		Fragments: map[variant.Key]string{
			"rectangular": "rounded-md",
			"circular":    "rounded-full",
			"text":        "rounded h-4",
		},
		Default: "rectangular",
	},
)

// Skeleton is a placeholder block. Lines greater than one renders a stack
// whose last line is three quarters wide.
type Skeleton struct {
	Shape  SkeletonShape
	Width  string
	Height string
	Lines  int
	Class  string
}

type skeletonLine struct {
	Class  string
	Width  string
	Height string
}

func (s Skeleton) Render() (template.HTML, error) {
	class, err := skeletonStyles.Resolve(variant.Selection{"shape": variant.Key(s.Shape)}, s.Class)
	if err != nil {
		return "", err
	}
	width, height := s.Width, s.Height
	if width == "" {
		width = "100%"
	}
	if height == "" {
		height = "1rem"
	}
	n := s.Lines
	if n < 1 {
		n = 1
	}
	lines := make([]skeletonLine, n)
	for i := range lines {
		lines[i] = skeletonLine{Class: class, Width: width, Height: height}
	}
	if n > 1 {
		lines[n-1].Width = "75%"
	}
	return render("skeleton", struct {
		Multi bool
		Lines []skeletonLine
	}{n > 1, lines})
}

func PatientCardSkeleton() (template.HTML, error) {
	return skeletonCard("border border-primary-200 bg-primary-50/30 rounded-lg p-4 space-y-3")
}

func AppointmentCardSkeleton() (template.HTML, error) {
	return skeletonCard("border border-gray-200 rounded-lg p-4 space-y-3")
}

func skeletonCard(wrapper string) (template.HTML, error) {
	parts := []Skeleton{
		{Shape: SkeletonCircular, Width: "2.5rem", Height: "2.5rem"},
		{Shape: SkeletonText, Width: "60%"},
		{Shape: SkeletonText, Lines: 2},
	}
	var out []template.HTML
	for _, p := range parts {
		h, err := p.Render()
		if err != nil {
			return "", err
		}
		out = append(out, h)
	}
	return render("skeleton-card", struct {
		ClassName string
		Parts     []template.HTML
	}{wrapper, out})
}
