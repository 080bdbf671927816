package components

import (
	"html/template"

	"github.com/healthify/portal/internal/ui/variant"
)

type ButtonVariant string

const (
	ButtonDefault     ButtonVariant = "default"
	ButtonDestructive ButtonVariant = "destructive"
	ButtonOutline     ButtonVariant = "outline"
	ButtonSecondary   ButtonVariant = "secondary"
	ButtonGhost       ButtonVariant = "ghost"
	ButtonLink        ButtonVariant = "link"
	ButtonSuccess     ButtonVariant = "success"
	ButtonWarning     ButtonVariant = "warning"
	ButtonEmergency   ButtonVariant = "emergency"
	ButtonCalm        ButtonVariant = "calm"
	ButtonSupportive  ButtonVariant = "supportive"
)

var buttonStyles = variant.MustDefine("button",
	"inline-flex items-center justify-center whitespace-nowrap rounded-md text-sm font-medium transition-colors focus-visible:outline-none focus-visible:ring-2 focus-visible:ring-primary-500 focus-visible:ring-offset-2 disabled:pointer-events-none disabled:opacity-50 min-h-touch min-w-touch",
	variant.AxisSpec{
		Name: "variant",
		Fragments: map[variant.Key]string{
			"default":     "bg-primary-500 text-white hover:bg-primary-600 active:bg-primary-700",
			"destructive": "bg-error-500 text-white hover:bg-error-600 active:bg-error-700",
			"outline":     "border border-primary-500 text-primary-500 hover:bg-primary-50 active:bg-primary-100",
			"secondary":   "bg-secondary-100 text-secondary-700 hover:bg-secondary-200 active:bg-secondary-300",
			"ghost":       "text-primary-600 hover:bg-primary-50 active:bg-primary-100",
			"link":        "text-primary-500 underline-offset-4 hover:underline",
			"success":     "bg-success-500 text-white hover:bg-success-600 active:bg-success-700",
			"warning":     "bg-warning-500 text-white hover:bg-warning-600 active:bg-warning-700",
			"emergency":   "bg-error-600 text-white hover:bg-error-700 active:bg-error-800 ring-2 ring-error-200",
			"calm":        "bg-secondary-400 text-white hover:bg-secondary-500 active:bg-secondary-600",
			"supportive":  "bg-success-400 text-white hover:bg-success-500 active:bg-success-600",
		},
		Default: "default",
	},
	variant.AxisSpec{
		Name: "size",
		Fragments: map[variant.Key]string{
			"default": "h-10 px-4 py-2",
			"sm":      "h-9 rounded-md px-3",
			"lg":      "h-11 rounded-md px-8",
			"xl":      "h-12 rounded-lg px-10 text-base",
			"icon":    "h-10 w-10",
			"touch":   "h-12 px-6",
			"wide":    "h-10 px-12",
		},
		Default: "default",
	},
	variant.AxisSpec{
		Name:      "fullWidth",
		Fragments: map[variant.Key]string{"true": "w-full", "false": ""},
		Default:   "false",
	},
)

// Button renders a <button>, or an <a> when Href is set.
type Button struct {
	Label       string
	Variant     ButtonVariant
	Size        Size
	FullWidth   bool
	Type        string
	Href        string
	Name        string
	Value       string
	Form        string
	Disabled    bool
	Loading     bool
	LoadingText string
	LeftIcon    Icon
	RightIcon   Icon
	AriaLabel   string
	// OpenModal is the id of a modal this button opens client-side.
	OpenModal  string
	CloseModal bool
	Class      string
}

func (b Button) Classes() (string, error) {
	return buttonStyles.Resolve(variant.Selection{
		"variant":   variant.Key(b.Variant),
		"size":      variant.Key(b.Size),
		"fullWidth": variant.Bool(b.FullWidth),
	}, b.Class)
}

type buttonView struct {
	Button
	ClassName string
	Text      string
	Spinner   template.HTML
	Left      template.HTML
	Right     template.HTML
	TypeAttr  string
}

func (b Button) Render() (template.HTML, error) {
	class, err := b.Classes()
	if err != nil {
		return "", err
	}
	if !b.LeftIcon.valid() {
		return "", unknown("button", "icon", b.LeftIcon)
	}
	if !b.RightIcon.valid() {
		return "", unknown("button", "icon", b.RightIcon)
	}

	v := buttonView{Button: b, ClassName: class, Text: b.Label, TypeAttr: b.Type}
	if v.TypeAttr == "" {
		v.TypeAttr = "button"
	}
	if b.Loading {
		v.Disabled = true
		if b.LoadingText != "" {
			v.Text = b.LoadingText
		}
		if v.Spinner, err = IconLoader.Render("mr-2 h-4 w-4 animate-spin"); err != nil {
			return "", err
		}
	} else {
		if v.Left, err = b.LeftIcon.Render("h-4 w-4"); err != nil {
			return "", err
		}
		if v.Right, err = b.RightIcon.Render("h-4 w-4"); err != nil {
			return "", err
		}
	}
	return render("button", v)
}
