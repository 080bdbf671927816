package components

import (
	"errors"
	"html/template"

	"github.com/healthify/portal/internal/ui/variant"
)

type ModalVariant string

const (
	ModalDefault      ModalVariant = "default"
	ModalPatient      ModalVariant = "patient"
	ModalClinical     ModalVariant = "clinical"
	ModalEmergency    ModalVariant = "emergency"
	ModalConfirmation ModalVariant = "confirmation"
)

var modalStyles = variant.MustDefine("modal",
	"w-full rounded-lg border shadow-lg focus:outline-none",
	variant.AxisSpec{
		Name: "size",
		Fragments: map[variant.Key]string{
			"sm":   "max-w-md",
			"md":   "max-w-lg",
			"lg":   "max-w-2xl",
			"xl":   "max-w-4xl",
			"full": "max-w-full mx-4",
		},
		Default: "md",
	},
	variant.AxisSpec{
		Name: "variant",
		Fragments: map[variant.Key]string{
			"default":      "border-gray-200 bg-white",
			"patient":      "border-primary-200 bg-primary-50/30",
			"clinical":     "border-secondary-200 bg-secondary-50/30",
			"emergency":    "border-error-200 bg-error-50 shadow-xl",
			"confirmation": "border-warning-200 bg-warning-50/30",
		},
		Default: "default",
	},
)

var modalTitleStyles = variant.MustDefine("modalTitle",
	"text-lg font-semibold",
	variant.AxisSpec{
		Name: "variant",
		Fragments: map[variant.Key]string{
			"default":      "text-gray-900",
			"patient":      "text-primary-900",
			"clinical":     "text-secondary-900",
			"emergency":    "text-error-900",
			"confirmation": "text-warning-900",
		},
		Default: "default",
	},
)

// Modal is a dialog rendered in place and toggled client-side by modal.js.
// The zero value closes on overlay click and on Escape and shows a close
// button.
type Modal struct {
	ID                     string
	Open                   bool
	Title                  string
	Description            string
	Size                   Size
	Variant                ModalVariant
	KeepOpenOnOverlayClick bool
	IgnoreEscape           bool
	HideCloseButton        bool
	Body                   template.HTML
	Footer                 template.HTML
	// CloseHref is followed when the modal is closed without script.
	CloseHref string
	Class     string
}

func (m Modal) CloseOnOverlayClick() bool { return !m.KeepOpenOnOverlayClick }

func (m Modal) CloseOnEscape() bool { return !m.IgnoreEscape }

type modalView struct {
	Modal
	PanelClass   string
	TitleClass   string
	TitleID      string
	CloseButton  template.HTML
	OverlayClose bool
	EscapeClose  bool
}

func (m Modal) Render() (template.HTML, error) {
	if m.ID == "" {
		return "", errors.New("modal: id is required")
	}
	sel := variant.Selection{"size": variant.Key(m.Size), "variant": variant.Key(m.Variant)}
	panel, err := modalStyles.Resolve(sel, m.Class)
	if err != nil {
		return "", err
	}
	title, err := modalTitleStyles.Resolve(variant.Selection{"variant": variant.Key(m.Variant)})
	if err != nil {
		return "", err
	}
	// The document is only touched on Open, which never happens server-side.
	ctl := NewModalController(nil, m, nil)
	v := modalView{
		Modal:        m,
		PanelClass:   panel,
		TitleClass:   title,
		TitleID:      m.ID + "-title",
		OverlayClose: ctl.ClosesOnOverlay(),
		EscapeClose:  ctl.ClosesOnEscape(),
	}
	if !m.HideCloseButton {
		if v.CloseButton, err = IconX.Render("h-5 w-5"); err != nil {
			return "", err
		}
	}
	return render("modal", v)
}

type ConfirmVariant string

const (
	ConfirmDanger  ConfirmVariant = "danger"
	ConfirmWarning ConfirmVariant = "warning"
	ConfirmSuccess ConfirmVariant = "success"
	ConfirmInfo    ConfirmVariant = "info"
)

var confirmButtons = map[ConfirmVariant]ButtonVariant{
	ConfirmDanger:  ButtonDestructive,
	ConfirmWarning: ButtonWarning,
	ConfirmSuccess: ButtonSuccess,
	ConfirmInfo:    ButtonDefault,
}

// ConfirmationModal posts ConfirmAction when confirmed. Body holds the
// message; Footer is replaced by the cancel/confirm pair.
type ConfirmationModal struct {
	Modal          Modal
	Variant        ConfirmVariant
	ConfirmText    string
	CancelText     string
	ConfirmLoading bool
	ConfirmAction  string
	// Fields are posted as hidden inputs alongside the confirmation.
	Fields map[string]string
}

func (c ConfirmationModal) Render() (template.HTML, error) {
	kind := c.Variant
	if kind == "" {
		kind = ConfirmInfo
	}
	btn, ok := confirmButtons[kind]
	if !ok {
		return "", unknown("confirmationModal", "variant", c.Variant)
	}
	confirmText, cancelText := c.ConfirmText, c.CancelText
	if confirmText == "" {
		confirmText = "Confirm"
	}
	if cancelText == "" {
		cancelText = "Cancel"
	}

	cancel, err := Button{Label: cancelText, Variant: ButtonOutline, CloseModal: true, Disabled: c.ConfirmLoading}.Render()
	if err != nil {
		return "", err
	}
	confirm, err := Button{
		Label:   confirmText,
		Variant: btn,
		Type:    "submit",
		Loading: c.ConfirmLoading,
		Form:    c.Modal.ID + "-confirm",
	}.Render()
	if err != nil {
		return "", err
	}
	footer, err := render("confirmation-footer", struct {
		FormID  string
		Action  string
		Fields  map[string]string
		Cancel  template.HTML
		Confirm template.HTML
	}{c.Modal.ID + "-confirm", c.ConfirmAction, c.Fields, cancel, confirm})
	if err != nil {
		return "", err
	}
	m := c.Modal
	if m.Variant == "" {
		m.Variant = ModalConfirmation
	}
	m.Footer = footer
	return m.Render()
}
