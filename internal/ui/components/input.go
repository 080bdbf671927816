package components

import (
	"html/template"
	"strings"

	"github.com/google/uuid"

	"github.com/healthify/portal/internal/ui/variant"
)

type InputVariant string

const (
	InputDefault InputVariant = "default"
	InputError   InputVariant = "error"
	InputSuccess InputVariant = "success"
	InputWarning InputVariant = "warning"
)

var inputStyles = variant.MustDefine("input",
	"flex w-full rounded-md border border-gray-300 bg-white px-3 py-2 text-sm ring-offset-white file:border-0 file:bg-transparent file:text-sm file:font-medium placeholder:text-gray-500 focus-visible:outline-none focus-visible:ring-2 focus-visible:ring-primary-500 focus-visible:ring-offset-2 disabled:cursor-not-allowed disabled:opacity-50 transition-colors",
	variant.AxisSpec{
		Name: "variant",
		Fragments: map[variant.Key]string{
			"default": "border-gray-300 focus:border-primary-500",
			"error":   "border-error-500 focus:border-error-600 focus-visible:ring-error-500",
			"success": "border-success-500 focus:border-success-600 focus-visible:ring-success-500",
			"warning": "border-warning-500 focus:border-warning-600 focus-visible:ring-warning-500",
		},
		Default: "default",
	},
	variant.AxisSpec{
		Name: "size",
		Fragments: map[variant.Key]string{
			"sm":      "h-9 px-2 text-xs",
			"default": "h-10 px-3",
			"lg":      "h-11 px-4 text-base",
			"xl":      "h-12 px-4 text-base",
			"touch":   "h-12 px-4 text-base",
		},
		Default: "default",
	},
)

// Input is a labelled form field. An error message forces the error variant
// and a success message the success variant.
type Input struct {
	ID                 string
	Name               string
	Type               string
	Label              string
	Value              string
	Placeholder        string
	Variant            InputVariant
	Size               Size
	Required           bool
	Disabled           bool
	HelperText         string
	ErrorMessage       string
	SuccessMessage     string
	LeftIcon           Icon
	RightIcon          Icon
	ShowPasswordToggle bool
	Class              string
	ContainerClass     string
}

type inputView struct {
	Input
	InputClass     string
	ContainerClass string
	Invalid        bool
	Toggle         bool
	Left           template.HTML
	Right          template.HTML
	Alert          template.HTML
	AlertSmall     template.HTML
	Eye            template.HTML
}

func (in Input) Render() (template.HTML, error) {
	current := in.Variant
	switch {
	case in.ErrorMessage != "":
		current = InputError
	case in.SuccessMessage != "":
		current = InputSuccess
	}

	var pad []string
	if in.LeftIcon != "" {
		pad = append(pad, "pl-10")
	}
	if in.RightIcon != "" || in.ShowPasswordToggle || in.ErrorMessage != "" {
		pad = append(pad, "pr-10")
	}
	class, err := inputStyles.Resolve(variant.Selection{
		"variant": variant.Key(current),
		"size":    variant.Key(in.Size),
	}, in.Class, strings.Join(pad, " "))
	if err != nil {
		return "", err
	}

	v := inputView{
		Input:          in,
		InputClass:     class,
		ContainerClass: variant.Join("space-y-2", in.ContainerClass),
		Invalid:        in.ErrorMessage != "",
		Toggle:         in.ShowPasswordToggle && in.Type == "password",
	}
	if v.Type == "" {
		v.Type = "text"
	}
	if v.ID == "" {
		if in.Name != "" {
			v.ID = "input-" + in.Name
		} else {
			v.ID = "input-" + uuid.NewString()[:8]
		}
	}
	if v.Left, err = in.LeftIcon.Render("h-4 w-4"); err != nil {
		return "", err
	}
	if in.ErrorMessage == "" {
		if v.Right, err = in.RightIcon.Render("h-4 w-4"); err != nil {
			return "", err
		}
	} else {
		if v.Alert, err = IconAlertCircle.Render("h-4 w-4 text-error-500"); err != nil {
			return "", err
		}
		if v.AlertSmall, err = IconAlertCircle.Render("h-3 w-3"); err != nil {
			return "", err
		}
	}
	if v.Toggle {
		if v.Eye, err = IconEye.Render("h-4 w-4"); err != nil {
			return "", err
		}
	}
	return render("input", v)
}
