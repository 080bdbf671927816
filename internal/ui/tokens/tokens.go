// Package tokens holds the Healthify design tokens: colour scales,
// typography, spacing, radii, shadows, breakpoints, stacking order,
// healthcare-specific accessibility values and animation timing.
package tokens

// Scale is a colour ramp keyed by step (50, 100, ... 900).
type Scale map[int]string

// Steps lists the keys of every Scale in ascending order.
var Steps = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900}

type Palette struct {
	Primary     Scale            `json:"primary"`
	Secondary   Scale            `json:"secondary"`
	Success     Scale            `json:"success"`
	Warning     Scale            `json:"warning"`
	Error       Scale            `json:"error"`
	Accent      Scale            `json:"accent"`
	Tiers       map[string]Scale `json:"tiers"`
	Gray        Scale            `json:"gray"`
	White       string           `json:"white"`
	Black       string           `json:"black"`
	Transparent string           `json:"transparent"`
}

var Colors = Palette{
	Primary: Scale{
		50: "#F3E8FF", 100: "#E9D5FF", 200: "#D6BBFF", 300: "#C084FC", 400: "#B575A1",
		500: "#9D5A8F", 600: "#7A4970", 700: "#6B3B5E", 800: "#5C324C", 900: "#4D293A",
	},
	Secondary: Scale{
		50: "#E0F2FE", 100: "#BAE6FD", 200: "#7DD3FC", 300: "#38BDF8", 400: "#4A90A4",
		500: "#0EA5E9", 600: "#0284C7", 700: "#0369A1", 800: "#075985", 900: "#0C4A6E",
	},
	Success: Scale{
		50: "#ECFDF5", 100: "#D1FAE5", 200: "#A7F3D0", 300: "#6EE7B7", 400: "#6EBF7F",
		500: "#10B981", 600: "#059669", 700: "#047857", 800: "#065F46", 900: "#064E3B",
	},
	Warning: Scale{
		50: "#FFFBEB", 100: "#FEF3C7", 200: "#FDE68A", 300: "#FCD34D", 400: "#F4B942",
		500: "#F59E0B", 600: "#D97706", 700: "#B45309", 800: "#92400E", 900: "#78350F",
	},
	Error: Scale{
		50: "#FEF2F2", 100: "#FEE2E2", 200: "#FECACA", 300: "#FCA5A5", 400: "#F87171",
		500: "#E74C3C", 600: "#DC2626", 700: "#B91C1C", 800: "#991B1B", 900: "#7F1D1D",
	},
	Accent: Scale{
		50: "#FEF2F2", 100: "#FEE2E2", 200: "#FECDD3", 300: "#FDA4AF", 400: "#F39C9C",
		500: "#FB7185", 600: "#F43F5E", 700: "#E11D48", 800: "#BE123C", 900: "#9F1239",
	},
	Tiers: map[string]Scale{
		"starter": {
			50: "#ECFDF5", 100: "#D1FAE5", 200: "#A7F3D0", 300: "#6EE7B7", 400: "#34D399",
			500: "#10B981", 600: "#059669", 700: "#047857", 800: "#065F46", 900: "#064E3B",
		},
		"boost": {
			50: "#EFF6FF", 100: "#DBEAFE", 200: "#BFDBFE", 300: "#93C5FD", 400: "#60A5FA",
			500: "#3B82F6", 600: "#2563EB", 700: "#1D4ED8", 800: "#1E40AF", 900: "#1E3A8A",
		},
		"pro": {
			50: "#F5F3FF", 100: "#EDE9FE", 200: "#DDD6FE", 300: "#C4B5FD", 400: "#A78BFA",
			500: "#8B5CF6", 600: "#7C3AED", 700: "#6D28D9", 800: "#5B21B6", 900: "#4C1D95",
		},
	},
	Gray: Scale{
		50: "#F8FAFC", 100: "#F1F5F9", 200: "#E2E8F0", 300: "#CBD5E1", 400: "#94A3B8",
		500: "#64748B", 600: "#475569", 700: "#334155", 800: "#1E293B", 900: "#0F172A",
	},
	White:       "#FFFFFF",
	Black:       "#000000",
	Transparent: "transparent",
}

// Entry is a single named value in an ordered token table.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type TypographyTokens struct {
	FontFamily    map[string][]string `json:"fontFamily"`
	FontSize      []Entry             `json:"fontSize"`
	FontWeight    []Entry             `json:"fontWeight"`
	LineHeight    []Entry             `json:"lineHeight"`
	LetterSpacing []Entry             `json:"letterSpacing"`
}

var Typography = TypographyTokens{
	FontFamily: map[string][]string{
		"primary": {"Inter", "system-ui", "sans-serif"},
		"mono":    {"JetBrains Mono", "Menlo", "Monaco", "monospace"},
	},
	FontSize: []Entry{
		{"xs", "12px"}, {"sm", "14px"}, {"base", "16px"}, {"lg", "18px"}, {"xl", "20px"},
		{"2xl", "24px"}, {"3xl", "30px"}, {"4xl", "36px"}, {"5xl", "48px"},
	},
	FontWeight: []Entry{
		{"regular", "400"}, {"medium", "500"}, {"semibold", "600"}, {"bold", "700"},
	},
	LineHeight: []Entry{
		{"tight", "1.25"}, {"normal", "1.4"}, {"relaxed", "1.6"}, {"loose", "1.8"},
	},
	LetterSpacing: []Entry{
		{"tighter", "-0.05em"}, {"tight", "-0.025em"}, {"normal", "0"}, {"wide", "0.025em"}, {"wider", "0.05em"},
	},
}

// Spacing follows a 4px grid.
var Spacing = []Entry{
	{"0", "0px"}, {"1", "4px"}, {"2", "8px"}, {"3", "12px"}, {"4", "16px"}, {"5", "20px"},
	{"6", "24px"}, {"8", "32px"}, {"10", "40px"}, {"12", "48px"}, {"16", "64px"}, {"20", "80px"},
	{"24", "96px"}, {"32", "128px"}, {"40", "160px"}, {"48", "192px"}, {"56", "224px"}, {"64", "256px"},
}

var BorderRadius = []Entry{
	{"none", "0"}, {"sm", "2px"}, {"default", "4px"}, {"md", "6px"}, {"lg", "8px"},
	{"xl", "12px"}, {"2xl", "16px"}, {"3xl", "24px"}, {"full", "9999px"},
}

var Shadows = []Entry{
	{"sm", "0 1px 2px 0 rgba(0, 0, 0, 0.05)"},
	{"default", "0 1px 3px 0 rgba(0, 0, 0, 0.1), 0 1px 2px 0 rgba(0, 0, 0, 0.06)"},
	{"md", "0 4px 6px -1px rgba(0, 0, 0, 0.1), 0 2px 4px -1px rgba(0, 0, 0, 0.06)"},
	{"lg", "0 10px 15px -3px rgba(0, 0, 0, 0.1), 0 4px 6px -2px rgba(0, 0, 0, 0.05)"},
	{"xl", "0 20px 25px -5px rgba(0, 0, 0, 0.1), 0 10px 10px -5px rgba(0, 0, 0, 0.04)"},
	{"2xl", "0 25px 50px -12px rgba(0, 0, 0, 0.25)"},
	{"inner", "inset 0 2px 4px 0 rgba(0, 0, 0, 0.06)"},
	{"none", "none"},
}

var Breakpoints = []Entry{
	{"sm", "640px"}, {"md", "768px"}, {"lg", "1024px"}, {"xl", "1280px"}, {"2xl", "1536px"},
}

// ZIndex orders overlays: modal < popover < tooltip < notification.
var ZIndex = []Entry{
	{"auto", "auto"}, {"0", "0"}, {"10", "10"}, {"20", "20"}, {"30", "30"}, {"40", "40"}, {"50", "50"},
	{"modal", "1000"}, {"popover", "1010"}, {"tooltip", "1020"}, {"notification", "1030"},
}

type ContrastRatios struct {
	Normal   float64 `json:"normal"`
	Large    float64 `json:"large"`
	Enhanced float64 `json:"enhanced"`
}

type HealthcareTokens struct {
	MinTouchTarget string            `json:"minTouchTarget"`
	SessionTimeout string            `json:"sessionTimeout"`
	Contrast       ContrastRatios    `json:"contrast"`
	Severity       []Entry           `json:"severity"`
	Patient        map[string]string `json:"patient"`
	Provider       map[string]string `json:"provider"`
	Admin          map[string]string `json:"admin"`
}

var Healthcare = HealthcareTokens{
	MinTouchTarget: "44px",
	SessionTimeout: "15min",
	Contrast:       ContrastRatios{Normal: 4.5, Large: 3, Enhanced: 7},
	Severity: []Entry{
		{"critical", Colors.Error[500]},
		{"high", Colors.Warning[500]},
		{"medium", Colors.Warning[300]},
		{"low", Colors.Success[500]},
		{"info", Colors.Secondary[500]},
	},
	Patient: map[string]string{
		"primary":    Colors.Primary[500],
		"calming":    Colors.Secondary[400],
		"supportive": Colors.Success[400],
	},
	Provider: map[string]string{
		"primary":  Colors.Primary[600],
		"clinical": Colors.Gray[700],
		"urgent":   Colors.Error[500],
	},
	Admin: map[string]string{
		"primary": Colors.Primary[700],
		"system":  Colors.Gray[600],
		"warning": Colors.Warning[500],
	},
}

type AnimationTokens struct {
	Duration []Entry `json:"duration"`
	Easing   []Entry `json:"easing"`
}

var Animation = AnimationTokens{
	Duration: []Entry{{"fast", "150ms"}, {"normal", "250ms"}, {"slow", "500ms"}},
	Easing: []Entry{
		{"ease", "ease"}, {"ease-in", "ease-in"}, {"ease-out", "ease-out"},
		{"ease-in-out", "ease-in-out"}, {"linear", "linear"},
	},
}

// DesignTokens groups every token table.
type DesignTokens struct {
	Colors       Palette          `json:"colors"`
	Typography   TypographyTokens `json:"typography"`
	Spacing      []Entry          `json:"spacing"`
	BorderRadius []Entry          `json:"borderRadius"`
	Shadows      []Entry          `json:"shadows"`
	Breakpoints  []Entry          `json:"breakpoints"`
	ZIndex       []Entry          `json:"zIndex"`
	Healthcare   HealthcareTokens `json:"healthcare"`
	Animation    AnimationTokens  `json:"animation"`
}

func All() DesignTokens {
	return DesignTokens{
		Colors:       Colors,
		Typography:   Typography,
		Spacing:      Spacing,
		BorderRadius: BorderRadius,
		Shadows:      Shadows,
		Breakpoints:  Breakpoints,
		ZIndex:       ZIndex,
		Healthcare:   Healthcare,
		Animation:    Animation,
	}
}

// Lookup returns the value of a named entry.
func Lookup(entries []Entry, name string) (string, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}
