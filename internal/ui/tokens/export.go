package tokens

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Variables flattens every token into CSS custom property names in a
// stable order.
func Variables() []Entry {
	var out []Entry
	add := func(name, value string) {
		out = append(out, Entry{Name: "--" + name, Value: value})
	}
	scale := func(prefix string, s Scale) {
		for _, step := range Steps {
			if v, ok := s[step]; ok {
				add(prefix+"-"+strconv.Itoa(step), v)
			}
		}
	}
	entries := func(prefix string, es []Entry) {
		for _, e := range es {
			add(prefix+"-"+e.Name, e.Value)
		}
	}
	sortedMap := func(prefix string, m map[string]string) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			add(prefix+"-"+k, m[k])
		}
	}

	scale("color-primary", Colors.Primary)
	scale("color-secondary", Colors.Secondary)
	scale("color-success", Colors.Success)
	scale("color-warning", Colors.Warning)
	scale("color-error", Colors.Error)
	scale("color-accent", Colors.Accent)
	for _, tier := range []string{"starter", "boost", "pro"} {
		scale("color-tier-"+tier, Colors.Tiers[tier])
	}
	scale("color-gray", Colors.Gray)
	add("color-white", Colors.White)
	add("color-black", Colors.Black)
	add("color-transparent", Colors.Transparent)

	add("font-family-primary", fontStack(Typography.FontFamily["primary"]))
	add("font-family-mono", fontStack(Typography.FontFamily["mono"]))
	entries("font-size", Typography.FontSize)
	entries("font-weight", Typography.FontWeight)
	entries("line-height", Typography.LineHeight)
	entries("letter-spacing", Typography.LetterSpacing)

	entries("spacing", Spacing)
	entries("radius", BorderRadius)
	entries("shadow", Shadows)
	entries("breakpoint", Breakpoints)
	entries("z", ZIndex)

	add("min-touch-target", Healthcare.MinTouchTarget)
	add("session-timeout", Healthcare.SessionTimeout)
	add("contrast-normal", strconv.FormatFloat(Healthcare.Contrast.Normal, 'f', -1, 64))
	add("contrast-large", strconv.FormatFloat(Healthcare.Contrast.Large, 'f', -1, 64))
	add("contrast-enhanced", strconv.FormatFloat(Healthcare.Contrast.Enhanced, 'f', -1, 64))
	entries("severity", Healthcare.Severity)
	sortedMap("patient", Healthcare.Patient)
	sortedMap("provider", Healthcare.Provider)
	sortedMap("admin", Healthcare.Admin)

	entries("duration", Animation.Duration)
	entries("easing", Animation.Easing)
	return out
}

func fontStack(families []string) string {
	quoted := make([]string, len(families))
	for i, f := range families {
		if strings.Contains(f, " ") {
			f = `"` + f + `"`
		}
		quoted[i] = f
	}
	return strings.Join(quoted, ", ")
}

// WriteCSS writes the tokens as a :root custom property block.
func WriteCSS(w io.Writer) error {
	if _, err := io.WriteString(w, ":root {\n"); err != nil {
		return err
	}
	for _, v := range Variables() {
		if _, err := fmt.Fprintf(w, "  %s: %s;\n", v.Name, v.Value); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

// CSS returns the :root custom property block as a string.
func CSS() string {
	var b strings.Builder
	_ = WriteCSS(&b)
	return b.String()
}

// JSON renders the full token tree.
func JSON() ([]byte, error) {
	return json.MarshalIndent(All(), "", "  ")
}
