package components

import (
	"html/template"
)

// Icon names a stroke icon from the built-in set.
type Icon string

const (
	IconLoader       Icon = "loader"
	IconHeart        Icon = "heart"
	IconActivity     Icon = "activity"
	IconX            Icon = "x"
	IconAlertCircle  Icon = "alert-circle"
	IconEye          Icon = "eye"
	IconEyeOff       Icon = "eye-off"
	IconChevronDown  Icon = "chevron-down"
	IconMenu         Icon = "menu"
	IconHome         Icon = "home"
	IconUser         Icon = "user"
	IconCalendar     Icon = "calendar"
	IconMessage      Icon = "message-circle"
	IconFileText     Icon = "file-text"
	IconSettings     Icon = "settings"
	IconBell         Icon = "bell"
	IconPill         Icon = "pill"
	IconStar         Icon = "star"
	IconClock        Icon = "clock"
	IconMapPin       Icon = "map-pin"
	IconVideo        Icon = "video"
	IconSend         Icon = "send"
	IconCheck        Icon = "check"
)

var iconPaths = map[Icon]template.HTML{
	IconLoader:      `<path d="M21 12a9 9 0 1 1-6.219-8.56"/>`,
	IconHeart:       `<path d="M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"/>`,
	IconActivity:    `<path d="M22 12h-4l-3 9L9 3l-3 9H2"/>`,
	IconX:           `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`,
	IconAlertCircle: `<circle cx="12" cy="12" r="10"/><line x1="12" x2="12" y1="8" y2="12"/><line x1="12" x2="12.01" y1="16" y2="16"/>`,
	IconEye:         `<path d="M2 12s3-7 10-7 10 7 10 7-3 7-10 7-10-7-10-7Z"/><circle cx="12" cy="12" r="3"/>`,
	IconEyeOff:      `<path d="M9.88 9.88a3 3 0 1 0 4.24 4.24"/><path d="M10.73 5.08A10.43 10.43 0 0 1 12 5c7 0 10 7 10 7a13.16 13.16 0 0 1-1.67 2.68"/><path d="M6.61 6.61A13.526 13.526 0 0 0 2 12s3 7 10 7a9.74 9.74 0 0 0 5.39-1.61"/><line x1="2" x2="22" y1="2" y2="22"/>`,
	IconChevronDown: `<path d="m6 9 6 6 6-6"/>`,
	IconMenu:        `<line x1="4" x2="20" y1="12" y2="12"/><line x1="4" x2="20" y1="6" y2="6"/><line x1="4" x2="20" y1="18" y2="18"/>`,
	IconHome:        `<path d="m3 9 9-7 9 7v11a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z"/><polyline points="9 22 9 12 15 12 15 22"/>`,
	IconUser:        `<path d="M19 21v-2a4 4 0 0 0-4-4H9a4 4 0 0 0-4 4v2"/><circle cx="12" cy="7" r="4"/>`,
	IconCalendar:    `<rect width="18" height="18" x="3" y="4" rx="2" ry="2"/><line x1="16" x2="16" y1="2" y2="6"/><line x1="8" x2="8" y1="2" y2="6"/><line x1="3" x2="21" y1="10" y2="10"/>`,
	IconMessage:     `<path d="M7.9 20A9 9 0 1 0 4 16.1L2 22Z"/>`,
	IconFileText:    `<path d="M15 2H6a2 2 0 0 0-2 2v16a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2V7Z"/><path d="M14 2v4a2 2 0 0 0 2 2h4"/><path d="M10 9H8"/><path d="M16 13H8"/><path d="M16 17H8"/>`,
	IconSettings:    `<circle cx="12" cy="12" r="3"/><path d="M12 1v2M12 21v2M4.22 4.22l1.42 1.42M18.36 18.36l1.42 1.42M1 12h2M21 12h2M4.22 19.78l1.42-1.42M18.36 5.64l1.42-1.42"/>`,
	IconBell:        `<path d="M6 8a6 6 0 0 1 12 0c0 7 3 9 3 9H3s3-2 3-9"/><path d="M10.3 21a1.94 1.94 0 0 0 3.4 0"/>`,
	IconPill:        `<path d="m10.5 20.5 10-10a4.95 4.95 0 1 0-7-7l-10 10a4.95 4.95 0 1 0 7 7Z"/><path d="m8.5 8.5 7 7"/>`,
	IconStar:        `<polygon points="12 2 15.09 8.26 22 9.27 17 14.14 18.18 21.02 12 17.77 5.82 21.02 7 14.14 2 9.27 8.91 8.26 12 2"/>`,
	IconClock:       `<circle cx="12" cy="12" r="10"/><polyline points="12 6 12 12 16 14"/>`,
	IconMapPin:      `<path d="M20 10c0 6-8 12-8 12s-8-6-8-12a8 8 0 0 1 16 0Z"/><circle cx="12" cy="10" r="3"/>`,
	IconVideo:       `<path d="m22 8-6 4 6 4V8Z"/><rect width="14" height="12" x="2" y="6" rx="2" ry="2"/>`,
	IconSend:        `<path d="m22 2-7 20-4-9-9-4Z"/><path d="M22 2 11 13"/>`,
	IconCheck:       `<path d="M20 6 9 17l-5-5"/>`,
}

// Render returns the inline SVG for the icon. The empty icon renders nothing.
func (i Icon) Render(class string) (template.HTML, error) {
	if i == "" {
		return "", nil
	}
	paths, ok := iconPaths[i]
	if !ok {
		return "", unknown("icon", "name", i)
	}
	return render("icon", struct {
		Class string
		Paths template.HTML
	}{class, paths})
}

func (i Icon) valid() bool {
	if i == "" {
		return true
	}
	_, ok := iconPaths[i]
	return ok
}
