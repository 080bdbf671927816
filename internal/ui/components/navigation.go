package components

import (
	"html/template"

	"github.com/healthify/portal/internal/ui/variant"
)

// NavItem is a navigation entry. Children render as an expandable submenu.
type NavItem struct {
	ID       string
	Label    string
	Href     string
	Icon     Icon
	Badge    int
	Children []NavItem
	Disabled bool
	Expanded bool
}

var navItemStyles = variant.MustDefine("navItem",
	"w-full flex items-center justify-between px-3 py-2 rounded-lg text-sm font-medium transition-colors duration-200 focus:outline-none focus:ring-2 focus:ring-primary-500",
	variant.AxisSpec{
		Name: "role",
		Fragments: map[variant.Key]string{
			"patient":  "",
			"provider": "",
			"admin":    "",
		},
		Default: "patient",
	},
	variant.AxisSpec{
		Name: "disabled",
		Fragments: map[variant.Key]string{
			"true":  "opacity-50 cursor-not-allowed",
			"false": "cursor-pointer",
		},
		Default: "false",
	},
)

var navItemState = map[Role]struct{ active, idle string }{
	RolePatient:  {"text-primary-700 bg-primary-50 border-primary-200", "text-gray-700 hover:text-primary-600 hover:bg-primary-50"},
	RoleProvider: {"text-secondary-700 bg-secondary-50 border-secondary-200", "text-gray-700 hover:text-secondary-600 hover:bg-secondary-50"},
	RoleAdmin:    {"text-purple-700 bg-purple-50 border-purple-200", "text-gray-700 hover:text-purple-600 hover:bg-purple-50"},
}

// navChrome holds the border/background of the navbar, sidebar and tab bar.
var navChrome = map[Role]string{
	RolePatient:  "bg-white border-primary-200",
	RoleProvider: "bg-white border-secondary-200",
	RoleAdmin:    "bg-white border-purple-200",
}

var sidebarChrome = map[Role]string{
	RolePatient:  "bg-primary-50 border-primary-200",
	RoleProvider: "bg-secondary-50 border-secondary-200",
	RoleAdmin:    "bg-purple-50 border-purple-200",
}

var tabBarActive = map[Role]string{
	RolePatient:  "text-primary-600",
	RoleProvider: "text-secondary-600",
	RoleAdmin:    "text-purple-600",
}

func roleOf(component string, r Role) (Role, error) {
	if r == "" {
		return RolePatient, nil
	}
	if _, ok := navChrome[r]; !ok {
		return "", unknown(component, "role", r)
	}
	return r, nil
}

type navItemView struct {
	NavItem
	ClassName  string
	Active     bool
	IconHTML   template.HTML
	Chevron    template.HTML
	Open       bool
	Submenu    []template.HTML
	HasSubmenu bool
}

func (n NavItem) isActive(active string) bool {
	if n.ID == active {
		return true
	}
	for _, c := range n.Children {
		if c.isActive(active) {
			return true
		}
	}
	return false
}

// Render draws the item for role with active naming the current item id.
func (n NavItem) Render(role Role, active string) (template.HTML, error) {
	role, err := roleOf("navItem", role)
	if err != nil {
		return "", err
	}
	on := n.isActive(active)
	state := navItemState[role].idle
	if n.ID == active {
		state = navItemState[role].active
	}
	class, err := navItemStyles.Resolve(variant.Selection{
		"role":     variant.Key(role),
		"disabled": variant.Bool(n.Disabled),
	}, state)
	if err != nil {
		return "", err
	}
	v := navItemView{NavItem: n, ClassName: class, Active: n.ID == active}
	if v.IconHTML, err = n.Icon.Render("h-5 w-5 mr-3"); err != nil {
		return "", err
	}
	if len(n.Children) > 0 {
		v.HasSubmenu = true
		v.Open = n.Expanded || on
		if v.Chevron, err = IconChevronDown.Render("h-4 w-4 transition-transform"); err != nil {
			return "", err
		}
		for _, c := range n.Children {
			child, err := c.Render(role, active)
			if err != nil {
				return "", err
			}
			v.Submenu = append(v.Submenu, child)
		}
	}
	return render("nav-item", v)
}

func renderItems(items []NavItem, role Role, active string) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(items))
	for _, it := range items {
		h, err := it.Render(role, active)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

type Navbar struct {
	Title    string
	Role     Role
	Items    []NavItem
	Active   string
	UserName string
	Class    string
}

func (n Navbar) Render() (template.HTML, error) {
	role, err := roleOf("navbar", n.Role)
	if err != nil {
		return "", err
	}
	items, err := renderItems(n.Items, role, n.Active)
	if err != nil {
		return "", err
	}
	v := struct {
		Navbar
		ClassName string
		Rendered  []template.HTML
		Brand     template.HTML
		Menu      template.HTML
		User      template.HTML
	}{Navbar: n, ClassName: variant.Join("border-b", navChrome[role], n.Class), Rendered: items}
	if v.Title == "" {
		v.Title = "Healthify Connect"
	}
	if v.Brand, err = IconHeart.Render("h-6 w-6 text-primary-600 mr-2"); err != nil {
		return "", err
	}
	if v.Menu, err = IconMenu.Render("h-6 w-6"); err != nil {
		return "", err
	}
	if v.User, err = IconUser.Render("h-5 w-5"); err != nil {
		return "", err
	}
	return render("navbar", v)
}

type Sidebar struct {
	Role      Role
	Items     []NavItem
	Active    string
	Collapsed bool
	Class     string
}

func (s Sidebar) Render() (template.HTML, error) {
	role, err := roleOf("sidebar", s.Role)
	if err != nil {
		return "", err
	}
	items, err := renderItems(s.Items, role, s.Active)
	if err != nil {
		return "", err
	}
	width := "w-64"
	if s.Collapsed {
		width = "w-16"
	}
	return render("sidebar", struct {
		ClassName string
		Rendered  []template.HTML
	}{variant.Join(width, "transition-width duration-300 ease-in-out border-r min-h-screen", sidebarChrome[role], s.Class), items})
}

// TabBar is the fixed bottom navigation on small screens.
type TabBar struct {
	Role   Role
	Items  []NavItem
	Active string
	Class  string
}

type tabBarItem struct {
	NavItem
	ClassName string
	IconHTML  template.HTML
}

func (t TabBar) Render() (template.HTML, error) {
	role, err := roleOf("tabBar", t.Role)
	if err != nil {
		return "", err
	}
	items := make([]tabBarItem, 0, len(t.Items))
	for _, it := range t.Items {
		state := "text-gray-500 hover:text-gray-700"
		if it.ID == t.Active {
			state = tabBarActive[role]
		}
		icon, err := it.Icon.Render("h-5 w-5 mb-1")
		if err != nil {
			return "", err
		}
		items = append(items, tabBarItem{
			NavItem:   it,
			ClassName: variant.Join("flex flex-col items-center px-3 py-2 min-h-[44px] text-xs font-medium transition-colors duration-200 focus:outline-none focus:ring-2 focus:ring-primary-500", state),
			IconHTML:  icon,
		})
	}
	return render("tabbar", struct {
		ClassName string
		Items     []tabBarItem
	}{variant.Join("fixed bottom-0 left-0 right-0 border-t", navChrome[role], t.Class), items})
}

type Tab struct {
	Key   string
	Label string
	Href  string
	Badge int
}

var tabStyles = variant.MustDefine("tab",
	"px-4 py-2 text-sm font-medium border-b-2 transition-colors duration-200 focus:outline-none focus:ring-2 focus:ring-primary-500",
	variant.AxisSpec{
		Name: "active",
		Fragments: map[variant.Key]string{
			"true":  "border-primary-500 text-primary-600",
			"false": "border-transparent text-gray-500 hover:text-gray-700 hover:border-gray-300",
		},
		Default: "false",
	},
)

// Tabs is an in-page tab strip. Active must name one of the tabs.
type Tabs struct {
	Items  []Tab
	Active string
	Class  string
}

func (t Tabs) Render() (template.HTML, error) {
	type tabView struct {
		Tab
		ClassName string
		Current   bool
	}
	tabs := make([]tabView, 0, len(t.Items))
	found := false
	for _, it := range t.Items {
		on := it.Key == t.Active
		found = found || on
		class, err := tabStyles.Resolve(variant.Selection{"active": variant.Bool(on)})
		if err != nil {
			return "", err
		}
		tabs = append(tabs, tabView{Tab: it, ClassName: class, Current: on})
	}
	if !found {
		return "", unknown("tabs", "tab", t.Active)
	}
	return render("tabs", struct {
		ClassName string
		Items     []tabView
	}{variant.Join("flex space-x-1 border-b border-gray-200", t.Class), tabs})
}

func PatientNavigation() []NavItem {
	return []NavItem{
		{ID: "dashboard", Label: "Dashboard", Href: "/", Icon: IconHome},
		{ID: "appointments", Label: "Appointments", Href: "/appointments", Icon: IconCalendar},
		{ID: "messages", Label: "Messages", Href: "/messages", Icon: IconMessage, Badge: 3},
		{ID: "health-records", Label: "Health Records", Href: "/health-records", Icon: IconFileText},
		{ID: "prescriptions", Label: "Prescriptions", Href: "/prescriptions", Icon: IconPill},
		{ID: "profile", Label: "Profile", Href: "/profile", Icon: IconUser},
	}
}

func ProviderNavigation() []NavItem {
	return []NavItem{
		{ID: "dashboard", Label: "Dashboard", Href: "/provider", Icon: IconHome},
		{ID: "patients", Label: "Patients", Href: "/provider/patients", Icon: IconUser},
		{ID: "appointments", Label: "Appointments", Href: "/provider/appointments", Icon: IconCalendar, Badge: 5},
		{ID: "messages", Label: "Messages", Href: "/messages", Icon: IconMessage, Badge: 12},
		{ID: "settings", Label: "Settings", Href: "/profile", Icon: IconSettings},
	}
}
