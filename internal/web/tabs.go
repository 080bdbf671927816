package web

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/ui/components"
)

// TabSet is the closed list of tabs a page accepts in its query string.
type TabSet struct {
	Param   string
	Path    string
	Default string
	Items   []components.Tab
}

// Selected returns the requested tab, the default when none is given, or a
// 400 for a key outside the set.
func (ts TabSet) Selected(c echo.Context) (string, error) {
	key := c.QueryParam(ts.Param)
	if key == "" {
		return ts.Default, nil
	}
	for _, it := range ts.Items {
		if it.Key == key {
			return key, nil
		}
	}
	return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown tab %q", key))
}

// Strip is the tab strip with active selected. Tabs without an explicit href
// link back to the page with the tab in the query string.
func (ts TabSet) Strip(active string) components.Tabs {
	items := make([]components.Tab, len(ts.Items))
	for i, it := range ts.Items {
		if it.Href == "" {
			it.Href = Href(ts.Path, ts.Param, it.Key)
		}
		items[i] = it
	}
	return components.Tabs{Items: items, Active: active, Class: "mb-6"}
}
