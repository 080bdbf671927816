// Package pagination reads FHIR search paging parameters and builds the
// matching Bundle links.
package pagination

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultCount = 20
	MaxCount     = 100
)

// Params is a page of a search: Limit rows starting at Offset.
type Params struct {
	Limit  int
	Offset int
}

// FromContext reads _count and _offset. Missing or malformed values fall
// back to the first page of DefaultCount; _count is capped at MaxCount.
func FromContext(c echo.Context) Params {
	limit, err := strconv.Atoi(c.QueryParam("_count"))
	if err != nil || limit <= 0 {
		limit = DefaultCount
	}
	if limit > MaxCount {
		limit = MaxCount
	}
	offset, err := strconv.Atoi(c.QueryParam("_offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return Params{Limit: limit, Offset: offset}
}

// HasNext reports whether rows remain after this page, given that seen rows
// are known to exist in total.
func (p Params) HasNext(seen int) bool {
	return p.Offset+p.Limit < seen
}

func (p Params) HasPrevious() bool {
	return p.Offset > 0
}

// Link is a Bundle.link entry.
type Link struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

// Links returns self, and next and previous where they exist, for a search
// at path.
func (p Params) Links(path string, seen int) []Link {
	links := []Link{{Relation: "self", URL: pageURL(path, p.Offset, p.Limit)}}
	if p.HasNext(seen) {
		links = append(links, Link{Relation: "next", URL: pageURL(path, p.Offset+p.Limit, p.Limit)})
	}
	if p.HasPrevious() {
		prev := p.Offset - p.Limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, Link{Relation: "previous", URL: pageURL(path, prev, p.Limit)})
	}
	return links
}

func pageURL(path string, offset, count int) string {
	q := url.Values{}
	q.Set("_count", strconv.Itoa(count))
	q.Set("_offset", strconv.Itoa(offset))
	return path + "?" + q.Encode()
}
