// Package baas binds the portal to the hosted backend's PostgREST surface.
//
// Two handles exist per process: Anon, which carries the public key and is
// scoped to a signed-in user with WithAccessToken so row-level policies
// apply, and Service, which bypasses those policies and is only handed to
// trusted server-side paths.
package baas

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	ErrNotFound   = errors.New("baas: no rows")
	ErrUnfiltered = errors.New("baas: update and delete require a filter")
)

// Handle is a table-level client for the backend.
type Handle interface {
	// Select decodes every matching row into dest, a pointer to a slice.
	Select(ctx context.Context, table string, q Query, dest interface{}) error
	// SelectOne decodes the first matching row into dest and returns
	// ErrNotFound when nothing matches.
	SelectOne(ctx context.Context, table string, q Query, dest interface{}) error
	// Insert stores row and decodes the stored representation into dest
	// when dest is non-nil.
	Insert(ctx context.Context, table string, row interface{}, dest interface{}) error
	Update(ctx context.Context, table string, q Query, patch interface{}, dest interface{}) error
	Delete(ctx context.Context, table string, q Query) error
	// WithAccessToken returns a handle that authenticates as the user the
	// token was issued to.
	WithAccessToken(token string) Handle
}

type filter struct {
	column string
	op     string
	value  string
}

// Query is an immutable PostgREST filter set. The zero value matches every
// row.
type Query struct {
	columns string
	filters []filter
	order   []string
	limit   int
	offset  int
}

func (q Query) with(f filter) Query {
	out := q
	out.filters = append(append([]filter(nil), q.filters...), f)
	return out
}

// Columns restricts the returned columns; empty selects all.
func (q Query) Columns(cols ...string) Query {
	q.columns = strings.Join(cols, ",")
	return q
}

func (q Query) Eq(column string, value interface{}) Query {
	return q.with(filter{column, "eq", fmt.Sprint(value)})
}

func (q Query) Neq(column string, value interface{}) Query {
	return q.with(filter{column, "neq", fmt.Sprint(value)})
}

func (q Query) Gte(column string, value interface{}) Query {
	return q.with(filter{column, "gte", fmt.Sprint(value)})
}

func (q Query) Lt(column string, value interface{}) Query {
	return q.with(filter{column, "lt", fmt.Sprint(value)})
}

func (q Query) In(column string, values ...string) Query {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return q.with(filter{column, "in", "(" + strings.Join(quoted, ",") + ")"})
}

// Contains matches JSON or array columns that contain value, which must
// already be a PostgREST literal such as `[{"reference":"Patient/1"}]`.
func (q Query) Contains(column, value string) Query {
	return q.with(filter{column, "cs", value})
}

func (q Query) Order(column string, ascending bool) Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.order = append(append([]string(nil), q.order...), column+"."+dir)
	return q
}

func (q Query) Limit(n int) Query {
	q.limit = n
	return q
}

func (q Query) Offset(n int) Query {
	q.offset = n
	return q
}

func (q Query) Filtered() bool {
	return len(q.filters) > 0
}

// Values encodes the query in the PostgREST dialect.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.columns != "" {
		v.Set("select", q.columns)
	}
	for _, f := range q.filters {
		v.Add(f.column, f.op+"."+f.value)
	}
	if len(q.order) > 0 {
		v.Set("order", strings.Join(q.order, ","))
	}
	if q.limit > 0 {
		v.Set("limit", strconv.Itoa(q.limit))
	}
	if q.offset > 0 {
		v.Set("offset", strconv.Itoa(q.offset))
	}
	return v
}

// quote wraps list members that contain PostgREST reserved characters.
func quote(s string) string {
	if strings.ContainsAny(s, `,()". `) {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}

// Error is a PostgREST error response.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("baas: %d", e.Status)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}
