package server

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// query reads typed parameters and collects every problem instead of
// stopping at the first one.
type query struct {
	values   url.Values
	problems []string
}

func newQuery(r *http.Request) *query {
	return &query{values: r.URL.Query()}
}

func (q *query) raw(name string) (string, bool) {
	v := strings.TrimSpace(q.values.Get(name))
	return v, v != ""
}

func (q *query) str(name string) string {
	v, ok := q.raw(name)
	if !ok {
		q.problems = append(q.problems, fmt.Sprintf("missing required parameter %s", name))
	}
	return v
}

func (q *query) float(name string) float64 {
	v, ok := q.raw(name)
	if !ok {
		q.problems = append(q.problems, fmt.Sprintf("missing required parameter %s", name))
		return 0
	}
	return q.parseFloat(name, v)
}

func (q *query) optionalFloat(name string) *float64 {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	f := q.parseFloat(name, v)
	return &f
}

func (q *query) int(name string) int {
	v, ok := q.raw(name)
	if !ok {
		q.problems = append(q.problems, fmt.Sprintf("missing required parameter %s", name))
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.problems = append(q.problems, fmt.Sprintf("parameter %s must be an integer, got %q", name, v))
	}
	return n
}

func (q *query) parseFloat(name, v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		q.problems = append(q.problems, fmt.Sprintf("parameter %s must be a number, got %q", name, v))
		return 0
	}
	return f
}
