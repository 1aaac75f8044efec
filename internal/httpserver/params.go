package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// queryReader parses optional query parameters and collects every malformed one
type queryReader struct {
	values url.Values
	errs   []string
}

func newQueryReader(r *http.Request) *queryReader {
	return &queryReader{values: r.URL.Query()}
}

func (q *queryReader) string(name string) string {
	return strings.TrimSpace(q.values.Get(name))
}

func (q *queryReader) int(name string, def int) int {
	raw := q.string(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		q.errs = append(q.errs, fmt.Sprintf("%s must be an integer", name))
		return def
	}
	return n
}

func (q *queryReader) float(name string) *float64 {
	raw := q.string(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.errs = append(q.errs, fmt.Sprintf("%s must be a number", name))
		return nil
	}
	return &f
}

func (q *queryReader) bool(name string) *bool {
	raw := q.string(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		q.errs = append(q.errs, fmt.Sprintf("%s must be true or false", name))
		return nil
	}
	return &b
}

// list splits a comma-separated parameter, dropping empty items
func (q *queryReader) list(name string) []string {
	raw := q.string(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func (q *queryReader) err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(q.errs, "; "))
}
