package handler

import (
	"net/url"
	"strconv"
	"time"

	"github.com/blaisecz/nightlog/internal/api/validation"
	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/blaisecz/nightlog/pkg/problem"
)

// ListSleepsQuery holds the query parameters of the sleep list endpoint.
type ListSleepsQuery struct {
	Page      int      `query:"page" validate:"omitempty,min=1"`
	Limit     int      `query:"limit" validate:"omitempty,min=1,max=1000"`
	SortBy    string   `query:"sortBy" validate:"omitempty,oneof=date score duration_min bedtime_full"`
	SortOrder string   `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	MinScore  *float64 `query:"minScore" validate:"omitempty,min=0"`
	MaxScore  *float64 `query:"maxScore" validate:"omitempty,min=0"`
	DateFrom  string   `query:"dateFrom" validate:"omitempty,isodate"`
	DateTo    string   `query:"dateTo" validate:"omitempty,isodate"`
}

// WindowQuery selects a KPI window either by explicit dates or by trailing days.
type WindowQuery struct {
	From string `query:"from" validate:"omitempty,isodate"`
	To   string `query:"to" validate:"omitempty,isodate"`
	Days int    `query:"days" validate:"omitempty,min=1,max=366"`
}

type queryReader struct {
	values url.Values
	errs   []problem.FieldError
}

func (q *queryReader) readInt(name string, dst *int) {
	s := q.values.Get(name)
	if s == "" {
		return
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		q.errs = append(q.errs, problem.FieldError{Field: name, Message: "must be an integer"})
		return
	}
	*dst = v
}

func (q *queryReader) readFloat(name string, dst **float64) {
	s := q.values.Get(name)
	if s == "" {
		return
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		q.errs = append(q.errs, problem.FieldError{Field: name, Message: "must be a number"})
		return
	}
	*dst = &v
}

// parseListQuery reads and validates the list parameters into a repository filter.
func parseListQuery(values url.Values) (domain.SleepRecordFilter, []problem.FieldError) {
	q := &queryReader{values: values}
	query := ListSleepsQuery{
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
		DateFrom:  values.Get("dateFrom"),
		DateTo:    values.Get("dateTo"),
	}
	q.readInt("page", &query.Page)
	q.readInt("limit", &query.Limit)
	q.readFloat("minScore", &query.MinScore)
	q.readFloat("maxScore", &query.MaxScore)
	if q.errs != nil {
		return domain.SleepRecordFilter{}, q.errs
	}
	if errs := validation.Validate(query); errs != nil {
		return domain.SleepRecordFilter{}, errs
	}

	filter := domain.SleepRecordFilter{
		Page:      query.Page,
		Limit:     query.Limit,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		MinScore:  query.MinScore,
		MaxScore:  query.MaxScore,
	}
	// Dates bound whole days of bedtime, not the raw date key, so the range
	// is chronological rather than lexicographic.
	if query.DateFrom != "" {
		d, _ := time.Parse(validation.DateLayout, query.DateFrom)
		start := kpi.DayWindow(d, d).From
		filter.From = &start
	}
	if query.DateTo != "" {
		d, _ := time.Parse(validation.DateLayout, query.DateTo)
		end := kpi.DayWindow(d, d).To
		filter.To = &end
	}
	return filter, nil
}

// parseWindowQuery returns the explicit window, or ok=false with the
// requested trailing days when no dates were given.
func parseWindowQuery(values url.Values) (w kpi.Window, days int, ok bool, errs []problem.FieldError) {
	q := &queryReader{values: values}
	query := WindowQuery{From: values.Get("from"), To: values.Get("to")}
	q.readInt("days", &query.Days)
	if q.errs != nil {
		return kpi.Window{}, 0, false, q.errs
	}
	if errs := validation.Validate(query); errs != nil {
		return kpi.Window{}, 0, false, errs
	}

	switch {
	case query.From == "" && query.To == "":
		return kpi.Window{}, query.Days, false, nil
	case query.From == "" || query.To == "":
		return kpi.Window{}, 0, false, []problem.FieldError{{Field: "from", Message: "from and to must be given together"}}
	case query.Days != 0:
		return kpi.Window{}, 0, false, []problem.FieldError{{Field: "days", Message: "cannot be combined with from and to"}}
	}

	from, _ := time.Parse(validation.DateLayout, query.From)
	to, _ := time.Parse(validation.DateLayout, query.To)
	return kpi.DayWindow(from, to), 0, true, nil
}
