package db

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"finbook-server/src/util"
)

const dateLayout = "2006-01-02"

// TransactionFilter holds the optional query-parameter refinements for the
// transaction list. Every field is independent; all present constraints are
// ANDed onto the owner-scoped base query.
type TransactionFilter struct {
	Paid     *bool
	Category *int64
	Account  *int64
	DateGTE  *time.Time
	DateGT   *time.Time
	DateLT   *time.Time
	DateLTE  *time.Time
}

// ParseTransactionFilter reads filter parameters from a request query
// string. The now argument anchors the date_range shortcuts.
func ParseTransactionFilter(values url.Values, now time.Time) (*TransactionFilter, util.FieldErrors) {
	errs := util.FieldErrors{}
	var f TransactionFilter

	if raw := values.Get("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			errs.Add("paid", "enter a valid boolean")
		} else {
			f.Paid = &paid
		}
	}

	for _, p := range []struct {
		name string
		dest **int64
	}{
		{"category", &f.Category},
		{"account", &f.Account},
	} {
		if raw := values.Get(p.name); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				errs.Add(p.name, "enter a valid id")
			} else {
				*p.dest = &id
			}
		}
	}

	for _, p := range []struct {
		name string
		dest **time.Time
	}{
		{"date_gte", &f.DateGTE},
		{"date_gt", &f.DateGT},
		{"date_lt", &f.DateLT},
		{"date_lte", &f.DateLTE},
	} {
		if raw := values.Get(p.name); raw != "" {
			d, err := time.Parse(dateLayout, raw)
			if err != nil {
				errs.Add(p.name, "enter a valid date in YYYY-MM-DD format")
			} else {
				*p.dest = &d
			}
		}
	}

	if raw := values.Get("date_range"); raw != "" {
		from, to, ok := resolveDateRange(raw, now)
		if !ok {
			errs.Add("date_range", "select a valid choice")
		} else {
			f.DateGTE = &from
			f.DateLTE = &to
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return &f, nil
}

// resolveDateRange maps a named shortcut to an inclusive [from, to] window.
func resolveDateRange(name string, now time.Time) (time.Time, time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch name {
	case "today":
		return today, today, true
	case "yesterday":
		y := today.AddDate(0, 0, -1)
		return y, y, true
	case "week":
		// Past seven days, including today.
		return today.AddDate(0, 0, -7), today, true
	case "month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return first, last, true
	case "year":
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		return first, last, true
	}
	return time.Time{}, time.Time{}, false
}

// Apply appends the filter's predicates to an owner-scoped base query using
// positional args, returning the extended query and argument list.
func (f *TransactionFilter) Apply(query string, args []interface{}) (string, []interface{}) {
	add := func(predicate string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(" AND %s $%d", predicate, len(args))
	}

	if f.Paid != nil {
		add("t.paid =", *f.Paid)
	}
	if f.Category != nil {
		add("t.category_id =", *f.Category)
	}
	if f.Account != nil {
		add("t.account_id =", *f.Account)
	}
	if f.DateGTE != nil {
		add("t.transaction_date >=", *f.DateGTE)
	}
	if f.DateGT != nil {
		add("t.transaction_date >", *f.DateGT)
	}
	if f.DateLT != nil {
		add("t.transaction_date <", *f.DateLT)
	}
	if f.DateLTE != nil {
		add("t.transaction_date <=", *f.DateLTE)
	}

	return query, args
}
