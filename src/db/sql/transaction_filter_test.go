package db

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var filterNow = time.Date(2020, 7, 15, 10, 30, 0, 0, time.UTC)

func TestParseTransactionFilterEmpty(t *testing.T) {
	f, errs := ParseTransactionFilter(url.Values{}, filterNow)
	require.False(t, errs.HasErrors())

	assert.Nil(t, f.Paid)
	assert.Nil(t, f.Category)
	assert.Nil(t, f.Account)
	assert.Nil(t, f.DateGTE)
	assert.Nil(t, f.DateGT)
	assert.Nil(t, f.DateLT)
	assert.Nil(t, f.DateLTE)
}

func TestParseTransactionFilterAllFields(t *testing.T) {
	values := url.Values{}
	values.Set("paid", "true")
	values.Set("category", "3")
	values.Set("account", "7")
	values.Set("date_gte", "2020-07-01")
	values.Set("date_lte", "2020-07-31")

	f, errs := ParseTransactionFilter(values, filterNow)
	require.False(t, errs.HasErrors())

	require.NotNil(t, f.Paid)
	assert.True(t, *f.Paid)
	require.NotNil(t, f.Category)
	assert.Equal(t, int64(3), *f.Category)
	require.NotNil(t, f.Account)
	assert.Equal(t, int64(7), *f.Account)
	require.NotNil(t, f.DateGTE)
	assert.Equal(t, time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC), *f.DateGTE)
	require.NotNil(t, f.DateLTE)
	assert.Equal(t, time.Date(2020, 7, 31, 0, 0, 0, 0, time.UTC), *f.DateLTE)
}

func TestParseTransactionFilterInvalidValues(t *testing.T) {
	values := url.Values{}
	values.Set("paid", "maybe")
	values.Set("category", "abc")
	values.Set("date_gte", "July 1st")
	values.Set("date_range", "fortnight")

	f, errs := ParseTransactionFilter(values, filterNow)
	assert.Nil(t, f)
	require.True(t, errs.HasErrors())
	assert.Contains(t, errs, "paid")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "date_gte")
	assert.Contains(t, errs, "date_range")
	assert.NotContains(t, errs, "account")
}

func TestParseTransactionFilterDateRangeToday(t *testing.T) {
	values := url.Values{}
	values.Set("date_range", "today")

	f, errs := ParseTransactionFilter(values, filterNow)
	require.False(t, errs.HasErrors())

	today := time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, f.DateGTE)
	require.NotNil(t, f.DateLTE)
	assert.Equal(t, today, *f.DateGTE)
	assert.Equal(t, today, *f.DateLTE)
}

func TestResolveDateRange(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
	}{
		{"today", time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC), time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC)},
		{"yesterday", time.Date(2020, 7, 14, 0, 0, 0, 0, time.UTC), time.Date(2020, 7, 14, 0, 0, 0, 0, time.UTC)},
		{"week", time.Date(2020, 7, 8, 0, 0, 0, 0, time.UTC), time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC)},
		{"month", time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 7, 31, 0, 0, 0, 0, time.UTC)},
		{"year", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			from, to, ok := resolveDateRange(tc.name, filterNow)
			require.True(t, ok)
			assert.Equal(t, tc.from, from)
			assert.Equal(t, tc.to, to)
		})
	}

	_, _, ok := resolveDateRange("decade", filterNow)
	assert.False(t, ok)
}

func TestApplyNoFilters(t *testing.T) {
	base := `SELECT * FROM transactions t WHERE c.user_id = $1`
	f := &TransactionFilter{}

	query, args := f.Apply(base, []interface{}{int64(1)})
	assert.Equal(t, base, query)
	assert.Len(t, args, 1)
}

func TestApplyCombinesPredicatesWithPositionalArgs(t *testing.T) {
	paid := false
	account := int64(9)
	from := time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, 7, 31, 0, 0, 0, 0, time.UTC)
	f := &TransactionFilter{
		Paid:    &paid,
		Account: &account,
		DateGTE: &from,
		DateLTE: &to,
	}

	query, args := f.Apply(`WHERE c.user_id = $1`, []interface{}{int64(1)})

	assert.Equal(t,
		`WHERE c.user_id = $1 AND t.paid = $2 AND t.account_id = $3`+
			` AND t.transaction_date >= $4 AND t.transaction_date <= $5`,
		query)
	assert.Equal(t, []interface{}{int64(1), false, int64(9), from, to}, args)
}

func TestApplyExclusiveBounds(t *testing.T) {
	after := time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2020, 8, 1, 0, 0, 0, 0, time.UTC)
	f := &TransactionFilter{DateGT: &after, DateLT: &before}

	query, args := f.Apply(`WHERE c.user_id = $1`, []interface{}{int64(1)})

	assert.Equal(t,
		`WHERE c.user_id = $1 AND t.transaction_date > $2 AND t.transaction_date < $3`,
		query)
	assert.Equal(t, []interface{}{int64(1), after, before}, args)
}
