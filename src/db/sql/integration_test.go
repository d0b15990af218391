package db

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"testing"
	"time"

	appdb "finbook-server/src/db"
	"finbook-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real database when TEST_DATABASE_URL is set and
// are skipped otherwise.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := appdb.Connect(dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, appdb.Migrate(context.Background(), pool))
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@example.com", time.Now().UnixNano())
	user, err := CreateUser(context.Background(), pool, email, "Test User", "hashed")
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(context.Background(), "DELETE FROM users WHERE id = $1", user.ID)
	})
	return user
}

func createTestAccountType(t *testing.T, pool *pgxpool.Pool) *models.AccountType {
	t.Helper()
	at, err := CreateAccountType(context.Background(), pool, &models.AccountType{
		Name: fmt.Sprintf("Wallet %d", time.Now().UnixNano()),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(context.Background(), "DELETE FROM account_types WHERE id = $1", at.ID)
	})
	return at
}

func createTestAccount(t *testing.T, pool *pgxpool.Pool, userID, accountTypeID int64) *models.Account {
	t.Helper()
	account, err := CreateAccount(context.Background(), pool, &models.Account{
		Name:          "Checking",
		Description:   "test account",
		AccountTypeID: accountTypeID,
		UserID:        userID,
	})
	require.NoError(t, err)
	return account
}

func createTestCategory(t *testing.T, pool *pgxpool.Pool, userID int64) *models.TransactionCategory {
	t.Helper()
	category, err := CreateCategory(context.Background(), pool, &models.TransactionCategory{
		Name:         "Groceries",
		CategoryType: models.CategoryExpense,
		UserID:       userID,
	})
	require.NoError(t, err)
	return category
}

func createTestTransaction(t *testing.T, pool *pgxpool.Pool, categoryID, accountID int64, date string, paid bool) *models.Transaction {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	transaction, err := CreateTransaction(context.Background(), pool, &models.Transaction{
		Amount:          decimal.RequireFromString("42.50"),
		Description:     "test transaction",
		Paid:            paid,
		TransactionDate: d,
		CategoryID:      categoryID,
		AccountID:       accountID,
	})
	require.NoError(t, err)
	return transaction
}

func TestAccountOwnershipIsolation(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	userA := createTestUser(t, pool)
	userB := createTestUser(t, pool)
	accountType := createTestAccountType(t, pool)

	accountB := createTestAccount(t, pool, userB.ID, accountType.ID)

	// B's account is invisible to A in every operation.
	accounts, err := GetAllAccountsForUser(ctx, pool, userA.ID)
	require.NoError(t, err)
	for _, a := range accounts {
		assert.NotEqual(t, accountB.ID, a.ID)
	}

	_, err = GetAccountByID(ctx, pool, userA.ID, accountB.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = UpdateAccount(ctx, pool, &models.Account{
		ID:            accountB.ID,
		Name:          "hijacked",
		Description:   "x",
		AccountTypeID: accountType.ID,
		UserID:        userA.ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	err = DeleteAccount(ctx, pool, userA.ID, accountB.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Still reachable by its owner.
	got, err := GetAccountByID(ctx, pool, userB.ID, accountB.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checking", got.Name)
}

func TestTransactionTransitiveOwnership(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	userA := createTestUser(t, pool)
	userB := createTestUser(t, pool)
	accountType := createTestAccountType(t, pool)

	accountB := createTestAccount(t, pool, userB.ID, accountType.ID)
	categoryB := createTestCategory(t, pool, userB.ID)
	transactionB := createTestTransaction(t, pool, categoryB.ID, accountB.ID, "2020-07-15", true)

	// Ownership flows through the category's owner.
	_, err := GetTransactionByID(ctx, pool, userB.ID, transactionB.ID)
	require.NoError(t, err)

	_, err = GetTransactionByID(ctx, pool, userA.ID, transactionB.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = DeleteTransaction(ctx, pool, userA.ID, transactionB.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	transactions, err := GetAllTransactionsForUser(ctx, pool, userA.ID, nil)
	require.NoError(t, err)
	for _, tr := range transactions {
		assert.NotEqual(t, transactionB.ID, tr.ID)
	}
}

func TestTransactionFilters(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	user := createTestUser(t, pool)
	accountType := createTestAccountType(t, pool)
	account := createTestAccount(t, pool, user.ID, accountType.ID)
	otherAccount := createTestAccount(t, pool, user.ID, accountType.ID)
	category := createTestCategory(t, pool, user.ID)

	july1 := createTestTransaction(t, pool, category.ID, account.ID, "2020-07-01", true)
	july15 := createTestTransaction(t, pool, category.ID, account.ID, "2020-07-15", false)
	july31 := createTestTransaction(t, pool, category.ID, account.ID, "2020-07-31", true)
	aug5 := createTestTransaction(t, pool, category.ID, otherAccount.ID, "2020-08-05", false)

	ids := func(transactions []models.Transaction) []int64 {
		var out []int64
		for _, tr := range transactions {
			out = append(out, tr.ID)
		}
		return out
	}

	// Inclusive date range returns exactly the July transactions.
	values := url.Values{}
	values.Set("date_gte", "2020-07-01")
	values.Set("date_lte", "2020-07-31")
	filter, errs := ParseTransactionFilter(values, time.Now())
	require.False(t, errs.HasErrors())

	transactions, err := GetAllTransactionsForUser(ctx, pool, user.ID, filter)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{july1.ID, july15.ID, july31.ID}, ids(transactions))

	// Exact account match.
	values = url.Values{}
	values.Set("account", fmt.Sprintf("%d", otherAccount.ID))
	filter, errs = ParseTransactionFilter(values, time.Now())
	require.False(t, errs.HasErrors())

	transactions, err = GetAllTransactionsForUser(ctx, pool, user.ID, filter)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{aug5.ID}, ids(transactions))

	// Exact paid match.
	values = url.Values{}
	values.Set("paid", "true")
	values.Set("date_gte", "2020-07-01")
	values.Set("date_lte", "2020-08-31")
	filter, errs = ParseTransactionFilter(values, time.Now())
	require.False(t, errs.HasErrors())

	transactions, err = GetAllTransactionsForUser(ctx, pool, user.ID, filter)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{july1.ID, july31.ID}, ids(transactions))

	// Exclusive bounds drop the edges.
	values = url.Values{}
	values.Set("date_gt", "2020-07-01")
	values.Set("date_lt", "2020-07-31")
	filter, errs = ParseTransactionFilter(values, time.Now())
	require.False(t, errs.HasErrors())

	transactions, err = GetAllTransactionsForUser(ctx, pool, user.ID, filter)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{july15.ID}, ids(transactions))
}

func TestTransactionDateRangeToday(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	user := createTestUser(t, pool)
	accountType := createTestAccountType(t, pool)
	account := createTestAccount(t, pool, user.ID, accountType.ID)
	category := createTestCategory(t, pool, user.ID)

	now := time.Now()
	todayTx := createTestTransaction(t, pool, category.ID, account.ID, now.Format("2006-01-02"), true)
	createTestTransaction(t, pool, category.ID, account.ID, now.AddDate(0, 0, -1).Format("2006-01-02"), true)

	values := url.Values{}
	values.Set("date_range", "today")
	filter, errs := ParseTransactionFilter(values, now)
	require.False(t, errs.HasErrors())

	transactions, err := GetAllTransactionsForUser(ctx, pool, user.ID, filter)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, todayTx.ID, transactions[0].ID)
}

func TestUserEmailUnique(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	user := createTestUser(t, pool)

	_, err := CreateUser(ctx, pool, user.Email, "Other Name", "hashed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}
