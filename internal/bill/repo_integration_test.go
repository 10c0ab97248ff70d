//go:build integration

package bill

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ddl, err := os.ReadFile("../../migrations/migrations.sql")
	require.NoError(t, err)
	_, err = pool.Exec(context.Background(), string(ddl))
	require.NoError(t, err)

	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()

	var id int64
	email := fmt.Sprintf("bill-%d@test.local", time.Now().UnixNano())
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (name, email, password_hash) VALUES ('Test', $1, 'x') RETURNING id`,
		email,
	).Scan(&id)
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM users WHERE id=$1`, id)
	})
	return id
}

func TestPayIncrementsExactlyOne(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	userID := createTestUser(t, pool)
	ctx := context.Background()

	created, err := repo.Insert(ctx, &Bill{
		UserID:            userID,
		Description:       "Rent",
		TotalAmount:       4500,
		TotalInstallments: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 0, created.PaidInstallments)

	payDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	paid, err := repo.Pay(ctx, created.ID, userID, payDate, true)
	require.NoError(t, err)
	assert.Equal(t, 1, paid.PaidInstallments)
	require.NotNil(t, paid.LastPaymentDate)
	assert.Equal(t, "2026-03-10", *paid.LastPaymentDate)

	// Second payment inside the same month trips the guard, leaving the count
	// untouched.
	_, err = repo.Pay(ctx, created.ID, userID, payDate.AddDate(0, 0, 5), true)
	assert.ErrorIs(t, err, ErrPaidThisMonth)

	bills, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, 1, bills[0].PaidInstallments)
}

func TestPayScopedToOwner(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	owner := createTestUser(t, pool)
	other := createTestUser(t, pool)
	ctx := context.Background()

	created, err := repo.Insert(ctx, &Bill{
		UserID:            owner,
		Description:       "Phone",
		TotalAmount:       1200,
		TotalInstallments: 12,
	})
	require.NoError(t, err)

	_, err = repo.Pay(ctx, created.ID, other, time.Now().UTC(), true)
	assert.ErrorIs(t, err, ErrNotFound)
}
