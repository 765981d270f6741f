package repositories_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"profilecard/internal/apperrors"
	"profilecard/internal/fixtures"
	"profilecard/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// openExternal opens the store named by env, skipping when it is not configured.
func openExternal(t *testing.T, env, dbName string) *repositories.Store {
	t.Helper()
	dsn := os.Getenv(env)
	if dsn == "" {
		t.Skipf("%s not set", env)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := repositories.Open(ctx, dsn, dbName, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	require.NoError(t, store.Ping(ctx))
	return store
}

// exerciseStore checks the behavior every backend shares.
func exerciseStore(t *testing.T, store *repositories.Store) {
	ctx := context.Background()
	suffix := time.Now().UnixNano() % 1_000_000
	start := time.Now().UTC().Truncate(time.Millisecond)

	first := fixtures.BuyerCard(int(suffix))
	first.CreatedAt = start
	require.NoError(t, store.BuyerCards.Create(ctx, first))

	got, err := store.BuyerCards.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, got.Email)
	assert.Equal(t, first.ProductCodes, got.ProductCodes)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))

	dup := fixtures.BuyerCard(int(suffix))
	dup.CreatedAt = start.Add(time.Millisecond)
	err = store.BuyerCards.Create(ctx, dup)
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)

	second := fixtures.BuyerCard(int(suffix) + 1)
	second.CreatedAt = start.Add(time.Second)
	require.NoError(t, store.BuyerCards.Create(ctx, second))

	list, err := store.BuyerCards.GetAll(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(list), 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	student := fixtures.Student(int(suffix))
	require.NoError(t, store.Students.Create(ctx, student))
	other := fixtures.Student(int(suffix) + 1)
	other.IDNumber = student.IDNumber
	err = store.Students.Create(ctx, other)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "id_number", conflict.Field)

	_, err = store.Sellers.GetByID(ctx, fmt.Sprintf("%08d-0000-4000-8000-000000000000", suffix))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMongoStore(t *testing.T) {
	store := openExternal(t, "TEST_MONGO_URI", fmt.Sprintf("profilecards_test_%d", time.Now().UnixNano()))
	assert.Equal(t, repositories.DriverMongo, store.Driver)
	exerciseStore(t, store)
}

func TestPostgresStore(t *testing.T) {
	store := openExternal(t, "TEST_POSTGRES_DSN", "")
	assert.Equal(t, repositories.DriverPostgres, store.Driver)
	exerciseStore(t, store)
}
