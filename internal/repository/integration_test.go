//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/iliyamo/telegram-shop-backend/internal/database"
)

// setupTestDB starts a throwaway MySQL container with the real schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := mysql.Run(ctx,
		"mysql:8.0",
		mysql.WithDatabase("shop_test"),
		mysql.WithUsername("shop"),
		mysql.WithPassword("secret"),
	)
	require.NoError(t, err, "start MySQL container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "parseTime=true", "loc=UTC")
	require.NoError(t, err)

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schemaCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	require.NoError(t, database.EnsureSchema(schemaCtx, db))
	return db
}

func TestSearchByNameMatchesSubstringCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	products := NewProductRepo(db)

	_, err := products.Create(ctx, "Rose Bouquet", 100, []string{"https://a/1.jpg"}, nil, nil)
	require.NoError(t, err)
	_, err = products.Create(ctx, "Tulip Mix", 80, []string{"https://a/2.jpg"}, nil, nil)
	require.NoError(t, err)

	for _, fragment := range []string{"ros", "ROS", "Rose Bou"} {
		got, err := products.SearchByName(ctx, fragment)
		require.NoError(t, err, fragment)
		require.Len(t, got, 1, fragment)
		assert.Equal(t, "Rose Bouquet", got[0].Name, fragment)
	}

	got, err := products.SearchByName(ctx, "orchid")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFavoriteUpsertIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	products := NewProductRepo(db)
	favorites := NewFavoriteRepo(db)

	user, err := users.Create(ctx, 42, "alice", "Alice", "")
	require.NoError(t, err)
	product, err := products.Create(ctx, "Rose", 100, []string{"https://a/1.jpg"}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, favorites.Add(ctx, user.ID, product.ID))
	require.NoError(t, favorites.Add(ctx, user.ID, product.ID), "duplicate add must succeed")

	got, err := favorites.ListProducts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got, 1, "duplicate add leaves a single row")
	assert.Equal(t, product.ID, got[0].ID)

	require.NoError(t, favorites.Remove(ctx, user.ID, product.ID))
	require.NoError(t, favorites.Remove(ctx, user.ID, product.ID), "removing an absent pair must succeed")

	got, err = favorites.ListProducts(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCartUpsertMergesQuantities(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	products := NewProductRepo(db)
	cart := NewCartRepo(db)

	user, err := users.Create(ctx, 42, "alice", "Alice", "")
	require.NoError(t, err)
	product, err := products.Create(ctx, "Rose", 100, []string{"https://a/1.jpg"}, nil, nil)
	require.NoError(t, err)

	line, err := cart.Add(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	line, err = cart.Add(ctx, user.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity, "repeated add merges, not overwrites")

	line, err = cart.SetQuantity(ctx, user.ID, product.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, line.Quantity, "set is absolute")

	_, err = cart.SetQuantity(ctx, user.ID, "ghost", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}
