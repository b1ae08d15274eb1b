package static

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domuser "example.com/productgrid/internal/domain/user"
)

func TestProductRepository_BundledSample(t *testing.T) {
	products, err := NewProductRepository().List(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, products)
	require.Equal(t, int64(1), products[0].ID)
	require.Equal(t, "Chai", products[0].Name)
	require.Equal(t, "18", products[0].UnitPrice.String())
	require.NotNil(t, products[0].Category)
	require.Equal(t, "Beverages", products[0].Category.Name)

	seen := map[int64]bool{}
	for _, p := range products {
		require.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}

func TestProductRepository_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"ProductID":5,"ProductName":"Tofu","UnitPrice":"23.25","Category":null}]`), 0o600))

	repo, err := NewFileProductRepository(path)
	require.NoError(t, err)
	products, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "23.25", products[0].UnitPrice.String())
	require.Nil(t, products[0].Category)
}

func TestProductRepository_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"ProductID":5,"Colour":"red"}]`), 0o600))

	repo, err := NewFileProductRepository(path)
	require.NoError(t, err)
	_, err = repo.List(context.Background())

	require.Error(t, err)
}

func TestNewFileProductRepository_Missing(t *testing.T) {
	_, err := NewFileProductRepository(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository("editor", "hash")

	u, err := repo.GetByUsername(context.Background(), "editor")
	require.NoError(t, err)
	require.Equal(t, "hash", u.PasswordHash)

	_, err = repo.GetByUsername(context.Background(), "someone")
	require.ErrorIs(t, err, domuser.ErrUserNotFound)

	_, err = NewUserRepository("editor", "").GetByUsername(context.Background(), "editor")
	require.ErrorIs(t, err, domuser.ErrUserNotFound)
}
