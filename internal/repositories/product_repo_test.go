package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

var (
	_ repositories.ProductRepository = (*repositories.GORMProductRepository)(nil)
	_ repositories.ProductRepository = (*repositories.MockProductRepository)(nil)
)

// TestProductRepositoryContract runs the behavior every ProductRepository must
// share against both the GORM store and the in-memory one, keeping the
// in-memory store a faithful stand-in wherever a test needs a working store
// without a database.
func TestProductRepositoryContract(t *testing.T) {
	implementations := []struct {
		name string
		open func(t *testing.T) repositories.ProductRepository
	}{
		{name: "gorm", open: func(t *testing.T) repositories.ProductRepository {
			return repositories.NewGORMProductRepository(newTestDB(t))
		}},
		{name: "in-memory", open: func(t *testing.T) repositories.ProductRepository {
			return repositories.NewMockProductRepository()
		}},
	}

	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			t.Run("create assigns sequential IDs", func(t *testing.T) {
				repo := impl.open(t)

				first := &models.Product{Name: "Monitor", Price: 300, Availability: true}
				second := &models.Product{Name: "Keyboard", Price: 75, Availability: true}

				assert.NoError(t, repo.Create(first))
				assert.NoError(t, repo.Create(second))
				assert.Equal(t, uint(1), first.ID)
				assert.Equal(t, uint(2), second.ID)
			})

			t.Run("get by ID", func(t *testing.T) {
				repo := impl.open(t)

				created := &models.Product{Name: "Monitor", Price: 300, Availability: true}
				require.NoError(t, repo.Create(created))

				product, err := repo.GetByID(created.ID)
				assert.NoError(t, err)
				assert.Equal(t, created.Name, product.Name)
				assert.Equal(t, created.Price, product.Price)
				assert.True(t, product.Availability)

				_, err = repo.GetByID(999)
				assert.ErrorIs(t, err, repositories.ErrProductNotFound)
			})

			t.Run("get all on an empty store", func(t *testing.T) {
				repo := impl.open(t)

				products, err := repo.GetAll()
				assert.NoError(t, err)
				assert.NotNil(t, products)
				assert.Empty(t, products)
			})

			t.Run("update replaces every field", func(t *testing.T) {
				repo := impl.open(t)

				created := &models.Product{Name: "Monitor", Price: 300, Availability: true}
				require.NoError(t, repo.Create(created))

				updated := &models.Product{ID: created.ID, Name: "Monitor Pro", Price: 450, Availability: false}
				assert.NoError(t, repo.Update(updated))

				reloaded, err := repo.GetByID(created.ID)
				assert.NoError(t, err)
				assert.Equal(t, "Monitor Pro", reloaded.Name)
				assert.Equal(t, 450.0, reloaded.Price)
				assert.False(t, reloaded.Availability)
			})

			t.Run("update of an absent ID reports not found", func(t *testing.T) {
				repo := impl.open(t)

				require.NoError(t, repo.Create(&models.Product{Name: "Monitor", Price: 300, Availability: true}))

				missing := &models.Product{ID: 999, Name: "Ghost", Price: 1, Availability: true}
				assert.ErrorIs(t, repo.Update(missing), repositories.ErrProductNotFound)

				// ID 0 is never assigned; an update aimed at it must report
				// not found rather than touch other rows or fail outright.
				zero := &models.Product{ID: 0, Name: "Ghost", Price: 1, Availability: true}
				assert.ErrorIs(t, repo.Update(zero), repositories.ErrProductNotFound)

				products, err := repo.GetAll()
				assert.NoError(t, err)
				require.Len(t, products, 1)
				assert.Equal(t, "Monitor", products[0].Name)
			})

			t.Run("toggle availability", func(t *testing.T) {
				repo := impl.open(t)

				created := &models.Product{Name: "Monitor", Price: 300, Availability: true}
				require.NoError(t, repo.Create(created))

				toggled, err := repo.ToggleAvailability(created.ID)
				assert.NoError(t, err)
				assert.False(t, toggled.Availability)

				reloaded, err := repo.GetByID(created.ID)
				assert.NoError(t, err)
				assert.False(t, reloaded.Availability)

				// A second toggle restores the original state.
				toggled, err = repo.ToggleAvailability(created.ID)
				assert.NoError(t, err)
				assert.True(t, toggled.Availability)

				_, err = repo.ToggleAvailability(999)
				assert.ErrorIs(t, err, repositories.ErrProductNotFound)
			})

			t.Run("delete", func(t *testing.T) {
				repo := impl.open(t)

				created := &models.Product{Name: "Monitor", Price: 300, Availability: true}
				require.NoError(t, repo.Create(created))

				assert.NoError(t, repo.Delete(created.ID))

				_, err := repo.GetByID(created.ID)
				assert.ErrorIs(t, err, repositories.ErrProductNotFound)

				assert.ErrorIs(t, repo.Delete(created.ID), repositories.ErrProductNotFound)
			})
		})
	}
}
