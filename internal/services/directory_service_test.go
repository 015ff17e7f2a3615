package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"hechonl_backend/internal/geo"
	"hechonl_backend/internal/models"
	"hechonl_backend/internal/repositories"
	"hechonl_backend/internal/testutil"
	"hechonl_backend/pkg/apperrors"
)

func newDirectory(t *testing.T) (*DirectoryServiceImpl, *repositories.Store) {
	t.Helper()
	store, _ := testutil.NewTestStore(t)
	return NewDirectoryService(store.Businesses, models.FilterNearest), store
}

func ids(list []models.Business) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.ID
	}
	return out
}

func seedDirectory(t *testing.T, svc *DirectoryServiceImpl) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tacos := testutil.WithRating(testutil.Business("a", "Tacos El Güero", models.CategoryFood), 4.5, base.Add(2*time.Hour))
	tacos.Description = "Tacos de trompo al carbón"
	tacos.Location = geo.Coordinate{Latitude: 25.6866, Longitude: -100.3161}

	tienda := testutil.WithRating(testutil.Business("b", "Tiendita Doña Lupe", models.CategoryRetail), 4.9, base)
	tienda.Description = "Abarrotes y TACOS los domingos"
	tienda.Location = geo.Coordinate{Latitude: 25.6515, Longitude: -100.2895}

	bici := testutil.WithRating(testutil.Business("c", "Bicicletería El Pedal", models.CategoryServices), 4.5, base.Add(time.Hour))
	bici.Description = "Reparación de bicicletas"
	bici.Location = geo.Coordinate{Latitude: 25.6715, Longitude: -100.3452}

	for _, b := range []models.Business{tacos, tienda, bici} {
		_, err := svc.Add(ctx, b)
		require.NoError(t, err)
	}
}

func TestDirectory_AddAppliesDefaultImage(t *testing.T) {
	ctx := context.Background()
	svc, store := newDirectory(t)

	added, err := svc.Add(ctx, models.Business{Name: "A", Category: models.CategoryFood})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.False(t, added.CreatedAt.IsZero())
	assert.Equal(t, []string{"comidas2"}, []string(added.Images))

	stored, err := store.Businesses.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "A", stored[0].Name)
	assert.Equal(t, []string{"comidas2"}, []string(stored[0].Images))
}

// create A, fetch, delete A, fetch
func TestDirectory_CreateDeleteScenario(t *testing.T) {
	ctx := context.Background()
	svc, store := newDirectory(t)

	a, err := svc.Add(ctx, models.Business{Name: "A", Category: models.CategoryFood, Images: datatypes.JSONSlice[string]{}})
	require.NoError(t, err)

	all, err := store.Businesses.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, []string{"comidas2"}, []string(all[0].Images))
	assert.Len(t, svc.Businesses(), 1)

	require.NoError(t, svc.Delete(ctx, a))

	all, err = store.Businesses.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, svc.Businesses())

	err = svc.Delete(ctx, a)
	assert.ErrorIs(t, err, apperrors.ErrBusinessNotFound)
}

func TestDirectory_Filtered(t *testing.T) {
	svc, _ := newDirectory(t)
	seedDirectory(t, svc)

	assert.Len(t, svc.Filtered("", nil), 3)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(svc.Filtered("tacos", nil)), "name or description, any case")
	assert.ElementsMatch(t, []string{"c"}, ids(svc.Filtered("BICICLETERÍA", nil)), "non-ASCII case folding")

	food := models.CategoryFood
	assert.Equal(t, []string{"a"}, ids(svc.Filtered("", &food)))
	assert.Equal(t, []string{"a"}, ids(svc.Filtered("tacos", &food)))

	other := models.CategoryOther
	assert.Empty(t, svc.Filtered("", &other))
	assert.Empty(t, svc.Filtered("sushi", nil))
}

func TestDirectory_FilterPredicatesCommute(t *testing.T) {
	svc, _ := newDirectory(t)
	seedDirectory(t, svc)

	retail := models.CategoryRetail
	both := ids(svc.Filtered("tacos", &retail))

	// text first, then category
	var textThenCategory []string
	for _, b := range svc.Filtered("tacos", nil) {
		if b.Category == retail {
			textThenCategory = append(textThenCategory, b.ID)
		}
	}
	// category first, then text
	var categoryThenText []string
	for _, b := range svc.Filtered("", &retail) {
		for _, m := range svc.Filtered("tacos", nil) {
			if m.ID == b.ID {
				categoryThenText = append(categoryThenText, b.ID)
			}
		}
	}

	assert.Equal(t, both, textThenCategory)
	assert.Equal(t, both, categoryThenText)
	assert.Equal(t, []string{"b"}, both)
}

func TestDirectory_TopRatedIsIdempotentWithIDTieBreak(t *testing.T) {
	svc, _ := newDirectory(t)
	seedDirectory(t, svc)

	require.NoError(t, svc.SetSelectedFilter(models.FilterTopRated))
	first := ids(svc.Businesses())
	assert.Equal(t, []string{"b", "a", "c"}, first)

	svc.ApplyFilter()
	assert.Equal(t, first, ids(svc.Businesses()))
}

func TestDirectory_Newest(t *testing.T) {
	svc, _ := newDirectory(t)
	seedDirectory(t, svc)

	require.NoError(t, svc.SetSelectedFilter(models.FilterNewest))
	assert.Equal(t, []string{"a", "c", "b"}, ids(svc.Businesses()))
	assert.Equal(t, models.FilterNewest, svc.SelectedFilter())

	assert.Error(t, svc.SetSelectedFilter("cheapest"))
	assert.Equal(t, models.FilterNewest, svc.SelectedFilter())
}

func TestDirectory_NearestWithoutLocationKeepsOrder(t *testing.T) {
	svc, _ := newDirectory(t)
	seedDirectory(t, svc)

	before := ids(svc.Businesses())
	svc.ApplyFilter()
	assert.Equal(t, before, ids(svc.Businesses()))
	assert.Nil(t, svc.UserLocation())
	for _, b := range svc.Businesses() {
		assert.Nil(t, b.Distance)
	}
}

func TestDirectory_SetUserLocation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDirectory(t)
	seedDirectory(t, svc)

	// next to the bike shop in San Pedro
	loc := geo.Coordinate{Latitude: 25.6716, Longitude: -100.3450}
	require.NoError(t, svc.SetUserLocation(loc))

	list := svc.Businesses()
	assert.Equal(t, []string{"c", "a", "b"}, ids(list))
	for _, b := range list {
		require.NotNil(t, b.Distance)
		assert.InDelta(t, geo.Distance(b.Location, loc), *b.Distance, 1e-6)
	}
	assert.Equal(t, &loc, svc.UserLocation())

	// a refresh keeps distances and the order
	require.NoError(t, svc.Refresh(ctx))
	assert.Equal(t, []string{"c", "a", "b"}, ids(svc.Businesses()))
	assert.NotNil(t, svc.Businesses()[0].Distance)

	assert.ErrorIs(t, svc.SetUserLocation(geo.Coordinate{Latitude: 100}), apperrors.ErrInvalidLocation)
}

func TestDirectory_SetUserLocationDoesNotResortOtherFilters(t *testing.T) {
	svc, _ := newDirectory(t)
	seedDirectory(t, svc)

	require.NoError(t, svc.SetSelectedFilter(models.FilterTopRated))
	before := ids(svc.Businesses())

	require.NoError(t, svc.SetUserLocation(geo.Coordinate{Latitude: 25.6716, Longitude: -100.3450}))
	assert.Equal(t, before, ids(svc.Businesses()))
	assert.NotNil(t, svc.Businesses()[0].Distance)
}

func TestDirectory_UpdateIsUpsertAndKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc, store := newDirectory(t)
	seedDirectory(t, svc)

	original, ok := svc.Get("a")
	require.True(t, ok)

	changed := original
	changed.Name = "Tacos El Güero Jr."
	changed.CreatedAt = time.Time{}
	updated, err := svc.Update(ctx, changed)
	require.NoError(t, err)

	assert.Equal(t, "Tacos El Güero Jr.", updated.Name)
	assert.True(t, original.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(original.UpdatedAt))

	n, err := store.Businesses.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = svc.Update(ctx, models.Business{})
	assert.ErrorIs(t, err, apperrors.ErrBusinessNotFound)
}

func TestDirectory_ReadersGetCopies(t *testing.T) {
	svc, _ := newDirectory(t)
	seedDirectory(t, svc)

	list := svc.Businesses()
	list[0].Name = "mutated"
	list[0].Images[0] = "mutated"

	fresh := svc.Businesses()
	assert.NotEqual(t, "mutated", fresh[0].Name)
	assert.NotEqual(t, "mutated", fresh[0].Images[0])
}

func TestDirectory_BusinessesByOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDirectory(t)
	seedDirectory(t, svc)

	_, err := svc.Add(ctx, models.Business{Name: "Mine", OwnerID: "ann", Category: models.CategoryOther})
	require.NoError(t, err)

	mine := svc.BusinessesByOwner("ann")
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)
	assert.Empty(t, svc.BusinessesByOwner("nobody"))
}

func TestDirectory_RefreshPicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	svc, store := newDirectory(t)

	b := testutil.Business("x", "External", models.CategoryOther)
	require.NoError(t, store.Businesses.Add(ctx, &b))
	assert.Empty(t, svc.Businesses())

	require.NoError(t, svc.Refresh(ctx))
	got, ok := svc.Get("x")
	require.True(t, ok)
	assert.Equal(t, "External", got.Name)
}
