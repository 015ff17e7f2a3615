package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"hechonl_backend/internal/events"
	"hechonl_backend/internal/models"
	"hechonl_backend/internal/repositories"
	"hechonl_backend/internal/testutil"
)

func drain(sub *events.Subscription) []events.StoreChanged {
	var out []events.StoreChanged
	for {
		select {
		case ev := <-sub.C:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestUserRepository_CreateAndFetch(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	created, err := store.Users.CreateUser(ctx, "  Ann@Example.COM ", "stored-secret", "Ann")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ann@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := store.Users.FetchUser(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Ann", fetched.Name)
	assert.Equal(t, "stored-secret", fetched.Password)

	_, err = store.Users.FetchUser(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmailKeepsOriginal(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	original, err := store.Users.CreateUser(ctx, "a@b.com", "first", "Ann")
	require.NoError(t, err)

	_, err = store.Users.CreateUser(ctx, "A@B.com", "second", "Impostor")
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)

	fetched, err := store.Users.FetchUser(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, original.ID, fetched.ID)
	assert.Equal(t, "Ann", fetched.Name)
	assert.Equal(t, "first", fetched.Password)

	n, err := store.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	user, err := store.Users.CreateUser(ctx, "a@b.com", "x", "Ann")
	require.NoError(t, err)

	require.NoError(t, store.Users.DeleteUser(ctx, user))
	_, err = store.Users.FetchUser(ctx, "a@b.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	assert.ErrorIs(t, store.Users.DeleteUser(ctx, user), repositories.ErrUserNotFound)
}

func TestBusinessRepository_DefaultImagePersisted(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	for _, category := range models.Categories() {
		b := testutil.Business("id-"+string(category), "Biz "+string(category), category)
		require.NoError(t, store.Businesses.Add(ctx, &b))

		stored, err := store.Businesses.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{models.DefaultImage(category)}, []string(stored.Images))
	}
}

func TestBusinessRepository_KeepsProvidedImagesAndSocialMedia(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	b := testutil.Business("1", "El Rey del Cabrito", models.CategoryFood)
	b.Images = datatypes.JSONSlice[string]{"cabrito1", "cabrito2"}
	b.SocialMedia = datatypes.NewJSONType(map[string]string{"instagram": "@reydelcabrito"})
	b.Phone = testutil.Ptr("81 8343 3074")
	require.NoError(t, store.Businesses.Add(ctx, &b))

	stored, err := store.Businesses.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"cabrito1", "cabrito2"}, []string(stored.Images))
	assert.Equal(t, map[string]string{"instagram": "@reydelcabrito"}, stored.Social())
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "81 8343 3074", *stored.Phone)
	assert.Nil(t, stored.Email)
	assert.Nil(t, stored.Distance)
}

func TestBusinessRepository_UnknownCategoryReadsAsOther(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	b := testutil.Business("1", "Mystery", models.CategoryFood)
	require.NoError(t, store.Businesses.Add(ctx, &b))
	require.NoError(t, store.DB().Exec("UPDATE businesses SET category = ? WHERE id = ?", "bakery", "1").Error)

	stored, err := store.Businesses.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, stored.Category)

	all, err := store.Businesses.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.CategoryOther, all[0].Category)
}

func TestBusinessRepository_FetchAllOrderedByID(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	for _, id := range []string{"c", "a", "b"} {
		b := testutil.Business(id, "Biz "+id, models.CategoryRetail)
		require.NoError(t, store.Businesses.Add(ctx, &b))
	}

	all, err := store.Businesses.FetchAll(ctx)
	require.NoError(t, err)
	ids := []string{all[0].ID, all[1].ID, all[2].ID}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestBusinessRepository_UpsertPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b := testutil.WithRating(testutil.Business("1", "Old name", models.CategoryFood), 4.0, created)
	require.NoError(t, store.Businesses.Add(ctx, &b))

	update := testutil.Business("1", "New name", models.CategoryRetail)
	update.CreatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	update.UpdatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	update.Rating = 4.9
	require.NoError(t, store.Businesses.Upsert(ctx, &update))
	assert.True(t, created.Equal(update.CreatedAt), "caller sees the stored created_at")

	stored, err := store.Businesses.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "New name", stored.Name)
	assert.Equal(t, models.CategoryRetail, stored.Category)
	assert.Equal(t, 4.9, stored.Rating)
	assert.True(t, created.Equal(stored.CreatedAt))
	assert.True(t, update.UpdatedAt.Equal(stored.UpdatedAt))

	n, err := store.Businesses.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestBusinessRepository_UpsertInsertsMissing(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	b := testutil.Business("new", "Fresh", models.CategoryServices)
	require.NoError(t, store.Businesses.Upsert(ctx, &b))

	stored, err := store.Businesses.FindByID(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, []string{"tacos1"}, []string(stored.Images))
}

func TestBusinessRepository_UpsertPublishesMatchingAction(t *testing.T) {
	ctx := context.Background()
	store, bus := testutil.NewTestStore(t)
	sub := bus.Subscribe("test", 16)

	b := testutil.Business("1", "Biz", models.CategoryFood)
	require.NoError(t, store.Businesses.Upsert(ctx, &b))
	b.Name = "Biz renamed"
	require.NoError(t, store.Businesses.Upsert(ctx, &b))

	require.NoError(t, store.Batch(ctx, func(tx *repositories.Store) error {
		other := testutil.Business("2", "Other", models.CategoryRetail)
		if err := tx.Businesses.Upsert(ctx, &other); err != nil {
			return err
		}
		return tx.Businesses.Upsert(ctx, &b)
	}))

	got := drain(sub)
	require.Len(t, got, 4)
	assert.Equal(t, events.ActionCreated, got[0].Action)
	assert.Equal(t, events.ActionUpdated, got[1].Action)
	assert.Equal(t, events.ActionCreated, got[2].Action)
	assert.Equal(t, []string{"2"}, got[2].IDs)
	assert.Equal(t, events.ActionUpdated, got[3].Action)
}

func TestBusinessRepository_DeleteAndDeleteAll(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	for _, id := range []string{"1", "2", "3"} {
		b := testutil.Business(id, "Biz "+id, models.CategoryOther)
		require.NoError(t, store.Businesses.Add(ctx, &b))
	}

	require.NoError(t, store.Businesses.Delete(ctx, "2"))
	assert.ErrorIs(t, store.Businesses.Delete(ctx, "2"), repositories.ErrBusinessNotFound)
	_, err := store.Businesses.FindByID(ctx, "2")
	assert.ErrorIs(t, err, repositories.ErrBusinessNotFound)

	removed, err := store.Businesses.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	all, err := store.Businesses.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBusinessRepository_FindByOwner(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	mine := testutil.Business("1", "Mine", models.CategoryFood)
	mine.OwnerID = "ann"
	other := testutil.Business("2", "Other", models.CategoryFood)
	require.NoError(t, store.Businesses.Add(ctx, &mine))
	require.NoError(t, store.Businesses.Add(ctx, &other))

	owned, err := store.Businesses.FindByOwner(ctx, "ann")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "1", owned[0].ID)
}

func TestSettingRepository(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewTestStore(t)

	loaded, err := store.Settings.GetBool(ctx, models.SettingInitialDataLoaded)
	require.NoError(t, err)
	assert.False(t, loaded)

	require.NoError(t, store.Settings.SetBool(ctx, models.SettingInitialDataLoaded, true))
	require.NoError(t, store.Settings.SetBool(ctx, models.SettingInitialDataLoaded, true))

	loaded, err = store.Settings.GetBool(ctx, models.SettingInitialDataLoaded)
	require.NoError(t, err)
	assert.True(t, loaded)

	v, ok, err := store.Settings.Get(ctx, models.SettingInitialDataLoaded)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestStore_MutationsPublishChanges(t *testing.T) {
	ctx := context.Background()
	store, bus := testutil.NewTestStore(t)
	sub := bus.Subscribe("test", 16)

	b := testutil.Business("1", "Biz", models.CategoryFood)
	require.NoError(t, store.Businesses.Add(ctx, &b))
	require.NoError(t, store.Businesses.Delete(ctx, "1"))
	_, err := store.Users.CreateUser(ctx, "a@b.com", "x", "Ann")
	require.NoError(t, err)

	got := drain(sub)
	require.Len(t, got, 3)
	assert.Equal(t, events.EntityBusiness, got[0].Entity)
	assert.Equal(t, events.ActionCreated, got[0].Action)
	assert.Equal(t, []string{"1"}, got[0].IDs)
	assert.Equal(t, events.ActionDeleted, got[1].Action)
	assert.Equal(t, events.EntityUser, got[2].Entity)

	// failed mutations publish nothing
	assert.Error(t, store.Businesses.Delete(ctx, "missing"))
	assert.Empty(t, drain(sub))
}

func TestStore_BatchCommitsOnceAndPublishesAfterCommit(t *testing.T) {
	ctx := context.Background()
	store, bus := testutil.NewTestStore(t)
	sub := bus.Subscribe("test", 16)

	err := store.Batch(ctx, func(tx *repositories.Store) error {
		for _, id := range []string{"1", "2"} {
			b := testutil.Business(id, "Biz "+id, models.CategoryFood)
			if err := tx.Businesses.Add(ctx, &b); err != nil {
				return err
			}
		}
		assert.Empty(t, drain(sub), "nothing is published before commit")
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, drain(sub), 2)
	n, err := store.Businesses.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStore_EmptyBatchIsNoOp(t *testing.T) {
	ctx := context.Background()
	store, bus := testutil.NewTestStore(t)
	sub := bus.Subscribe("test", 4)

	require.NoError(t, store.Batch(ctx, func(tx *repositories.Store) error {
		_, err := tx.Businesses.FetchAll(ctx)
		return err
	}))
	assert.Empty(t, drain(sub))
}

func TestStore_BatchErrorRollsBack(t *testing.T) {
	ctx := context.Background()
	store, bus := testutil.NewTestStore(t)
	sub := bus.Subscribe("test", 4)
	boom := errors.New("boom")

	err := store.Batch(ctx, func(tx *repositories.Store) error {
		b := testutil.Business("1", "Biz", models.CategoryFood)
		if err := tx.Businesses.Add(ctx, &b); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := store.Businesses.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Empty(t, drain(sub))
}
