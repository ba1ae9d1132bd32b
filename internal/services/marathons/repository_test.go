package marathons

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/killallgit/marathon-api/internal/models"
	"github.com/killallgit/marathon-api/internal/services/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(store storage.Store, opts ...Option) *Repository {
	base := []Option{WithClock(newFakeClock().Now), WithIDGenerator(sequentialIDs())}
	return NewRepository(store, append(base, opts...)...)
}

func TestRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(storage.NewMemoryStore(0))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	first, err := repo.Create(ctx, "  Horror Night  ", []models.MovieRecord{completeMovie(1, "The Shining")})
	require.NoError(t, err)
	assert.Equal(t, "Horror Night", first.Name)
	assert.Equal(t, "marathon-1", first.ID)
	assert.True(t, first.CreatedAt.Equal(first.UpdatedAt))

	_, err = repo.Create(ctx, "Sci-Fi", []models.MovieRecord{completeMovie(2, "Alien")})
	require.NoError(t, err)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Horror Night", list[0].Name)
	assert.Equal(t, "Sci-Fi", list[1].Name)
}

func TestRepository_RoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	repo := newTestRepository(store)

	movie := completeMovie(694, "The Shining")
	movie.AddedAt = newFakeClock().Now()

	created, err := repo.Create(ctx, "Horror Night", []models.MovieRecord{movie})
	require.NoError(t, err)

	// A fresh repository only sees what was persisted
	reopened := NewRepository(store)
	got, err := reopened.Get(ctx, created.ID)
	require.NoError(t, err)
	assertSameMarathon(t, *created, *got)
}

func TestRepository_DuplicateNames(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(storage.NewMemoryStore(0))

	_, err := repo.Create(ctx, "Horror Night", []models.MovieRecord{completeMovie(1, "The Shining")})
	require.NoError(t, err)

	tests := []string{"horror night", "HORROR NIGHT", "  Horror Night "}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Create(ctx, name, []models.MovieRecord{completeMovie(2, "Alien")})
			assert.ErrorIs(t, err, ErrDuplicateName)

			list, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}

	taken, err := repo.NameTaken(ctx, "hORROR nIGHT", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.NameTaken(ctx, "Horror Night", "marathon-1")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepository_AddValidation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(storage.NewMemoryStore(0))

	err := repo.Add(ctx, models.Marathon{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)

	err = repo.Add(ctx, models.Marathon{
		Name:   "Dupes",
		Movies: []models.MovieRecord{completeMovie(1, "a"), completeMovie(1, "a")},
	})
	assert.ErrorIs(t, err, ErrDuplicateMovie)

	// Missing id and timestamps are filled in
	require.NoError(t, repo.Add(ctx, models.Marathon{Name: "Imported"}))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].ID)
	assert.False(t, list[0].CreatedAt.IsZero())
	assert.NotNil(t, list[0].Movies)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(storage.NewMemoryStore(0))

	a, b := completeMovie(1, "The Shining"), completeMovie(2, "Halloween")
	created, err := repo.Create(ctx, "Horror Night", []models.MovieRecord{a, b})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, "Horror Night 2", []models.MovieRecord{b, a})
	require.NoError(t, err)

	assert.Equal(t, "Horror Night 2", updated.Name)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, int64(2), updated.Movies[0].ID)
	assert.Equal(t, int64(1), updated.Movies[1].ID)

	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assertSameMarathon(t, *updated, *stored)
}

func TestRepository_UpdateMovies(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(storage.NewMemoryStore(0))

	created, err := repo.Create(ctx, "Horror Night", []models.MovieRecord{completeMovie(1, "The Shining")})
	require.NoError(t, err)

	// nil leaves the movie list alone
	updated, err := repo.Update(ctx, created.ID, "Renamed", nil)
	require.NoError(t, err)
	assert.Len(t, updated.Movies, 1)

	// An empty slice replaces it
	updated, err = repo.Update(ctx, created.ID, "Renamed", []models.MovieRecord{})
	require.NoError(t, err)
	assert.Empty(t, updated.Movies)
	assert.NotNil(t, updated.Movies)
}

func TestRepository_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(storage.NewMemoryStore(0))

	first, err := repo.Create(ctx, "Horror Night", nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Sci-Fi", nil)
	require.NoError(t, err)

	_, err = repo.Update(ctx, "missing-id", "Whatever", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Update(ctx, first.ID, "  ", nil)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = repo.Update(ctx, first.ID, "sci-fi", nil)
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = repo.Update(ctx, first.ID, "Horror", []models.MovieRecord{completeMovie(3, "x"), completeMovie(3, "x")})
	assert.ErrorIs(t, err, ErrDuplicateMovie)

	// Changing only the case of its own name is allowed
	renamed, err := repo.Update(ctx, first.ID, "HORROR NIGHT", nil)
	require.NoError(t, err)
	assert.Equal(t, "HORROR NIGHT", renamed.Name)

	stored, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "HORROR NIGHT", stored.Name)
}

func TestRepository_GetLoadDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(storage.NewMemoryStore(0))

	movie := completeMovie(1, "The Shining")
	movie.AddedAt = newFakeClock().Now()
	created, err := repo.Create(ctx, "Horror Night", []models.MovieRecord{movie})
	require.NoError(t, err)

	_, err = repo.Get(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
	var nf NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing-id", nf.ID)

	_, err = repo.Load(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)

	movies, err := repo.Load(ctx, created.ID)
	require.NoError(t, err)
	assertSameMovies(t, []models.MovieRecord{movie}, movies)

	require.NoError(t, repo.Delete(ctx, created.ID))
	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_StorageFailures(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	failures := &failureLog{}
	repo := newTestRepository(store, WithFailureHandler(failures.handle))

	_, err := repo.Create(ctx, "Horror Night", nil)
	require.NoError(t, err)

	store.SetUnavailable(true)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.Create(ctx, "Other", nil)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, repo.Delete(ctx, "marathon-1"), ErrStorageUnavailable)
	_, err = repo.Get(ctx, "marathon-1")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	store.SetUnavailable(false)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// rejectingStore fails writes while reject is set; reads keep working
type rejectingStore struct {
	storage.Store
	reject atomic.Bool
}

func (s *rejectingStore) Write(ctx context.Context, key string, value []byte) error {
	if s.reject.Load() {
		return storage.ErrQuotaExceeded
	}
	return s.Store.Write(ctx, key, value)
}

func TestRepository_RejectedWriteIsReturned(t *testing.T) {
	ctx := context.Background()

	t.Run("create over quota", func(t *testing.T) {
		repo := newTestRepository(storage.NewMemoryStore(64))

		_, err := repo.Create(ctx, "A name long enough to blow the tiny quota", []models.MovieRecord{completeMovie(1, "x")})
		assert.ErrorIs(t, err, ErrStorageUnavailable)
		assert.ErrorIs(t, err, storage.ErrQuotaExceeded)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("update and delete", func(t *testing.T) {
		store := &rejectingStore{Store: storage.NewMemoryStore(0)}
		repo := newTestRepository(store)

		created, err := repo.Create(ctx, "Horror Night", []models.MovieRecord{completeMovie(1, "x")})
		require.NoError(t, err)

		store.reject.Store(true)
		_, err = repo.Update(ctx, created.ID, "Renamed", nil)
		assert.ErrorIs(t, err, ErrStorageUnavailable)
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrStorageUnavailable)

		m, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Horror Night", m.Name)
	})
}

func TestRepository_MalformedStoreIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	require.NoError(t, store.Write(ctx, MarathonsKey, []byte("{broken")))

	repo := newTestRepository(store)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.Create(ctx, "Fresh", nil)
	require.NoError(t, err)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRepository_ListCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRepository(storage.NewMemoryStore(0)).List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
