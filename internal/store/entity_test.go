package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

type TestEntity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath, nil, store.NewNoopEmitter())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(dbPath)
	})

	return s
}

func TestEntity_Create_Success(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:")

	testData := &TestEntity{
		ID:    "1",
		Name:  "Mara Weber",
		Email: "mara@example.com",
	}

	err := entity.Create(context.Background(), "1", testData)
	require.NoError(t, err)

	retrieved, err := entity.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, testData.Name, retrieved.Name)
	require.Equal(t, testData.Email, retrieved.Email)
}

func TestEntity_Create_Duplicate(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:")

	err := entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "first"})
	require.NoError(t, err)

	err = entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "second"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_Get_NotFound(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:")

	_, err := entity.Get(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_IndexLookupAndConflict(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("email", func(e *TestEntity) []string {
			return []string{e.Email}
		})

	err := entity.Create(context.Background(), "1", &TestEntity{ID: "1", Email: "a@example.com"})
	require.NoError(t, err)

	found, err := entity.GetByIndex(context.Background(), "email", "a@example.com")
	require.NoError(t, err)
	require.Equal(t, "1", found.ID)

	// Unique index value may not be reused.
	err = entity.Create(context.Background(), "2", &TestEntity{ID: "2", Email: "a@example.com"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_Update_ReindexesChangedKeys(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("email", func(e *TestEntity) []string {
			return []string{e.Email}
		})

	err := entity.Create(context.Background(), "1", &TestEntity{ID: "1", Email: "old@example.com"})
	require.NoError(t, err)

	err = entity.Update(context.Background(), "1", &TestEntity{ID: "1", Email: "new@example.com"})
	require.NoError(t, err)

	_, err = entity.GetByIndex(context.Background(), "email", "old@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	found, err := entity.GetByIndex(context.Background(), "email", "new@example.com")
	require.NoError(t, err)
	require.Equal(t, "1", found.ID)
}

func TestEntity_Delete_Idempotent(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:")

	err := entity.Create(context.Background(), "1", &TestEntity{ID: "1"})
	require.NoError(t, err)

	require.NoError(t, entity.Delete(context.Background(), "1"))
	require.NoError(t, entity.Delete(context.Background(), "1"))

	_, err = entity.Get(context.Background(), "1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_ListAll_SkipsIndexKeys(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("email", func(e *TestEntity) []string {
			return []string{e.Email}
		})

	for _, e := range []*TestEntity{
		{ID: "1", Email: "a@example.com"},
		{ID: "2", Email: "b@example.com"},
		{ID: "3", Email: "c@example.com"},
	} {
		require.NoError(t, entity.Create(context.Background(), e.ID, e))
	}

	all, err := entity.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)

	count, err := entity.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestEntity_ListByIndexPrefix(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("owner", func(e *TestEntity) []string {
			return []string{e.Name + ":" + e.ID}
		})

	for _, e := range []*TestEntity{
		{ID: "1", Name: "alice"},
		{ID: "2", Name: "alice"},
		{ID: "3", Name: "bob"},
	} {
		require.NoError(t, entity.Create(context.Background(), e.ID, e))
	}

	scoped, err := entity.ListByIndexPrefix(context.Background(), "owner", "alice:")
	require.NoError(t, err)
	require.Len(t, scoped, 2)
}
