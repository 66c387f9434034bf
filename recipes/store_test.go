package recipes

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/models"
	"recipebox/storage"
)

func newTestStore(t *testing.T, kv storage.KV) *Store {
	t.Helper()

	s := New(kv, zerolog.Nop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Close(ctx); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})

	return s
}

func recipe(id int64, name string) models.Recipe {
	return models.Recipe{
		ID:           id,
		Name:         name,
		PrepTime:     "10 mins",
		Servings:     "2",
		Ingredients:  []string{"Water"},
		Instructions: []string{"Boil"},
	}
}

func flush(t *testing.T, s *Store) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Flush(ctx))
}

func ids(list []models.Recipe) []int64 {
	out := make([]int64, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}

func TestStore_LoadEmpty(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())

	got := s.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, s.List())
}

func TestStore_LoadFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *storage.Memory)
	}{
		{"get error", func(m *storage.Memory) { m.GetErr = errors.New("unavailable") }},
		{"malformed json", func(m *storage.Memory) {
			_ = m.Set(context.Background(), StorageKey, "{not json")
		}},
		{"wrong shape", func(m *storage.Memory) {
			_ = m.Set(context.Background(), StorageKey, `{"id":1}`)
		}},
		{"null", func(m *storage.Memory) {
			_ = m.Set(context.Background(), StorageKey, "null")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := storage.NewMemory()
			tt.setup(m)
			s := newTestStore(t, m)

			got := s.Load(context.Background())
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestStore_LoadNormalizesMissingSlices(t *testing.T) {
	m := storage.NewMemory()
	require.NoError(t, m.Set(context.Background(), StorageKey, `[{"id":3,"name":"Toast"}]`))
	s := newTestStore(t, m)

	got := s.Load(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, []string{}, got[0].Ingredients)
	assert.Equal(t, []string{}, got[0].Instructions)
}

func TestStore_UpsertAppendsNew(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())

	s.Upsert(recipe(1, "Soup"))
	got := s.Upsert(recipe(2, "Bread"))

	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestStore_UpsertReplacesInPlace(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())

	s.Upsert(recipe(1, "Soup"))
	s.Upsert(recipe(2, "Bread"))
	s.Upsert(recipe(3, "Salad"))
	got := s.Upsert(recipe(2, "Rye Bread"))

	assert.Equal(t, []int64{1, 2, 3}, ids(got))
	assert.Equal(t, "Rye Bread", got[1].Name)
}

func TestStore_UpsertDoesNotAliasCaller(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())

	r := recipe(1, "Soup")
	s.Upsert(r)
	r.Ingredients[0] = "Mutated"

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Water", got.Ingredients[0])
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	s.Upsert(recipe(1, "Soup"))
	s.Upsert(recipe(2, "Bread"))

	got := s.Remove(1)
	assert.Equal(t, []int64{2}, ids(got))

	_, err := s.Get(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RemoveMissingIsNoop(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	s.Upsert(recipe(1, "Soup"))
	before := s.List()

	got := s.Remove(99)
	assert.Equal(t, before, got)
}

func TestStore_RoundTrip(t *testing.T) {
	m := storage.NewMemory()
	s := newTestStore(t, m)

	s.Upsert(recipe(1, "Soup"))
	s.Upsert(recipe(2, "Bread"))
	s.Upsert(recipe(3, "Salad"))
	s.Remove(2)
	want := s.Upsert(recipe(1, "Tomato Soup"))
	flush(t, s)

	reloaded := newTestStore(t, m)
	assert.Equal(t, want, reloaded.Load(context.Background()))
}

func TestStore_SaveThenLoad(t *testing.T) {
	m := storage.NewMemory()
	s := newTestStore(t, m)
	want := []models.Recipe{recipe(5, "Pie"), recipe(4, "Cake")}

	s.Save(context.Background(), want)

	assert.Equal(t, want, s.Load(context.Background()))
}

func TestStore_PersistedLayout(t *testing.T) {
	m := storage.NewMemory()
	s := newTestStore(t, m)

	s.Upsert(models.Recipe{
		ID:           1700000000000,
		Name:         "Soup",
		PrepTime:     "20 mins",
		Servings:     "2",
		Ingredients:  []string{"Water", "Salt"},
		Instructions: []string{"Boil", "Season"},
	})
	flush(t, s)

	raw, ok, err := m.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1700000000000,"name":"Soup","prepTime":"20 mins","servings":"2",
		"ingredients":["Water","Salt"],"instructions":["Boil","Season"]}]`, raw)
}

func TestStore_SaveFailureKeepsMemory(t *testing.T) {
	m := storage.NewMemory()
	m.SetErr = errors.New("disk full")
	s := newTestStore(t, m)

	got := s.Upsert(recipe(1, "Soup"))
	flush(t, s)

	assert.Equal(t, []int64{1}, ids(got))
	assert.Equal(t, []int64{1}, ids(s.List()))
	assert.Equal(t, 0, m.Sets())
}

func TestStore_EmptyCollectionPersistsAsArray(t *testing.T) {
	m := storage.NewMemory()
	s := newTestStore(t, m)

	s.Upsert(recipe(1, "Soup"))
	s.Remove(1)
	flush(t, s)

	raw, _, err := m.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

// Property: after any sequence of upserts and removes the collection holds
// exactly one record per id upserted and not removed since, in first-insert
// order.
func TestStore_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		s := newTestStore(t, storage.NewMemory())

		var order []int64
		names := map[int64]string{}

		for step := 0; step < 200; step++ {
			id := int64(rng.Intn(15))
			if rng.Intn(3) == 0 {
				s.Remove(id)
				if _, ok := names[id]; ok {
					delete(names, id)
					for i, v := range order {
						if v == id {
							order = append(order[:i], order[i+1:]...)
							break
						}
					}
				}
				continue
			}

			name := string(rune('a' + rng.Intn(26)))
			s.Upsert(recipe(id, name))
			if _, ok := names[id]; !ok {
				order = append(order, id)
			}
			names[id] = name
		}

		got := s.List()
		require.Equal(t, len(order), len(got))
		for i, r := range got {
			assert.Equal(t, order[i], r.ID)
			assert.Equal(t, names[r.ID], r.Name)
		}
	}
}

type gatedKV struct {
	*storage.Memory
	gate chan struct{}
}

func (g *gatedKV) Set(ctx context.Context, key, value string) error {
	<-g.gate
	return g.Memory.Set(ctx, key, value)
}

func TestStore_FlushHonoursContext(t *testing.T) {
	kv := &gatedKV{Memory: storage.NewMemory(), gate: make(chan struct{})}
	s := newTestStore(t, kv)

	s.Upsert(recipe(1, "Soup"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Flush(ctx), context.DeadlineExceeded)

	close(kv.gate)
	flush(t, s)

	raw, ok, err := kv.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"Soup"`)
}

func TestStore_WritesCoalesce(t *testing.T) {
	kv := &gatedKV{Memory: storage.NewMemory(), gate: make(chan struct{})}
	s := newTestStore(t, kv)

	for i := int64(1); i <= 10; i++ {
		s.Upsert(recipe(i, "r"))
	}
	close(kv.gate)
	flush(t, s)

	assert.LessOrEqual(t, kv.Sets(), 10)
	reloaded := newTestStore(t, kv.Memory)
	assert.Len(t, reloaded.Load(context.Background()), 10)
}

func TestStore_MutationAfterCloseIsSaved(t *testing.T) {
	m := storage.NewMemory()
	s := New(m, zerolog.Nop())
	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()))

	s.Upsert(recipe(1, "Soup"))

	raw, ok, err := m.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"Soup"`)
	assert.NoError(t, s.Flush(context.Background()))
}
