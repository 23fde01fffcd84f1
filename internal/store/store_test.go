package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gocfs/internal/logging"
	"github.com/alexiusacademia/gocfs/internal/section"
)

// newTestStore opens an in-memory store whose clock advances one minute per call.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := InMemoryConfig()
	cfg.Logger = logging.Discard()
	s, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	sec := section.DefaultSection()

	rec, err := s.Create(ctx, "162S125-18", sec)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, "162S125-18", rec.Name)
	assert.True(t, rec.Created.Equal(rec.Modified))

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Name, got.Name)
	assert.True(t, rec.Created.Equal(got.Created))

	stored, err := got.CFS()
	require.NoError(t, err)
	assert.Equal(t, sec.Straights, stored.Straights)
	assert.Equal(t, sec.Properties().Area, stored.Properties().Area)

	t.Run("record holds a copy", func(t *testing.T) {
		sec.Straights[0].T = 1
		again, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		cfs, err := again.CFS()
		require.NoError(t, err)
		assert.Equal(t, section.DefaultThickness, cfs.Straights[0].T)
	})
}

func TestCreateDefaultName(t *testing.T) {
	s := newTestStore(t)
	rec, err := s.Create(context.Background(), "  ", section.DefaultSection())
	require.NoError(t, err)
	assert.Equal(t, DefaultName, rec.Name)
}

func TestRoundedSectionSurvivesStorage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sec := section.DefaultSection()
	require.NoError(t, sec.SwitchCZ())
	require.NoError(t, sec.AddRoundedCorners(0.0938))

	rec, err := s.Create(ctx, "z", sec)
	require.NoError(t, err)
	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	cfs, err := got.CFS()
	require.NoError(t, err)

	assert.Equal(t, sec.Arcs, cfs.Arcs)
	assert.Equal(t, sec.Properties().Cw, cfs.Properties().Cw)
}

func TestSaveAndRename(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "draft", section.DefaultSection())
	require.NoError(t, err)

	thick := section.DefaultSection()
	require.NoError(t, thick.SetAllThicknesses(0.0566))
	saved, err := s.Save(ctx, rec.ID, thick)
	require.NoError(t, err)
	assert.True(t, saved.Modified.After(rec.Modified))
	assert.True(t, saved.Created.Equal(rec.Created))

	renamed, err := s.Rename(ctx, rec.ID, "stud")
	require.NoError(t, err)
	assert.Equal(t, "stud", renamed.Name)
	assert.True(t, renamed.Modified.After(saved.Modified))

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	p, err := got.Section.Properties()
	require.NoError(t, err)
	assert.Equal(t, thick.Properties().Area, p.Area)

	_, err = s.Rename(ctx, rec.ID, "")
	assert.Error(t, err)
}

func TestListOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.Create(ctx, "a", section.DefaultSection())
	require.NoError(t, err)
	b, err := s.Create(ctx, "b", section.DefaultSection())
	require.NoError(t, err)
	c, err := s.Create(ctx, "c", section.DefaultSection())
	require.NoError(t, err)

	// Touching a moves it to the front.
	_, err = s.Rename(ctx, a.ID, "a2")
	require.NoError(t, err)

	recs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []uuid.UUID{a.ID, c.ID, b.ID}, []uuid.UUID{recs[0].ID, recs[1].ID, recs[2].ID})

	recs, err = s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "gone", section.DefaultSection())
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, rec.ID))

	_, err = s.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, rec.ID), ErrNotFound)

	recs, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	orig, err := s.Create(ctx, "stud", section.DefaultSection())
	require.NoError(t, err)

	dup, err := s.Duplicate(ctx, orig.ID)
	require.NoError(t, err)
	assert.NotEqual(t, orig.ID, dup.ID)
	assert.Equal(t, orig.Name, dup.Name)
	assert.True(t, dup.Created.After(orig.Created))
	assert.True(t, dup.Created.Equal(dup.Modified))

	got, err := s.Get(ctx, dup.ID)
	require.NoError(t, err)
	cfs, err := got.CFS()
	require.NoError(t, err)
	assert.Equal(t, section.DefaultSection().Straights, cfs.Straights)

	recs, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, dup.ID, recs[0].ID)

	_, err = s.Find(ctx, "stud")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = s.Duplicate(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "header", section.DefaultSection())
	require.NoError(t, err)

	byID, err := s.Find(ctx, rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byID.ID)

	byName, err := s.Find(ctx, "header")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byName.ID)

	_, err = s.Find(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Find(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Create(ctx, "header", section.DefaultSection())
	require.NoError(t, err)
	_, err = s.Find(ctx, "header")
	assert.ErrorIs(t, err, ErrAmbiguous)
}

func TestCanceledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Create(ctx, "x", section.DefaultSection())
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.List(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPersistentStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	ctx := context.Background()

	s, err := Open(Config{Path: dir})
	require.NoError(t, err)
	rec, err := s.Create(ctx, "kept", section.DefaultSection())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(Config{Path: dir})
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Find(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}
