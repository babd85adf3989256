package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/adapters/file"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
)

func newSession(id, owner string) *domain.Session {
	return domain.NewSession(id, owner, "jd", []domain.Question{
		{Number: 1, Text: "Q1"},
		{Number: 2, Text: "Q2"},
	})
}

func TestSaveAndLoad(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	session := newSession("s1", "alice")
	require.NoError(t, store.Save(ctx, session))
	assert.Equal(t, int64(1), session.Revision)

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, session.Turns, loaded.Turns)
	assert.Equal(t, session.QuestionBank, loaded.QuestionBank)
	assert.Equal(t, session.Revision, loaded.Revision)
}

func TestSave_CreatesDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "sessions")
	store := file.New(base)

	require.NoError(t, store.Save(context.Background(), newSession("s1", "")))

	_, err := os.Stat(filepath.Join(base, "s1.json"))
	assert.NoError(t, err)
}

func TestSave_RevisionConflict(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	session := newSession("s1", "")
	require.NoError(t, store.Save(ctx, session))

	stale := session.Clone()
	require.NoError(t, store.Save(ctx, session))

	err := store.Save(ctx, stale)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSave_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	require.NoError(t, store.Save(context.Background(), newSession("s1", "")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "s1.json", entries[0].Name())
}

func TestLoad_NotFound(t *testing.T) {
	store := file.New(t.TempDir())

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestDelete(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession("s1", "")))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession("s-a", "alice")))
	require.NoError(t, store.Save(ctx, newSession("s-b", "bob")))

	// Foreign files are skipped, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644))

	all, err := store.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	alices, err := store.List(ctx, ports.ListFilter{OwnerID: "alice"})
	require.NoError(t, err)
	require.Len(t, alices, 1)
	assert.Equal(t, "s-a", alices[0].ID)
}

func TestList_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "does-not-exist"))

	sessions, err := store.List(context.Background(), ports.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
