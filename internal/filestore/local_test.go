package filestore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) (Store, string) {
	dir := filepath.Join(t.TempDir(), "staging")
	store, err := New(Config{Type: "local", Data: map[string]interface{}{"dir": dir}})
	require.NoError(t, err)
	return store, dir
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store, _ := newLocal(t)
	ctx := context.Background()
	key := NewKey("png")
	require.True(t, strings.HasSuffix(key, ".png"))

	require.NoError(t, store.Save(ctx, key, bytes.NewReader([]byte("img")), 3))
	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "img", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	require.Error(t, err)
	require.NoError(t, store.Delete(ctx, key))
}

func TestLocalStoreRejectsPathKeys(t *testing.T) {
	store, _ := newLocal(t)
	ctx := context.Background()
	require.Error(t, store.Save(ctx, "../x", bytes.NewReader(nil), 0))
	require.Error(t, store.Save(ctx, "a/b", bytes.NewReader(nil), 0))
	_, err := store.Open(ctx, "..")
	require.Error(t, err)
}

func TestLocalStoreSweep(t *testing.T) {
	store, dir := newLocal(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "old.png", bytes.NewReader([]byte("a")), 1))
	require.NoError(t, store.Save(ctx, "new.png", bytes.NewReader([]byte("b")), 1))
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.png"), past, past))

	removed, err := store.Sweep(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	_, err = os.Stat(filepath.Join(dir, "new.png"))
	require.NoError(t, err)
}

func TestLocalStoreSweepMissingDir(t *testing.T) {
	store, _ := newLocal(t)
	removed, err := store.Sweep(context.Background(), time.Now())
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestNewStoreErrors(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	_, err = New(Config{Type: "ftp"})
	require.Error(t, err)
	_, err = New(Config{Type: "local", Data: map[string]interface{}{}})
	require.Error(t, err)
	_, err = New(Config{Type: "s3", Data: map[string]interface{}{"bucket": "b"}})
	require.Error(t, err)
}
