package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntradaFileMissing(t *testing.T) {
	f := NewEntradaFile(filepath.Join(t.TempDir(), "entrada.json"), nil)

	snap, err := f.Read()
	require.NoError(t, err)
	assert.Empty(t, snap.Swing)
	assert.Empty(t, snap.Positional)
	assert.False(t, f.Exists())
}

func TestEntradaFileBareArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrada.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"par":"BTC"}]`), 0o644))

	f := NewEntradaFile(path, nil)
	snap, err := f.Read()
	require.NoError(t, err)
	assert.Empty(t, snap.Swing)
	assert.Empty(t, snap.Positional)
}

func TestEntradaFileMissingArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrada.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"swing":[{"par":"BTC","sinal":"LONG","preco":50000}]}`), 0o644))

	f := NewEntradaFile(path, nil)
	snap, err := f.Read()
	require.NoError(t, err)
	require.Len(t, snap.Swing, 1)
	assert.Equal(t, "BTC", snap.Swing[0].Par)
	assert.NotNil(t, snap.Positional)
	assert.Empty(t, snap.Positional)
}

func TestEntradaFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrada.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	f := NewEntradaFile(path, nil)
	snap, err := f.Read()
	require.Error(t, err)
	assert.Empty(t, snap.Swing)
	assert.Empty(t, snap.Positional)
}

func TestEntradaFileFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrada.json")
	body := `{
	  "swing": [{"par":"ETH","sinal":"SHORT","preco":2000.5,"alvo":1900,"ganho_pct":5.0,"assert_pct":70,"data":"2025-03-09","hora":"14:00"}],
	  "posicional": [{"par":"BTC","sinal":"LONG","preco":50000,"alvo":52000,"ganho_pct":4.0,"assert_pct":66,"data":"2025-03-09","hora":"14:00"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	f := NewEntradaFile(path, nil)
	snap, err := f.Read()
	require.NoError(t, err)
	require.Len(t, snap.Swing, 1)
	require.Len(t, snap.Positional, 1)
	assert.Equal(t, 2000.5, snap.Swing[0].Price)
	assert.Equal(t, "LONG", snap.Positional[0].Direction)
	assert.True(t, f.Exists())
}
