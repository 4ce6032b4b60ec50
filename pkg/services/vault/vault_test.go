package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.vault")
	key := DeriveKey("correct horse battery staple")
	creds := Credentials{APIKey: "api-123", AppKey: "app-456"}

	require.NoError(t, Seal(path, key, creds))

	got, err := Open(path, key)
	require.NoError(t, err)
	assert.Equal(t, creds, got)
}

func TestOpen_WrongKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.vault")
	require.NoError(t, Seal(path, DeriveKey("right"), Credentials{APIKey: "x"}))

	_, err := Open(path, DeriveKey("wrong"))
	assert.Error(t, err)
}

func TestOpen_TruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.vault")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o600))

	_, err := Open(path, DeriveKey("any"))
	assert.ErrorContains(t, err, "truncated")
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.vault"), DeriveKey("any"))
	assert.Error(t, err)
}
