package fetch_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/appsandbox/depkit/internal/adapters/fetch"
	"github.com/appsandbox/depkit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestFetch_DownloadsAndCaches(t *testing.T) {
	payload := []byte("pretend this is a source tarball")
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	lib := domain.LibrarySpec{
		Name:          "wxwidgets",
		SourceURL:     srv.URL + "/wxWidgets-3.2.4.tar.bz2",
		ArchiveSHA256: checksum(payload),
	}

	dir := t.TempDir()
	f := fetch.New(srv.Client(), nopLogger{})

	path, cached, err := f.Fetch(context.Background(), lib, dir)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, filepath.Join(dir, "wxWidgets-3.2.4.tar.bz2"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// Second fetch is served from the cache without touching the server.
	_, cached, err = f.Fetch(context.Background(), lib, dir)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 1, hits)
}

func TestFetch_ChecksumMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("tampered content"))
	}))
	defer srv.Close()

	lib := domain.LibrarySpec{
		Name:          "wxwidgets",
		SourceURL:     srv.URL + "/archive.tar.gz",
		ArchiveSHA256: checksum([]byte("expected content")),
	}

	f := fetch.New(srv.Client(), nopLogger{})
	_, _, err := f.Fetch(context.Background(), lib, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChecksumMismatch))
}

func TestFetch_CorruptedCacheDetected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "archive.tar.gz"), []byte("corrupted"), 0o600))

	lib := domain.LibrarySpec{
		Name:          "wxwidgets",
		SourceURL:     "http://localhost/archive.tar.gz",
		ArchiveSHA256: checksum([]byte("pristine")),
	}

	f := fetch.New(nil, nopLogger{})
	_, _, err := f.Fetch(context.Background(), lib, dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChecksumMismatch))
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	lib := domain.LibrarySpec{Name: "wxwidgets", SourceURL: srv.URL + "/archive.tar.gz"}

	f := fetch.New(srv.Client(), nopLogger{})
	_, _, err := f.Fetch(context.Background(), lib, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExternalTool))
}
