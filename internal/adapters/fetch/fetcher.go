// Package fetch downloads source archives into the local archive cache.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/appsandbox/depkit/internal/core/domain"
	"github.com/appsandbox/depkit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Fetcher implements ports.Fetcher over HTTP. A cached archive whose
// checksum matches the schema is reused without touching the network; the
// clean target deliberately preserves this cache.
type Fetcher struct {
	client *http.Client
	logger ports.Logger
}

// New creates a Fetcher with the given HTTP client. A nil client falls back
// to http.DefaultClient.
func New(client *http.Client, logger ports.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, logger: logger}
}

// Fetch downloads the library's source archive into destDir unless a copy
// with a matching checksum is already present.
func (f *Fetcher) Fetch(ctx context.Context, lib domain.LibrarySpec, destDir string) (string, bool, error) {
	name, err := archiveName(lib.SourceURL)
	if err != nil {
		return "", false, err
	}
	dest := filepath.Join(destDir, name)

	if _, err := os.Stat(dest); err == nil {
		if err := verifyChecksum(dest, lib.ArchiveSHA256); err != nil {
			return "", false, err
		}
		return dest, true, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", false, zerr.Wrap(err, "failed to stat cached archive")
	}

	if err := os.MkdirAll(destDir, domain.DirPerm); err != nil {
		return "", false, zerr.Wrap(err, "failed to create download directory")
	}

	f.logger.Info("downloading " + lib.SourceURL)
	if err := f.download(ctx, lib.SourceURL, dest); err != nil {
		return "", false, err
	}
	if err := verifyChecksum(dest, lib.ArchiveSHA256); err != nil {
		return "", false, err
	}
	return dest, false, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return zerr.Wrap(err, "failed to build download request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrExternalTool, err.Error()), "url", rawURL)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if resp.StatusCode != http.StatusOK {
		err := zerr.With(domain.ErrExternalTool, "url", rawURL)
		return zerr.With(err, "status", resp.StatusCode)
	}

	// Stream into a temp file and rename, so an interrupted download never
	// poisons the cache.
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Best effort cleanup

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write archive")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close archive")
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return zerr.Wrap(err, "failed to move archive into cache")
	}
	return nil
}

func verifyChecksum(path, want string) error {
	if want == "" {
		return nil
	}

	file, err := os.Open(path) //nolint:gosec // path is derived from the schema
	if err != nil {
		return zerr.Wrap(err, "failed to open archive for verification")
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return zerr.Wrap(err, "failed to hash archive")
	}

	got := hex.EncodeToString(h.Sum(nil))
	if got != want {
		err := zerr.With(domain.ErrChecksumMismatch, "path", path)
		err = zerr.With(err, "want", want)
		return zerr.With(err, "got", got)
	}
	return nil
}

func archiveName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || path.Base(u.Path) == "." || path.Base(u.Path) == "/" {
		return "", zerr.With(zerr.New("invalid source URL"), "url", rawURL)
	}
	return path.Base(u.Path), nil
}
