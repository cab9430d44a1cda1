// Package archive unpacks source archives into the workspace.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/appsandbox/depkit/internal/core/domain"
	"github.com/dsnet/compress/bzip2"
	"go.trai.ch/zerr"
)

// Extractor implements ports.Extractor for the archive formats upstream
// projects actually ship: .tar.gz/.tgz, .tar.bz2, and .zip.
type Extractor struct{}

// New creates a new Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract unpacks archivePath under destDir and returns the path of the
// archive's top-level directory. Entries escaping destDir fail the whole
// extraction.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, "failed to create source directory")
	}

	var (
		root string
		err  error
	)
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		root, err = e.extractTar(ctx, archivePath, destDir, gzipReader)
	case strings.HasSuffix(archivePath, ".tar.bz2"):
		root, err = e.extractTar(ctx, archivePath, destDir, bzip2Reader)
	case strings.HasSuffix(archivePath, ".zip"):
		root, err = e.extractZip(ctx, archivePath, destDir)
	default:
		return "", zerr.With(zerr.New("unsupported archive format"), "path", archivePath)
	}
	if err != nil {
		return "", err
	}
	if root == "" {
		return "", zerr.With(zerr.New("archive has no top-level directory"), "path", archivePath)
	}
	return filepath.Join(destDir, root), nil
}

func gzipReader(r io.Reader) (io.Reader, error) {
	return gzip.NewReader(r)
}

func bzip2Reader(r io.Reader) (io.Reader, error) {
	return bzip2.NewReader(r, nil)
}

func (e *Extractor) extractTar(ctx context.Context, archivePath, destDir string, decompress func(io.Reader) (io.Reader, error)) (string, error) {
	file, err := os.Open(archivePath) //nolint:gosec // path comes from the download cache
	if err != nil {
		return "", zerr.Wrap(err, "failed to open archive")
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	stream, err := decompress(file)
	if err != nil {
		return "", zerr.Wrap(err, "failed to open compressed stream")
	}

	var root string
	tr := tar.NewReader(stream)
	for {
		if err := ctx.Err(); err != nil {
			return "", zerr.Wrap(err, "extraction canceled")
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", zerr.Wrap(err, "failed to read archive entry")
		}

		target, err := securePath(destDir, hdr.Name)
		if err != nil {
			return "", err
		}
		if root == "" {
			root = topLevel(hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return "", zerr.Wrap(err, "failed to create directory")
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode()); err != nil {
				return "", err
			}
		case tar.TypeSymlink:
			// Links pointing outside the tree are skipped rather than
			// recreated; wx tarballs only carry relative in-tree links.
			if filepath.IsAbs(hdr.Linkname) || !filepath.IsLocal(filepath.Join(filepath.Dir(hdr.Name), hdr.Linkname)) {
				continue
			}
			_ = os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return "", zerr.Wrap(err, "failed to create symlink")
			}
		default:
			// Character devices and the like have no business in a source
			// archive; skip them.
		}
	}
	return root, nil
}

func (e *Extractor) extractZip(ctx context.Context, archivePath, destDir string) (string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", zerr.Wrap(err, "failed to open archive")
	}
	defer zr.Close() //nolint:errcheck // Best effort close in defer

	var root string
	for _, entry := range zr.File {
		if err := ctx.Err(); err != nil {
			return "", zerr.Wrap(err, "extraction canceled")
		}

		target, err := securePath(destDir, entry.Name)
		if err != nil {
			return "", err
		}
		if root == "" {
			root = topLevel(entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return "", zerr.Wrap(err, "failed to create directory")
			}
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return "", zerr.Wrap(err, "failed to open archive entry")
		}
		err = writeFile(target, rc, entry.FileInfo().Mode())
		_ = rc.Close()
		if err != nil {
			return "", err
		}
	}
	return root, nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory")
	}

	file, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm()) //nolint:gosec // target is validated by securePath
	if err != nil {
		return zerr.Wrap(err, "failed to create file")
	}
	if _, err := io.Copy(file, r); err != nil { //nolint:gosec // archives come from checksummed downloads
		_ = file.Close()
		return zerr.Wrap(err, "failed to write file")
	}
	return file.Close()
}

// securePath rejects entries that would escape destDir.
func securePath(destDir, name string) (string, error) {
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || !filepath.IsLocal(cleaned) {
		return "", zerr.With(zerr.New("archive entry escapes destination"), "entry", name)
	}
	return filepath.Join(destDir, cleaned), nil
}

func topLevel(name string) string {
	parts := strings.SplitN(filepath.ToSlash(filepath.Clean(name)), "/", 2)
	return parts[0]
}
