package domain

import (
	"path/filepath"
	"strings"
)

const (
	// DownloadsDirName caches fetched archives. Never removed by clean.
	DownloadsDirName = "downloads"

	// SourcesDirName holds extracted, patched source trees.
	SourcesDirName = "sources"

	// BuildDirName holds native tool working directories, one per library
	// per platform.
	BuildDirName = "build"

	// InstallDirName holds the final static libraries and headers, the only
	// durable build product. Never removed by clean.
	InstallDirName = "install"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout maps the workspace root to the directory structure depkit persists
// between invocations.
type Layout struct {
	Root string
}

// DownloadDir returns the archive cache directory.
func (l Layout) DownloadDir() string {
	return filepath.Join(l.Root, DownloadsDirName)
}

// SourceDir returns the directory holding extracted source trees.
func (l Layout) SourceDir() string {
	return filepath.Join(l.Root, SourcesDirName)
}

// BuildRoot returns the directory holding all native build trees.
func (l Layout) BuildRoot() string {
	return filepath.Join(l.Root, BuildDirName)
}

// BuildDir returns the native tool working directory for one library on one
// platform.
func (l Layout) BuildDir(library string, platform Platform) string {
	return filepath.Join(l.BuildRoot(), library+"-"+strings.ToLower(string(platform)))
}

// InstallDir returns the install prefix for one platform.
func (l Layout) InstallDir(platform Platform) string {
	return filepath.Join(l.Root, InstallDirName, string(platform))
}

// MarkerPath returns the path of the install marker for one library on one
// platform. Presence of the marker short-circuits the whole pipeline; its
// content records the option-set fingerprint of the build that produced it,
// but the presence check never reads it, so changing overrides without
// clearing install/ silently reuses the previous build.
func (l Layout) MarkerPath(library string, platform Platform) string {
	return filepath.Join(l.InstallDir(platform), "."+library+".built")
}
