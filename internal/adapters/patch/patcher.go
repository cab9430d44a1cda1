// Package patch applies named literal-substitution patches to extracted
// source trees. Patches exist to strip store-rejected framework usage out of
// upstream sources before the native toolchain sees them.
package patch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/appsandbox/depkit/internal/core/domain"
	"github.com/appsandbox/depkit/internal/core/ports"
	"go.trai.ch/zerr"
)

// substitution replaces one literal occurrence set inside one file.
type substitution struct {
	file    string
	find    string
	replace string
}

// patches is the fixed catalog of named patches. The schema's per-platform
// patch lists reference these ids.
var patches = map[string][]substitution{
	// QTKit was removed from the macOS SDK and its mere mention fails App
	// Store validation of anything linked against the result.
	"darwin-drop-qtkit": {
		{file: "configure", find: " -framework QTKit", replace: ""},
	},
	// MS Store packages must link the static CRT; wx's CMake scripts only
	// flip this when wxBUILD_USE_STATIC_RUNTIME is honored, which older
	// generator expressions miss.
	"windows-static-crt": {
		{file: filepath.Join("build", "cmake", "init.cmake"), find: "/MD", replace: "/MT"},
	},
	// Snap confinement blocks the session dbus name wx probes for at
	// startup; fall back to plain notifications.
	"linux-snap-notify": {
		{
			file:    filepath.Join("src", "unix", "notifmsg.cpp"),
			find:    "#define wxUSE_LIBNOTIFY_0_7 1",
			replace: "#define wxUSE_LIBNOTIFY_0_7 0",
		},
	},
}

// Patcher implements ports.Patcher with in-place literal substitution.
type Patcher struct {
	logger ports.Logger
}

// New creates a new Patcher.
func New(logger ports.Logger) *Patcher {
	return &Patcher{logger: logger}
}

// Apply applies the named patch to the tree rooted at sourceDir. It returns
// false without error when none of the patch's target texts are present,
// which is the normal case for a tree patched on a previous run.
func (p *Patcher) Apply(sourceDir, patchID string) (bool, error) {
	subs, ok := patches[patchID]
	if !ok {
		return false, zerr.With(zerr.Wrap(domain.ErrExternalTool, "unknown patch"), "patch", patchID)
	}

	applied := false
	for _, sub := range subs {
		target := filepath.Join(sourceDir, sub.file)
		data, err := os.ReadFile(target) //nolint:gosec // target lives under the extracted source tree
		if err != nil {
			err = zerr.With(zerr.Wrap(domain.ErrExternalTool, "patch target unreadable"), "patch", patchID)
			return false, zerr.With(err, "file", sub.file)
		}

		content := string(data)
		if !strings.Contains(content, sub.find) {
			continue
		}

		content = strings.ReplaceAll(content, sub.find, sub.replace)
		if err := os.WriteFile(target, []byte(content), domain.FilePerm); err != nil {
			err = zerr.With(zerr.Wrap(domain.ErrExternalTool, "failed to write patched file"), "patch", patchID)
			return false, zerr.With(err, "file", sub.file)
		}
		applied = true
		p.logger.Info("patched " + sub.file + " (" + patchID + ")")
	}
	return applied, nil
}
