// Package app implements the application layer for depkit: it owns the
// build pipeline that turns a library spec plus consumer overrides into
// installed static libraries.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/appsandbox/depkit/internal/core/domain"
	"github.com/appsandbox/depkit/internal/core/ports"
	"github.com/appsandbox/depkit/internal/engine/render"
	"github.com/appsandbox/depkit/internal/engine/resolve"
	"go.trai.ch/zerr"
)

// DefaultOverridesPath is where Build looks for the consumer override
// document when the caller does not name one. The relative path reaches
// out of the workspace into the consuming project checkout.
const DefaultOverridesPath = "../depkit.yaml"

// RunOptions carries the per-invocation knobs shared by all commands.
type RunOptions struct {
	// Dir is the workspace root holding downloads/, sources/, build/ and
	// install/. Empty means the current directory.
	Dir string

	// OverridesPath locates the consumer override document. Empty means
	// DefaultOverridesPath.
	OverridesPath string

	// Profile pins the target platform. The zero value means detect from
	// the host.
	Profile domain.PlatformProfile

	// Jobs caps toolchain parallelism. Zero means the host CPU count.
	Jobs int
}

func (o RunOptions) workspace() domain.Layout {
	root := o.Dir
	if root == "" {
		root = "."
	}
	return domain.Layout{Root: root}
}

func (o RunOptions) overridesPath() string {
	if o.OverridesPath == "" {
		return DefaultOverridesPath
	}
	return o.OverridesPath
}

func (o RunOptions) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.NumCPU()
}

func (o RunOptions) profile() (domain.PlatformProfile, error) {
	if o.Profile.Platform != "" {
		return o.Profile, nil
	}
	return domain.DetectProfile()
}

// App wires the ports together into the build pipeline.
type App struct {
	config    ports.ConfigLoader
	fetcher   ports.Fetcher
	extractor ports.Extractor
	patcher   ports.Patcher
	runner    ports.ToolRunner
	logger    ports.Logger
	telemetry ports.Telemetry
}

// New creates a new App instance.
func New(
	config ports.ConfigLoader,
	fetcher ports.Fetcher,
	extractor ports.Extractor,
	patcher ports.Patcher,
	runner ports.ToolRunner,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		config:    config,
		fetcher:   fetcher,
		extractor: extractor,
		patcher:   patcher,
		runner:    runner,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Build runs the pipeline for the named libraries. With no names it builds
// the override document's build list, which itself defaults to wxWidgets.
// Libraries build strictly in order; the first failure aborts the run.
func (a *App) Build(ctx context.Context, targets []string, opts RunOptions) error {
	profile, err := opts.profile()
	if err != nil {
		return err
	}

	schema, err := a.config.LoadDefaults()
	if err != nil {
		return zerr.Wrap(err, "failed to load library schema")
	}

	overrides, err := a.config.LoadOverrides(opts.overridesPath())
	if err != nil {
		return zerr.Wrap(err, "failed to load override document")
	}

	if len(targets) == 0 {
		targets = overrides.BuildList()
	}

	layout := opts.workspace()
	for _, name := range targets {
		lib, err := schema.Library(name)
		if err != nil {
			return err
		}
		if err := a.buildLibrary(ctx, lib, profile, overrides.For(name), layout, opts.jobs()); err != nil {
			return zerr.With(err, "library", name)
		}
	}
	return nil
}

// buildLibrary runs the full pipeline for one library on one platform.
// A present install marker short-circuits everything, including option
// resolution.
func (a *App) buildLibrary(
	ctx context.Context,
	lib domain.LibrarySpec,
	profile domain.PlatformProfile,
	overrides map[string]domain.OptionValue,
	layout domain.Layout,
	jobs int,
) error {
	platform := profile.Platform
	marker := layout.MarkerPath(lib.Name, platform)
	if _, err := os.Stat(marker); err == nil {
		v := a.telemetry.Record(ctx, fmt.Sprintf("%s %s: build", lib.Name, platform))
		v.Cached()
		return nil
	}

	resolved, err := resolve.All(lib, profile, overrides)
	if err != nil {
		return err
	}
	args, err := render.ForPlatform(platform).Render(resolved)
	if err != nil {
		return err
	}

	if err := a.prepareWorkspace(layout, lib.Name, platform); err != nil {
		return err
	}

	var archivePath string
	err = a.stage(ctx, lib.Name, platform, "fetch", func(v ports.Vertex) error {
		path, cached, err := a.fetcher.Fetch(ctx, lib, layout.DownloadDir())
		if err != nil {
			return err
		}
		if cached {
			v.Cached()
		}
		archivePath = path
		return nil
	})
	if err != nil {
		return err
	}

	var sourceDir string
	err = a.stage(ctx, lib.Name, platform, "extract", func(v ports.Vertex) error {
		root, err := a.extractor.Extract(ctx, archivePath, layout.SourceDir())
		if err != nil {
			return err
		}
		sourceDir = root
		return nil
	})
	if err != nil {
		return err
	}

	err = a.stage(ctx, lib.Name, platform, "patch", func(v ports.Vertex) error {
		for _, patchID := range lib.Patches[platform] {
			applied, err := a.patcher.Apply(sourceDir, patchID)
			if err != nil {
				return err
			}
			if !applied {
				a.logger.Warn(fmt.Sprintf("patch %s already applied to %s", patchID, lib.Name))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	plan := planToolchain(platform, sourceDir, layout.BuildDir(lib.Name, platform), layout.InstallDir(platform), args, jobs)
	for _, inv := range plan {
		err = a.stage(ctx, lib.Name, platform, inv.Stage, func(v ports.Vertex) error {
			return a.runner.Run(ctx, inv, v.Stdout(), v.Stderr())
		})
		if err != nil {
			return err
		}
	}

	content := resolved.Fingerprint() + "\n"
	if err := os.WriteFile(marker, []byte(content), domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write install marker")
	}
	return nil
}

// stage runs fn under a telemetry vertex named after the pipeline step.
func (a *App) stage(ctx context.Context, library string, platform domain.Platform, name string, fn func(ports.Vertex) error) error {
	v := a.telemetry.Record(ctx, fmt.Sprintf("%s %s: %s", library, platform, name))
	err := fn(v)
	v.Complete(err)
	if err != nil {
		return zerr.With(err, "stage", name)
	}
	return nil
}

func (a *App) prepareWorkspace(layout domain.Layout, library string, platform domain.Platform) error {
	dirs := []string{
		layout.DownloadDir(),
		layout.SourceDir(),
		layout.BuildDir(library, platform),
		layout.InstallDir(platform),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.Wrap(err, "failed to create workspace directory")
		}
	}
	return nil
}

// Clean removes extracted sources and native build trees. The archive
// cache and the install prefix survive so that the next build fetches
// nothing and reinstalls nothing it does not have to.
func (a *App) Clean(opts RunOptions) error {
	layout := opts.workspace()
	for _, dir := range []string{layout.SourceDir(), layout.BuildRoot()} {
		if err := os.RemoveAll(dir); err != nil {
			return zerr.Wrap(err, "failed to remove directory")
		}
		a.logger.Info(fmt.Sprintf("removed %s", dir))
	}
	return nil
}

// planToolchain computes the external commands that configure, compile and
// install one library. Darwin and Windows drive CMake; Linux drives the
// upstream configure script and make.
func planToolchain(platform domain.Platform, sourceDir, buildDir, installDir string, args []string, jobs int) []domain.Invocation {
	switch platform {
	case domain.Linux:
		configure := append([]string{"--prefix=" + installDir}, args...)
		return []domain.Invocation{
			{
				Stage: "configure",
				Dir:   buildDir,
				Name:  filepath.Join(sourceDir, "configure"),
				Args:  configure,
			},
			{
				Stage: "compile",
				Dir:   buildDir,
				Name:  "make",
				Args:  []string{"-j", strconv.Itoa(jobs)},
			},
			{
				Stage: "install",
				Dir:   buildDir,
				Name:  "make",
				Args:  []string{"install"},
			},
		}
	case domain.Windows:
		configure := append([]string{
			"-S", sourceDir,
			"-B", buildDir,
			"-DCMAKE_INSTALL_PREFIX=" + installDir,
		}, args...)
		return []domain.Invocation{
			{Stage: "configure", Dir: buildDir, Name: "cmake", Args: configure},
			{
				Stage: "compile",
				Dir:   buildDir,
				Name:  "cmake",
				Args:  []string{"--build", buildDir, "--config", "Release", "--parallel", strconv.Itoa(jobs)},
			},
			{
				Stage: "install",
				Dir:   buildDir,
				Name:  "cmake",
				Args:  []string{"--install", buildDir, "--config", "Release"},
			},
		}
	default: // Darwin
		configure := append([]string{
			"-S", sourceDir,
			"-B", buildDir,
			"-DCMAKE_BUILD_TYPE=Release",
			"-DCMAKE_INSTALL_PREFIX=" + installDir,
		}, args...)
		return []domain.Invocation{
			{Stage: "configure", Dir: buildDir, Name: "cmake", Args: configure},
			{
				Stage: "compile",
				Dir:   buildDir,
				Name:  "cmake",
				Args:  []string{"--build", buildDir, "--parallel", strconv.Itoa(jobs)},
			},
			{
				Stage: "install",
				Dir:   buildDir,
				Name:  "cmake",
				Args:  []string{"--install", buildDir},
			},
		}
	}
}
