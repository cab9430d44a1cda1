package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/appsandbox/depkit/cmd/depkit/commands"
	"github.com/appsandbox/depkit/internal/adapters/config"
	"github.com/appsandbox/depkit/internal/app"
	"github.com/appsandbox/depkit/internal/core/domain"
	"github.com/appsandbox/depkit/internal/core/ports/mocks"
)

type cliFixture struct {
	fetcher   *mocks.MockFetcher
	extractor *mocks.MockExtractor
	patcher   *mocks.MockPatcher
	runner    *mocks.MockToolRunner
	logger    *mocks.MockLogger
	telemetry *mocks.MockTelemetry
	cli       *commands.CLI
}

// newCLIFixture builds a CLI on the real embedded schema with all side
// effects mocked out.
func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &cliFixture{
		fetcher:   mocks.NewMockFetcher(ctrl),
		extractor: mocks.NewMockExtractor(ctrl),
		patcher:   mocks.NewMockPatcher(ctrl),
		runner:    mocks.NewMockToolRunner(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
	}
	a := app.New(&config.Loader{}, f.fetcher, f.extractor, f.patcher, f.runner, f.logger, f.telemetry)
	f.cli = commands.New(a)
	return f
}

// writeMarker plants an install marker for the host platform.
func writeMarker(t *testing.T, dir, library string) {
	t.Helper()
	profile, err := domain.DetectProfile()
	require.NoError(t, err)
	layout := domain.Layout{Root: dir}
	require.NoError(t, os.MkdirAll(layout.InstallDir(profile.Platform), 0o750))
	require.NoError(t, os.WriteFile(layout.MarkerPath(library, profile.Platform), []byte("cafe\n"), 0o644))
}

func TestBuild_MarkerShortCircuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newCLIFixture(t)

	dir := t.TempDir()
	writeMarker(t, dir, "wxwidgets")

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Cached()
	f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).Return(vertex)

	// No fetcher, extractor, patcher or runner expectations: nothing else
	// may run when the marker is present.
	f.cli.SetArgs([]string{
		"build", "wxwidgets",
		"--dir", dir,
		"--overrides", filepath.Join(dir, "depkit.yaml"),
	})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestBareInvocationBuildsDefaultList(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newCLIFixture(t)

	dir := t.TempDir()
	writeMarker(t, dir, "wxwidgets")

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Cached()
	f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).Return(vertex)

	f.cli.SetArgs([]string{
		"--dir", dir,
		"--overrides", filepath.Join(dir, "depkit.yaml"),
	})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestBuild_UnknownLibrary(t *testing.T) {
	f := newCLIFixture(t)

	dir := t.TempDir()
	f.cli.SetArgs([]string{
		"build", "opencv",
		"--dir", dir,
		"--overrides", filepath.Join(dir, "depkit.yaml"),
	})
	err := f.cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrUnknownLibrary)
}

func TestClean(t *testing.T) {
	f := newCLIFixture(t)

	dir := t.TempDir()
	for _, sub := range []string{"downloads", "sources", "build", "install"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o750))
	}
	f.logger.EXPECT().Info(gomock.Any()).Times(2)

	f.cli.SetArgs([]string{"clean", "--dir", dir})
	require.NoError(t, f.cli.Execute(context.Background()))

	assert.DirExists(t, filepath.Join(dir, "downloads"))
	assert.NoDirExists(t, filepath.Join(dir, "sources"))
}

func TestVersion(t *testing.T) {
	f := newCLIFixture(t)

	var out bytes.Buffer
	f.cli.SetOut(&out)
	f.cli.SetArgs([]string{"version"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "depkit version")
}
