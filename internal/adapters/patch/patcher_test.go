package patch_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/appsandbox/depkit/internal/adapters/patch"
	"github.com/appsandbox/depkit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func TestApply_Substitutes(t *testing.T) {
	sourceDir := t.TempDir()
	configure := filepath.Join(sourceDir, "configure")
	require.NoError(t, os.WriteFile(configure, []byte(`LIBS="$LIBS -framework QTKit -framework Cocoa"`), 0o600))

	p := patch.New(nopLogger{})

	applied, err := p.Apply(sourceDir, "darwin-drop-qtkit")
	require.NoError(t, err)
	assert.True(t, applied)

	data, err := os.ReadFile(configure)
	require.NoError(t, err)
	assert.Equal(t, `LIBS="$LIBS -framework Cocoa"`, string(data))

	// Re-applying on an already patched tree is a clean no-op.
	applied, err = p.Apply(sourceDir, "darwin-drop-qtkit")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestApply_UnknownPatch(t *testing.T) {
	p := patch.New(nopLogger{})

	_, err := p.Apply(t.TempDir(), "no-such-patch")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExternalTool))
}

func TestApply_MissingTargetFile(t *testing.T) {
	p := patch.New(nopLogger{})

	_, err := p.Apply(t.TempDir(), "darwin-drop-qtkit")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExternalTool))
}
