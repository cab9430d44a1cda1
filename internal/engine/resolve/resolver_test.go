package resolve_test

import (
	"errors"
	"testing"

	"github.com/appsandbox/depkit/internal/core/domain"
	"github.com/appsandbox/depkit/internal/engine/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLibrary() domain.LibrarySpec {
	return domain.LibrarySpec{
		Name: "wxwidgets",
		Options: map[string]domain.OptionSpec{
			// Locked to its default: even an explicit override must not move it.
			"webview": {
				Default:   domain.BoolValue(false),
				Mandatory: domain.BoolValue(true),
			},
			// Locked with a schema-author escape hatch.
			"opengl": {
				Default:     domain.BoolValue(false),
				Mandatory:   domain.BoolValue(true),
				LockedValue: domain.BoolValue(true),
			},
			// Non-true mandatory: the mandatory value itself wins.
			"secretstore": {
				Default:   domain.BoolValue(true),
				Mandatory: domain.BoolValue(false),
			},
			// Plain overridable option.
			"aui": {
				Default: domain.BoolValue(false),
			},
			"libpng": {
				Default: domain.EnumValue("builtin"),
			},
			// Bare scalar: hard-coded, no override path.
			"monolithic": {
				Default: domain.BoolValue(false),
				Scalar:  true,
			},
		},
		PlatformOptions: map[domain.Platform]map[string]domain.OptionSpec{
			domain.Darwin: {
				"architectures": {
					Default:     domain.ListValue{"x86_64"},
					Mandatory:   domain.BoolValue(true),
					LockedValue: domain.ListValue{"arm64", "x86_64"},
				},
			},
			domain.Linux: {
				"gtk_version": {
					Default: domain.EnumValue("3"),
				},
			},
		},
	}
}

// Scenario: webview is mandatory with no locked_value; an override setting
// it to true must resolve to the schema default false.
func TestOption_MandatoryIgnoresOverride(t *testing.T) {
	lib := testLibrary()
	overrides := map[string]domain.OptionValue{"webview": domain.BoolValue(true)}

	value, err := resolve.Option(lib, "webview", overrides)
	require.NoError(t, err)
	assert.Equal(t, domain.BoolValue(false), value)
}

// Scenario: aui has no mandatory key; an override setting it to true must
// resolve to exactly true.
func TestOption_OverridePassthrough(t *testing.T) {
	lib := testLibrary()
	overrides := map[string]domain.OptionValue{"aui": domain.BoolValue(true)}

	value, err := resolve.Option(lib, "aui", overrides)
	require.NoError(t, err)
	assert.Equal(t, domain.BoolValue(true), value)
}

func TestOption_DefaultFallback(t *testing.T) {
	lib := testLibrary()

	value, err := resolve.Option(lib, "aui", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.BoolValue(false), value)

	value, err = resolve.Option(lib, "libpng", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.EnumValue("builtin"), value)
}

func TestOption_LockedValueWinsOverDefault(t *testing.T) {
	lib := testLibrary()
	overrides := map[string]domain.OptionValue{"opengl": domain.BoolValue(false)}

	value, err := resolve.Option(lib, "opengl", overrides)
	require.NoError(t, err)
	assert.Equal(t, domain.BoolValue(true), value)
}

func TestOption_NonTrueMandatoryIsFixedConstant(t *testing.T) {
	lib := testLibrary()
	overrides := map[string]domain.OptionValue{"secretstore": domain.BoolValue(true)}

	value, err := resolve.Option(lib, "secretstore", overrides)
	require.NoError(t, err)
	assert.Equal(t, domain.BoolValue(false), value, "mandatory: false fixes the option to false")
}

func TestOption_ScalarIsVerbatim(t *testing.T) {
	lib := testLibrary()
	overrides := map[string]domain.OptionValue{"monolithic": domain.BoolValue(true)}

	value, err := resolve.Option(lib, "monolithic", overrides)
	require.NoError(t, err)
	assert.Equal(t, domain.BoolValue(false), value)
}

func TestOption_UnknownName(t *testing.T) {
	lib := testLibrary()

	_, err := resolve.Option(lib, "frobnicate", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownOption))
}

// Property: for every option marked mandatory-as-true, the resolved value is
// independent of whatever the override supplies.
func TestOption_OverrideInvarianceForLockedOptions(t *testing.T) {
	lib := testLibrary()
	attempts := []domain.OptionValue{
		domain.BoolValue(true),
		domain.BoolValue(false),
		domain.EnumValue("sys"),
		domain.ListValue{"a", "b"},
	}

	for _, name := range []string{"webview", "opengl"} {
		baseline, err := resolve.Option(lib, name, nil)
		require.NoError(t, err)

		for _, attempt := range attempts {
			value, err := resolve.Option(lib, name, map[string]domain.OptionValue{name: attempt})
			require.NoError(t, err)
			assert.Equal(t, baseline, value, "option %s moved under override %v", name, attempt)
		}
	}
}

func TestAll_ResolvesLibraryAndPlatformOptions(t *testing.T) {
	lib := testLibrary()
	profile := domain.PlatformProfile{Platform: domain.Darwin}

	set, err := resolve.All(lib, profile, nil)
	require.NoError(t, err)

	// All six library options plus Darwin's one platform option.
	assert.Equal(t, 7, set.Len())

	arch, ok := set.Get("architectures")
	require.True(t, ok)
	assert.Equal(t, domain.ListValue{"arm64", "x86_64"}, arch)

	// Linux-only options are not part of a Darwin set.
	_, ok = set.Get("gtk_version")
	assert.False(t, ok)
}

// Scenario: no override document at all resolves every option to its schema
// default (modulo mandatory locks).
func TestAll_NoOverrides(t *testing.T) {
	lib := testLibrary()
	profile := domain.PlatformProfile{Platform: domain.Linux}

	set, err := resolve.All(lib, profile, nil)
	require.NoError(t, err)

	aui, _ := set.Get("aui")
	assert.Equal(t, domain.BoolValue(false), aui)
	gtk, _ := set.Get("gtk_version")
	assert.Equal(t, domain.EnumValue("3"), gtk)
}

// Scenario: an override referencing an option absent from the schema fails
// with ErrUnknownOption before anything is resolved.
func TestAll_UnknownOverrideName(t *testing.T) {
	lib := testLibrary()
	profile := domain.PlatformProfile{Platform: domain.Linux}
	overrides := map[string]domain.OptionValue{"frobnicate": domain.BoolValue(true)}

	_, err := resolve.All(lib, profile, overrides)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownOption))
}

// An override may target another platform's option; the shared document
// still validates, the value simply has no effect on this platform.
func TestAll_OverrideForOtherPlatformValidates(t *testing.T) {
	lib := testLibrary()
	profile := domain.PlatformProfile{Platform: domain.Darwin}
	overrides := map[string]domain.OptionValue{"gtk_version": domain.EnumValue("4")}

	set, err := resolve.All(lib, profile, overrides)
	require.NoError(t, err)
	_, ok := set.Get("gtk_version")
	assert.False(t, ok)
}

// Property: resolution is idempotent and order-independent.
func TestAll_Idempotent(t *testing.T) {
	lib := testLibrary()
	profile := domain.PlatformProfile{Platform: domain.Darwin}
	overrides := map[string]domain.OptionValue{"aui": domain.BoolValue(true)}

	first, err := resolve.All(lib, profile, overrides)
	require.NoError(t, err)
	second, err := resolve.All(lib, profile, overrides)
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names())
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	for _, name := range first.Names() {
		a, _ := first.Get(name)
		b, _ := second.Get(name)
		assert.Equal(t, a, b, "option %s", name)
	}
}
