// Package resolve merges schema defaults, mandatory locks, and consumer
// overrides into the effective option set for one library on one platform.
package resolve

import (
	"github.com/appsandbox/depkit/internal/core/domain"
	"go.trai.ch/zerr"
)

// Option resolves the effective value of a single option.
//
// Precedence, from strongest to weakest:
//  1. a bare scalar spec is a hard-coded value with no override path;
//  2. mandatory == literal true locks the option to locked_value when the
//     schema author provided one, otherwise to the default;
//  3. mandatory == any other value is itself the effective value, an
//     override-proof constant;
//  4. a consumer override, only for options with no mandatory key;
//  5. the schema default.
//
// Overrides targeting a mandatory option are silently ignored, preserving
// the platform-safety guarantees the schema encodes.
func Option(lib domain.LibrarySpec, name string, overrides map[string]domain.OptionValue) (domain.OptionValue, error) {
	spec, ok := lookupOption(lib, name)
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrUnknownOption, "option", name), "library", lib.Name)
	}

	if spec.Scalar {
		return spec.Default, nil
	}

	if spec.Mandatory != nil {
		if b, isBool := spec.Mandatory.(domain.BoolValue); isBool && bool(b) {
			if spec.LockedValue != nil {
				return spec.LockedValue, nil
			}
			return spec.Default, nil
		}
		// A non-true mandatory value is itself the fixed effective value.
		return spec.Mandatory, nil
	}

	if override, ok := overrides[name]; ok {
		return override, nil
	}
	return spec.Default, nil
}

// All resolves every option of a library, combining the library's own
// options with the platform-scoped options of the given profile. It is
// deterministic and mutates no shared state, so calling it twice with the
// same inputs yields identical sets.
//
// Before resolving, every override key is validated against the schema: an
// override naming an option that exists nowhere in the library's spec fails
// with ErrUnknownOption and the build does not proceed.
func All(lib domain.LibrarySpec, profile domain.PlatformProfile, overrides map[string]domain.OptionValue) (*domain.ResolvedOptionSet, error) {
	if err := validateOverrides(lib, overrides); err != nil {
		return nil, err
	}

	set := domain.NewResolvedOptionSet(lib.Name, profile.Platform)

	for name := range lib.Options {
		value, err := Option(lib, name, overrides)
		if err != nil {
			return nil, err
		}
		set.Set(name, value)
	}

	for name := range lib.PlatformOptions[profile.Platform] {
		value, err := Option(lib, name, overrides)
		if err != nil {
			return nil, err
		}
		set.Set(name, value)
	}

	return set, nil
}

// lookupOption finds the spec for an option name, checking the library's
// own options first and every platform's scoped options second. Platform
// option names never collide with library option names in practice; if they
// did, the library-level spec wins.
func lookupOption(lib domain.LibrarySpec, name string) (domain.OptionSpec, bool) {
	if spec, ok := lib.Options[name]; ok {
		return spec, true
	}
	for _, platform := range domain.Platforms() {
		if spec, ok := lib.PlatformOptions[platform][name]; ok {
			return spec, true
		}
	}
	return domain.OptionSpec{}, false
}

// validateOverrides rejects overrides that reference option names absent
// from the schema. The check spans all platforms so one override document
// can be shared across Darwin, Windows, and Linux builds.
func validateOverrides(lib domain.LibrarySpec, overrides map[string]domain.OptionValue) error {
	for name := range overrides {
		if _, ok := lookupOption(lib, name); !ok {
			return zerr.With(zerr.With(domain.ErrUnknownOption, "option", name), "library", lib.Name)
		}
	}
	return nil
}
