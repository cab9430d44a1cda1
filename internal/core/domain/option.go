// Package domain holds the core value types of depkit.
package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// OptionValue is the closed set of value kinds a build option can carry.
// Renderers switch exhaustively over the three kinds; a value outside the
// set must surface as ErrUnsupportedOptionValue, never as a dropped flag.
type OptionValue interface {
	optionValue()
	String() string
}

// BoolValue is an on/off build toggle.
type BoolValue bool

func (BoolValue) optionValue() {}

func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }

// EnumValue is a string-typed option such as a library-source selector
// ("builtin", "sys", "off") or a deployment target.
type EnumValue string

func (EnumValue) optionValue() {}

func (v EnumValue) String() string { return string(v) }

// ListValue is an ordered list option such as a target architecture list.
type ListValue []string

func (ListValue) optionValue() {}

func (v ListValue) String() string { return strings.Join(v, ",") }

// OptionSpec describes one configurable build option of a library.
//
// Mandatory semantics:
//   - nil: the option is overridable by the consumer.
//   - BoolValue(true): the effective value is LockedValue when present,
//     Default otherwise. Consumer overrides are never consulted.
//   - any other value: that value is the effective value, a fixed
//     override-proof constant chosen by the schema author.
type OptionSpec struct {
	Default     OptionValue
	Mandatory   OptionValue
	LockedValue OptionValue

	// Scalar marks options written as a bare scalar in the schema
	// document. They resolve to Default verbatim and have no override path.
	Scalar bool
}

// LibrarySpec describes one third-party library known to the schema.
type LibrarySpec struct {
	Name            string
	Version         string
	SourceURL       string
	ArchiveSHA256   string
	Options         map[string]OptionSpec
	PlatformOptions map[Platform]map[string]OptionSpec
	Patches         map[Platform][]string
}

// Schema maps library names to their specs. It is loaded fresh on every
// invocation and never mutated afterwards.
type Schema map[string]LibrarySpec

// Library looks up a library spec by name.
func (s Schema) Library(name string) (LibrarySpec, error) {
	spec, ok := s[name]
	if !ok {
		return LibrarySpec{}, zerr.With(ErrUnknownLibrary, "library", name)
	}
	return spec, nil
}
