package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigMissing is returned when the default option schema cannot be
	// located. There is no sensible fallback; this is always fatal.
	ErrConfigMissing = zerr.New("default schema missing")

	// ErrConfigParse is returned when a configuration document exists but is
	// not well-formed structured data.
	ErrConfigParse = zerr.New("malformed configuration document")

	// ErrUnknownLibrary is returned when a build targets a library name
	// absent from the schema.
	ErrUnknownLibrary = zerr.New("unknown library")

	// ErrUnknownOption is returned when a schema or override references an
	// option name that does not exist in the schema.
	ErrUnknownOption = zerr.New("unknown option")

	// ErrUnsupportedOptionValue is returned when a resolved value's kind
	// matches no rendering rule. A dropped flag would silently change the
	// produced binary's capabilities, so this is always fatal.
	ErrUnsupportedOptionValue = zerr.New("unsupported option value")

	// ErrExternalTool is returned when a wrapped download, patch, or build
	// step returns non-success.
	ErrExternalTool = zerr.New("external tool failed")

	// ErrChecksumMismatch is returned when a downloaded archive does not
	// match the checksum recorded in the schema.
	ErrChecksumMismatch = zerr.New("archive checksum mismatch")
)
