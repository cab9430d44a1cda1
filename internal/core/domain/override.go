package domain

// DefaultLibrary is built when the override document names no libraries.
const DefaultLibrary = "wxwidgets"

// OverrideDocument is the consumer-supplied configuration: which libraries
// to build and which non-mandatory options to change from their defaults.
// A nil document means "build the default library with all defaults".
type OverrideDocument struct {
	Libraries []string
	Overrides map[string]map[string]OptionValue
}

// BuildList returns the libraries to build. Nil-safe.
func (d *OverrideDocument) BuildList() []string {
	if d == nil || len(d.Libraries) == 0 {
		return []string{DefaultLibrary}
	}
	return d.Libraries
}

// For returns the override mapping for one library. Nil-safe; a nil result
// means "no overrides".
func (d *OverrideDocument) For(library string) map[string]OptionValue {
	if d == nil {
		return nil
	}
	return d.Overrides[library]
}
