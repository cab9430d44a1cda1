package domain

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// ResolvedOptionSet is the final option-name to effective-value mapping for
// one library on one platform. It is produced fresh by every resolution call
// and discarded after rendering.
type ResolvedOptionSet struct {
	Library  string
	Platform Platform

	names  []string
	values map[string]OptionValue
}

// NewResolvedOptionSet creates an empty set for the given library and platform.
func NewResolvedOptionSet(library string, platform Platform) *ResolvedOptionSet {
	return &ResolvedOptionSet{
		Library:  library,
		Platform: platform,
		values:   make(map[string]OptionValue),
	}
}

// Set records the effective value for an option. Setting the same name twice
// keeps the last value without duplicating the name.
func (s *ResolvedOptionSet) Set(name string, value OptionValue) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// Get returns the effective value for an option.
func (s *ResolvedOptionSet) Get(name string) (OptionValue, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Names returns the option names in sorted order. Rendering iterates this
// slice, so the produced argument vector is independent of resolution order.
func (s *ResolvedOptionSet) Names() []string {
	names := slices.Clone(s.names)
	slices.Sort(names)
	return names
}

// Len returns the number of resolved options.
func (s *ResolvedOptionSet) Len() int { return len(s.values) }

// Fingerprint returns a deterministic xxhash64 digest of the set. It is
// recorded inside the install marker after a successful build so a stale
// build can be recognized by a human; the marker check itself remains
// presence-only.
func (s *ResolvedOptionSet) Fingerprint() string {
	h := xxhash.New()
	_, _ = h.WriteString(s.Library)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(string(s.Platform))
	_, _ = h.Write([]byte{0})

	for _, name := range s.Names() {
		_, _ = h.WriteString(name)
		_, _ = h.Write([]byte{0})
		hashValue(h, s.values[name])
		_, _ = h.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", h.Sum64())
}

func hashValue(h *xxhash.Digest, value OptionValue) {
	switch v := value.(type) {
	case BoolValue:
		_, _ = h.WriteString("b")
		if v {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	case EnumValue:
		_, _ = h.WriteString("e")
		_, _ = h.WriteString(string(v))
	case ListValue:
		_, _ = h.WriteString("l")
		for _, item := range v {
			_, _ = h.WriteString(item)
			_, _ = h.Write([]byte{0})
		}
	}
}
