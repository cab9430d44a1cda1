// Package render translates a resolved option set into the argument vector
// of one native build tool. Renderers are pure mapping tables: the same set
// always renders to the same arguments, and a value that matches no rule is
// an error rather than a dropped flag.
package render

import (
	"github.com/appsandbox/depkit/internal/core/domain"
	"go.trai.ch/zerr"
)

// Renderer turns a resolved option set into native build arguments.
type Renderer interface {
	Render(set *domain.ResolvedOptionSet) ([]string, error)
}

// ForPlatform returns the renderer matching the platform's native toolchain:
// CMake on Darwin and Windows, an autoconf configure script on Linux.
func ForPlatform(platform domain.Platform) Renderer {
	if platform == domain.Linux {
		return Configure{}
	}
	return CMake{}
}

func unsupported(set *domain.ResolvedOptionSet, name string, value domain.OptionValue) error {
	err := zerr.With(domain.ErrUnsupportedOptionValue, "option", name)
	err = zerr.With(err, "library", set.Library)
	err = zerr.With(err, "platform", string(set.Platform))
	if value != nil {
		err = zerr.With(err, "value", value.String())
	}
	return err
}
