package render

import (
	"strings"

	"github.com/appsandbox/depkit/internal/core/domain"
)

// withOptions lists options rendered through configure's --with/--without
// vocabulary instead of --enable/--disable. These select which copy of a
// support library to link ("builtin", "sys") or a toolkit flavor.
var withOptions = map[string]bool{
	"libpng":      true,
	"libjpeg":     true,
	"libtiff":     true,
	"zlib":        true,
	"expat":       true,
	"regex":       true,
	"gtk_version": true,
}

// configureFlags maps option names to configure flag spellings where the
// derived dashed name does not apply.
var configureFlags = map[string]string{
	"gtk_version":   "gtk",
	"architectures": "macosx_arch",
}

// Configure renders a resolved option set into autoconf configure flags.
type Configure struct{}

// Render produces configure script arguments in name order. Booleans use
// the --enable/--disable pair, enums go through --with-x=value (or
// --without-x for "off"), and lists join with configure's comma separator.
func (Configure) Render(set *domain.ResolvedOptionSet) ([]string, error) {
	args := make([]string, 0, set.Len())

	for _, name := range set.Names() {
		value, _ := set.Get(name)
		flag := configureFlag(name)

		switch v := value.(type) {
		case domain.BoolValue:
			if withOptions[name] {
				if v {
					args = append(args, "--with-"+flag)
				} else {
					args = append(args, "--without-"+flag)
				}
				continue
			}
			if v {
				args = append(args, "--enable-"+flag)
			} else {
				args = append(args, "--disable-"+flag)
			}
		case domain.EnumValue:
			if string(v) == "off" || string(v) == "no" {
				args = append(args, "--without-"+flag)
				continue
			}
			args = append(args, "--with-"+flag+"="+string(v))
		case domain.ListValue:
			args = append(args, "--enable-"+flag+"="+strings.Join(v, ","))
		default:
			return nil, unsupported(set, name, value)
		}
	}

	return args, nil
}

func configureFlag(name string) string {
	if f, ok := configureFlags[name]; ok {
		return f
	}
	return strings.ReplaceAll(name, "_", "-")
}
