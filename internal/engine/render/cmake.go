package render

import (
	"strings"

	"github.com/appsandbox/depkit/internal/core/domain"
)

// cmakeVars maps option names to CMake cache variables where the derived
// wxUSE_* spelling does not apply.
var cmakeVars = map[string]string{
	"shared":                   "wxBUILD_SHARED",
	"monolithic":               "wxBUILD_MONOLITHIC",
	"msvc_static_runtime":      "wxBUILD_USE_STATIC_RUNTIME",
	"macosx_deployment_target": "CMAKE_OSX_DEPLOYMENT_TARGET",
	"architectures":            "CMAKE_OSX_ARCHITECTURES",
	"win_arch":                 "CMAKE_GENERATOR_PLATFORM",
}

// CMake renders a resolved option set into -D cache-variable definitions.
type CMake struct{}

// Render produces one -DNAME=VALUE argument per option, in name order.
// Booleans use CMake's ON/OFF vocabulary, enums pass through verbatim, and
// lists join with CMake's semicolon separator.
func (CMake) Render(set *domain.ResolvedOptionSet) ([]string, error) {
	args := make([]string, 0, set.Len())

	for _, name := range set.Names() {
		value, _ := set.Get(name)
		rendered, err := cmakeValue(set, name, value)
		if err != nil {
			return nil, err
		}
		args = append(args, "-D"+cmakeVar(name)+"="+rendered)
	}

	return args, nil
}

func cmakeVar(name string) string {
	if v, ok := cmakeVars[name]; ok {
		return v
	}
	return "wxUSE_" + strings.ToUpper(name)
}

func cmakeValue(set *domain.ResolvedOptionSet, name string, value domain.OptionValue) (string, error) {
	switch v := value.(type) {
	case domain.BoolValue:
		if v {
			return "ON", nil
		}
		return "OFF", nil
	case domain.EnumValue:
		return string(v), nil
	case domain.ListValue:
		return strings.Join(v, ";"), nil
	default:
		return "", unsupported(set, name, value)
	}
}
