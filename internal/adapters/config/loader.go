// Package config loads the default option schema and consumer overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/appsandbox/depkit/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultSchema []byte

// Loader implements ports.ConfigLoader using YAML documents. The default
// schema is compiled into the binary; SchemaPath redirects it to a file for
// tests and local experiments.
type Loader struct {
	SchemaPath string
}

// LoadDefaults reads the fixed, versioned schema document.
func (l *Loader) LoadDefaults() (domain.Schema, error) {
	data := defaultSchema
	if l.SchemaPath != "" {
		var err error
		data, err = os.ReadFile(l.SchemaPath) //nolint:gosec // path is provided by the operator
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, zerr.With(domain.ErrConfigMissing, "path", l.SchemaPath)
			}
			return nil, zerr.Wrap(err, "failed to read schema document")
		}
	}

	var dtos map[string]libraryDTO
	if err := yaml.Unmarshal(data, &dtos); err != nil {
		return nil, zerr.Wrap(domain.ErrConfigParse, err.Error())
	}

	schema := make(domain.Schema, len(dtos))
	for name, dto := range dtos {
		spec, err := toLibrarySpec(name, dto)
		if err != nil {
			return nil, err
		}
		schema[name] = spec
	}
	return schema, nil
}

// LoadOverrides reads the override document at path. Absence means "use all
// defaults" and returns nil without error.
func (l *Loader) LoadOverrides(path string) (*domain.OverrideDocument, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the consuming project
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read override document")
	}

	var dto overridesDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParse, err.Error()), "path", path)
	}

	doc := &domain.OverrideDocument{Libraries: dto.Libraries}
	if len(dto.Overrides) > 0 {
		doc.Overrides = make(map[string]map[string]domain.OptionValue, len(dto.Overrides))
		for lib, raw := range dto.Overrides {
			values := make(map[string]domain.OptionValue, len(raw))
			for option, v := range raw {
				value, err := toOptionValue(v)
				if err != nil {
					return nil, zerr.With(zerr.With(err, "library", lib), "option", option)
				}
				values[option] = value
			}
			doc.Overrides[lib] = values
		}
	}
	return doc, nil
}

func toLibrarySpec(name string, dto libraryDTO) (domain.LibrarySpec, error) {
	spec := domain.LibrarySpec{
		Name:          name,
		Version:       dto.Version,
		SourceURL:     dto.Source,
		ArchiveSHA256: dto.SHA256,
		Options:       make(map[string]domain.OptionSpec, len(dto.Options)),
	}

	for option, raw := range dto.Options {
		optSpec, err := toOptionSpec(raw)
		if err != nil {
			return domain.LibrarySpec{}, zerr.With(zerr.With(err, "library", name), "option", option)
		}
		spec.Options[option] = optSpec
	}

	if len(dto.PlatformOptions) > 0 {
		spec.PlatformOptions = make(map[domain.Platform]map[string]domain.OptionSpec, len(dto.PlatformOptions))
		for platformName, options := range dto.PlatformOptions {
			platform, err := domain.ParsePlatform(platformName)
			if err != nil {
				return domain.LibrarySpec{}, zerr.Wrap(domain.ErrConfigParse, err.Error())
			}
			scoped := make(map[string]domain.OptionSpec, len(options))
			for option, raw := range options {
				optSpec, err := toOptionSpec(raw)
				if err != nil {
					return domain.LibrarySpec{}, zerr.With(zerr.With(err, "library", name), "option", option)
				}
				scoped[option] = optSpec
			}
			spec.PlatformOptions[platform] = scoped
		}
	}

	if len(dto.Patches) > 0 {
		spec.Patches = make(map[domain.Platform][]string, len(dto.Patches))
		for platformName, ids := range dto.Patches {
			platform, err := domain.ParsePlatform(platformName)
			if err != nil {
				return domain.LibrarySpec{}, zerr.Wrap(domain.ErrConfigParse, err.Error())
			}
			spec.Patches[platform] = ids
		}
	}

	return spec, nil
}

// toOptionSpec converts one schema entry. A mapping is a structured spec
// with default/mandatory/locked_value keys; any other node is a bare scalar
// treated as a hard-coded value with no override path.
func toOptionSpec(raw any) (domain.OptionSpec, error) {
	structured, ok := raw.(map[string]any)
	if !ok {
		value, err := toOptionValue(raw)
		if err != nil {
			return domain.OptionSpec{}, err
		}
		return domain.OptionSpec{Default: value, Scalar: true}, nil
	}

	var spec domain.OptionSpec
	for key, v := range structured {
		value, err := toOptionValue(v)
		if err != nil {
			return domain.OptionSpec{}, err
		}
		switch key {
		case "default":
			spec.Default = value
		case "mandatory":
			spec.Mandatory = value
		case "locked_value":
			spec.LockedValue = value
		default:
			return domain.OptionSpec{}, zerr.With(domain.ErrConfigParse, "key", key)
		}
	}
	return spec, nil
}

func toOptionValue(raw any) (domain.OptionValue, error) {
	switch v := raw.(type) {
	case bool:
		return domain.BoolValue(v), nil
	case string:
		return domain.EnumValue(v), nil
	case int:
		return domain.EnumValue(fmt.Sprintf("%d", v)), nil
	case float64:
		return domain.EnumValue(fmt.Sprintf("%g", v)), nil
	case []any:
		list := make(domain.ListValue, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, zerr.With(domain.ErrConfigParse, "value", fmt.Sprintf("%v", item))
			}
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, zerr.With(domain.ErrConfigParse, "value", fmt.Sprintf("%v", raw))
	}
}
