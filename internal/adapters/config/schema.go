package config

// libraryDTO mirrors one library entry of a schema document.
type libraryDTO struct {
	Version         string                    `yaml:"version"`
	Source          string                    `yaml:"source"`
	SHA256          string                    `yaml:"sha256"`
	Options         map[string]any            `yaml:"options"`
	PlatformOptions map[string]map[string]any `yaml:"platform_options"`
	Patches         map[string][]string       `yaml:"patches"`
}

// overridesDTO mirrors the consumer-supplied override document.
type overridesDTO struct {
	Libraries []string                  `yaml:"libraries"`
	Overrides map[string]map[string]any `yaml:"overrides"`
}
