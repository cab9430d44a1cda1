package domain

import (
	"runtime"

	"go.trai.ch/zerr"
)

// Platform identifies one of the supported operating systems. The set is
// closed; schema documents key platform-scoped options by these names.
type Platform string

const (
	Darwin  Platform = "Darwin"
	Windows Platform = "Windows"
	Linux   Platform = "Linux"
)

// Platforms lists every supported platform in a stable order.
func Platforms() []Platform {
	return []Platform{Darwin, Windows, Linux}
}

// ParsePlatform converts a schema document key into a Platform.
func ParsePlatform(name string) (Platform, error) {
	switch Platform(name) {
	case Darwin, Windows, Linux:
		return Platform(name), nil
	default:
		return "", zerr.With(zerr.New("unsupported platform"), "platform", name)
	}
}

func (p Platform) String() string { return string(p) }

// PlatformProfile identifies the platform a build invocation targets. It is
// determined once at startup and passed explicitly through every resolution
// and render call, so the resolver never depends on ambient process state.
type PlatformProfile struct {
	Platform Platform
}

// DetectProfile builds a profile for the host operating system.
func DetectProfile() (PlatformProfile, error) {
	switch runtime.GOOS {
	case "darwin":
		return PlatformProfile{Platform: Darwin}, nil
	case "windows":
		return PlatformProfile{Platform: Windows}, nil
	case "linux":
		return PlatformProfile{Platform: Linux}, nil
	default:
		return PlatformProfile{}, zerr.With(zerr.New("unsupported host platform"), "goos", runtime.GOOS)
	}
}
