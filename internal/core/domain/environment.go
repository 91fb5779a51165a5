package domain

import (
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// Platform identifies an operating system and architecture pair a target can be built on or for.
type Platform string

const (
	// PlatformWin64 is 64-bit Windows.
	PlatformWin64 Platform = "Win64"
	// PlatformLinux is x86-64 Linux.
	PlatformLinux Platform = "Linux"
	// PlatformLinuxArm64 is arm64 Linux.
	PlatformLinuxArm64 Platform = "LinuxArm64"
	// PlatformMac is macOS.
	PlatformMac Platform = "Mac"
	// PlatformIOS is iOS.
	PlatformIOS Platform = "IOS"
	// PlatformAndroid is Android.
	PlatformAndroid Platform = "Android"
)

// Platforms lists every supported platform in declaration order.
var Platforms = []Platform{
	PlatformWin64,
	PlatformLinux,
	PlatformLinuxArm64,
	PlatformMac,
	PlatformIOS,
	PlatformAndroid,
}

// String returns the platform name.
func (p Platform) String() string {
	return string(p)
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// Configuration selects the optimisation and diagnostics level of a build.
type Configuration string

const (
	// ConfigurationDebug builds without optimisation.
	ConfigurationDebug Configuration = "Debug"
	// ConfigurationDevelopment is the default day-to-day configuration.
	ConfigurationDevelopment Configuration = "Development"
	// ConfigurationShipping is the fully optimised release configuration.
	ConfigurationShipping Configuration = "Shipping"
	// ConfigurationTest is shipping with test hooks left in.
	ConfigurationTest Configuration = "Test"
)

// Configurations lists every supported configuration.
var Configurations = []Configuration{
	ConfigurationDebug,
	ConfigurationDevelopment,
	ConfigurationShipping,
	ConfigurationTest,
}

// String returns the configuration name.
func (c Configuration) String() string {
	return string(c)
}

// Valid reports whether c is one of the supported configurations.
func (c Configuration) Valid() bool {
	for _, known := range Configurations {
		if c == known {
			return true
		}
	}
	return false
}

// Origin records what invoked the resolution.
type Origin string

const (
	// OriginCommandLine is a direct command line invocation.
	OriginCommandLine Origin = "CommandLine"
	// OriginEditor is an invocation from inside the editor.
	OriginEditor Origin = "Editor"
	// OriginAutomation is an invocation from CI or other automation.
	OriginAutomation Origin = "Automation"
)

// Origins lists every supported invocation origin.
var Origins = []Origin{
	OriginCommandLine,
	OriginEditor,
	OriginAutomation,
}

// String returns the origin name.
func (o Origin) String() string {
	return string(o)
}

// Valid reports whether o is one of the supported origins.
func (o Origin) Valid() bool {
	for _, known := range Origins {
		if o == known {
			return true
		}
	}
	return false
}

// EnvironmentInfo describes the context a resolution request is evaluated against.
// It is a plain value: callers construct it per request and the registry never keeps it.
type EnvironmentInfo struct {
	HostPlatform   Platform      `json:"host_platform"`
	TargetPlatform Platform      `json:"target_platform"`
	Configuration  Configuration `json:"configuration"`
	Origin         Origin        `json:"origin"`
}

// Validate checks that every field holds a supported value.
func (e EnvironmentInfo) Validate() error {
	switch {
	case !e.HostPlatform.Valid():
		return invalidEnvironment("host_platform", string(e.HostPlatform))
	case !e.TargetPlatform.Valid():
		return invalidEnvironment("target_platform", string(e.TargetPlatform))
	case !e.Configuration.Valid():
		return invalidEnvironment("configuration", string(e.Configuration))
	case !e.Origin.Valid():
		return invalidEnvironment("origin", string(e.Origin))
	}
	return nil
}

func invalidEnvironment(field, value string) error {
	err := zerr.Wrap(ErrInvalidEnvironment, "unsupported "+field)
	err = zerr.With(err, "field", field)
	return zerr.With(err, "value", value)
}

// ParsePlatform resolves a platform name case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", invalidEnvironment("platform", s)
}

// ParseConfiguration resolves a configuration name case-insensitively.
func ParseConfiguration(s string) (Configuration, error) {
	for _, c := range Configurations {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", invalidEnvironment("configuration", s)
}

// ParseOrigin resolves an invocation origin name case-insensitively.
func ParseOrigin(s string) (Origin, error) {
	for _, o := range Origins {
		if strings.EqualFold(s, string(o)) {
			return o, nil
		}
	}
	return "", invalidEnvironment("origin", s)
}

// HostPlatform returns the platform of the running process.
// Unknown operating systems fall back to Linux.
func HostPlatform() Platform {
	return platformFor(runtime.GOOS, runtime.GOARCH)
}

func platformFor(goos, goarch string) Platform {
	switch goos {
	case "windows":
		return PlatformWin64
	case "darwin":
		return PlatformMac
	case "ios":
		return PlatformIOS
	case "android":
		return PlatformAndroid
	case "linux":
		if goarch == "arm64" {
			return PlatformLinuxArm64
		}
		return PlatformLinux
	default:
		return PlatformLinux
	}
}
