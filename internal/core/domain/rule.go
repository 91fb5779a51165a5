package domain

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// BinaryType is the category of artifact a target produces.
type BinaryType string

const (
	// BinaryGame is a standalone game executable.
	BinaryGame BinaryType = "Game"
	// BinaryEditor is an editor build that hosts the game modules.
	BinaryEditor BinaryType = "Editor"
	// BinaryClient is a game build without server code.
	BinaryClient BinaryType = "Client"
	// BinaryServer is a dedicated server build.
	BinaryServer BinaryType = "Server"
	// BinaryProgram is a standalone utility program.
	BinaryProgram BinaryType = "Program"
)

// BinaryTypes lists every supported binary type.
var BinaryTypes = []BinaryType{
	BinaryGame,
	BinaryEditor,
	BinaryClient,
	BinaryServer,
	BinaryProgram,
}

// String returns the binary type name.
func (b BinaryType) String() string {
	return string(b)
}

// Valid reports whether b is one of the supported binary types.
func (b BinaryType) Valid() bool {
	return slices.Contains(BinaryTypes, b)
}

// ParseBinaryType resolves a binary type name case-insensitively.
func ParseBinaryType(s string) (BinaryType, error) {
	for _, b := range BinaryTypes {
		if strings.EqualFold(s, string(b)) {
			return b, nil
		}
	}
	return "", zerr.With(zerr.Wrap(ErrInvalidBinaryType, "unknown binary type"), "value", s)
}

// SettingsVersion selects a baseline of default build settings.
// Versions are ordered: a later release never has a lower value.
type SettingsVersion int

const (
	// SettingsV1 is the oldest settings baseline.
	SettingsV1 SettingsVersion = iota + 1
	// SettingsV2 is the current baseline.
	SettingsV2
	// SettingsV3 tightens warnings and include order.
	SettingsV3
	// SettingsV4 moves to the newer language standard defaults.
	SettingsV4

	// SettingsLatest always points at the newest known baseline.
	SettingsLatest = SettingsV4
)

// MinSupportedSettingsVersion is the oldest baseline the engine still accepts.
const MinSupportedSettingsVersion = SettingsV2

var settingsVersionNames = map[SettingsVersion]string{
	SettingsV1: "V1",
	SettingsV2: "V2",
	SettingsV3: "V3",
	SettingsV4: "V4",
}

// String returns the version tag, e.g. "V2".
func (v SettingsVersion) String() string {
	if name, ok := settingsVersionNames[v]; ok {
		return name
	}
	return "Unknown"
}

// Known reports whether v is a released settings baseline.
func (v SettingsVersion) Known() bool {
	_, ok := settingsVersionNames[v]
	return ok
}

// ParseSettingsVersion resolves a tag such as "V2" or "Latest".
func ParseSettingsVersion(s string) (SettingsVersion, error) {
	if strings.EqualFold(s, "latest") {
		return SettingsLatest, nil
	}
	for v, name := range settingsVersionNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	return 0, zerr.With(zerr.Wrap(ErrInvalidSettingsVersion, "unknown settings version"), "value", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v SettingsVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *SettingsVersion) UnmarshalText(text []byte) error {
	parsed, err := ParseSettingsVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var validKindNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// TargetKindRule declares how a named target kind resolves.
type TargetKindRule struct {
	Name            string
	BinaryType      BinaryType
	SettingsVersion SettingsVersion
	Modules         []string
}

// clone returns a copy that shares no memory with r.
func (r TargetKindRule) clone() TargetKindRule {
	r.Modules = slices.Clone(r.Modules)
	return r
}

func validateKindName(name string) error {
	if !validKindNameRegex.MatchString(name) {
		return zerr.With(zerr.Wrap(ErrInvalidKindName, "invalid target kind name"), "kind", name)
	}
	return nil
}
