package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateKind is returned when a target kind is registered twice.
	ErrDuplicateKind = zerr.New("duplicate target kind")

	// ErrUnknownKind is returned when resolving a kind that was never registered.
	ErrUnknownKind = zerr.New("unknown target kind")

	// ErrEmptyModuleList is returned when a target kind names no modules to build.
	ErrEmptyModuleList = zerr.New("empty module list")

	// ErrUnsupportedSettingsVersion is returned when a kind declares a settings version below the engine minimum.
	ErrUnsupportedSettingsVersion = zerr.New("unsupported settings version")

	// ErrInvalidKindName is returned when a kind name is empty or contains characters other than
	// alphanumerics, hyphens and underscores.
	ErrInvalidKindName = zerr.New("invalid target kind name")

	// ErrInvalidBinaryType is returned when a binary type is not recognised.
	ErrInvalidBinaryType = zerr.New("invalid binary type")

	// ErrInvalidSettingsVersion is returned when a settings version tag is not recognised.
	ErrInvalidSettingsVersion = zerr.New("invalid settings version")

	// ErrInvalidEnvironment is returned when an environment field holds an unsupported value.
	ErrInvalidEnvironment = zerr.New("invalid environment")

	// ErrNoTargetsSpecified is returned when no target kinds are requested.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrResolutionFailed is returned when at least one requested kind failed to resolve.
	ErrResolutionFailed = zerr.New("target resolution failed")

	// ErrUnsupportedOutputFormat is returned when descriptors are requested in an unknown format.
	ErrUnsupportedOutputFormat = zerr.New("unsupported output format")

	// ErrConfigNotFound is returned when no target declaration file can be found.
	ErrConfigNotFound = zerr.New("could not find targets.yaml or *.target.hcl")

	// ErrConfigReadFailed is returned when a declaration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read declaration file")

	// ErrConfigParseFailed is returned when a declaration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse declaration file")

	// ErrEnvFileReadFailed is returned when the environment defaults file exists but cannot be read.
	ErrEnvFileReadFailed = zerr.New("failed to read environment file")

	// ErrStoreReadFailed is returned when the descriptor manifest cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read descriptor manifest")

	// ErrStoreWriteFailed is returned when the descriptor manifest cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write descriptor manifest")
)
