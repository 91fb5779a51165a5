package ports

import "go.trai.ch/targets/internal/core/domain"

// ConfigLoader defines the interface for loading target declarations.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the declaration files for the given working directory and
	// returns a registry holding every declared target kind.
	Load(cwd string) (*domain.Registry, error)

	// DeclarationDir returns the directory Load would read declarations from.
	DeclarationDir(cwd string) (string, error)
}

// EnvDefaults holds environment values read from a defaults file.
// Empty fields were not set.
type EnvDefaults struct {
	HostPlatform   string
	TargetPlatform string
	Configuration  string
	Origin         string
}

// EnvDefaultsLoader reads environment defaults without touching the process environment.
type EnvDefaultsLoader interface {
	// LoadDefaults reads the file at path. A missing file yields empty defaults.
	LoadDefaults(path string) (EnvDefaults, error)
}
