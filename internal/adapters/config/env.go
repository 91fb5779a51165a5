package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.trai.ch/targets/internal/core/domain"
	"go.trai.ch/targets/internal/core/ports"
	"go.trai.ch/zerr"
)

// Keys read from the environment defaults file.
const (
	EnvHostPlatform   = "TARGETS_HOST_PLATFORM"
	EnvTargetPlatform = "TARGETS_PLATFORM"
	EnvConfiguration  = "TARGETS_CONFIGURATION"
	EnvOrigin         = "TARGETS_ORIGIN"
)

// DotEnv implements ports.EnvDefaultsLoader over a dotenv file.
// The file is parsed, never applied to the process environment.
type DotEnv struct{}

// NewDotEnv creates a DotEnv loader.
func NewDotEnv() *DotEnv {
	return &DotEnv{}
}

// LoadDefaults reads path. A missing file yields empty defaults.
func (d *DotEnv) LoadDefaults(path string) (ports.EnvDefaults, error) {
	if path == "" {
		return ports.EnvDefaults{}, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ports.EnvDefaults{}, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		readErr := zerr.Wrap(domain.ErrEnvFileReadFailed, "cannot parse environment file")
		readErr = zerr.With(readErr, "file", path)
		return ports.EnvDefaults{}, zerr.With(readErr, "reason", err.Error())
	}

	return ports.EnvDefaults{
		HostPlatform:   values[EnvHostPlatform],
		TargetPlatform: values[EnvTargetPlatform],
		Configuration:  values[EnvConfiguration],
		Origin:         values[EnvOrigin],
	}, nil
}
