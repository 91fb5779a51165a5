package domain

import "path/filepath"

const (
	// TargetsDirName is the name of the internal state directory.
	TargetsDirName = ".targets"

	// ManifestFileName is the name of the descriptor manifest inside TargetsDirName.
	ManifestFileName = "manifest.json"

	// DeclarationFileName is the YAML target declaration file.
	DeclarationFileName = "targets.yaml"

	// HCLDeclarationSuffix marks HCL target declaration files.
	HCLDeclarationSuffix = ".target.hcl"

	// EnvFileName is the default environment defaults file.
	EnvFileName = ".env"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultManifestPath returns the default path of the descriptor manifest.
func DefaultManifestPath() string {
	return filepath.Join(TargetsDirName, ManifestFileName)
}
