package config

import "gopkg.in/yaml.v3"

// Declfile represents the structure of the targets.yaml declaration file.
// Targets is kept as a node so repeated kind names can be reported as
// duplicates instead of YAML syntax errors.
type Declfile struct {
	Version string    `yaml:"version"`
	Project string    `yaml:"project"`
	Targets yaml.Node `yaml:"targets"`
}

// TargetDTO represents one target kind in targets.yaml.
type TargetDTO struct {
	Type            string   `yaml:"type"`
	SettingsVersion string   `yaml:"settingsVersion"`
	Modules         []string `yaml:"modules"`
}

// HCLFile represents the top level of a *.target.hcl file.
type HCLFile struct {
	Project string       `hcl:"project,optional"`
	Targets []*HCLTarget `hcl:"target,block"`
}

// HCLTarget represents a target block in a *.target.hcl file.
type HCLTarget struct {
	Name            string   `hcl:"name,label"`
	Type            string   `hcl:"type"`
	SettingsVersion string   `hcl:"settings_version"`
	Modules         []string `hcl:"modules"`
}
