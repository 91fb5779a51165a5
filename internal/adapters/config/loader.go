// Package config loads target declarations and environment defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/targets/internal/core/domain"
	"go.trai.ch/targets/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader over targets.yaml and *.target.hcl files.
type Loader struct {
	Logger ports.Logger
	// RegistryOptions are applied to every registry the loader builds.
	RegistryOptions []domain.RegistryOption
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds the nearest directory holding declaration files, starting at cwd
// and walking up, and registers every kind declared there.
func (l *Loader) Load(cwd string) (*domain.Registry, error) {
	dir, files, err := l.findDeclarations(cwd)
	if err != nil {
		return nil, err
	}

	reg := domain.NewRegistry(l.RegistryOptions...)
	for _, path := range files {
		var rules []domain.TargetKindRule
		if strings.HasSuffix(path, domain.HCLDeclarationSuffix) {
			rules, err = loadHCLFile(path)
		} else {
			rules, err = l.loadDeclfile(path)
		}
		if err != nil {
			return nil, err
		}

		for _, rule := range rules {
			if err := reg.Register(rule); err != nil {
				rel, _ := filepath.Rel(dir, path)
				return nil, zerr.With(err, "file", rel)
			}
		}
	}

	if reg.Len() == 0 {
		l.Logger.Warn(fmt.Sprintf("no target kinds declared in %s", dir))
	}

	return reg, nil
}

// DeclarationDir returns the nearest directory, starting at cwd and walking up,
// that holds declaration files.
func (l *Loader) DeclarationDir(cwd string) (string, error) {
	dir, _, err := l.findDeclarations(cwd)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve declaration directory")
	}
	return abs, nil
}

// findDeclarations returns the first directory, walking up from cwd, that holds
// targets.yaml or any *.target.hcl, together with those files.
// targets.yaml comes first, then HCL files in lexical order.
func (l *Loader) findDeclarations(cwd string) (string, []string, error) {
	currentDir := cwd
	for {
		files, err := declarationsIn(currentDir)
		if err != nil {
			return "", nil, err
		}
		if len(files) > 0 {
			return currentDir, files, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no declarations found"), "cwd", cwd)
}

func declarationsIn(dir string) ([]string, error) {
	var files []string

	declPath := filepath.Join(dir, domain.DeclarationFileName)
	if info, err := os.Stat(declPath); err == nil && !info.IsDir() {
		files = append(files, declPath)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*"+domain.HCLDeclarationSuffix))
	if err != nil {
		return nil, zerr.Wrap(err, "glob pattern failed")
	}
	slices.Sort(matches)

	return append(files, matches...), nil
}

type namedTarget struct {
	name string
	TargetDTO
}

// decodeTargets walks the targets mapping in declaration order.
func decodeTargets(node *yaml.Node) ([]namedTarget, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		parseErr := zerr.Wrap(domain.ErrConfigParseFailed, "targets must be a mapping of kind names")
		return nil, zerr.With(parseErr, "line", node.Line)
	}

	targets := make([]namedTarget, 0, len(node.Content)/2)
	lines := make(map[string]int, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		if first, ok := lines[key.Value]; ok {
			dupErr := zerr.Wrap(domain.ErrDuplicateKind, "target kind declared twice")
			dupErr = zerr.With(dupErr, "kind", key.Value)
			dupErr = zerr.With(dupErr, "first_line", first)
			return nil, zerr.With(dupErr, "line", key.Line)
		}
		lines[key.Value] = key.Line

		target := namedTarget{name: key.Value}
		if err := value.Decode(&target.TargetDTO); err != nil {
			parseErr := zerr.Wrap(domain.ErrConfigParseFailed, "invalid target declaration")
			parseErr = zerr.With(parseErr, "kind", key.Value)
			return nil, zerr.With(parseErr, "reason", err.Error())
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func (l *Loader) loadDeclfile(path string) ([]domain.TargetKindRule, error) {
	// #nosec G304 -- path comes from directory discovery
	data, err := os.ReadFile(path)
	if err != nil {
		readErr := zerr.Wrap(domain.ErrConfigReadFailed, "cannot read "+filepath.Base(path))
		readErr = zerr.With(readErr, "file", path)
		return nil, zerr.With(readErr, "reason", err.Error())
	}

	var declfile Declfile
	if err := yaml.Unmarshal(data, &declfile); err != nil {
		parseErr := zerr.Wrap(domain.ErrConfigParseFailed, "invalid YAML")
		parseErr = zerr.With(parseErr, "file", path)
		return nil, zerr.With(parseErr, "reason", err.Error())
	}

	targets, err := decodeTargets(&declfile.Targets)
	if err != nil {
		return nil, zerr.With(err, "file", path)
	}

	rules := make([]domain.TargetKindRule, 0, len(targets))
	for _, target := range targets {
		rule, err := buildRule(target.name, target.Type, target.SettingsVersion, target.Modules)
		if err != nil {
			return nil, zerr.With(err, "file", path)
		}
		rules = append(rules, rule)
	}

	if declfile.Project != "" && len(rules) > 0 && !anyUses(rules, declfile.Project) {
		l.Logger.Warn(fmt.Sprintf("project %q in %s is not listed as a module by any target",
			declfile.Project, domain.DeclarationFileName))
	}

	return rules, nil
}

// buildRule converts the textual fields of a declaration into a rule.
func buildRule(name, binaryType, settingsVersion string, modules []string) (domain.TargetKindRule, error) {
	bt, err := domain.ParseBinaryType(binaryType)
	if err != nil {
		return domain.TargetKindRule{}, zerr.With(err, "kind", name)
	}

	version, err := domain.ParseSettingsVersion(settingsVersion)
	if err != nil {
		return domain.TargetKindRule{}, zerr.With(err, "kind", name)
	}

	return domain.TargetKindRule{
		Name:            name,
		BinaryType:      bt,
		SettingsVersion: version,
		Modules:         slices.Clone(modules),
	}, nil
}

func anyUses(rules []domain.TargetKindRule, module string) bool {
	for _, r := range rules {
		if slices.Contains(r.Modules, module) {
			return true
		}
	}
	return false
}
