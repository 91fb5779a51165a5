package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// OutputNameSeparator joins the parts of a derived output name.
// Platform and configuration names never contain it.
const OutputNameSeparator = "-"

// TargetDescriptor is the resolved build plan handed to the build executor.
type TargetDescriptor struct {
	Kind            string          `json:"kind"`
	BinaryType      BinaryType      `json:"binary_type"`
	SettingsVersion SettingsVersion `json:"settings_version"`
	Modules         []string        `json:"modules"`
	OutputName      string          `json:"output_name"`
}

// OutputName derives the artifact name for a kind built for a platform and configuration.
// The last two separated segments are always the platform and configuration, so
// distinct triples never produce the same name.
func OutputName(kind string, platform Platform, configuration Configuration) string {
	return kind + OutputNameSeparator + string(platform) + OutputNameSeparator + string(configuration)
}

// NewTargetDescriptor applies rule to env and validates the result.
// Versions below minVersion and versions with no known baseline are rejected.
func NewTargetDescriptor(rule TargetKindRule, env EnvironmentInfo, minVersion SettingsVersion) (TargetDescriptor, error) {
	if err := env.Validate(); err != nil {
		return TargetDescriptor{}, zerr.With(err, "kind", rule.Name)
	}

	modules := dedupeModules(rule.Modules)
	if len(modules) == 0 {
		err := zerr.Wrap(ErrEmptyModuleList, "target kind declares no modules")
		err = zerr.With(err, "kind", rule.Name)
		return TargetDescriptor{}, zerr.With(err, "field", "modules")
	}

	if rule.SettingsVersion < minVersion {
		err := zerr.Wrap(ErrUnsupportedSettingsVersion, "settings version below engine minimum")
		err = zerr.With(err, "kind", rule.Name)
		err = zerr.With(err, "field", "settings_version")
		err = zerr.With(err, "declared", rule.SettingsVersion.String())
		return TargetDescriptor{}, zerr.With(err, "minimum", minVersion.String())
	}
	if !rule.SettingsVersion.Known() {
		err := zerr.Wrap(ErrInvalidSettingsVersion, "unknown settings version")
		err = zerr.With(err, "kind", rule.Name)
		err = zerr.With(err, "field", "settings_version")
		return TargetDescriptor{}, zerr.With(err, "value", int(rule.SettingsVersion))
	}

	return TargetDescriptor{
		Kind:            rule.Name,
		BinaryType:      rule.BinaryType,
		SettingsVersion: rule.SettingsVersion,
		Modules:         modules,
		OutputName:      OutputName(rule.Name, env.TargetPlatform, env.Configuration),
	}, nil
}

// dedupeModules copies modules, dropping repeats and keeping first-seen order.
func dedupeModules(modules []string) []string {
	if len(modules) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(modules))
	out := make([]string, 0, len(modules))
	for _, m := range modules {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Fingerprint returns a stable hex digest of the descriptor.
// Equal descriptors always share a fingerprint.
func (d TargetDescriptor) Fingerprint() string {
	digest := xxhash.New()
	// Fields are length-prefixed.
	write := func(s string) {
		_, _ = digest.WriteString(strconv.Itoa(len(s)))
		_, _ = digest.WriteString(":")
		_, _ = digest.WriteString(s)
	}
	write(d.Kind)
	write(string(d.BinaryType))
	write(d.SettingsVersion.String())
	write(strconv.Itoa(len(d.Modules)))
	for _, m := range d.Modules {
		write(m)
	}
	write(d.OutputName)
	return strconv.FormatUint(digest.Sum64(), 16)
}
