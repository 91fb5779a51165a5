package domain

import (
	"slices"
	"strings"
	"sync"

	"go.trai.ch/zerr"
)

// Registry holds the target kinds declared for a build session.
// Kinds can be added but never removed or replaced, so a resolved descriptor
// cannot change while a build is in flight.
type Registry struct {
	mu         sync.RWMutex
	rules      map[string]TargetKindRule
	folded     map[string]string
	minVersion SettingsVersion
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMinSettingsVersion overrides the oldest settings version the registry resolves.
func WithMinSettingsVersion(v SettingsVersion) RegistryOption {
	return func(r *Registry) {
		r.minVersion = v
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		rules:      make(map[string]TargetKindRule),
		folded:     make(map[string]string),
		minVersion: MinSupportedSettingsVersion,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds rule under rule.Name.
// It returns ErrDuplicateKind if the name is already taken, including by a name
// that differs only in case: output names become file names, and Win64 and Mac
// file systems fold case.
// Empty module lists and versions below the minimum are checked at resolution time.
func (r *Registry) Register(rule TargetKindRule) error {
	if err := validateKindName(rule.Name); err != nil {
		return err
	}
	if !rule.BinaryType.Valid() {
		err := zerr.Wrap(ErrInvalidBinaryType, "unknown binary type")
		err = zerr.With(err, "kind", rule.Name)
		return zerr.With(err, "value", string(rule.BinaryType))
	}
	if rule.SettingsVersion > SettingsLatest {
		err := zerr.Wrap(ErrInvalidSettingsVersion, "settings version newer than any known baseline")
		err = zerr.With(err, "kind", rule.Name)
		return zerr.With(err, "value", int(rule.SettingsVersion))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.folded[strings.ToLower(rule.Name)]; exists {
		err := zerr.With(zerr.Wrap(ErrDuplicateKind, "target kind already registered"), "kind", rule.Name)
		if existing != rule.Name {
			err = zerr.With(err, "registered", existing)
		}
		return err
	}
	r.rules[rule.Name] = rule.clone()
	r.folded[strings.ToLower(rule.Name)] = rule.Name
	return nil
}

// Resolve builds the descriptor for kind under env.
// It returns ErrUnknownKind if kind was never registered.
func (r *Registry) Resolve(kind string, env EnvironmentInfo) (TargetDescriptor, error) {
	r.mu.RLock()
	rule, ok := r.rules[kind]
	minVersion := r.minVersion
	r.mu.RUnlock()

	if !ok {
		return TargetDescriptor{}, zerr.With(zerr.Wrap(ErrUnknownKind, "target kind not registered"), "kind", kind)
	}
	return NewTargetDescriptor(rule, env, minVersion)
}

// Rule returns a copy of the rule registered under kind.
func (r *Registry) Rule(kind string) (TargetKindRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[kind]
	if !ok {
		return TargetKindRule{}, false
	}
	return rule.clone(), true
}

// Kinds returns the registered kind names in lexical order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.rules))
	for name := range r.rules {
		kinds = append(kinds, name)
	}
	slices.Sort(kinds)
	return kinds
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// MinSettingsVersion returns the oldest settings version the registry resolves.
func (r *Registry) MinSettingsVersion() SettingsVersion {
	return r.minVersion
}
