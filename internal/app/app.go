// Package app implements the application layer for targets.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.trai.ch/targets/internal/core/domain"
	"go.trai.ch/targets/internal/core/ports"
	"go.trai.ch/targets/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	envLoader    ports.EnvDefaultsLoader
	store        ports.DescriptorStore
	scheduler    *scheduler.Scheduler
	logger       ports.Logger
	watcher      ports.Watcher
	cwd          string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	envLoader ports.EnvDefaultsLoader,
	store ports.DescriptorStore,
	sched *scheduler.Scheduler,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		envLoader:    envLoader,
		store:        store,
		scheduler:    sched,
		logger:       log,
		cwd:          ".",
	}
}

// WithWorkingDir sets the directory declaration discovery starts from.
func (a *App) WithWorkingDir(dir string) *App {
	a.cwd = dir
	return a
}

// WithWatcher sets the watcher used by Watch.
func (a *App) WithWatcher(w ports.Watcher) *App {
	a.watcher = w
	return a
}

// ResolveOptions configures the Resolve method.
// Empty environment fields fall back to the env file, then to built-in defaults.
type ResolveOptions struct {
	Platform      string
	HostPlatform  string
	Configuration string
	Origin        string
	EnvFile       string
	Format        string
	Parallelism   int
	NoManifest    bool
}

// Resolve resolves the requested kinds against one environment, records the
// descriptors in the manifest and renders them to out. A nil writer means stdout.
func (a *App) Resolve(ctx context.Context, out io.Writer, kinds []string, opts ResolveOptions) error {
	render, err := rendererFor(opts.Format)
	if err != nil {
		return err
	}

	// 1. Load the declarations
	reg, err := a.configLoader.Load(a.cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load target declarations")
	}

	// 2. Validate targets
	if len(kinds) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	// 3. Build the environment
	env, err := a.environment(opts)
	if err != nil {
		return err
	}

	// 4. Resolve
	descriptors, err := a.scheduler.Run(ctx, reg, kinds, env, opts.Parallelism)
	if err != nil {
		return errors.Join(domain.ErrResolutionFailed, err)
	}

	// 5. Record
	if !opts.NoManifest {
		if err := a.store.Put(descriptors...); err != nil {
			return zerr.Wrap(err, "failed to record descriptors")
		}
		a.logger.Info(fmt.Sprintf("recorded %d descriptors in %s", len(descriptors), domain.DefaultManifestPath()))
	}

	// 6. Render
	return render(stdoutIfNil(out), env, descriptors)
}

// Watch resolves the requested kinds, then resolves them again whenever a
// declaration file or the env file changes. Resolution failures are logged
// and watching continues. Watch returns nil once ctx is done.
func (a *App) Watch(ctx context.Context, out io.Writer, kinds []string, opts ResolveOptions) error {
	if a.watcher == nil {
		return zerr.New("no watcher configured")
	}
	if len(kinds) == 0 {
		return domain.ErrNoTargetsSpecified
	}
	if _, err := rendererFor(opts.Format); err != nil {
		return err
	}

	dir, err := a.configLoader.DeclarationDir(a.cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to locate target declarations")
	}

	envFile, err := envFilePath(opts.EnvFile)
	if err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, dir, envFile); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Error(zerr.Wrap(err, "failed to stop watcher"))
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %s", dir))
	a.resolveAndLog(ctx, out, kinds, opts)

	for paths := range a.watcher.Changes() {
		if ctx.Err() != nil {
			break
		}
		a.logger.Info(fmt.Sprintf("%s changed, resolving again", strings.Join(relativeTo(dir, paths), ", ")))
		a.resolveAndLog(ctx, out, kinds, opts)
	}

	return nil
}

func (a *App) resolveAndLog(ctx context.Context, out io.Writer, kinds []string, opts ResolveOptions) {
	if err := a.Resolve(ctx, out, kinds, opts); err != nil {
		a.logger.Error(err)
	}
}

// envFilePath returns the absolute path of the env file LoadDefaults reads.
func envFilePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve env file path"), "file", path)
	}
	return abs, nil
}

func relativeTo(dir string, paths []string) []string {
	rel := make([]string, len(paths))
	for i, p := range paths {
		if r, err := filepath.Rel(dir, p); err == nil {
			rel[i] = r
			continue
		}
		rel[i] = p
	}
	return rel
}

// List prints every declared kind in the given format. A nil writer means stdout.
func (a *App) List(_ context.Context, out io.Writer, format string) error {
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatJSON {
		return unsupportedFormat(format)
	}

	reg, err := a.configLoader.Load(a.cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load target declarations")
	}

	rules := make([]domain.TargetKindRule, 0, reg.Len())
	for _, kind := range reg.Kinds() {
		if rule, ok := reg.Rule(kind); ok {
			rules = append(rules, rule)
		}
	}

	if format == FormatJSON {
		return renderRulesJSON(stdoutIfNil(out), rules)
	}
	return renderRulesText(stdoutIfNil(out), rules)
}

// environment layers explicit options over the env file over built-in defaults.
func (a *App) environment(opts ResolveOptions) (domain.EnvironmentInfo, error) {
	defaults, err := a.envLoader.LoadDefaults(opts.EnvFile)
	if err != nil {
		return domain.EnvironmentInfo{}, err
	}

	env := domain.EnvironmentInfo{
		HostPlatform:  domain.HostPlatform(),
		Configuration: domain.ConfigurationDevelopment,
		Origin:        domain.OriginCommandLine,
	}

	if v := firstNonEmpty(opts.HostPlatform, defaults.HostPlatform); v != "" {
		if env.HostPlatform, err = domain.ParsePlatform(v); err != nil {
			return domain.EnvironmentInfo{}, zerr.With(err, "field", "host_platform")
		}
	}

	env.TargetPlatform = env.HostPlatform
	if v := firstNonEmpty(opts.Platform, defaults.TargetPlatform); v != "" {
		if env.TargetPlatform, err = domain.ParsePlatform(v); err != nil {
			return domain.EnvironmentInfo{}, zerr.With(err, "field", "target_platform")
		}
	}

	if v := firstNonEmpty(opts.Configuration, defaults.Configuration); v != "" {
		if env.Configuration, err = domain.ParseConfiguration(v); err != nil {
			return domain.EnvironmentInfo{}, err
		}
	}

	if v := firstNonEmpty(opts.Origin, defaults.Origin); v != "" {
		if env.Origin, err = domain.ParseOrigin(v); err != nil {
			return domain.EnvironmentInfo{}, err
		}
	}

	return env, env.Validate()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
