package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/targets/internal/app"
	"go.trai.ch/targets/internal/core/domain"
	"go.trai.ch/targets/internal/core/ports"
	"go.trai.ch/targets/internal/core/ports/mocks"
	"go.trai.ch/targets/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type testHarness struct {
	app       *app.App
	loader    *mocks.MockConfigLoader
	envLoader *mocks.MockEnvDefaultsLoader
	store     *mocks.MockDescriptorStore
	logger    *mocks.MockLogger
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	h := &testHarness{
		loader:    mocks.NewMockConfigLoader(ctrl),
		envLoader: mocks.NewMockEnvDefaultsLoader(ctrl),
		store:     mocks.NewMockDescriptorStore(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	h.app = app.New(h.loader, h.envLoader, h.store, scheduler.NewScheduler(), h.logger).
		WithWorkingDir("/workspace/project")
	return h
}

func testRegistry(t *testing.T) *domain.Registry {
	t.Helper()
	reg := domain.NewRegistry()
	rules := []domain.TargetKindRule{
		{
			Name:            "Game",
			BinaryType:      domain.BinaryGame,
			SettingsVersion: domain.SettingsV2,
			Modules:         []string{"CoreGameplay"},
		},
		{
			Name:            "Editor",
			BinaryType:      domain.BinaryEditor,
			SettingsVersion: domain.SettingsV3,
			Modules:         []string{"CoreGameplay", "EditorTools", "CoreGameplay"},
		},
		{
			Name:            "Server",
			BinaryType:      domain.BinaryServer,
			SettingsVersion: domain.SettingsV4,
			Modules:         []string{"CoreGameplay", "Net"},
		},
	}
	for _, rule := range rules {
		require.NoError(t, reg.Register(rule))
	}
	return reg
}

func TestApp_Resolve_Text(t *testing.T) {
	h := newHarness(t)

	var recorded []domain.TargetDescriptor
	h.loader.EXPECT().Load("/workspace/project").Return(testRegistry(t), nil)
	h.envLoader.EXPECT().LoadDefaults(".env").Return(ports.EnvDefaults{}, nil)
	h.store.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(func(descs ...domain.TargetDescriptor) error {
		recorded = descs
		return nil
	})
	h.logger.EXPECT().Info(gomock.Any())

	var buf bytes.Buffer
	err := h.app.Resolve(context.Background(), &buf, []string{"Game", "Editor"}, app.ResolveOptions{
		HostPlatform: "Linux",
		Platform:     "win64",
		EnvFile:      ".env",
	})
	require.NoError(t, err)

	require.Len(t, recorded, 2)
	assert.Equal(t, "Game-Win64-Development", recorded[0].OutputName)
	assert.Equal(t, "Editor-Win64-Development", recorded[1].OutputName)

	g := goldie.New(t)
	g.Assert(t, "resolve_text", buf.Bytes())
}

type resolutionDoc struct {
	Environment domain.EnvironmentInfo `json:"environment"`
	Targets     []struct {
		domain.TargetDescriptor
		Fingerprint string `json:"fingerprint"`
	} `json:"targets"`
}

func resolveJSON(t *testing.T, h *testHarness, kinds []string, opts app.ResolveOptions) resolutionDoc {
	t.Helper()
	opts.Format = app.FormatJSON
	opts.NoManifest = true

	var buf bytes.Buffer
	require.NoError(t, h.app.Resolve(context.Background(), &buf, kinds, opts))

	var doc resolutionDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	return doc
}

func TestApp_Resolve_JSON(t *testing.T) {
	h := newHarness(t)
	reg := testRegistry(t)
	h.loader.EXPECT().Load(gomock.Any()).Return(reg, nil)
	h.envLoader.EXPECT().LoadDefaults("").Return(ports.EnvDefaults{}, nil)

	doc := resolveJSON(t, h, []string{"Server"}, app.ResolveOptions{
		HostPlatform:  "Linux",
		Platform:      "Linux",
		Configuration: "Shipping",
		Origin:        "Automation",
	})

	assert.Equal(t, domain.EnvironmentInfo{
		HostPlatform:   domain.PlatformLinux,
		TargetPlatform: domain.PlatformLinux,
		Configuration:  domain.ConfigurationShipping,
		Origin:         domain.OriginAutomation,
	}, doc.Environment)

	require.Len(t, doc.Targets, 1)
	got := doc.Targets[0]
	assert.Equal(t, "Server-Linux-Shipping", got.OutputName)
	assert.Equal(t, domain.SettingsV4, got.SettingsVersion)
	assert.Equal(t, []string{"CoreGameplay", "Net"}, got.Modules)

	want, err := reg.Resolve("Server", doc.Environment)
	require.NoError(t, err)
	assert.Equal(t, want.Fingerprint(), got.Fingerprint)
}

func TestApp_Resolve_EnvironmentLayering(t *testing.T) {
	tests := []struct {
		name     string
		opts     app.ResolveOptions
		defaults ports.EnvDefaults
		expected domain.EnvironmentInfo
	}{
		{
			name: "built-in defaults",
			opts: app.ResolveOptions{HostPlatform: "Mac"},
			expected: domain.EnvironmentInfo{
				HostPlatform:   domain.PlatformMac,
				TargetPlatform: domain.PlatformMac,
				Configuration:  domain.ConfigurationDevelopment,
				Origin:         domain.OriginCommandLine,
			},
		},
		{
			name: "env file fills unset fields",
			opts: app.ResolveOptions{HostPlatform: "Linux"},
			defaults: ports.EnvDefaults{
				TargetPlatform: "Android",
				Configuration:  "shipping",
				Origin:         "Editor",
			},
			expected: domain.EnvironmentInfo{
				HostPlatform:   domain.PlatformLinux,
				TargetPlatform: domain.PlatformAndroid,
				Configuration:  domain.ConfigurationShipping,
				Origin:         domain.OriginEditor,
			},
		},
		{
			name: "options override env file",
			opts: app.ResolveOptions{
				Platform:      "IOS",
				Configuration: "Debug",
			},
			defaults: ports.EnvDefaults{
				HostPlatform:   "Mac",
				TargetPlatform: "Android",
				Configuration:  "Shipping",
			},
			expected: domain.EnvironmentInfo{
				HostPlatform:   domain.PlatformMac,
				TargetPlatform: domain.PlatformIOS,
				Configuration:  domain.ConfigurationDebug,
				Origin:         domain.OriginCommandLine,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.loader.EXPECT().Load(gomock.Any()).Return(testRegistry(t), nil)
			h.envLoader.EXPECT().LoadDefaults(gomock.Any()).Return(tt.defaults, nil)

			doc := resolveJSON(t, h, []string{"Game"}, tt.opts)
			assert.Equal(t, tt.expected, doc.Environment)
			require.Len(t, doc.Targets, 1)
			assert.Equal(t,
				domain.OutputName("Game", tt.expected.TargetPlatform, tt.expected.Configuration),
				doc.Targets[0].OutputName)
		})
	}
}

func TestApp_Resolve_EditorOriginKeepsBinaryType(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any()).Return(testRegistry(t), nil)
	h.envLoader.EXPECT().LoadDefaults(gomock.Any()).Return(ports.EnvDefaults{}, nil)

	doc := resolveJSON(t, h, []string{"Game"}, app.ResolveOptions{HostPlatform: "Win64", Origin: "Editor"})
	require.Len(t, doc.Targets, 1)
	assert.Equal(t, domain.BinaryGame, doc.Targets[0].BinaryType)
}

func TestApp_Resolve_Errors(t *testing.T) {
	loadErr := errors.New("disk on fire")

	tests := []struct {
		name        string
		kinds       []string
		opts        app.ResolveOptions
		setup       func(h *testHarness, reg *domain.Registry)
		expectedErr []error
	}{
		{
			name:        "unsupported format",
			kinds:       []string{"Game"},
			opts:        app.ResolveOptions{Format: "yaml"},
			setup:       func(*testHarness, *domain.Registry) {},
			expectedErr: []error{domain.ErrUnsupportedOutputFormat},
		},
		{
			name:  "load failure",
			kinds: []string{"Game"},
			setup: func(h *testHarness, _ *domain.Registry) {
				h.loader.EXPECT().Load(gomock.Any()).Return(nil, loadErr)
			},
			expectedErr: []error{loadErr},
		},
		{
			name: "no targets",
			setup: func(h *testHarness, reg *domain.Registry) {
				h.loader.EXPECT().Load(gomock.Any()).Return(reg, nil)
			},
			expectedErr: []error{domain.ErrNoTargetsSpecified},
		},
		{
			name:  "env file failure",
			kinds: []string{"Game"},
			setup: func(h *testHarness, reg *domain.Registry) {
				h.loader.EXPECT().Load(gomock.Any()).Return(reg, nil)
				h.envLoader.EXPECT().LoadDefaults(gomock.Any()).Return(ports.EnvDefaults{}, domain.ErrEnvFileReadFailed)
			},
			expectedErr: []error{domain.ErrEnvFileReadFailed},
		},
		{
			name:  "invalid platform",
			kinds: []string{"Game"},
			opts:  app.ResolveOptions{Platform: "Dreamcast"},
			setup: func(h *testHarness, reg *domain.Registry) {
				h.loader.EXPECT().Load(gomock.Any()).Return(reg, nil)
				h.envLoader.EXPECT().LoadDefaults(gomock.Any()).Return(ports.EnvDefaults{}, nil)
			},
			expectedErr: []error{domain.ErrInvalidEnvironment},
		},
		{
			name:  "invalid configuration from env file",
			kinds: []string{"Game"},
			setup: func(h *testHarness, reg *domain.Registry) {
				h.loader.EXPECT().Load(gomock.Any()).Return(reg, nil)
				h.envLoader.EXPECT().LoadDefaults(gomock.Any()).
					Return(ports.EnvDefaults{Configuration: "Profile"}, nil)
			},
			expectedErr: []error{domain.ErrInvalidEnvironment},
		},
		{
			name:  "unknown kind",
			kinds: []string{"Game", "Client"},
			setup: func(h *testHarness, reg *domain.Registry) {
				h.loader.EXPECT().Load(gomock.Any()).Return(reg, nil)
				h.envLoader.EXPECT().LoadDefaults(gomock.Any()).Return(ports.EnvDefaults{}, nil)
			},
			expectedErr: []error{domain.ErrResolutionFailed, domain.ErrUnknownKind},
		},
		{
			name:  "store failure",
			kinds: []string{"Game"},
			setup: func(h *testHarness, reg *domain.Registry) {
				h.loader.EXPECT().Load(gomock.Any()).Return(reg, nil)
				h.envLoader.EXPECT().LoadDefaults(gomock.Any()).Return(ports.EnvDefaults{}, nil)
				h.store.EXPECT().Put(gomock.Any()).Return(domain.ErrStoreWriteFailed)
			},
			expectedErr: []error{domain.ErrStoreWriteFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.setup(h, testRegistry(t))

			var buf bytes.Buffer
			err := h.app.Resolve(context.Background(), &buf, tt.kinds, tt.opts)
			require.Error(t, err)
			for _, expected := range tt.expectedErr {
				require.ErrorIs(t, err, expected)
			}
			assert.Empty(t, buf.String())
		})
	}
}

func TestApp_List_Text(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load("/workspace/project").Return(testRegistry(t), nil)

	var buf bytes.Buffer
	require.NoError(t, h.app.List(context.Background(), &buf, ""))

	g := goldie.New(t)
	g.Assert(t, "list_text", buf.Bytes())
}

func TestApp_List_JSON(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any()).Return(testRegistry(t), nil)

	var buf bytes.Buffer
	require.NoError(t, h.app.List(context.Background(), &buf, app.FormatJSON))

	var entries []struct {
		Kind            string                 `json:"kind"`
		BinaryType      domain.BinaryType      `json:"binary_type"`
		SettingsVersion domain.SettingsVersion `json:"settings_version"`
		Modules         []string               `json:"modules"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "Editor", entries[0].Kind)
	assert.Equal(t, domain.SettingsV3, entries[0].SettingsVersion)
	assert.Equal(t, []string{"CoreGameplay", "EditorTools", "CoreGameplay"}, entries[0].Modules)
	assert.Equal(t, "Server", entries[2].Kind)
}

func TestApp_List_Errors(t *testing.T) {
	h := newHarness(t)

	err := h.app.List(context.Background(), &bytes.Buffer{}, "xml")
	require.ErrorIs(t, err, domain.ErrUnsupportedOutputFormat)

	h.loader.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrConfigNotFound)
	err = h.app.List(context.Background(), &bytes.Buffer{}, app.FormatText)
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestApp_Watch(t *testing.T) {
	h := newHarness(t)
	w := mocks.NewMockWatcher(gomock.NewController(t))
	h.app.WithWatcher(w)

	ctx := context.Background()
	batches := [][]string{
		{"/workspace/project/targets.yaml"},
		{"/workspace/project/.env", "/workspace/project/game.target.hcl"},
	}

	gomock.InOrder(
		h.loader.EXPECT().DeclarationDir("/workspace/project").Return("/workspace/project", nil),
		w.EXPECT().Start(ctx, "/workspace/project", "").Return(nil),
	)
	w.EXPECT().Changes().Return(slices.Values(batches))
	w.EXPECT().Stop().Return(nil)

	h.loader.EXPECT().Load("/workspace/project").Return(testRegistry(t), nil).Times(3)
	h.envLoader.EXPECT().LoadDefaults("").Return(ports.EnvDefaults{}, nil).Times(3)

	var infos []string
	h.logger.EXPECT().Info(gomock.Any()).Do(func(msg string) { infos = append(infos, msg) }).AnyTimes()

	var buf bytes.Buffer
	err := h.app.Watch(ctx, &buf, []string{"Game"}, app.ResolveOptions{
		HostPlatform: "Linux",
		NoManifest:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(buf.String(), "✓ Game-Linux-Development"))
	assert.Equal(t, []string{
		"watching /workspace/project",
		"targets.yaml changed, resolving again",
		".env, game.target.hcl changed, resolving again",
	}, infos)
}

func TestApp_Watch_LogsResolutionErrors(t *testing.T) {
	h := newHarness(t)
	w := mocks.NewMockWatcher(gomock.NewController(t))
	h.app.WithWatcher(w)

	h.loader.EXPECT().DeclarationDir(gomock.Any()).Return("/workspace/project", nil)
	w.EXPECT().Start(gomock.Any(), "/workspace/project", "").Return(nil)
	w.EXPECT().Changes().Return(slices.Values([][]string{{"/workspace/project/targets.yaml"}}))
	w.EXPECT().Stop().Return(nil)

	parseErr := zerr.Wrap(domain.ErrConfigParseFailed, "invalid YAML")
	gomock.InOrder(
		h.loader.EXPECT().Load("/workspace/project").Return(nil, parseErr),
		h.loader.EXPECT().Load("/workspace/project").Return(testRegistry(t), nil),
	)
	h.envLoader.EXPECT().LoadDefaults(gomock.Any()).Return(ports.EnvDefaults{}, nil)
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	var logged []error
	h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = append(logged, err) })

	var buf bytes.Buffer
	err := h.app.Watch(context.Background(), &buf, []string{"Game"}, app.ResolveOptions{
		HostPlatform: "Linux",
		NoManifest:   true,
	})
	require.NoError(t, err)

	require.Len(t, logged, 1)
	assert.ErrorIs(t, logged[0], domain.ErrConfigParseFailed)
	assert.Contains(t, buf.String(), "✓ Game-Linux-Development")
}

func TestApp_Watch_StopsWhenContextDone(t *testing.T) {
	h := newHarness(t)
	w := mocks.NewMockWatcher(gomock.NewController(t))
	h.app.WithWatcher(w)

	ctx, cancel := context.WithCancel(context.Background())

	h.loader.EXPECT().DeclarationDir(gomock.Any()).Return("/workspace/project", nil)
	w.EXPECT().Start(ctx, "/workspace/project", "").Return(nil)
	w.EXPECT().Stop().Return(nil)
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	// The initial resolution cancels the context; the pending batch is dropped.
	h.loader.EXPECT().Load("/workspace/project").DoAndReturn(func(string) (*domain.Registry, error) {
		cancel()
		return testRegistry(t), nil
	})
	h.envLoader.EXPECT().LoadDefaults(gomock.Any()).Return(ports.EnvDefaults{}, nil)
	h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, context.Canceled)
	})
	w.EXPECT().Changes().Return(slices.Values([][]string{{"/workspace/project/targets.yaml"}}))

	err := h.app.Watch(ctx, &bytes.Buffer{}, []string{"Game"}, app.ResolveOptions{NoManifest: true})
	require.NoError(t, err)
}

func TestApp_Watch_Errors(t *testing.T) {
	t.Run("no kinds", func(t *testing.T) {
		h := newHarness(t)
		h.app.WithWatcher(mocks.NewMockWatcher(gomock.NewController(t)))

		err := h.app.Watch(context.Background(), nil, nil, app.ResolveOptions{})
		require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
	})

	t.Run("unsupported format", func(t *testing.T) {
		h := newHarness(t)
		h.app.WithWatcher(mocks.NewMockWatcher(gomock.NewController(t)))

		err := h.app.Watch(context.Background(), nil, []string{"Game"}, app.ResolveOptions{Format: "xml"})
		require.ErrorIs(t, err, domain.ErrUnsupportedOutputFormat)
	})

	t.Run("no declarations", func(t *testing.T) {
		h := newHarness(t)
		h.app.WithWatcher(mocks.NewMockWatcher(gomock.NewController(t)))
		h.loader.EXPECT().DeclarationDir(gomock.Any()).
			Return("", zerr.Wrap(domain.ErrConfigNotFound, "no target declarations found"))

		err := h.app.Watch(context.Background(), nil, []string{"Game"}, app.ResolveOptions{})
		require.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	t.Run("start fails", func(t *testing.T) {
		h := newHarness(t)
		w := mocks.NewMockWatcher(gomock.NewController(t))
		h.app.WithWatcher(w)
		startErr := errors.New("too many open files")
		h.loader.EXPECT().DeclarationDir(gomock.Any()).Return("/workspace/project", nil)
		w.EXPECT().Start(gomock.Any(), "/workspace/project", gomock.Any()).Return(startErr)

		err := h.app.Watch(context.Background(), nil, []string{"Game"}, app.ResolveOptions{})
		require.ErrorIs(t, err, startErr)
	})
}

func TestApp_Watch_WatchesResolvedEnvFile(t *testing.T) {
	h := newHarness(t)
	w := mocks.NewMockWatcher(gomock.NewController(t))
	h.app.WithWatcher(w)

	envFile, err := filepath.Abs("ci.env")
	require.NoError(t, err)

	h.loader.EXPECT().DeclarationDir(gomock.Any()).Return("/workspace/project", nil)
	w.EXPECT().Start(gomock.Any(), "/workspace/project", envFile).Return(nil)
	w.EXPECT().Changes().Return(slices.Values([][]string(nil)))
	w.EXPECT().Stop().Return(nil)

	h.loader.EXPECT().Load("/workspace/project").Return(testRegistry(t), nil)
	h.envLoader.EXPECT().LoadDefaults("ci.env").Return(ports.EnvDefaults{}, nil)
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	err = h.app.Watch(context.Background(), &bytes.Buffer{}, []string{"Game"}, app.ResolveOptions{
		HostPlatform: "Linux",
		EnvFile:      "ci.env",
		NoManifest:   true,
	})
	require.NoError(t, err)
}
