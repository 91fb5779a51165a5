package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/targets/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestNewTargetDescriptor(t *testing.T) {
	env := validEnv()

	tests := []struct {
		name        string
		rule        domain.TargetKindRule
		want        domain.TargetDescriptor
		expectedErr error
		wantField   string
	}{
		{
			name: "passes rule through",
			rule: domain.TargetKindRule{
				Name:            "Game",
				BinaryType:      domain.BinaryGame,
				SettingsVersion: domain.SettingsV2,
				Modules:         []string{"CoreGameplay"},
			},
			want: domain.TargetDescriptor{
				Kind:            "Game",
				BinaryType:      domain.BinaryGame,
				SettingsVersion: domain.SettingsV2,
				Modules:         []string{"CoreGameplay"},
				OutputName:      "Game-Win64-Development",
			},
		},
		{
			name: "dedupes modules keeping first-seen order",
			rule: domain.TargetKindRule{
				Name:            "Server",
				BinaryType:      domain.BinaryServer,
				SettingsVersion: domain.SettingsV3,
				Modules:         []string{"Net", "Core", "Net", "Ai", "Core"},
			},
			want: domain.TargetDescriptor{
				Kind:            "Server",
				BinaryType:      domain.BinaryServer,
				SettingsVersion: domain.SettingsV3,
				Modules:         []string{"Net", "Core", "Ai"},
				OutputName:      "Server-Win64-Development",
			},
		},
		{
			name: "empty module list",
			rule: domain.TargetKindRule{
				Name:            "Hollow",
				BinaryType:      domain.BinaryGame,
				SettingsVersion: domain.SettingsV2,
			},
			expectedErr: domain.ErrEmptyModuleList,
			wantField:   "modules",
		},
		{
			name: "settings version below minimum",
			rule: domain.TargetKindRule{
				Name:            "Legacy",
				BinaryType:      domain.BinaryGame,
				SettingsVersion: domain.SettingsV1,
				Modules:         []string{"CoreGameplay"},
			},
			expectedErr: domain.ErrUnsupportedSettingsVersion,
			wantField:   "settings_version",
		},
		{
			name: "settings version past latest",
			rule: domain.TargetKindRule{
				Name:            "Future",
				BinaryType:      domain.BinaryGame,
				SettingsVersion: domain.SettingsLatest + 5,
				Modules:         []string{"CoreGameplay"},
			},
			expectedErr: domain.ErrInvalidSettingsVersion,
			wantField:   "settings_version",
		},
		{
			name: "unset settings version",
			rule: domain.TargetKindRule{
				Name:       "Unset",
				BinaryType: domain.BinaryGame,
				Modules:    []string{"CoreGameplay"},
			},
			expectedErr: domain.ErrUnsupportedSettingsVersion,
			wantField:   "settings_version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NewTargetDescriptor(tt.rule, env, domain.MinSupportedSettingsVersion)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)

				var zErr *zerr.Error
				require.True(t, errors.As(err, &zErr))
				assert.Equal(t, tt.rule.Name, zErr.Metadata()["kind"])
				assert.Equal(t, tt.wantField, zErr.Metadata()["field"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTargetDescriptor_DoesNotAliasRule(t *testing.T) {
	rule := domain.TargetKindRule{
		Name:            "Game",
		BinaryType:      domain.BinaryGame,
		SettingsVersion: domain.SettingsV2,
		Modules:         []string{"CoreGameplay"},
	}

	d, err := domain.NewTargetDescriptor(rule, validEnv(), domain.SettingsV2)
	require.NoError(t, err)

	d.Modules[0] = "Mutated"
	assert.Equal(t, "CoreGameplay", rule.Modules[0])
}

func TestNewTargetDescriptor_InvalidEnvironment(t *testing.T) {
	rule := domain.TargetKindRule{
		Name:            "Game",
		BinaryType:      domain.BinaryGame,
		SettingsVersion: domain.SettingsV2,
		Modules:         []string{"CoreGameplay"},
	}
	env := validEnv()
	env.Configuration = "Release"

	_, err := domain.NewTargetDescriptor(rule, env, domain.SettingsV2)
	require.ErrorIs(t, err, domain.ErrInvalidEnvironment)
}

func TestOutputName_Unique(t *testing.T) {
	kinds := []string{"Game", "Editor", "Game-Win64", "Game-Win64-Debug", "Client_2"}
	seen := make(map[string][3]string)

	for _, kind := range kinds {
		for _, platform := range domain.Platforms {
			for _, configuration := range domain.Configurations {
				name := domain.OutputName(kind, platform, configuration)
				triple := [3]string{kind, string(platform), string(configuration)}
				if prev, ok := seen[name]; ok {
					t.Fatalf("output name %q produced by %v and %v", name, prev, triple)
				}
				seen[name] = triple
			}
		}
	}
}

func TestTargetDescriptor_Fingerprint(t *testing.T) {
	base := domain.TargetDescriptor{
		Kind:            "Game",
		BinaryType:      domain.BinaryGame,
		SettingsVersion: domain.SettingsV2,
		Modules:         []string{"CoreGameplay"},
		OutputName:      "Game-Win64-Development",
	}

	same := base
	same.Modules = []string{"CoreGameplay"}
	assert.Equal(t, base.Fingerprint(), same.Fingerprint())

	split := base
	split.Modules = []string{"Core", "Gameplay"}
	assert.NotEqual(t, base.Fingerprint(), split.Fingerprint())

	editor := base
	editor.BinaryType = domain.BinaryEditor
	assert.NotEqual(t, base.Fingerprint(), editor.Fingerprint())
}

func TestTargetDescriptor_JSON(t *testing.T) {
	d := domain.TargetDescriptor{
		Kind:            "Editor",
		BinaryType:      domain.BinaryEditor,
		SettingsVersion: domain.SettingsV2,
		Modules:         []string{"CoreGameplay"},
		OutputName:      "Editor-Win64-Development",
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "Editor",
		"binary_type": "Editor",
		"settings_version": "V2",
		"modules": ["CoreGameplay"],
		"output_name": "Editor-Win64-Development"
	}`, string(data))

	var decoded domain.TargetDescriptor
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, d, decoded)
}

func TestParseSettingsVersion(t *testing.T) {
	v, err := domain.ParseSettingsVersion("v3")
	require.NoError(t, err)
	assert.Equal(t, domain.SettingsV3, v)

	v, err = domain.ParseSettingsVersion("Latest")
	require.NoError(t, err)
	assert.Equal(t, domain.SettingsLatest, v)

	_, err = domain.ParseSettingsVersion("V9")
	require.ErrorIs(t, err, domain.ErrInvalidSettingsVersion)

	assert.Less(t, domain.SettingsV1, domain.SettingsV2)
	assert.Equal(t, "Unknown", domain.SettingsVersion(0).String())
}

func TestParseBinaryType(t *testing.T) {
	b, err := domain.ParseBinaryType("program")
	require.NoError(t, err)
	assert.Equal(t, domain.BinaryProgram, b)

	_, err = domain.ParseBinaryType("Library")
	require.ErrorIs(t, err, domain.ErrInvalidBinaryType)
}
