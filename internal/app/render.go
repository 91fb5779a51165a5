package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/targets/internal/core/domain"
	"go.trai.ch/targets/internal/ui/output"
	"go.trai.ch/targets/internal/ui/style"
	"go.trai.ch/zerr"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

const labelWidth = 10

type renderFunc func(w io.Writer, env domain.EnvironmentInfo, descriptors []domain.TargetDescriptor) error

func rendererFor(format string) (renderFunc, error) {
	switch format {
	case "", FormatText:
		return renderText, nil
	case FormatJSON:
		return renderJSON, nil
	default:
		return nil, unsupportedFormat(format)
	}
}

func unsupportedFormat(format string) error {
	err := zerr.Wrap(domain.ErrUnsupportedOutputFormat, "unknown format "+format)
	return zerr.With(err, "supported", FormatText+", "+FormatJSON)
}

func stdoutIfNil(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func renderText(w io.Writer, env domain.EnvironmentInfo, descriptors []domain.TargetDescriptor) error {
	out := output.New(w)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s (host %s, origin %s)\n",
		output.Paint(out, "Resolving for", style.Hex(style.Muted)),
		env.TargetPlatform, env.Configuration, env.HostPlatform, env.Origin)

	for _, desc := range descriptors {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n",
			output.Paint(out, style.Check, style.Hex(style.Success)),
			output.Paint(out, desc.OutputName, style.Hex(style.Accent)))
		writeField(&b, "type", string(desc.BinaryType))
		writeField(&b, "settings", desc.SettingsVersion.String())
		writeField(&b, "modules", joinModules(desc.Modules))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "    %-*s%s\n", labelWidth, label, value)
}

func joinModules(modules []string) string {
	if len(modules) == 0 {
		return "(none)"
	}
	return strings.Join(modules, ", ")
}

type descriptorJSON struct {
	domain.TargetDescriptor
	Fingerprint string `json:"fingerprint"`
}

type resolutionJSON struct {
	Environment domain.EnvironmentInfo `json:"environment"`
	Targets     []descriptorJSON       `json:"targets"`
}

func renderJSON(w io.Writer, env domain.EnvironmentInfo, descriptors []domain.TargetDescriptor) error {
	doc := resolutionJSON{
		Environment: env,
		Targets:     make([]descriptorJSON, 0, len(descriptors)),
	}
	for _, desc := range descriptors {
		doc.Targets = append(doc.Targets, descriptorJSON{TargetDescriptor: desc, Fingerprint: desc.Fingerprint()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

type ruleJSON struct {
	Kind            string                 `json:"kind"`
	BinaryType      domain.BinaryType      `json:"binary_type"`
	SettingsVersion domain.SettingsVersion `json:"settings_version"`
	Modules         []string               `json:"modules"`
}

func renderRulesJSON(w io.Writer, rules []domain.TargetKindRule) error {
	doc := make([]ruleJSON, 0, len(rules))
	for _, rule := range rules {
		modules := rule.Modules
		if modules == nil {
			modules = []string{}
		}
		doc = append(doc, ruleJSON{
			Kind:            rule.Name,
			BinaryType:      rule.BinaryType,
			SettingsVersion: rule.SettingsVersion,
			Modules:         modules,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func renderRulesText(w io.Writer, rules []domain.TargetKindRule) error {
	out := output.New(w)

	kindWidth, typeWidth := 0, 0
	for _, rule := range rules {
		kindWidth = max(kindWidth, len(rule.Name))
		typeWidth = max(typeWidth, len(rule.BinaryType))
	}

	var b strings.Builder
	for _, rule := range rules {
		fmt.Fprintf(&b, "%s %s  %-*s  %s  %s\n",
			output.Paint(out, style.Dot, style.Hex(style.Accent)),
			output.Paint(out, fmt.Sprintf("%-*s", kindWidth, rule.Name), style.Hex(style.Accent)),
			typeWidth, rule.BinaryType,
			rule.SettingsVersion,
			joinModules(rule.Modules))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
