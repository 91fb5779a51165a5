package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/targets/internal/core/domain"
	"go.trai.ch/zerr"
)

var projectSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "project"}},
}

// loadHCLFile decodes the target blocks of a *.target.hcl file.
// Target bodies may reference the file's project attribute as the variable `project`.
func loadHCLFile(path string) ([]domain.TargetKindRule, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, hclError(path, diags)
	}

	evalCtx, diags := projectContext(file.Body)
	if diags.HasErrors() {
		return nil, hclError(path, diags)
	}

	var decoded HCLFile
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &decoded); diags.HasErrors() {
		return nil, hclError(path, diags)
	}

	rules := make([]domain.TargetKindRule, 0, len(decoded.Targets))
	for _, block := range decoded.Targets {
		rule, err := buildRule(block.Name, block.Type, block.SettingsVersion, block.Modules)
		if err != nil {
			return nil, zerr.With(err, "file", path)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// projectContext evaluates the top-level project attribute, if any, and exposes it as a variable.
func projectContext(body hcl.Body) (*hcl.EvalContext, hcl.Diagnostics) {
	content, _, diags := body.PartialContent(projectSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	ctx := &hcl.EvalContext{Variables: map[string]cty.Value{}}
	attr, ok := content.Attributes["project"]
	if !ok {
		return ctx, nil
	}

	var project string
	if diags := gohcl.DecodeExpression(attr.Expr, nil, &project); diags.HasErrors() {
		return nil, diags
	}
	ctx.Variables["project"] = cty.StringVal(project)
	return ctx, nil
}

func hclError(path string, diags hcl.Diagnostics) error {
	err := zerr.Wrap(domain.ErrConfigParseFailed, "invalid HCL")
	err = zerr.With(err, "file", path)
	return zerr.With(err, "reason", diags.Error())
}
