package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-rangeslider/pkg/host"
	"github.com/goliatone/go-rangeslider/pkg/manifest"
	"github.com/goliatone/go-rangeslider/pkg/schemabind"
)

// paramFlags are the flags shared by every command that builds a property
// bag. Precedence: manifest defaults, then the schema, then --set.
type paramFlags struct {
	Manifest   string
	Schema     string
	SchemaName string
	Set        []string
}

func (f *paramFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Manifest, "manifest", "", "control manifest file (JSON or YAML); embedded manifest when empty")
	cmd.Flags().StringVar(&f.Schema, "schema", "", "OpenAPI document to bind the slider parameters from")
	cmd.Flags().StringVar(&f.SchemaName, "schema-name", "", "schema reference inside --schema, e.g. PriceFilter.range")
	cmd.Flags().StringArrayVar(&f.Set, "set", nil, "property override as Key=Value (repeatable)")
}

func (f *paramFlags) loadManifest() (manifest.Manifest, error) {
	if strings.TrimSpace(f.Manifest) == "" {
		return manifest.Default()
	}
	return manifest.LoadFile(f.Manifest)
}

// resolve builds the manifest and property bag. extra holds overrides from a
// config file and sits below --set.
func (f *paramFlags) resolve(ctx context.Context, extra map[string]any) (manifest.Manifest, host.Parameters, error) {
	m, err := f.loadManifest()
	if err != nil {
		return manifest.Manifest{}, nil, err
	}

	params, err := m.Parameters(nil)
	if err != nil {
		return manifest.Manifest{}, nil, err
	}

	if strings.TrimSpace(f.Schema) != "" {
		if strings.TrimSpace(f.SchemaName) == "" {
			return manifest.Manifest{}, nil, fmt.Errorf("--schema-name is required with --schema")
		}
		data, err := os.ReadFile(f.Schema)
		if err != nil {
			return manifest.Manifest{}, nil, fmt.Errorf("read schema: %w", err)
		}
		bound, err := schemabind.FromDocument(ctx, data, f.SchemaName)
		if err != nil {
			return manifest.Manifest{}, nil, err
		}
		for name, prop := range bound {
			params[name] = prop
		}
	}

	overrides, err := manifest.ParseOverrides(f.Set)
	if err != nil {
		return manifest.Manifest{}, nil, err
	}
	merged := make(map[string]any, len(extra)+len(overrides))
	for name, value := range extra {
		merged[name] = value
	}
	for name, value := range overrides {
		merged[name] = value
	}
	if len(merged) == 0 {
		return m, params, nil
	}

	explicit, err := m.Parameters(merged)
	if err != nil {
		return manifest.Manifest{}, nil, err
	}
	for name := range merged {
		if prop, ok := explicit[name]; ok {
			params[name] = prop
		} else {
			delete(params, name)
		}
	}
	return m, params, nil
}
