package main

import (
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type manifestReport struct {
	Control    string         `yaml:"control"`
	Version    string         `yaml:"version,omitempty"`
	Parameters map[string]any `yaml:"parameters"`
	Outputs    []string       `yaml:"outputs"`
}

func manifestCmd() *cobra.Command {
	var params paramFlags

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the effective property bag as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, bag, err := params.resolve(cmd.Context(), nil)
			if err != nil {
				return err
			}
			report := manifestReport{
				Control:    m.ID(),
				Version:    m.Version,
				Parameters: make(map[string]any, len(bag)),
			}
			for name, prop := range bag {
				report.Parameters[name] = prop.Raw
			}
			for _, prop := range m.Outputs() {
				report.Outputs = append(report.Outputs, prop.Name)
			}
			sort.Strings(report.Outputs)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	params.register(cmd)
	return cmd
}
