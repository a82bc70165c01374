package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ipo-exit-planner/internal/config"
	"ipo-exit-planner/internal/report"
)

func newJurisdictionsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jurisdictions",
		Short: "List the jurisdiction table, including config overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			table, err := cfg.Table()
			if err != nil {
				return err
			}

			if o.asYAML {
				// Same shape as the config file, so the output can be edited
				// and fed back via --config.
				doc := struct {
					Jurisdictions []config.JurisdictionConfig `yaml:"jurisdictions"`
				}{}
				for _, p := range table.All() {
					doc.Jurisdictions = append(doc.Jurisdictions, config.ProfileConfig(p))
				}
				raw, err := yaml.Marshal(doc)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), string(raw))
				return err
			}
			return render(cmd, o, report.JurisdictionsMarkdown(table.All()))
		},
	}
	cmd.Flags().BoolVar(&o.asYAML, "yaml", false, "Print as YAML config")
	cmd.Flags().BoolVar(&o.plain, "plain", false, "Print raw Markdown instead of rendering it")
	return cmd
}
