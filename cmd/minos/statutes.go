package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tribunal-hq/minos/pkg/statute/source"
)

var statutesFlags struct {
	format string
}

var statutesCmd = &cobra.Command{
	Use:   "statutes",
	Short: "Inspect registered statutes",
}

var statutesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List statutes from the configured source",
	Long: `Load statutes from the configured path and list them.

Examples:
  minos statutes list
  minos statutes list --format json`,
	RunE: runStatutesList,
}

func init() {
	rootCmd.AddCommand(statutesCmd)
	statutesCmd.AddCommand(statutesListCmd)

	statutesListCmd.Flags().StringVar(&statutesFlags.format, "format", "text", "output format: text, json")
}

func runStatutesList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	statutes, err := source.NewFileSource(cfg.Statutes.Path, logger).Load(cmd.Context())
	if err != nil {
		return err
	}

	if statutesFlags.format == "json" {
		out := make([]map[string]any, 0, len(statutes))
		for _, s := range statutes {
			out = append(out, map[string]any{
				"id":           s.ID,
				"title":        s.Title,
				"jurisdiction": s.Jurisdiction,
				"version":      s.Version,
				"effect":       string(s.Effect.Kind),
				"discretion":   s.HasDiscretion(),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVERSION\tJURISDICTION\tEFFECT\tDISCRETION\tTITLE")
	for _, s := range statutes {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%t\t%s\n",
			s.ID, s.Version, s.Jurisdiction, s.Effect.Kind, s.HasDiscretion(), s.Title)
	}
	return w.Flush()
}
