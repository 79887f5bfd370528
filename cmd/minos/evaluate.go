package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tribunal-hq/minos/pkg/audit"
	"tribunal-hq/minos/pkg/engine"
	"tribunal-hq/minos/pkg/facts"
	"tribunal-hq/minos/pkg/reasoning"
	"tribunal-hq/minos/pkg/statute/registry"
	"tribunal-hq/minos/pkg/statute/source"
)

var evaluateFlags struct {
	subject       string
	factsIn       []string
	relationships []string
	actor         string
	all           bool
	format        string
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [statute-id]",
	Short: "Evaluate statutes against a fact context",
	Long: `Evaluate one statute (or all registered statutes) against a fact
context built from command-line flags. Every evaluation is appended to
the audit ledger.

Facts are typed key=value pairs: integers and booleans are detected,
everything else is a string. Relationships are type=target pairs; the
target may be omitted.

Examples:
  # Evaluate one statute
  minos evaluate minpo-709 --subject subject-a --fact caused_harm=true --fact negligence=true

  # Evaluate every registered statute
  minos evaluate --all --subject subject-a --fact age=17 --rel guardian_of=subject-b

  # Machine-readable output
  minos evaluate minpo-709 --subject subject-a --fact caused_harm=true --fact intent=true --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evaluateFlags.subject, "subject", "", "subject entity id (required)")
	evaluateCmd.Flags().StringArrayVar(&evaluateFlags.factsIn, "fact", nil, "fact as key=value (repeatable)")
	evaluateCmd.Flags().StringArrayVar(&evaluateFlags.relationships, "rel", nil, "relationship as type=target (repeatable)")
	evaluateCmd.Flags().StringVar(&evaluateFlags.actor, "actor", "", "acting user id (defaults to the system actor)")
	evaluateCmd.Flags().BoolVar(&evaluateFlags.all, "all", false, "evaluate every registered statute")
	evaluateCmd.Flags().StringVar(&evaluateFlags.format, "format", "text", "output format: text, json")

	evaluateCmd.MarkFlagRequired("subject")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if !evaluateFlags.all && len(args) == 0 {
		return fmt.Errorf("provide a statute id or use --all")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	rec, store, err := openRecorder(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	reasoner := reasoning.NewReasoner(registry.New(logger), rec, nil, logger)
	if _, err := reasoner.LoadFrom(ctx, source.NewFileSource(cfg.Statutes.Path, logger), audit.SystemActor()); err != nil {
		return err
	}

	fc, err := buildFactContext()
	if err != nil {
		return err
	}

	actor := audit.SystemActor()
	if evaluateFlags.actor != "" {
		actor = audit.UserActor(evaluateFlags.actor)
	}

	var findings []reasoning.Finding
	if evaluateFlags.all {
		findings, err = reasoner.EvaluateAll(ctx, fc, actor)
	} else {
		var finding *reasoning.Finding
		finding, err = reasoner.Evaluate(ctx, args[0], fc, actor)
		if finding != nil {
			findings = []reasoning.Finding{*finding}
		}
	}
	if err != nil {
		return err
	}

	return printFindings(findings)
}

// buildFactContext assembles the fact context from --fact and --rel flags.
func buildFactContext() (*facts.Context, error) {
	b := facts.NewContextBuilder(evaluateFlags.subject)

	for _, raw := range evaluateFlags.factsIn {
		key, val, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid fact %q, want key=value", raw)
		}
		b = b.WithValue(key, parseFactValue(val))
	}

	for _, raw := range evaluateFlags.relationships {
		relType, target, _ := strings.Cut(raw, "=")
		if relType == "" {
			return nil, fmt.Errorf("invalid relationship %q, want type=target", raw)
		}
		b = b.WithRelationship(relType, target)
	}

	return b.Build(), nil
}

// parseFactValue types a flag value: integer, then boolean, then string.
func parseFactValue(s string) facts.Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return facts.Int(n)
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return facts.Bool(v)
	}
	return facts.String(s)
}

func printFindings(findings []reasoning.Finding) error {
	if evaluateFlags.format == "json" {
		out := make([]map[string]any, 0, len(findings))
		for _, f := range findings {
			out = append(out, map[string]any{
				"statute_id": f.Statute.ID,
				"title":      f.Statute.Title,
				"decision":   f.Decision,
				"record_id":  f.Record.ID,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, f := range findings {
		fmt.Printf("%s (%s)\n", f.Statute.ID, f.Statute.Title)
		switch f.Decision.Kind {
		case engine.DecisionDeterministic:
			if f.Decision.Satisfied {
				fmt.Printf("  decision: satisfied, effect applies: %s %s\n",
					f.Statute.Effect.Kind, f.Statute.Effect.Description)
			} else {
				fmt.Println("  decision: not satisfied")
			}
		case engine.DecisionRequiresDiscretion:
			fmt.Printf("  decision: requires discretion: %s\n", f.Decision.DiscretionIssue)
		case engine.DecisionError:
			fmt.Printf("  decision: evaluation error, missing fact %q\n", f.Decision.MissingAttribute)
		}
		fmt.Printf("  audit record: %s\n", f.Record.ID)
	}
	return nil
}
