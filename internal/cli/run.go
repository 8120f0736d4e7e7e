package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/usecase"
)

func runCmd() *cobra.Command {
	var workspace string
	var agent string
	var profile string
	var task string
	var query string
	var model string
	var city string
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "run",
		Short: "Run an example agent against the configured backends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			agentPath, err := resolveAgentPath(ws, agent)
			if err != nil {
				return err
			}

			profileArg := resolveProfileArg(ws, profile)

			// The run needs the profile's backend settings up front to
			// build the generator and weather provider.
			loaded, err := ws.profiles.LoadProfile(profileArg)
			if err != nil {
				return err
			}
			deps := buildEngineDeps(loaded)

			var store = ws.store
			if noSave {
				store = nil
			}

			uc := usecase.NewRunAgent(ws.agents, ws.profiles, store, deps)

			artifact, err := uc.Execute(cmd.Context(), usecase.RunParams{
				AgentPath:     agentPath,
				ProfileName:   profileArg,
				Task:          task,
				Query:         query,
				ModelOverride: model,
				CityOverride:  city,
			})
			if err != nil {
				return err
			}

			if err := printRun(os.Stdout, artifact, format); err != nil {
				return err
			}

			if artifact.Failed() {
				return fmt.Errorf("run failed")
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&agent, "agent", "a", "", "Agent name or path (required)")
	c.Flags().StringVarP(&profile, "profile", "p", "", "Profile name or path (optional; defaults to workspace default profile)")
	c.Flags().StringVar(&task, "task", "", "Planning task for react agents")
	c.Flags().StringVar(&query, "query", "", "User query for llm agents")
	c.Flags().StringVar(&model, "model", "", "Override the model for this run")
	c.Flags().StringVar(&city, "city", "", "Override the city for this run")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the run artifact under reports/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	_ = c.MarkFlagRequired("agent")
	return c
}

func printRun(w io.Writer, artifact domain.RunArtifact, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(artifact)
	case "pretty", "":
		printPrettyRun(w, artifact)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRun(w io.Writer, a domain.RunArtifact) {
	total := a.FinishedAt.Sub(a.StartedAt)
	if a.StartedAt.IsZero() || a.FinishedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Agent:    %s [%s]\n", a.AgentName, a.AgentKind)
	fmt.Fprintf(w, "Profile:  %s\n", a.ProfileName)
	if a.Input != "" {
		fmt.Fprintf(w, "Input:    %s\n", a.Input)
	}
	fmt.Fprintf(w, "Started:  %s\n", a.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %s\n", total)
	if a.ID != "" {
		fmt.Fprintf(w, "Run ID:   %s\n", a.ID)
	}
	fmt.Fprintln(w)

	for _, s := range a.Steps {
		mark := stepMark(s.Status)
		fmt.Fprintf(w, "%s %s (%dms)\n", mark, s.Name, s.Duration.Milliseconds())
		if s.Detail != "" {
			fmt.Fprintf(w, "  %s\n", s.Detail)
		}
		if s.Error != nil {
			fmt.Fprintf(w, "  error: %s (%s)\n", s.Error.Message, s.Error.Kind)
		}
	}
	fmt.Fprintln(w)

	if a.Plan != nil {
		fmt.Fprintf(w, "Plan: %s, confidence %.0f%%, %d/%d steps\n\n",
			a.Plan.Status, a.Plan.Confidence*100, a.Plan.CurrentStep, len(a.Plan.Steps))
	}

	if a.Report != nil {
		fmt.Fprintln(w, a.Report.Body)
	}

	if a.Error != nil {
		fmt.Fprintf(w, "run error: %s (%s)\n", a.Error.Message, a.Error.Kind)
	}
}

func stepMark(s domain.StepStatus) string {
	switch s {
	case domain.StepOK:
		return "✓"
	case domain.StepFallback:
		return "~"
	case domain.StepSkipped:
		return "-"
	default:
		return "✗"
	}
}
