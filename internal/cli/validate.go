package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erinmikailstaples/Agent-Adventures/internal/usecase"
)

func validateCmd() *cobra.Command {
	var workspace string
	var agent string
	var profile string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate an agent and profile pair (no backend calls)",
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

			uc := usecase.NewValidateAgent(ws.agents, ws.profiles)
			if err := uc.Execute(cmd.Context(), agentPath, profileArg); err != nil {
				return err
			}

			fmt.Println("OK")
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&agent, "agent", "a", "", "Agent name or path (required)")
	c.Flags().StringVarP(&profile, "profile", "p", "", "Profile name or path (optional; defaults to workspace default profile)")

	_ = c.MarkFlagRequired("agent")
	return c
}
