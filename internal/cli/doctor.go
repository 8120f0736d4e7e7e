package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/httpclient"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/ollama"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
	"github.com/erinmikailstaples/Agent-Adventures/internal/usecase"
)

func doctorCmd() *cobra.Command {
	var workspace string
	var profile string
	var model string
	var pull bool

	c := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the model backend is up and the model responds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			loaded, err := ws.profiles.LoadProfile(resolveProfileArg(ws, profile))
			if err != nil {
				return err
			}

			baseURL, _ := domain.Get(loaded.Vars, "ollama_base_url")
			client := ollama.New(baseURL, httpclient.New(httpclient.SlowConfig()))

			if model == "" {
				if m, ok := domain.Get(loaded.Vars, "model"); ok && m != "" {
					model = m
				} else {
					model = ws.cfg.Defaults.Model
				}
			}

			uc := usecase.NewDoctor(client, client, usecase.WithModelPuller(client))
			result, err := uc.Execute(cmd.Context(), usecase.DoctorParams{
				Model: model,
				Pull:  pull,
				OnPull: func(p ports.PullProgress) {
					if p.Total > 0 {
						fmt.Printf("\rpulling %s: %d%%", model, p.Completed*100/p.Total)
					}
				},
			})
			if err != nil {
				return err
			}

			for _, check := range result.Checks {
				mark := "✓"
				if !check.OK {
					mark = "✗"
				}
				fmt.Printf("%s %s — %s\n", mark, check.Name, check.Detail)
			}

			if !result.Healthy() {
				return fmt.Errorf("doctor found problems")
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&profile, "profile", "p", "", "Profile name or path (optional; defaults to workspace default profile)")
	c.Flags().StringVar(&model, "model", "", "Model to check (defaults to the profile's model)")
	c.Flags().BoolVar(&pull, "pull", false, "Pull the model when it is missing")
	return c
}
