package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/fsworkspace"
	"github.com/erinmikailstaples/Agent-Adventures/internal/usecase"
)

func initCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a workspace with the guide, starter agents and profiles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("invalid directory: %w", err)
			}
			if err := os.MkdirAll(root, 0o755); err != nil {
				return err
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, force); err != nil {
				return err
			}

			fmt.Printf("Workspace initialized at %s\n", root)
			fmt.Println("Next steps:")
			fmt.Println("  adventures levels                 # browse the taxonomy")
			fmt.Println("  adventures doctor                 # check the Ollama backend")
			fmt.Println("  adventures run -a weather-reporter")
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite existing workspace files")
	return c
}
