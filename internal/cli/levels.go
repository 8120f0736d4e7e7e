package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

func levelsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "levels",
		Short: "List the agent-sophistication levels",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, l := range domain.Levels() {
				example := " "
				if l.HasExample {
					example = "*"
				}
				fmt.Printf("%s %-9s %-22s %s\n", example, fmt.Sprintf("Level %d", l.Number), l.Title, l.Summary)
			}
			fmt.Println()
			fmt.Println("* ships a runnable example (see `adventures agents list`)")
			return nil
		},
	}
	return c
}
