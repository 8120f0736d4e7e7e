package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

func showCmd() *cobra.Command {
	var workspace string
	var plain bool

	c := &cobra.Command{
		Use:   "show <level|doc-path>",
		Short: "Render a guide page (by level number, slug, or path)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			path, err := resolveGuidePage(ws, args[0])
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read guide page: %w", err)
			}

			if plain {
				fmt.Print(string(raw))
				return nil
			}

			rendered, err := glamour.Render(string(raw), "auto")
			if err != nil {
				// Fall back to the raw source if the renderer chokes.
				fmt.Print(string(raw))
				return nil
			}
			fmt.Print(rendered)
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().BoolVar(&plain, "plain", false, "Print raw Markdown without styling")
	return c
}

// resolveGuidePage maps a level number, level slug, or guide-relative path
// to a Markdown file under the guide root.
func resolveGuidePage(ws *workspaceCtx, arg string) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		level, ok := domain.LevelByNumber(n)
		if !ok {
			return "", fmt.Errorf("no level %d (range is -1..7)", n)
		}
		return filepath.Join(ws.guideRoot(), level.Dir, "README.md"), nil
	}

	if level, ok := domain.LevelBySlug(arg); ok {
		return filepath.Join(ws.guideRoot(), level.Dir, "README.md"), nil
	}

	p := filepath.Join(ws.guideRoot(), filepath.FromSlash(arg))
	if fileExists(p) {
		return p, nil
	}
	if fileExists(filepath.Join(p, "README.md")) {
		return filepath.Join(p, "README.md"), nil
	}
	return "", fmt.Errorf("guide page %q not found", arg)
}
