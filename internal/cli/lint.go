package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/httpclient"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/linkprober"
	"github.com/erinmikailstaples/Agent-Adventures/internal/usecase"
)

func lintCmd() *cobra.Command {
	var workspace string
	var external bool
	var format string

	c := &cobra.Command{
		Use:   "lint",
		Short: "Check guide documents for broken links and structure problems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			var opts []usecase.LintOption
			if external {
				prober := linkprober.New(httpclient.New(httpclient.DefaultConfig()))
				opts = append(opts, usecase.WithLinkProber(prober))
			}

			uc := usecase.NewLintGuide(ws.guide, opts...)
			report, err := uc.Execute(cmd.Context(), ws.guideRoot())
			if err != nil {
				return err
			}

			if err := printLintReport(os.Stdout, report, format); err != nil {
				return err
			}

			if n := report.Errors(); n > 0 {
				return fmt.Errorf("lint failed (%d error(s))", n)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().BoolVar(&external, "external", false, "Also probe external links over HTTP")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printLintReport(w io.Writer, report domain.LintReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "pretty", "":
		printPrettyLint(w, report)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyLint(w io.Writer, report domain.LintReport) {
	fmt.Fprintf(w, "Documents: %d\n", report.Documents)
	fmt.Fprintf(w, "Errors:    %d\n", report.Errors())
	fmt.Fprintf(w, "Warnings:  %d\n", report.Warnings())
	fmt.Fprintln(w)

	if len(report.Findings) == 0 {
		fmt.Fprintln(w, "Guide is clean.")
		return
	}

	for _, f := range report.Findings {
		mark := "✗"
		if f.Severity == domain.SeverityWarning {
			mark = "!"
		}
		path := f.Path
		if path == "" {
			path = "(guide)"
		}
		fmt.Fprintf(w, "%s [%s] %s: %s\n", mark, f.Check, path, f.Message)
	}
}
