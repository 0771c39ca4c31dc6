package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/linkgraph/internal/export"
	"github.com/dusk-indust/linkgraph/internal/linkage"
	"github.com/dusk-indust/linkgraph/internal/parse"
)

func (c *cli) diagramCommand() *cobra.Command {
	var (
		mode     string
		language string
		count    int
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "diagram <phrase>",
		Short: "Draw the linkages of a phrase as Mermaid, DOT or SVG",
		Example: `  linkgraph diagram "the dog barks"
  linkgraph diagram --format svg -o dog.svg "the dog barks"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := linkage.ParseMode(mode)
			if err != nil {
				return err
			}
			policy, dicts, err := c.newPolicy()
			if err != nil {
				return err
			}
			defer dicts.Close()

			res, err := policy.Parse(cmd.Context(), parse.Request{
				Phrase:   args[0],
				Language: language,
				Mode:     m,
				Count:    count,
			})
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "mermaid":
				diagrams, err := export.Mermaid(res)
				if err != nil {
					return err
				}
				data = []byte(strings.Join(diagrams, "\n"))
			case "dot", "svg":
				dot, err := export.DOT(res)
				if err != nil {
					return err
				}
				data = []byte(dot)
				if format == "svg" {
					if data, err = export.RenderSVG(cmd.Context(), dot); err != nil {
						return err
					}
				}
			default:
				return fmt.Errorf("unknown format %q (want mermaid, dot or svg)", format)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("wrote diagram", "path", output, "linkages", len(res.Views))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "bonds", "output mode: full, disjuncts, sections or bonds")
	cmd.Flags().StringVarP(&language, "language", "l", "", "dictionary language (default: the configured dictionary)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "linkages to draw (default: 4)")
	cmd.Flags().StringVar(&format, "format", "mermaid", "mermaid, dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
