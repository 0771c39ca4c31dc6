package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/linkgraph/internal/connector"
)

func (c *cli) expandCommand() *cobra.Command {
	var dialect string

	cmd := &cobra.Command{
		Use:     "expand <connector>...",
		Short:   "Split connector strings into subtypes, type, direction and multi marker",
		Example: `  linkgraph expand @hMVp+ Ss*b-`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := connector.ParseDialect(dialect)
			if err != nil {
				return err
			}
			for _, s := range args {
				tok, err := connector.Tokenize(d, s)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s, formatParts(tok.Parts()))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dialect, "dialect", "extended", "strict or extended")
	return cmd
}

func (c *cli) decodeCommand() *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:     "decode <disjunct>",
		Short:   "Split a disjunct string into its connectors",
		Example: `  linkgraph decode "Wd- @MVp+ Ss*s+"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toks, err := connector.DecodeDisjunct(args[0])
			if err != nil {
				return err
			}
			return printDisjunct(cmd.OutOrStdout(), toks, expand)
		},
	}
	cmd.Flags().BoolVar(&expand, "expand", false, "also expand each connector into its parts")
	return cmd
}

func printDisjunct(w io.Writer, toks []connector.DisjunctToken, expand bool) error {
	for _, tok := range toks {
		if !expand {
			fmt.Fprintln(w, tok)
			continue
		}
		t, err := tok.Expand()
		if err != nil {
			return fmt.Errorf("expand %s: %w", tok, err)
		}
		fmt.Fprintf(w, "%s\t%s\n", tok, formatParts(t.Parts()))
	}
	return nil
}

// formatParts renders parts as "kind:text" pairs.
func formatParts(parts []connector.Part) string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p.Kind) + ":" + p.Text
	}
	return strings.Join(out, " ")
}
