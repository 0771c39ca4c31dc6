package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/linkgraph/internal/export"
	"github.com/dusk-indust/linkgraph/internal/graph"
	"github.com/dusk-indust/linkgraph/internal/linkage"
	"github.com/dusk-indust/linkgraph/internal/parse"
)

type parseOptions struct {
	mode      string
	language  string
	count     int
	minimal   bool
	aggregate bool
	store     bool
	file      string
}

func (c *cli) parseCommand() *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse [phrase...]",
		Short: "Parse phrases and print their linkages as JSON",
		Long: `Parse each phrase and print one JSON document per phrase.

Phrases come from the arguments or, with --file, one per line from a file.
Several phrases are parsed concurrently, bounded by the configured
concurrency. A failed phrase is reported and the others still print.`,
		Example: `  linkgraph parse "the dog barks"
  linkgraph parse --mode disjuncts --aggregate "this is a test"
  linkgraph parse --file phrases.txt --mode bonds --store`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "full", "output mode: full, disjuncts, sections or bonds")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "dictionary language (default: the configured dictionary)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "linkages wanted per phrase (default: 4)")
	cmd.Flags().BoolVar(&opts.minimal, "minimal", false, "drop disjuncts and link instances from full graphs")
	cmd.Flags().BoolVar(&opts.aggregate, "aggregate", false, "fold disjuncts into counts (disjuncts mode only)")
	cmd.Flags().BoolVar(&opts.store, "store", false, "write results into the configured graph store")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read phrases from a file, one per line")
	return cmd
}

func (c *cli) runParse(cmd *cobra.Command, args []string, opts parseOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	phrases := args
	if opts.file != "" {
		fromFile, err := readPhrases(opts.file)
		if err != nil {
			return err
		}
		phrases = append(phrases, fromFile...)
	}
	if len(phrases) == 0 {
		return fmt.Errorf("no phrases given")
	}

	mode, err := linkage.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	policy, dicts, err := c.newPolicy()
	if err != nil {
		return err
	}
	defer dicts.Close()

	var emitter *graph.Emitter
	if opts.store {
		store, err := c.openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		emitter = graph.NewEmitter(store, c.emitOptions()...)
	}

	reqs := make([]parse.Request, len(phrases))
	for i, p := range phrases {
		reqs[i] = parse.Request{
			Phrase:    p,
			Language:  opts.language,
			Mode:      mode,
			Minimal:   opts.minimal || c.cfg.Minimal,
			Count:     opts.count,
			Aggregate: opts.aggregate,
		}
	}

	prog := newProgress(logger)
	results, err := policy.ParseBatch(ctx, reqs, c.cfg.Concurrency)
	if err != nil {
		return err
	}

	var errs []error
	for _, br := range results {
		phrase := reqs[br.Index].Phrase
		if br.Err != nil {
			logger.Error("parse failed", "phrase", phrase, "err", br.Err)
			errs = append(errs, fmt.Errorf("parse %q: %w", phrase, br.Err))
			continue
		}
		if err := emit(ctx, emitter, br.Result); err != nil {
			return err
		}
		if err := writeJSON(cmd.OutOrStdout(), br.Result); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Parsed %d of %d phrases", len(phrases)-len(errs), len(phrases)))
	return errors.Join(errs...)
}

func emit(ctx context.Context, emitter *graph.Emitter, res *parse.Result) error {
	if emitter == nil {
		return nil
	}
	refs, err := emitter.Emit(ctx, res)
	if err != nil {
		return fmt.Errorf("store %q: %w", res.Phrase, err)
	}
	loggerFromContext(ctx).Debug("stored", "phrase", res.Phrase, "atoms", len(refs))
	return nil
}

func writeJSON(w io.Writer, res *parse.Result) error {
	data, err := export.JSON(res)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// readPhrases returns the non-blank lines of path.
func readPhrases(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, scanner.Err()
}
