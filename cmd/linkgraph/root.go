package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dusk-indust/linkgraph/internal/config"
	"github.com/dusk-indust/linkgraph/internal/graph"
	"github.com/dusk-indust/linkgraph/internal/parse"
	"github.com/dusk-indust/linkgraph/internal/replay"
)

var errNoCorpus = errors.New("no corpus configured: set corpus in linkgraph.yml or pass --corpus")

// cli holds state shared by all commands. cfg and logger are set by the
// root command's pre-run hook.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	verbose   bool
	configDir string
	corpora   []string

	cfg    *config.ProjectConfig
	logger *log.Logger
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{stdout: stdout, stderr: stderr}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "linkgraph",
		Short:         "linkgraph turns link grammar parses into graph structures",
		Long:          `linkgraph drives a link grammar parser over phrases and converts its linkages into instance graphs, disjuncts, sections and bonds, for printing, diagramming or writing into a graph store.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.cfg = cfg

			level := log.InfoLevel
			if cfg.LogLevel != "" {
				if level, err = log.ParseLevel(cfg.LogLevel); err != nil {
					return fmt.Errorf("load config: %w", err)
				}
			}
			if c.verbose {
				level = log.DebugLevel
			}
			c.logger = newLogger(c.stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), c.logger))
			return nil
		},
	}

	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configDir, "config", ".", "directory holding linkgraph.yml, linkgraph.yaml or linkgraph.toml")
	root.PersistentFlags().StringSliceVar(&c.corpora, "corpus", nil, "replay corpus files (overrides the config)")

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.expandCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.serveMCPCommand())
	root.AddCommand(c.versionCommand())
	return root
}

// newPolicy loads the corpora into a replay parser and builds the search
// policy over it. The caller closes the returned registry.
func (c *cli) newPolicy() (*parse.Policy, *parse.Dictionaries, error) {
	paths := c.corpora
	if len(paths) == 0 {
		paths = c.cfg.CorpusPaths()
	}
	if len(paths) == 0 {
		return nil, nil, errNoCorpus
	}

	p := replay.NewParser()
	for _, path := range paths {
		corpus, err := replay.LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		c.logger.Debug("loaded corpus", "path", path, "language", corpus.Language, "sentences", len(corpus.Sentences))
		p.Add(corpus)
	}

	dicts := parse.NewDictionaries(p, c.logger)
	policy := parse.NewPolicy(p,
		parse.WithDictionaries(dicts),
		parse.WithSettings(c.cfg.Settings()),
		parse.WithLogger(c.logger),
	)
	return policy, dicts, nil
}

// openStore opens the configured graph backend with its schema in place.
func (c *cli) openStore(cmd *cobra.Command) (graph.Store, error) {
	var (
		store graph.Store
		err   error
	)
	switch c.cfg.Store.Backend {
	case config.BackendKuzu:
		store, err = openKuzuStore(c.cfg.StorePath())
	default:
		store = graph.NewMemStore()
	}
	if err != nil {
		return nil, err
	}
	if err := store.InitSchema(cmd.Context()); err != nil {
		store.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (c *cli) emitOptions() []graph.EmitOption {
	if c.cfg.Store.ExpandConnectors {
		return []graph.EmitOption{graph.WithExpandedConnectors()}
	}
	return nil
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "linkgraph %s\n", version)
		},
	}
}
