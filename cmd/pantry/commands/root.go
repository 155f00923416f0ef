package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/l3aro/pantry/internal/config"
	"github.com/l3aro/pantry/internal/log"
	"github.com/l3aro/pantry/pkg/apple"
	"github.com/l3aro/pantry/pkg/graph"
)

// app carries the global flags and the state shared by subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	src    config.Source
	logger *log.DefaultLogger
}

// NewRootCmd builds the pantry command tree. Called with no subcommand it
// evaluates apple(5) with the built-in recipe and prints the answer line.
// Configuration only affects logging on that path.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "pantry",
		Short: "pantry - evaluate the apple/banana/carrot/durian/egg call graph",
		Long: `pantry evaluates apple(x) = banana(x) + egg(x), where
banana(x) = carrot(x) * durian(x) and carrot(x) = durian(x) - egg(x).

Run without a command to print the answer for apple(5). Configuration and
environment only change the input and recipe of eval and table.

Commands:
  eval        Evaluate one input, optionally with a call trace
  table       Evaluate a range of inputs through the result cache
  init        Create a configuration file interactively
  doctor      Check the configuration and probe the int32 boundaries
  cache       Inspect or clear the result cache

Use "pantry [command] --help" for more information about a command.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				a.logger = a.newLogger(cmd, config.DefaultConfig())
				a.logger.Warn("ignoring configuration", "error", err)
			}
			g, err := graph.Build(graph.DefaultRecipe())
			if err != nil {
				return err
			}
			answer, err := g.Answer(apple.DefaultInput)
			if err != nil {
				return err
			}
			a.logger.Debug("evaluated", "input", apple.DefaultInput, "answer", answer, "policy", g.Policy())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), apple.Answer(answer))
			return err
		},
	}

	root.SetVersionTemplate("pantry version {{.Version}}\n")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./.pantry/config.yaml, then ~/.pantry/config.yaml)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging on stderr")

	root.AddCommand(newEvalCmd(a))
	root.AddCommand(newTableCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newDoctorCmd(a))
	root.AddCommand(newCacheCmd(a))

	return root
}

// load resolves the configuration and sets up logging on the command's
// stderr. It is idempotent.
func (a *app) load(cmd *cobra.Command) error {
	if a.cfg != nil {
		return nil
	}

	var (
		cfg *config.Config
		src config.Source
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromFile(a.configPath)
		src = config.Source{Path: a.configPath, Scope: "file"}
	} else {
		cfg, src, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a.logger = a.newLogger(cmd, cfg)
	a.logger.Debug("config loaded", "scope", src.Scope, "path", src.Path)

	a.cfg = cfg
	a.src = src
	return nil
}

// newLogger writes to the command's stderr at the configured level.
// --verbose and verbose: true both force debug output.
func (a *app) newLogger(cmd *cobra.Command, cfg *config.Config) *log.DefaultLogger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	l := log.New(log.LoggerConfig{
		Level:      level,
		JSONOutput: cfg.LogJSON,
		Output:     cmd.ErrOrStderr(),
	})
	if a.verbose || cfg.Verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}
