package cmd

import (
	"fmt"

	"github.com/sidquark/minikv/internal/config"
	"github.com/sidquark/minikv/internal/database"
	"github.com/sidquark/minikv/internal/log"
	"github.com/spf13/cobra"
)

const AppName = "minikv"

// app carries the state shared by all commands of one invocation.
type app struct {
	cfg config.Config
	db  *database.DB
}

func Execute() error {
	return run(newRootCommand())
}

// run executes the command tree and closes the store even when the command
// fails, since cobra skips post-run hooks after a RunE error.
func run(rootCmd *cobra.Command, a *app) error {
	err := rootCmd.Execute()
	if closeErr := a.teardown(); err == nil {
		err = closeErr
	}
	return err
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - a small key-value store backed by a key=value text file",
		Long: `minikv keeps key-value pairs in a fixed-size hash table and persists them
as plain key=value lines. Run without a subcommand to start the interactive shell.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("file", "f", "", "data file used by load and save (env "+config.EnvDataFile+")")
	flags.Int("buckets", 0, "number of hash buckets (env "+config.EnvBuckets+")")
	flags.Bool("autoload", true, "load the data file on start when it exists (env "+config.EnvAutoLoad+")")
	flags.String("log-level", "", "log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	flags.String("log-format", "", "log format: console or json (env "+config.EnvLogFormat+")")
	flags.String("env-file", ".env", "path of an optional env file")

	rootCmd.AddCommand(DefineShellCommand(a))
	rootCmd.AddCommand(DefineGetCommand(a))
	rootCmd.AddCommand(DefinePutCommand(a))
	rootCmd.AddCommand(DefineDelCommand(a))
	rootCmd.AddCommand(DefineListCommand(a))
	rootCmd.AddCommand(DefineCountCommand(a))

	return rootCmd, a
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := parseConfig(cmd)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := initLogging(cfg); err != nil {
		return err
	}

	db, err := database.New(&database.Config{
		NumBuckets: cfg.NumBuckets,
		DataFile:   cfg.DataFile,
		AutoLoad:   cfg.AutoLoad,
	})
	if err != nil {
		return err
	}
	a.db = db

	log.Root.Debug().
		Str("file", cfg.DataFile).
		Int("buckets", cfg.NumBuckets).
		Int("entries", db.Count()).
		Msg("store opened")

	return nil
}

func (a *app) teardown() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// parseConfig layers command line flags over the environment.
func parseConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("file") {
		cfg.DataFile, _ = flags.GetString("file")
	}
	if flags.Changed("buckets") {
		n, _ := flags.GetInt("buckets")
		if n <= 0 {
			return config.Config{}, fmt.Errorf("--buckets must be positive, got %d", n)
		}
		cfg.NumBuckets = n
	}
	if flags.Changed("autoload") {
		cfg.AutoLoad, _ = flags.GetBool("autoload")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}

	return cfg, nil
}

func initLogging(cfg config.Config) error {
	level, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	typ, err := log.ParseLoggerType(cfg.LogFormat)
	if err != nil {
		return err
	}

	log.Init(log.Options{LogLevel: level, Type: typ})
	return nil
}
