package main

import (
	"github.com/charmbracelet/log"
	"github.com/eduroese/To-Do-App/internal/config"
	"github.com/eduroese/To-Do-App/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	envFile string
	v       = config.New()

	cfg    config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:           "todo",
	Short:         "Personal to-do list API",
	Long:          "todo serves the task, category and account API used by the to-do list web client.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(v)
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file")
	if err := config.BindFlags(v, rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// setup resolves the configuration and builds the logger shared by all commands.
func setup(v *viper.Viper) error {
	fallback := log.Default()

	if err := config.LoadEnvFile(envFile); err != nil {
		fallback.Error("failed to load env file", "path", envFile, "err", err)
		return err
	}

	var err error
	cfg, err = config.Load(v)
	if err != nil {
		fallback.Error("invalid configuration", "err", err)
		return err
	}

	logger = logging.New(cfg.Log)
	return nil
}
