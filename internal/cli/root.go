package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.pagelog/internal/config"
	"go.pagelog/internal/logger"
)

var (
	cfg *config.Config
	log *logger.Logger

	homeFlag   string
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "pagelog",
	Short: "Pagelog - slot packed append only record logs",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(homeFlag, configFlag)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level, lErr := logger.ParseLevel(cfg.LogLevel)
		log = logger.New(os.Stderr, level)
		if lErr != nil {
			log.Warnf("%v, using info", lErr)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "pagelog home (default $PAGELOG_HOME or ~/.local/share/pagelog)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default <home>/config.yaml)")
}
