package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arcane/internal/config"
	"arcane/internal/logging"
	"arcane/internal/ui"
)

const Version = "0.1.0"

var (
	configPath string
	dbPath     string
	verbose    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "arc",
	Short:         "Arcane: a local-first quest log with ranks and penalties",
	Long:          "Arcane turns tasks into XP-bearing quests. Finish them to climb the ranks; skip a day and the system locks your XP gain until you catch up.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			c.DBPath = dbPath
		}
		l, err := logging.New(c.Log, verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		cfg = c
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/arcane/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newAddCmd(),
		newPlanCmd(),
		newPreviewCmd(),
		newListCmd(),
		newDoCmd(),
		newEditCmd(),
		newRmCmd(),
		newStatusCmd(),
		newProfileCmd(),
		newRanksCmd(),
		newCalendarCmd(),
		newLogCmd(),
		newCheckCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
