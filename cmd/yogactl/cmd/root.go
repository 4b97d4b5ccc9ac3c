package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anvayahealth/yogatherapy-backend/internal/db"
	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/repos"
	"github.com/anvayahealth/yogatherapy-backend/internal/services"
)

// app is the wired-up backend shared by all subcommands.
type app struct {
	log                   *logger.Logger
	store                 *db.CatalogStore
	seedService           services.SeedService
	rctService            services.RCTService
	recommendationService services.RecommendationService
}

var (
	cfgFile string
	backend *app
)

var rootCmd = &cobra.Command{
	Use:   "yogactl",
	Short: "Manage and query the yoga therapy catalog",
	Long: `yogactl works directly against the catalog store: seed it from YAML
files, refresh the trial support counts, and generate recommendations
without going through the HTTP API.`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .yogactl.yaml in the working directory)")
	rootCmd.PersistentFlags().String("db-driver", "", "catalog store driver: postgres or sqlite")
	rootCmd.PersistentFlags().String("sqlite-path", "", "sqlite database file")
	rootCmd.PersistentFlags().String("log-mode", "test", "log mode: development, production or test")
}

func bootstrap(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("YOGA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(".yogactl")
		v.AddConfigPath(".")
		// A missing default config file is fine.
		_ = v.ReadInConfig()
	}

	// The store reads plain env vars; flags and config override them.
	if driver := v.GetString("db-driver"); driver != "" {
		os.Setenv("DB_DRIVER", driver)
	}
	if path := v.GetString("sqlite-path"); path != "" {
		os.Setenv("SQLITE_PATH", path)
	}

	log, err := logger.New(v.GetString("log-mode"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	store, err := db.NewCatalogStore(log)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		return fmt.Errorf("migrate catalog store: %w", err)
	}
	gdb := store.DB()

	diseaseRepo := repos.NewDiseaseRepo(gdb, log)
	moduleRepo := repos.NewModuleRepo(gdb, log)
	practiceRepo := repos.NewPracticeRepo(gdb, log)
	citationRepo := repos.NewCitationRepo(gdb, log)
	contraindicationRepo := repos.NewContraindicationRepo(gdb, log)
	rctRepo := repos.NewRCTRepo(gdb, log)

	rctService := services.NewRCTService(gdb, log, rctRepo, diseaseRepo, practiceRepo)
	backend = &app{
		log:        log,
		store:      store,
		rctService: rctService,
		seedService: services.NewSeedService(
			gdb, log,
			diseaseRepo, moduleRepo, practiceRepo,
			citationRepo, contraindicationRepo, rctRepo,
			rctService,
		),
		recommendationService: services.NewRecommendationService(gdb, log, diseaseRepo, moduleRepo, rctRepo, nil),
	}
	return nil
}
