package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
	"github.com/anvayahealth/yogatherapy-backend/internal/utils"
)

type CatalogStore struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

// NewCatalogStore opens the relational catalog. DB_DRIVER selects postgres
// (default) or sqlite; the sqlite path keeps the embedded single-file setup
// the research team started on usable for local work.
func NewCatalogStore(log *logger.Logger) (*CatalogStore, error) {
	storeLog := log.With("service", "CatalogStore")

	driver := utils.GetEnv("DB_DRIVER", "postgres", log)

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "yoga_therapy.db", log)
		log.Info("Connecting to sqlite catalog...", "path", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	case "postgres":
		postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
		postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
		postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		postgresName := utils.GetEnv("POSTGRES_NAME", "yogatherapy", log)
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)
		log.Info("Connecting to Postgres...")
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
	if err != nil {
		log.Error("Failed to connect to catalog store", "driver", driver, "error", err)
		return nil, fmt.Errorf("failed to connect to catalog store: %w", err)
	}

	return &CatalogStore{db: db, driver: driver, log: storeLog}, nil
}

func (s *CatalogStore) AutoMigrateAll() error {
	s.log.Info("Auto migrating catalog tables...")
	err := s.db.AutoMigrate(
		&types.Disease{},
		&types.Module{},
		&types.Practice{},
		&types.Citation{},
		&types.Contraindication{},
		&types.RCT{},
		&types.RCTSymptom{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for catalog tables", "error", err)
		return err
	}
	return nil
}

func (s *CatalogStore) DB() *gorm.DB {
	return s.db
}

func (s *CatalogStore) Driver() string {
	return s.driver
}
