package database

import (
	"os"
	"time"

	"github.com/agenciahub/debriefing-api/internal/domain/entities"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase abre a conexão e aplica as migrações. Com DATABASE_URL
// definido usa Postgres; sem ele cai em um arquivo SQLite local, suficiente
// para desenvolvimento.
func SetupDatabase() (*gorm.DB, error) {
	config := &gorm.Config{
		// Skip default transaction for better performance
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(logger.Error),
	}

	var dialector gorm.Dialector
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		dialector = postgres.Open(dbURL)
		logrus.Info("🗄️ Conectando ao PostgreSQL")
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "debriefing.db"
		}
		dialector = sqlite.Open(path + "?_foreign_keys=on")
		logrus.Warnf("⚠️ DATABASE_URL não definido, usando SQLite local: %s", path)
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	RegisterMiddlewares(db)

	return db, nil
}

// Migrate aplica o esquema das tabelas do debriefing
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.DebriefingReport{},
		&entities.CampaignStageMapping{},
	)
}
