package storage

import (
	"os"
	"strings"
	"sync"

	"picktask-backend/internal/config"
	"picktask-backend/internal/util/logger"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

const sqliteDsnPrefix = "sqlite:"

var (
	db         *gorm.DB
	sqlxDb     *sqlx.DB
	driverName string
	once       sync.Once

	modelsMu sync.Mutex
	models   []any
)

// RegisterModels adds models to the schema that is auto-migrated for sqlite
// databases. Postgres schemas are managed by the SQL migrations.
func RegisterModels(values ...any) {
	modelsMu.Lock()
	defer modelsMu.Unlock()

	models = append(models, values...)
}

func GetDb() *gorm.DB {
	once.Do(loadDb)
	return db
}

// GetSqlx shares the gorm connection pool for hand-written aggregate queries.
func GetSqlx() *sqlx.DB {
	once.Do(loadDb)
	return sqlxDb
}

func IsSqlite() bool {
	once.Do(loadDb)
	return driverName == "sqlite3"
}

func loadDb() {
	log := logger.GetLogger()
	dsn := config.GetEnv().DatabaseDsn

	gormConfig := &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	}

	var err error
	if strings.HasPrefix(dsn, sqliteDsnPrefix) {
		driverName = "sqlite3"
		db, err = gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, sqliteDsnPrefix)), gormConfig)
	} else {
		driverName = "postgres"
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	}

	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Failed to get database connection pool", "error", err)
		os.Exit(1)
	}

	if driverName == "sqlite3" {
		// an in-memory database lives only as long as its single connection
		sqlDB.SetMaxOpenConns(1)

		modelsMu.Lock()
		err = db.AutoMigrate(models...)
		modelsMu.Unlock()

		if err != nil {
			log.Error("Failed to migrate sqlite schema", "error", err)
			os.Exit(1)
		}
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}

	sqlxDb = sqlx.NewDb(sqlDB, driverName)

	log.Info("Database connection established", "driver", driverName)
}
