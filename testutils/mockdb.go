package testutils

import (
	"database/sql"
	"fmt"
	"testing"

	"taskboard/database"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupMockDB sets up a gorm connection over sqlmock using the postgres
// dialector, for exercising store failure paths.
func SetupMockDB() (*database.Database, sqlmock.Sqlmock, func()) {
	var db *sql.DB
	var mock sqlmock.Sqlmock
	var err error

	db, mock, err = sqlmock.New()
	if err != nil {
		panic(err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, database.GormConfig(logger.Silent))
	if err != nil {
		panic(err)
	}

	mockDB := &database.Database{
		DB: gormDB,
	}

	close := func() {
		db.Close()
	}

	return mockDB, mock, close
}

// SetupTestDB opens a private in-memory SQLite database with the schema
// migrated. It is closed when the test ends.
func SetupTestDB(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.RunMigrations(gormDB); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db := &database.Database{DB: gormDB}
	t.Cleanup(db.Close)
	return db
}
