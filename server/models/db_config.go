package models

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Daskott/contactbook/server/logger"
	"github.com/Daskott/contactbook/utils"
	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	DB_NAME         = "contactbook.db"
	SQLITE_DRIVER   = "sqlite"
	POSTGRES_DRIVER = "postgres"
)

var logg = logger.NewLogger()
var db *gorm.DB

// DBConfig holds what's needed to open the store. PassPhrase & RootDir
// are only used by the sqlite driver, DSN only by postgres.
type DBConfig struct {
	Driver     string
	DSN        string
	PassPhrase string
	RootDir    string
}

// AutoMigrate opens the db, migrates the schema and inserts seed data
func AutoMigrate(config DBConfig) error {
	err := openDB(config)
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&Account{}, &User{}, &Organization{}, &Contact{},
		&JobStatus{}, &Job{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %v", err)
	}

	return populateDBWithSeedData()
}

// InitializeTestDb creates a fresh encrypted sqlite db in a temp directory
func InitializeTestDb() {
	rootDir, err := os.MkdirTemp("", "contactbook-test-*")
	if err != nil {
		log.Panic(err)
	}

	err = AutoMigrate(DBConfig{Driver: SQLITE_DRIVER, PassPhrase: "test-passphrase", RootDir: rootDir})
	if err != nil {
		log.Panic(err)
	}
}

// SqliteBackup writes a consistent snapshot of the sqlite db to 'destFilePath'.
func SqliteBackup(ctx context.Context, destFilePath string) error {
	if db.Dialector.Name() == POSTGRES_DRIVER {
		return errors.New("sqlite backup is not supported for postgres")
	}

	if utils.FileExist(destFilePath) {
		if err := os.Remove(destFilePath); err != nil {
			return err
		}
	}

	return db.WithContext(ctx).Exec("VACUUM INTO ?", destFilePath).Error
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func openDB(config DBConfig) error {
	var err error
	var dialector gorm.Dialector

	switch config.Driver {
	case POSTGRES_DRIVER:
		dialector = postgres.Open(config.DSN)
	case SQLITE_DRIVER, "":
		var dbDSNVal string
		dbDSNVal, err = dbDSN(config.PassPhrase, config.RootDir)
		if err != nil {
			return fmt.Errorf("failed to set sqlite DSN: %v", err)
		}
		dialector = sqliteEncrypt.Open(dbDSNVal)
	default:
		return fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err = gorm.Open(dialector, &gorm.Config{
		// Timestamps are stored in UTC so range queries compare like with like
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %v", err)
	}

	return nil
}

func populateDBWithSeedData() error {
	if err := db.First(&JobStatus{}).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		logg.Info("Inserting seed data into 'JobStatus'")
		return db.Create(&[]JobStatus{
			{Name: ENQUEUED_JOB}, {Name: IN_PROGRESS_JOB}, {Name: SUCCESSFUL_JOB}, {Name: DEAD_JOB},
		}).Error
	}

	return nil
}

func dbDSN(passPhrase string, dbRootDir string) (string, error) {
	dbFilePath, err := SqliteFilePath(dbRootDir)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"file:%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL",
		dbFilePath,
		passPhrase,
	), nil
}

// SqliteFilePath returns the location of the sqlite db file under 'dbRootDir'
func SqliteFilePath(dbRootDir string) (string, error) {
	dbDir, err := DbDirectory(dbRootDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(dbDir, DB_NAME), nil
}

func DbDirectory(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}
