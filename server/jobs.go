package server

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"

	"github.com/Daskott/contactbook/server/gstorage"
	"github.com/Daskott/contactbook/server/models"
	"github.com/Daskott/contactbook/server/work"
	"github.com/Daskott/contactbook/shared"
	"github.com/Daskott/contactbook/utils"
)

const BACKUP_SQLITE_DB_JOB = "backupSqliteDb"

// blobStorage is the part of gstorage.GStorage the backup needs
type blobStorage interface {
	UploadFile(ctx context.Context, bucket, filePath, object string) error
	DownloadFile(ctx context.Context, bucket, object string, destFileName string) error
}

// sqliteBackup copies the sqlite db to a storage bucket & back
type sqliteBackup struct {
	storage blobStorage
	config  shared.StorageConfig
	rootDir string
}

func newSqliteBackup(storage blobStorage, config shared.StorageConfig, rootDir string) *sqliteBackup {
	return &sqliteBackup{storage: storage, config: config, rootDir: rootDir}
}

func (backup *sqliteBackup) objectName() string {
	return path.Join(backup.config.Prefix, models.DB_NAME)
}

// run snapshots the db into a temp file & uploads it, the live db file
// is never read directly
func (backup *sqliteBackup) run(ctx context.Context, args map[string]interface{}) error {
	dbDir, err := models.DbDirectory(backup.rootDir)
	if err != nil {
		return err
	}

	snapshotPath := filepath.Join(dbDir, "backup-"+models.DB_NAME)
	defer os.Remove(snapshotPath)

	err = models.SqliteBackup(ctx, snapshotPath)
	if err != nil {
		return err
	}

	return backup.storage.UploadFile(ctx, backup.config.Bucket, snapshotPath, backup.objectName())
}

// restoreIfMissing downloads the last backup when there's no local db
// yet. A bucket without a backup isn't an error.
func (backup *sqliteBackup) restoreIfMissing(ctx context.Context) error {
	dbFilePath, err := models.SqliteFilePath(backup.rootDir)
	if err != nil {
		return err
	}

	if utils.FileExist(dbFilePath) {
		return nil
	}

	logg.Infof("No local db found, restoring %v from bucket %v", backup.objectName(), backup.config.Bucket)

	err = backup.storage.DownloadFile(ctx, backup.config.Bucket, backup.objectName(), dbFilePath)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		os.Remove(dbFilePath)
		logg.Info("No backup found, starting with an empty db")
		return nil
	}

	return err
}

func registerJobHandlers(wpa *work.WorkerPoolAdapter, backup *sqliteBackup) error {
	if backup == nil {
		return nil
	}

	return wpa.Register(BACKUP_SQLITE_DB_JOB, backup.run)
}

func enqueueJobs(wpa *work.WorkerPoolAdapter, backup *sqliteBackup) error {
	if backup == nil {
		return nil
	}

	return wpa.PeriodicallyPerform(backup.config.SqliteBackupSchedule, work.JobParams{
		Name:    BACKUP_SQLITE_DB_JOB,
		Handler: BACKUP_SQLITE_DB_JOB,
		Args:    map[string]interface{}{},
	})
}
