package server

import (
	"context"
	"os"
	"testing"

	"github.com/Daskott/contactbook/server/gstorage"
	"github.com/Daskott/contactbook/server/models"
	"github.com/Daskott/contactbook/shared"
	"github.com/Daskott/contactbook/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStorage struct {
	uploads       map[string]string
	uploadExisted bool
	downloads     []string
	missing       bool
}

func (fs *fakeBlobStorage) UploadFile(ctx context.Context, bucket, filePath, object string) error {
	if fs.uploads == nil {
		fs.uploads = make(map[string]string)
	}
	fs.uploads[bucket+"/"+object] = filePath
	fs.uploadExisted = utils.FileExist(filePath)
	return nil
}

func (fs *fakeBlobStorage) DownloadFile(ctx context.Context, bucket, object string, destFileName string) error {
	if fs.missing {
		return gstorage.ErrObjectNotExist
	}
	fs.downloads = append(fs.downloads, bucket+"/"+object)
	return os.WriteFile(destFileName, []byte("backup"), 0600)
}

func TestSqliteBackupRun(t *testing.T) {
	models.InitializeTestDb()

	storage := &fakeBlobStorage{}
	backup := newSqliteBackup(storage, shared.StorageConfig{Bucket: "contactbook", Prefix: "test"}, t.TempDir())

	err := backup.run(context.Background(), nil)
	require.Nil(t, err)

	snapshotPath, ok := storage.uploads["contactbook/test/"+models.DB_NAME]
	assert.True(t, ok, "The snapshot should be uploaded under the prefix")
	assert.True(t, storage.uploadExisted, "The snapshot should exist while it's uploaded")
	assert.False(t, utils.FileExist(snapshotPath), "The snapshot should be removed after the upload")
}

func TestSqliteBackupRestoreIfMissing(t *testing.T) {
	rootDir := t.TempDir()
	storage := &fakeBlobStorage{}
	backup := newSqliteBackup(storage, shared.StorageConfig{Bucket: "contactbook", Prefix: "test"}, rootDir)

	require.Nil(t, backup.restoreIfMissing(context.Background()))
	assert.Equal(t, []string{"contactbook/test/" + models.DB_NAME}, storage.downloads)

	// A local db is never overwritten
	require.Nil(t, backup.restoreIfMissing(context.Background()))
	assert.Len(t, storage.downloads, 1)
}

func TestSqliteBackupRestoreWithoutBackup(t *testing.T) {
	rootDir := t.TempDir()
	backup := newSqliteBackup(&fakeBlobStorage{missing: true}, shared.StorageConfig{Bucket: "contactbook"}, rootDir)

	assert.Nil(t, backup.restoreIfMissing(context.Background()))

	dbFilePath, err := models.SqliteFilePath(rootDir)
	require.Nil(t, err)
	assert.False(t, utils.FileExist(dbFilePath))
}
