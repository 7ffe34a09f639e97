package gstorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/Daskott/contactbook/server/logger"
	"google.golang.org/api/option"
)

var (
	ErrObjectNotExist = storage.ErrObjectNotExist

	logg = logger.NewLogger()
)

type GStorage struct {
	storageClient *storage.Client
}

// NewGStorage creates a storage client, with the service account in
// 'credentialsFilePath' or the default credentials when it's empty
func NewGStorage(ctx context.Context, credentialsFilePath string) (*GStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFilePath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFilePath))
	} else {
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("NewGStorage: %v", err)
	}

	return &GStorage{storageClient: client}, nil
}

// UploadFile uploads the file in 'filePath' to 'bucket' as 'object', an
// empty 'object' means the file's base name
func (gs *GStorage) UploadFile(ctx context.Context, bucket, filePath, object string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("os.Open: %v", err)
	}
	defer f.Close()

	if object == "" {
		object = filepath.Base(filePath)
	}

	wc := gs.storageClient.Bucket(bucket).Object(object).NewWriter(ctx)
	if _, err = io.Copy(wc, f); err != nil {
		wc.Close()
		return fmt.Errorf("io.Copy: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %v", err)
	}

	logg.Infof("Blob %v uploaded to bucket %v", object, bucket)
	return nil
}

// DownloadFile downloads an object to a file.
func (gs *GStorage) DownloadFile(ctx context.Context, bucket, object string, destFileName string) error {
	rc, err := gs.storageClient.Bucket(bucket).Object(object).NewReader(ctx)
	if err == storage.ErrObjectNotExist {
		return err
	}
	if err != nil {
		return fmt.Errorf("Object(%q).NewReader: %v", object, err)
	}
	defer rc.Close()

	f, err := os.OpenFile(destFileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("os.OpenFile: %v", err)
	}

	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return fmt.Errorf("io.Copy: %v", err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("f.Close: %v", err)
	}

	logg.Infof("Blob %v downloaded to local file %v", object, destFileName)
	return nil
}

func (gs *GStorage) Close() error {
	return gs.storageClient.Close()
}
