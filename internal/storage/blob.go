package storage

import (
	"context"
	"fmt"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

type BlobReader struct {
	bucket *blob.Bucket
	reader *blob.Reader
}

func NewBlobReader(ctx context.Context, name string) (*BlobReader, error) {
	parts := strings.Split(name, "/")
	if len(parts) < 4 {
		return nil, fmt.Errorf("expected a name in the form <scheme>://<bucket>/<key>")
	}
	var bucketName string
	var key string
	if parts[0] == "file:" {
		bucketName = strings.Join(parts[:len(parts)-1], "/")
		key = parts[len(parts)-1]
	} else {
		bucketName = strings.Join(parts[:3], "/")
		key = strings.Join(parts[3:], "/")
	}

	bucket, err := blob.OpenBucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s, %w", bucketName, err)
	}

	reader, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		_ = bucket.Close()
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("no such object %s, %w", name, err)
		}
		return nil, fmt.Errorf("failed to open %s, %w", name, err)
	}

	return &BlobReader{bucket: bucket, reader: reader}, nil
}

func (r *BlobReader) Read(data []byte) (int, error) {
	return r.reader.Read(data)
}

func (r *BlobReader) Close() error {
	readErr := r.reader.Close()
	if err := r.bucket.Close(); err != nil {
		if gcerrors.Code(err) == gcerrors.FailedPrecondition {
			// allow mutiple calls to Close
			return readErr
		}
		return err
	}
	return readErr
}
