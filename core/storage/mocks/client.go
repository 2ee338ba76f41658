// Package mocks provides a testify mock of storage.Client.
package mocks

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client records storage calls. ListObjects expectations return a
// (<-chan minio.ObjectInfo); without one it yields an empty listing.
type Client struct {
	mock.Mock
}

func (m *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucket, opts).Error(0)
}

func (m *Client) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucket, key, reader, size, opts)
	info, _ := args.Get(0).(minio.UploadInfo)
	return info, args.Error(1)
}

func (m *Client) GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key, opts)
	body, _ := args.Get(0).(io.ReadCloser)
	return body, args.Error(1)
}

func (m *Client) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	if ch, ok := m.Called(ctx, bucket, opts).Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	empty := make(chan minio.ObjectInfo)
	close(empty)
	return empty
}

func (m *Client) RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error {
	return m.Called(ctx, bucket, key, opts).Error(0)
}
