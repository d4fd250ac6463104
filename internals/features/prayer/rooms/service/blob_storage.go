package service

import (
	"context"
	"io"

	helperOSS "gerejaku_backend/internals/helpers/oss"
)

// BlobUploadResult: metadata hasil upload dari storage provider.
type BlobUploadResult struct {
	URL       string
	StorageID string
	SizeBytes int64
	// Durasi yang dilaporkan provider (ms). OSS tidak menyediakan — nil.
	DurationMillis *int64
}

// BlobStorage membungkus durable storage untuk blob audio rekaman.
type BlobStorage interface {
	UploadAudio(ctx context.Context, key string, r io.Reader, contentType string, sizeBytes int64) (*BlobUploadResult, error)
}

// OSSBlobStorage: implementasi BlobStorage di atas Aliyun OSS.
type OSSBlobStorage struct {
	svc *helperOSS.OSSService
}

func NewOSSBlobStorage(svc *helperOSS.OSSService) *OSSBlobStorage {
	return &OSSBlobStorage{svc: svc}
}

func (b *OSSBlobStorage) UploadAudio(ctx context.Context, key string, r io.Reader, contentType string, sizeBytes int64) (*BlobUploadResult, error) {
	if contentType == "" {
		contentType = "audio/webm"
	}
	if err := b.svc.UploadStream(ctx, key, r, contentType, true, false); err != nil {
		return nil, err
	}
	return &BlobUploadResult{
		URL:       b.svc.PublicURL(key),
		StorageID: key,
		SizeBytes: sizeBytes,
	}, nil
}
