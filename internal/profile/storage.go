package profile

import (
	"fmt"
	"io"

	storage_go "github.com/supabase-community/storage-go"
)

// PhotoBucket is the storage bucket holding profile photos.
const PhotoBucket = "profile-photos"

// SupabaseStorage stores photos in a Supabase Storage bucket.
type SupabaseStorage struct {
	client *storage_go.Client
	bucket string
}

// NewSupabaseStorage uses bucket through client.
func NewSupabaseStorage(client *storage_go.Client, bucket string) *SupabaseStorage {
	return &SupabaseStorage{client: client, bucket: bucket}
}

// Upload writes data at path, replacing any previous object, and returns its public URL.
func (s *SupabaseStorage) Upload(path, contentType string, data io.Reader) (string, error) {
	cacheControl := "3600"
	upsert := true
	_, err := s.client.UploadFile(s.bucket, path, data, storage_go.FileOptions{
		CacheControl: &cacheControl,
		ContentType:  &contentType,
		Upsert:       &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to %s: %w", path, s.bucket, err)
	}
	return s.client.GetPublicUrl(s.bucket, path).SignedURL, nil
}
