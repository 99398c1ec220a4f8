package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore a feltöltött KYC-dokumentumok és blogképek objektumtára.
type BlobStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	secure   bool
}

var Storage *BlobStore

// ConnectStorage a MINIO_* környezeti változók alapján áll fel; hiányukban a
// feltöltési végpontok hibát adnak, de az alkalmazás fut.
func ConnectStorage() {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		slog.Warn("A MINIO_ENDPOINT nincs beállítva, a fájlfeltöltés kikapcsolva.")
		return
	}

	secure := os.Getenv("MINIO_USE_SSL") == "true"
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: secure,
	})
	if err != nil {
		slog.Error("Nem sikerült létrehozni a minio klienst", "error", err)
		os.Exit(1)
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "szekhely-portal"
	}

	store := &BlobStore{client: client, bucket: bucket, endpoint: endpoint, secure: secure}
	if err := store.ensureBucket(context.Background()); err != nil {
		slog.Error("Nem sikerült előkészíteni a minio bucketet", "error", err)
		os.Exit(1)
	}

	Storage = store
	slog.Info("Sikeres objektumtár-kapcsolat.", "bucket", bucket)
}

func (s *BlobStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket ellenőrzése sikertelen: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("bucket létrehozása sikertelen: %w", err)
		}
	}

	// A blog/ prefix névtelenül olvasható: a borítóképek stabil URL-en
	// mennek ki, a KYC-dokumentumok aláírt linken maradnak.
	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/blog/*"]}]}`, s.bucket)
	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("bucket-szabályzat beállítása sikertelen: %w", err)
	}
	return nil
}

// Upload feltölti az objektumot és visszaadja az objektumnevét.
func (s *BlobStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("feltöltés sikertelen: %w", err)
	}
	return nil
}

// PresignedURL időkorlátos letöltési URL-t ad az objektumra.
func (s *BlobStore) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("aláírt URL készítése sikertelen: %w", err)
	}
	return u.String(), nil
}

// PublicURL az objektum állandó, névtelenül olvasható URL-je. Csak olyan
// prefixre jó, amelyet a bucket-szabályzat publikussá tesz.
func (s *BlobStore) PublicURL(objectName string) string {
	protocol := "http"
	if s.secure {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.endpoint, s.bucket, objectName)
}

// Delete törli az objektumot.
func (s *BlobStore) Delete(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
