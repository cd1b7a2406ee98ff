// Package objectstore реализует хранилище постеров поверх S3-совместимого
// сервиса (AWS S3 или minio). Загрузка возвращает ключ объекта и публичный
// URL, которые сохраняются вместе с фильмом.
package objectstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/andrianprakoso/movie-catalog/internal/config"
)

// Store инкапсулирует S3 клиент и имя бакета постеров.
type Store struct {
	client *s3.Client
	cfg    config.S3
}

// New создает S3 клиент по настройкам из конфига. Для minio указывается
// base_endpoint, для AWS он остается пустым.
func New(ctx context.Context, cfg config.S3) (*Store, error) {
	const op = "objectstore.New"

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{client: client, cfg: cfg}, nil
}

// UploadPoster загружает постер и возвращает ключ объекта и публичный URL.
func (s *Store) UploadPoster(ctx context.Context, body io.Reader, contentType string) (string, string, error) {
	const op = "objectstore.UploadPoster"

	key := fmt.Sprintf("posters/%s", uuid.New())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.S3Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return key, s.objectURL(key), nil
}

// DeletePoster удаляет постер по ключу объекта. Отсутствие объекта не ошибка.
func (s *Store) DeletePoster(ctx context.Context, key string) error {
	const op = "objectstore.DeletePoster"

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) objectURL(key string) string {
	if s.cfg.S3BaseEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.cfg.S3BaseEndpoint, s.cfg.S3Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.S3Bucket, s.cfg.S3Region, key)
}
