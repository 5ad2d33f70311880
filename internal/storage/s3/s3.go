package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"finvoice/internal/config"
	"finvoice/internal/domain"
	"finvoice/internal/port"
)

type s3Storage struct {
	client     *s3.Client
	uploader   *manager.Uploader
	bucket     string
	uploadsDir string
	rendersDir string
}

// New creates an S3-backed ObjectStorage implementation.
func New(cfg *config.StorageConfig) (port.ObjectStorage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &s3Storage{
		client:     client,
		uploader:   manager.NewUploader(client),
		bucket:     cfg.Bucket,
		uploadsDir: cfg.UploadsDir,
		rendersDir: cfg.RendersDir,
	}, nil
}

func (s *s3Storage) Save(ctx context.Context, input port.SaveInput) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(input.Key),
		Body:        input.Body,
		ContentType: aws.String(input.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 save: %w", err)
	}
	return input.Key, nil
}

func (s *s3Storage) Read(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NoSuchKey") {
			return nil, domain.ErrNoRenderedDocument
		}
		return nil, fmt.Errorf("s3 read: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read body: %w", err)
	}
	return data, nil
}

func (s *s3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}

// Usage sums object sizes under the uploads and renders prefixes.
func (s *s3Storage) Usage(ctx context.Context) (*domain.StorageUsage, error) {
	usage := &domain.StorageUsage{}

	measure := func(prefix string) (int64, int, error) {
		var bytes int64
		var count int
		paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
			Bucket: aws.String(s.bucket),
			Prefix: aws.String(prefix + "/"),
		})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return 0, 0, err
			}
			for _, obj := range page.Contents {
				if obj.Size != nil {
					bytes += *obj.Size
				}
				count++
			}
		}
		return bytes, count, nil
	}

	uploadsBytes, uploadsCount, err := measure(s.uploadsDir)
	if err != nil {
		return nil, fmt.Errorf("s3 usage: %w", err)
	}
	rendersBytes, rendersCount, err := measure(s.rendersDir)
	if err != nil {
		return nil, fmt.Errorf("s3 usage: %w", err)
	}

	usage.UploadsBytes = uploadsBytes
	usage.RendersBytes = rendersBytes
	usage.TotalBytes = uploadsBytes + rendersBytes
	usage.FileCount = uploadsCount + rendersCount
	return usage, nil
}
