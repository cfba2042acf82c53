package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	s3config "github.com/shubhamjangid510/coffe-cup/internal/config"
	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

type s3Repository struct {
	client        *s3.Client
	cfg           *s3config.S3Config
	maxUploadSize int64
	log           *zap.Logger
}

// NewS3Repository stores image slots as objects in an S3 bucket. A custom
// endpoint (e.g. MinIO) is honored when configured.
func NewS3Repository(cfg *s3config.S3Config, maxUploadSize int64, log *zap.Logger) (ImageRepository, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				HostnameImmutable: true,
				Source:            aws.EndpointSourceCustom,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithEndpointResolverWithOptions(customResolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config: %v", domain.ErrStorage, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	repo := &s3Repository{
		client:        client,
		cfg:           cfg,
		maxUploadSize: maxUploadSize,
		log:           log,
	}

	if err := repo.ensureBucketExists(context.Background()); err != nil {
		log.Warn("Failed to ensure bucket exists", zap.Error(err))
	}

	return repo, nil
}

func (r *s3Repository) ensureBucketExists(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(r.cfg.BucketName),
	})
	if err == nil {
		return nil
	}

	r.log.Info("Creating bucket", zap.String("bucket", r.cfg.BucketName))

	_, err = r.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(r.cfg.BucketName),
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(r.cfg.Region),
		},
	})
	return err
}

func (r *s3Repository) Put(ctx context.Context, readingID string, pos domain.Position, data []byte) (string, error) {
	if err := checkCapacity(data, r.maxUploadSize); err != nil {
		return "", err
	}

	key := objectKey(readingID, pos)
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.cfg.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		r.log.Error("Failed to upload image to S3",
			zap.String("key", key),
			zap.Error(err))
		return "", fmt.Errorf("%w: S3 upload failed: %v", domain.ErrStorage, err)
	}

	r.log.Info("Image uploaded to S3",
		zap.String("key", key),
		zap.Int("size", len(data)))

	return fmt.Sprintf("s3://%s/%s", r.cfg.BucketName, key), nil
}

func (r *s3Repository) Get(ctx context.Context, readingID string, pos domain.Position) ([]byte, error) {
	key := objectKey(readingID, pos)

	output, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.cfg.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: no image for reading %s at position %s", domain.ErrNotFound, readingID, pos)
		}
		r.log.Error("Failed to download image from S3",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("%w: S3 download failed: %v", domain.ErrStorage, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: S3 body read failed: %v", domain.ErrStorage, err)
	}

	return data, nil
}

func (r *s3Repository) Positions(ctx context.Context, readingID string) ([]domain.Position, error) {
	output, err := r.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.cfg.BucketName),
		Prefix: aws.String(readingID + "/"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: S3 list failed: %v", domain.ErrStorage, err)
	}

	var positions []domain.Position
	for _, obj := range output.Contents {
		if pos, ok := positionFromFileName(path.Base(*obj.Key)); ok {
			positions = append(positions, pos)
		}
	}

	return positions, nil
}
