package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"hotelres/config"
	"hotelres/infras/otel"
	"hotelres/shared/constant"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"
)

// S3 stores receipt documents in the configured bucket.
type S3 interface {
	UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error)
	DeleteFile(ctx context.Context, url string) error
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) bucket() string {
	return svc.Config.External.S3.BucketName
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: fileName,
		otelAttrBucket:   svc.bucket(),
	})

	objectKey := path.Join(directory, fileName)
	body := bytes.NewReader(fileData)

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket()),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(body.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return ObjectURL(svc.Config.External.S3.PublicDomain, objectKey), nil
}

// DeleteFile removes the object behind a URL returned by UploadFileBytes.
func (svc *s3Impl) DeleteFile(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	objectKey := ObjectKey(svc.Config.External.S3.PublicDomain, url)
	if objectKey == constant.Empty {
		return fmt.Errorf("url %q is not served from the receipt bucket", url)
	}

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   svc.bucket(),
	})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket()),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// ObjectURL builds the public URL of an object key.
func ObjectURL(publicDomain, objectKey string) string {
	return strings.TrimSuffix(publicDomain, "/") + "/" + strings.TrimPrefix(objectKey, "/")
}

// ObjectKey is the inverse of ObjectURL. Foreign URLs give an empty key.
func ObjectKey(publicDomain, url string) string {
	key, ok := strings.CutPrefix(url, strings.TrimSuffix(publicDomain, "/")+"/")
	if !ok {
		return constant.Empty
	}

	return key
}

func New(config *config.Config, otel otel.Otel) S3 {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(config.External.S3.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
