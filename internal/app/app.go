package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/i474232898/geo-window-export/internal/blob"
	"github.com/i474232898/geo-window-export/internal/common"
	"github.com/i474232898/geo-window-export/internal/config"
	"github.com/i474232898/geo-window-export/internal/geo"
	"github.com/i474232898/geo-window-export/internal/metrics"
	"github.com/i474232898/geo-window-export/internal/resilience"
	"github.com/i474232898/geo-window-export/internal/store"
)

// NewExporter constructs the collaborators selected by cfg and the exporter
// over them. Clients are created here once and handed to the exporter.
func NewExporter(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger, m *metrics.Metrics) (*geo.Exporter, error) {
	var (
		records geo.RecordStore
		blobs   geo.BlobStore
	)

	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory stores; artifacts are lost on restart")
		records = store.NewMemoryStore()
		blobs = blob.NewMemoryStore(common.JoinURL(cfg.PublicURL, cfg.Bucket))
	default:
		opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
		if cfg.AccessKey != "" {
			creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
			opts = append(opts, awsconfig.WithCredentialsProvider(creds))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		dynamo := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
			}
		})
		s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3Endpoint)
				o.UsePathStyle = true
			}
		})

		records = store.NewDynamoStore(dynamo, cfg.Table, logger)
		blobs = blob.NewS3Store(s3Client, cfg.Bucket, cfg.PublicURL, logger)
	}

	breaker := resilience.BreakerConfig{
		MaxFailures: uint32(cfg.BreakerMaxFailures),
		Timeout:     cfg.BreakerTimeout,
	}
	records = resilience.RecordStore(records, breaker, logger)
	blobs = resilience.BlobStore(blobs, breaker, logger)

	return geo.NewExporter(records, blobs,
		geo.WithPrefix(cfg.KeyPrefix),
		geo.WithLogger(logger),
		geo.WithMetrics(m),
	), nil
}
