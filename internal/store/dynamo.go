package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/i474232898/geo-window-export/internal/geo"
	"github.com/i474232898/geo-window-export/internal/window"
)

const projection = "c0, c1"

// ErrMalformedItem is returned when a scanned item lacks string coordinates.
var ErrMalformedItem = errors.New("malformed item")

// ScanAPI is the subset of the DynamoDB client the store needs.
type ScanAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoStore reads posts from a DynamoDB table.
type DynamoStore struct {
	client ScanAPI
	table  string
	logger *zap.Logger
}

// NewDynamoStore creates a DynamoStore over table.
func NewDynamoStore(client ScanAPI, table string, logger *zap.Logger) *DynamoStore {
	return &DynamoStore{
		client: client,
		table:  table,
		logger: logger,
	}
}

// Scan runs a single filtered scan page. Result pagination is not followed.
func (d *DynamoStore) Scan(ctx context.Context, filter window.Filter) ([]geo.Record, error) {
	input := &dynamodb.ScanInput{
		TableName:            aws.String(d.table),
		ProjectionExpression: aws.String(projection),
	}
	if filter.Expression != "" {
		values := make(map[string]types.AttributeValue, len(filter.Values))
		for k, v := range filter.Values {
			values[k] = &types.AttributeValueMemberS{Value: v}
		}
		input.FilterExpression = aws.String(filter.Expression)
		input.ExpressionAttributeValues = values
	}

	out, err := d.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", d.table, err)
	}

	if out.LastEvaluatedKey != nil {
		d.logger.Warn("scan result truncated",
			zap.String("table", d.table),
			zap.Int("items", len(out.Items)),
		)
	}

	records := make([]geo.Record, 0, len(out.Items))
	for i, item := range out.Items {
		c0, err := stringAttr(item, "c0")
		if err != nil {
			return nil, fmt.Errorf("scan %s item %d: %w", d.table, i, err)
		}
		c1, err := stringAttr(item, "c1")
		if err != nil {
			return nil, fmt.Errorf("scan %s item %d: %w", d.table, i, err)
		}
		records = append(records, geo.Record{C0: c0, C1: c1})
	}
	return records, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) (string, error) {
	v, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string attribute", ErrMalformedItem, name)
	}
	return v.Value, nil
}
