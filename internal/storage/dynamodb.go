package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ignite/newsletter-subscriber/internal/config"
	"github.com/ignite/newsletter-subscriber/internal/domain"
	"github.com/ignite/newsletter-subscriber/internal/pkg/logger"
)

// DynamoDBAPI is the subset of *dynamodb.Client the store uses.
type DynamoDBAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// DynamoDBStore persists subscribers to a DynamoDB table keyed by id.
//
// Lookups scan the whole table filtering on email, which is O(n) in the
// number of subscribers. Inserts are unconditional, so two concurrent
// requests for the same address can both pass the lookup and both write.
type DynamoDBStore struct {
	client    DynamoDBAPI
	tableName string
}

// NewDynamoDBStore loads AWS configuration for the configured region and
// profile and creates a store for cfg.DynamoDBTable.
func NewDynamoDBStore(ctx context.Context, cfg config.StorageConfig) (*DynamoDBStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if profile := cfg.GetAWSProfile(); profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	// DynamoDB Local accepts any credentials but still requires some.
	if cfg.DynamoDBEndpoint != "" && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	return NewDynamoDBStoreWithClient(client, cfg.DynamoDBTable), nil
}

// NewDynamoDBStoreWithClient creates a store around an existing client.
func NewDynamoDBStoreWithClient(client DynamoDBAPI, tableName string) *DynamoDBStore {
	return &DynamoDBStore{client: client, tableName: tableName}
}

// Name implements Backend.
func (s *DynamoDBStore) Name() string { return "dynamodb" }

// TableName returns the configured table.
func (s *DynamoDBStore) TableName() string { return s.tableName }

// Exists implements Backend. It pages through a filtered scan and stops at
// the first page with a match.
func (s *DynamoDBStore) Exists(ctx context.Context, email string) (bool, error) {
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:        aws.String(s.tableName),
		FilterExpression: aws.String("#email = :email"),
		ExpressionAttributeNames: map[string]string{
			"#email": "email",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: domain.NormalizeEmail(email)},
		},
		Select: types.SelectCount,
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return false, fmt.Errorf("scanning %s for subscriber: %w", s.tableName, err)
		}
		if page.Count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Insert implements Backend with a single PutItem.
func (s *DynamoDBStore) Insert(ctx context.Context, sub *domain.Subscriber) error {
	av, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return fmt.Errorf("marshaling subscriber: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("putting subscriber to DynamoDB: %w", err)
	}
	return nil
}

// Ping implements Backend via DescribeTable.
func (s *DynamoDBStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})
	if err != nil {
		return fmt.Errorf("describing table %s: %w", s.tableName, err)
	}
	return nil
}

// Close implements Backend. The SDK client holds no resources to release.
func (s *DynamoDBStore) Close() error { return nil }

// EnsureTable creates the subscriber table (hash key "id", on-demand
// billing) if it does not exist and waits for it to become active.
// It reports whether the table was created.
func (s *DynamoDBStore) EnsureTable(ctx context.Context, wait time.Duration) (bool, error) {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})
	if err == nil {
		return false, nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return false, fmt.Errorf("describing table %s: %w", s.tableName, err)
	}

	_, err = s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return false, fmt.Errorf("creating table %s: %w", s.tableName, err)
	}
	logger.Info("created DynamoDB table", "table", s.tableName)

	if wait > 0 {
		waiter := dynamodb.NewTableExistsWaiter(s.client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.tableName)}, wait); err != nil {
			return true, fmt.Errorf("waiting for table %s: %w", s.tableName, err)
		}
	}
	return true, nil
}
