package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultTimeout = time.Second
)

type DB struct {
	dynamoClient *dynamodb.Client
	tableName    string
	timeout      time.Duration
}

type Option func(d *DB)

// WithTimeout bounds every call made to dynamo. Defaults to one second.
func WithTimeout(timeout time.Duration) Option {
	return func(d *DB) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func NewDB(dynamoClient *dynamodb.Client, tableName string, opts ...Option) *DB {
	d := &DB{
		dynamoClient: dynamoClient,
		tableName:    tableName,
		timeout:      defaultTimeout,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.timeout)
}

func newEntityConditional() expression.ConditionBuilder {
	return expression.Name("PK").AttributeNotExists()
}

func existingEntityConditional() expression.ConditionBuilder {
	return expression.Name("PK").AttributeExists()
}

func exprMustBuild(builder expression.Builder) expression.Expression {
	expr, err := builder.Build()
	if err != nil {
		panic("failed to build dynamo expression")
	}

	return expr
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// CreateTable creates the registrations table if it isn't there yet. Used for local
// development, production tables are provisioned outside the service.
func (d *DB) CreateTable(ctx context.Context) error {
	_, err := d.dynamoClient.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(d.tableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String("PK"),
				AttributeType: types.ScalarAttributeTypeS,
			},
			{
				AttributeName: aws.String("SK"),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String("PK"),
				KeyType:       types.KeyTypeHash,
			},
			{
				AttributeName: aws.String("SK"),
				KeyType:       types.KeyTypeRange,
			},
		},
	})
	if err != nil {
		var inUseErr *types.ResourceInUseException
		if errors.As(err, &inUseErr) {
			return nil
		}
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}
