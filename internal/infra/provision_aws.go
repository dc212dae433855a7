package infra

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	apperrors "github.com/controleopcoes/controleopcoes/internal/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBClient defines the control-plane operations used by AWSProvisioner.
// This interface enables mocking for unit tests.
type DynamoDBClient interface {
	ListTables(
		ctx context.Context,
		params *dynamodb.ListTablesInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.ListTablesOutput, error)
	CreateTable(
		ctx context.Context,
		params *dynamodb.CreateTableInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.CreateTableOutput, error)
}

// AWSProvisioner implements Provisioner for Amazon DynamoDB.
type AWSProvisioner struct {
	client DynamoDBClient
	logger *slog.Logger
}

// NewAWSProvisioner creates a provisioner backed by the SDK client built from awsCfg.
func NewAWSProvisioner(awsCfg aws.Config, log *slog.Logger) *AWSProvisioner {
	return NewAWSProvisionerWithClient(dynamodb.NewFromConfig(awsCfg), log)
}

// NewAWSProvisionerWithClient creates a provisioner with a custom client (for testing).
func NewAWSProvisionerWithClient(client DynamoDBClient, log *slog.Logger) *AWSProvisioner {
	if log == nil {
		log = slog.Default()
	}
	return &AWSProvisioner{
		client: client,
		logger: log,
	}
}

// EnsureTable lists the tables in spec.Region and creates spec.TableName when absent.
func (p *AWSProvisioner) EnsureTable(ctx context.Context, spec *TableSpec, opts ...EnsureOption) (*Result, error) {
	result := &Result{}
	if spec != nil {
		result.TableName = spec.TableName
		result.Region = spec.Region
	}

	if err := spec.Validate(); err != nil {
		return result.fail(err), err
	}

	exists, err := p.TableExists(ctx, spec.Region, spec.TableName)
	if err != nil {
		return result.fail(err), err
	}

	if exists {
		p.logger.Debug("table already exists, skipping creation", "table", spec.TableName, "region", spec.Region)
		result.Outcome = OutcomeAlreadyExists
		return result, nil
	}

	if o := resolveEnsureOptions(opts); o.onCreate != nil {
		o.onCreate(spec)
	}

	description, err := p.createTable(ctx, spec)
	if err != nil {
		return result.fail(err), err
	}

	result.Outcome = OutcomeCreated
	result.TableARN = aws.ToString(description.TableArn)
	result.TableStatus = string(description.TableStatus)

	p.logger.Debug("table creation initiated", "context", map[string]string{
		"table":  spec.TableName,
		"arn":    result.TableARN,
		"status": result.TableStatus,
	})

	return result, nil
}

// TableExists checks whether tableName is among the tables listed in region.
func (p *AWSProvisioner) TableExists(ctx context.Context, region, tableName string) (bool, error) {
	names, err := p.ListTableNames(ctx, region)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, tableName), nil
}

// ListTableNames returns every table name in region, following pagination.
func (p *AWSProvisioner) ListTableNames(ctx context.Context, region string) ([]string, error) {
	p.logger.Debug("calling external service", "context", map[string]string{
		"operation": "DynamoDB.ListTables",
		"region":    region,
	})

	var names []string
	paginator := dynamodb.NewListTablesPaginator(p.client, &dynamodb.ListTablesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx, withRegion(region))
		if err != nil {
			p.logger.Debug("list tables failed", "region", region, "api_error_code", apperrors.APIErrorCode(err))
			return nil, apperrors.ErrListTables(err)
		}
		names = append(names, page.TableNames...)
	}

	return names, nil
}

// createTable issues the create request and returns the table description.
func (p *AWSProvisioner) createTable(ctx context.Context, spec *TableSpec) (*types.TableDescription, error) {
	p.logger.Debug("calling external service", "context", map[string]string{
		"operation": "DynamoDB.CreateTable",
		"region":    spec.Region,
		"table":     spec.TableName,
	})

	output, err := p.client.CreateTable(ctx, BuildCreateTableInput(spec), withRegion(spec.Region))
	if err != nil {
		p.logger.Debug("create table failed", "table", spec.TableName, "api_error_code", apperrors.APIErrorCode(err))
		return nil, apperrors.ErrCreateTable(spec.TableName, err)
	}

	if output == nil || output.TableDescription == nil {
		return nil, apperrors.ErrCreateTable(spec.TableName, errors.New("response did not include a table description"))
	}

	return output.TableDescription, nil
}

// BuildCreateTableInput builds the CreateTable request for spec: a composite
// HASH + RANGE key with exactly two attribute definitions.
func BuildCreateTableInput(spec *TableSpec) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(spec.TableName),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(spec.PartitionKey.Name), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(spec.SortKey.Name), KeyType: types.KeyTypeRange},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(spec.PartitionKey.Name), AttributeType: spec.PartitionKey.Type},
			{AttributeName: aws.String(spec.SortKey.Name), AttributeType: spec.SortKey.Type},
		},
		BillingMode: spec.BillingMode,
		Tags:        spec.sortedTags(),
	}
}

// withRegion pins a single call to region regardless of the client's default.
func withRegion(region string) func(*dynamodb.Options) {
	return func(o *dynamodb.Options) {
		o.Region = region
	}
}
