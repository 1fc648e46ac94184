package repository

import (
	"context"
	"fmt"
	"strconv"

	"crm_backoffice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCountersTableName = "counters"

// CounterDynamoRepository implements the sequence allocator on DynamoDB.
//
// Table requirements:
//   - PK: series (string)
//   - SK: period (number)
//
// The increment is a single UpdateItem with an ADD expression: DynamoDB
// creates the row with value 1 when absent and serializes concurrent
// increments on the same key, so no two callers ever observe the same
// returned value. There is no read-then-write window to race through.

type CounterDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICounterRepository = (*CounterDynamoRepository)(nil)

func NewCounterDynamoRepository(ddb *dynamodb.Client) *CounterDynamoRepository {
	return &CounterDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
	}
}

func (r *CounterDynamoRepository) Increment(ctx context.Context, series string, period int) (int, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"series": &types.AttributeValueMemberS{Value: series},
			"period": &types.AttributeValueMemberN{Value: strconv.Itoa(period)},
		},
		UpdateExpression: aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{
			"#value": "value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}

	attr, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s/%d: unexpected attribute type for value", series, period)
	}
	value, err := strconv.Atoi(attr.Value)
	if err != nil {
		return 0, fmt.Errorf("counter %s/%d: parsing value %q: %w", series, period, attr.Value, err)
	}
	return value, nil
}
