package repository

import (
	"context"
	"time"

	"crm_backoffice/internal/domain/entities"
	"crm_backoffice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsInvoiceCodeIndex = "invoice_code-index"
)

type invoicePaymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	InvoiceCode        string                 `dynamodbav:"invoice_code"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// InvoicePaymentDynamoRepository persists InvoicePayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: invoice_code-index (PK: invoice_code)

type InvoicePaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInvoicePaymentRepository = (*InvoicePaymentDynamoRepository)(nil)

func NewInvoicePaymentDynamoRepository(ddb *dynamodb.Client) *InvoicePaymentDynamoRepository {
	return &InvoicePaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *InvoicePaymentDynamoRepository) Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
	it := toInvoicePaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.InvoicePayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.InvoicePayment{}, err
	}
	return p, nil
}

func (r *InvoicePaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.InvoicePayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.InvoicePayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.InvoicePayment{}, nil
	}

	var it invoicePaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.InvoicePayment{}, err
	}
	return fromInvoicePaymentItem(it), nil
}

func (r *InvoicePaymentDynamoRepository) ListByInvoiceCode(ctx context.Context, invoiceCode string) ([]entities.InvoicePayment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsInvoiceCodeIndex),
		KeyConditionExpression: aws.String("invoice_code = :code"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: invoiceCode},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.InvoicePayment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it invoicePaymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromInvoicePaymentItem(it))
	}
	return items, nil
}

func toInvoicePaymentItem(p entities.InvoicePayment) invoicePaymentItem {
	return invoicePaymentItem{
		ID:                 p.ID,
		InvoiceCode:        p.InvoiceCode,
		Date:               p.Date.UTC().Format(time.RFC3339Nano),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromInvoicePaymentItem(it invoicePaymentItem) entities.InvoicePayment {
	return entities.InvoicePayment{
		ID:                 it.ID,
		InvoiceCode:        it.InvoiceCode,
		Date:               parseTime(it.Date),
		Status:             entities.PaymentStatus(it.Status),
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: []byte(it.ProviderPayloadRaw),
	}
}
