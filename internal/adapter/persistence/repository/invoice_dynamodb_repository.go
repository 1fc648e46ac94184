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
	defaultInvoicesTableName = "invoices"
	invoicesClientIDIndex    = "client_id-index"
)

type invoiceLineItem struct {
	ServiceType string `dynamodbav:"service_type"`
	Description string `dynamodbav:"description,omitempty"`
	Hours       string `dynamodbav:"hours"`
	RatePerHour string `dynamodbav:"rate_per_hour"`
	FixedPrice  string `dynamodbav:"fixed_price"`
	Quantity    int    `dynamodbav:"quantity"`
	Total       string `dynamodbav:"total"`
}

type invoiceItem struct {
	Code        string            `dynamodbav:"code"`
	ClientID    string            `dynamodbav:"client_id"`
	ProjectID   string            `dynamodbav:"project_id,omitempty"`
	Items       []invoiceLineItem `dynamodbav:"items"`
	Subtotal    string            `dynamodbav:"subtotal"`
	TaxRate     string            `dynamodbav:"tax_rate,omitempty"`
	TaxAmount   string            `dynamodbav:"tax_amount,omitempty"`
	TotalAmount string            `dynamodbav:"total_amount"`
	Status      string            `dynamodbav:"status"`
	InvoiceDate string            `dynamodbav:"invoice_date"`
	DueDate     string            `dynamodbav:"due_date"`
	PaymentDate string            `dynamodbav:"payment_date,omitempty"`
	CreatedAt   string            `dynamodbav:"created_at"`
	UpdatedAt   string            `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: code (string)
//   - GSI: client_id-index (PK: client_id)
//
// Money is stored as decimal strings so amounts round-trip exactly.

type InvoiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	it := toInvoiceItem(inv)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#code)"),
		ExpressionAttributeNames: map[string]string{
			"#code": "code",
		},
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByCode(ctx context.Context, code string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		ProjectionExpression: aws.String("#code"),
		ExpressionAttributeNames: map[string]string{
			"#code": "code",
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	return len(out.Item) > 0, nil
}

// Update replaces the full document; lifecycle operations always recompute
// the aggregate before persisting, so a partial update expression would only
// invite drift.
func (r *InvoiceDynamoRepository) Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	it := toInvoiceItem(inv)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#code)"),
		ExpressionAttributeNames: map[string]string{
			"#code": "code",
		},
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) DeleteByCode(ctx context.Context, code string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
	})
	return err
}

func (r *InvoiceDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesClientIDIndex),
		KeyConditionExpression: aws.String("client_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: clientID},
		},
	})
	if err != nil {
		return nil, err
	}

	invoices := make([]entities.Invoice, 0, len(out.Items))
	for _, raw := range out.Items {
		var it invoiceItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		invoices = append(invoices, fromInvoiceItem(it))
	}
	return invoices, nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	lines := make([]invoiceLineItem, 0, len(inv.Items))
	for _, l := range inv.Items {
		lines = append(lines, invoiceLineItem{
			ServiceType: string(l.ServiceType),
			Description: l.Description,
			Hours:       l.Hours.String(),
			RatePerHour: l.RatePerHour.String(),
			FixedPrice:  l.FixedPrice.String(),
			Quantity:    l.Quantity,
			Total:       l.Total.String(),
		})
	}

	it := invoiceItem{
		Code:        inv.Code,
		ClientID:    inv.ClientID,
		ProjectID:   inv.ProjectID,
		Items:       lines,
		Subtotal:    inv.Subtotal.String(),
		TotalAmount: inv.TotalAmount.String(),
		Status:      string(inv.Status),
		InvoiceDate: inv.InvoiceDate.UTC().Format(time.RFC3339Nano),
		DueDate:     inv.DueDate.UTC().Format(time.RFC3339Nano),
		CreatedAt:   inv.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   inv.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if inv.TaxRate != nil {
		it.TaxRate = inv.TaxRate.String()
	}
	if inv.TaxAmount != nil {
		it.TaxAmount = inv.TaxAmount.String()
	}
	if inv.PaymentDate != nil {
		it.PaymentDate = inv.PaymentDate.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	lines := make([]entities.InvoiceItem, 0, len(it.Items))
	for _, l := range it.Items {
		lines = append(lines, entities.InvoiceItem{
			ServiceType: entities.ServiceType(l.ServiceType),
			Description: l.Description,
			Hours:       parseDecimal(l.Hours),
			RatePerHour: parseDecimal(l.RatePerHour),
			FixedPrice:  parseDecimal(l.FixedPrice),
			Quantity:    l.Quantity,
			Total:       parseDecimal(l.Total),
		})
	}

	inv := entities.Invoice{
		Code:        it.Code,
		ClientID:    it.ClientID,
		ProjectID:   it.ProjectID,
		Items:       lines,
		Subtotal:    parseDecimal(it.Subtotal),
		TotalAmount: parseDecimal(it.TotalAmount),
		Status:      entities.InvoiceStatus(it.Status),
		InvoiceDate: parseTime(it.InvoiceDate),
		DueDate:     parseTime(it.DueDate),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
	if it.TaxRate != "" {
		d := parseDecimal(it.TaxRate)
		inv.TaxRate = &d
	}
	if it.TaxAmount != "" {
		d := parseDecimal(it.TaxAmount)
		inv.TaxAmount = &d
	}
	if it.PaymentDate != "" {
		t := parseTime(it.PaymentDate)
		inv.PaymentDate = &t
	}
	return inv
}
