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
	defaultTicketsTableName = "tickets"
	ticketsClientIDIndex    = "client_id-index"
)

type ticketCommentItem struct {
	ID        string `dynamodbav:"id"`
	Text      string `dynamodbav:"text"`
	AuthorID  string `dynamodbav:"author_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

type ticketItem struct {
	Code               string              `dynamodbav:"code"`
	ClientID           string              `dynamodbav:"client_id"`
	Title              string              `dynamodbav:"title"`
	Description        string              `dynamodbav:"description,omitempty"`
	Priority           string              `dynamodbav:"priority"`
	Status             string              `dynamodbav:"status"`
	AssignedEmployeeID string              `dynamodbav:"assigned_employee_id,omitempty"`
	ClientResolved     bool                `dynamodbav:"client_resolved"`
	ClientResolvedAt   string              `dynamodbav:"client_resolved_at,omitempty"`
	Comments           []ticketCommentItem `dynamodbav:"comments"`
	CreatedAt          string              `dynamodbav:"created_at"`
	UpdatedAt          string              `dynamodbav:"updated_at"`
}

// TicketDynamoRepository persists Ticket entities in DynamoDB.
//
// Table requirements:
//   - PK: code (string)
//   - GSI: client_id-index (PK: client_id)
//
// Comments are embedded value records; the thread is replaced wholesale on
// update, which is safe because comments are append-only and never edited.

type TicketDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITicketRepository = (*TicketDynamoRepository)(nil)

func NewTicketDynamoRepository(ddb *dynamodb.Client) *TicketDynamoRepository {
	return &TicketDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TICKETS_TABLE", defaultTicketsTableName),
	}
}

func (r *TicketDynamoRepository) Create(ctx context.Context, t entities.Ticket) (entities.Ticket, error) {
	it := toTicketItem(t)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Ticket{}, err
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
		return entities.Ticket{}, err
	}
	return t, nil
}

func (r *TicketDynamoRepository) GetByCode(ctx context.Context, code string) (entities.Ticket, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Ticket{}, err
	}
	if len(out.Item) == 0 {
		return entities.Ticket{}, nil
	}

	var it ticketItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Ticket{}, err
	}
	return fromTicketItem(it), nil
}

func (r *TicketDynamoRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
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

func (r *TicketDynamoRepository) Update(ctx context.Context, t entities.Ticket) (entities.Ticket, error) {
	it := toTicketItem(t)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Ticket{}, err
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
		return entities.Ticket{}, err
	}
	return t, nil
}

func (r *TicketDynamoRepository) DeleteByCode(ctx context.Context, code string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
	})
	return err
}

func (r *TicketDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.Ticket, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ticketsClientIDIndex),
		KeyConditionExpression: aws.String("client_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: clientID},
		},
	})
	if err != nil {
		return nil, err
	}

	tickets := make([]entities.Ticket, 0, len(out.Items))
	for _, raw := range out.Items {
		var it ticketItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		tickets = append(tickets, fromTicketItem(it))
	}
	return tickets, nil
}

func toTicketItem(t entities.Ticket) ticketItem {
	comments := make([]ticketCommentItem, 0, len(t.Comments))
	for _, c := range t.Comments {
		comments = append(comments, ticketCommentItem{
			ID:        c.ID,
			Text:      c.Text,
			AuthorID:  c.AuthorID,
			CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	it := ticketItem{
		Code:               t.Code,
		ClientID:           t.ClientID,
		Title:              t.Title,
		Description:        t.Description,
		Priority:           string(t.Priority),
		Status:             string(t.Status),
		AssignedEmployeeID: t.AssignedEmployeeID,
		ClientResolved:     t.ClientResolved,
		Comments:           comments,
		CreatedAt:          t.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:          t.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.ClientResolvedAt != nil {
		it.ClientResolvedAt = t.ClientResolvedAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromTicketItem(it ticketItem) entities.Ticket {
	comments := make([]entities.Comment, 0, len(it.Comments))
	for _, c := range it.Comments {
		comments = append(comments, entities.Comment{
			ID:        c.ID,
			Text:      c.Text,
			AuthorID:  c.AuthorID,
			CreatedAt: parseTime(c.CreatedAt),
		})
	}

	t := entities.Ticket{
		Code:               it.Code,
		ClientID:           it.ClientID,
		Title:              it.Title,
		Description:        it.Description,
		Priority:           entities.TicketPriority(it.Priority),
		Status:             entities.TicketStatus(it.Status),
		AssignedEmployeeID: it.AssignedEmployeeID,
		ClientResolved:     it.ClientResolved,
		Comments:           comments,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
	if it.ClientResolvedAt != "" {
		ts := parseTime(it.ClientResolvedAt)
		t.ClientResolvedAt = &ts
	}
	return t
}
