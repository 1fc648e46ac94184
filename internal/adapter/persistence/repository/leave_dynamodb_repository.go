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
	defaultLeaveTableName = "leave_requests"
	leavesEmployeeIDIndex = "employee_id-index"
)

type leaveRequestItem struct {
	ID           string `dynamodbav:"id"`
	EmployeeID   string `dynamodbav:"employee_id"`
	LeaveType    string `dynamodbav:"leave_type"`
	FromDate     string `dynamodbav:"from_date"`
	ToDate       string `dynamodbav:"to_date"`
	NumberOfDays int    `dynamodbav:"number_of_days"`
	Reason       string `dynamodbav:"reason,omitempty"`
	Status       string `dynamodbav:"status"`
	ApprovedBy   string `dynamodbav:"approved_by,omitempty"`
	DecidedAt    string `dynamodbav:"decided_at,omitempty"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

// LeaveDynamoRepository persists LeaveRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: employee_id-index (PK: employee_id)
//
// Dates are stored as YYYY-MM-DD; the overlap rule compares calendar days.

type LeaveDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ILeaveRepository = (*LeaveDynamoRepository)(nil)

func NewLeaveDynamoRepository(ddb *dynamodb.Client) *LeaveDynamoRepository {
	return &LeaveDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("LEAVE_REQUESTS_TABLE", defaultLeaveTableName),
	}
}

func (r *LeaveDynamoRepository) Create(ctx context.Context, req entities.LeaveRequest) (entities.LeaveRequest, error) {
	it := toLeaveRequestItem(req)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.LeaveRequest{}, err
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
		return entities.LeaveRequest{}, err
	}
	return req, nil
}

func (r *LeaveDynamoRepository) GetByID(ctx context.Context, id string) (entities.LeaveRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.LeaveRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.LeaveRequest{}, nil
	}

	var it leaveRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.LeaveRequest{}, err
	}
	return fromLeaveRequestItem(it), nil
}

func (r *LeaveDynamoRepository) Update(ctx context.Context, req entities.LeaveRequest) (entities.LeaveRequest, error) {
	it := toLeaveRequestItem(req)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.LeaveRequest{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.LeaveRequest{}, err
	}
	return req, nil
}

func (r *LeaveDynamoRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]entities.LeaveRequest, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(leavesEmployeeIDIndex),
		KeyConditionExpression: aws.String("employee_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: employeeID},
		},
	})
	if err != nil {
		return nil, err
	}

	requests := make([]entities.LeaveRequest, 0, len(out.Items))
	for _, raw := range out.Items {
		var it leaveRequestItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		requests = append(requests, fromLeaveRequestItem(it))
	}
	return requests, nil
}

func toLeaveRequestItem(req entities.LeaveRequest) leaveRequestItem {
	it := leaveRequestItem{
		ID:           req.ID,
		EmployeeID:   req.EmployeeID,
		LeaveType:    req.LeaveType,
		FromDate:     req.FromDate.UTC().Format(entities.AttendanceDateLayout),
		ToDate:       req.ToDate.UTC().Format(entities.AttendanceDateLayout),
		NumberOfDays: req.NumberOfDays,
		Reason:       req.Reason,
		Status:       string(req.Status),
		ApprovedBy:   req.ApprovedBy,
		CreatedAt:    req.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    req.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if req.DecidedAt != nil {
		it.DecidedAt = req.DecidedAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromLeaveRequestItem(it leaveRequestItem) entities.LeaveRequest {
	req := entities.LeaveRequest{
		ID:           it.ID,
		EmployeeID:   it.EmployeeID,
		LeaveType:    it.LeaveType,
		FromDate:     parseDate(it.FromDate),
		ToDate:       parseDate(it.ToDate),
		NumberOfDays: it.NumberOfDays,
		Reason:       it.Reason,
		Status:       entities.LeaveStatus(it.Status),
		ApprovedBy:   it.ApprovedBy,
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
	if it.DecidedAt != "" {
		t := parseTime(it.DecidedAt)
		req.DecidedAt = &t
	}
	return req
}
