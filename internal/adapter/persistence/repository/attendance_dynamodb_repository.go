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

const defaultAttendanceTableName = "attendance_logs"

type attendanceItem struct {
	EmployeeID string  `dynamodbav:"employee_id"`
	Date       string  `dynamodbav:"date"`
	PunchIn    string  `dynamodbav:"punch_in"`
	PunchOut   string  `dynamodbav:"punch_out,omitempty"`
	TotalHours float64 `dynamodbav:"total_hours"`
	Status     string  `dynamodbav:"status,omitempty"`
	CreatedAt  string  `dynamodbav:"created_at"`
	UpdatedAt  string  `dynamodbav:"updated_at"`
}

// AttendanceDynamoRepository persists AttendanceLog entities in DynamoDB.
//
// Table requirements:
//   - PK: employee_id (string)
//   - SK: date (string, YYYY-MM-DD)
//
// The composite key is the (employee, date) uniqueness constraint. An open
// session is an item without a punch_out attribute; the open-session lookup
// scans the employee's partition newest-first so a session spanning midnight
// is still found.

type AttendanceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAttendanceRepository = (*AttendanceDynamoRepository)(nil)

func NewAttendanceDynamoRepository(ddb *dynamodb.Client) *AttendanceDynamoRepository {
	return &AttendanceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ATTENDANCE_TABLE", defaultAttendanceTableName),
	}
}

func (r *AttendanceDynamoRepository) Create(ctx context.Context, l entities.AttendanceLog) (entities.AttendanceLog, error) {
	it := toAttendanceItem(l)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.AttendanceLog{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#employee_id)"),
		ExpressionAttributeNames: map[string]string{
			"#employee_id": "employee_id",
		},
	})
	if err != nil {
		return entities.AttendanceLog{}, err
	}
	return l, nil
}

func (r *AttendanceDynamoRepository) Update(ctx context.Context, l entities.AttendanceLog) (entities.AttendanceLog, error) {
	it := toAttendanceItem(l)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.AttendanceLog{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#employee_id)"),
		ExpressionAttributeNames: map[string]string{
			"#employee_id": "employee_id",
		},
	})
	if err != nil {
		return entities.AttendanceLog{}, err
	}
	return l, nil
}

func (r *AttendanceDynamoRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (entities.AttendanceLog, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"employee_id": &types.AttributeValueMemberS{Value: employeeID},
			"date":        &types.AttributeValueMemberS{Value: date},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.AttendanceLog{}, err
	}
	if len(out.Item) == 0 {
		return entities.AttendanceLog{}, nil
	}

	var it attendanceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.AttendanceLog{}, err
	}
	return fromAttendanceItem(it), nil
}

func (r *AttendanceDynamoRepository) GetOpenByEmployeeID(ctx context.Context, employeeID string) (entities.AttendanceLog, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("employee_id = :eid"),
		FilterExpression:       aws.String("attribute_not_exists(punch_out)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: employeeID},
		},
		ScanIndexForward: aws.Bool(false),
		ConsistentRead:   aws.Bool(true),
	})
	if err != nil {
		return entities.AttendanceLog{}, err
	}
	if len(out.Items) == 0 {
		return entities.AttendanceLog{}, nil
	}

	var it attendanceItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.AttendanceLog{}, err
	}
	return fromAttendanceItem(it), nil
}

func (r *AttendanceDynamoRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]entities.AttendanceLog, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("employee_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: employeeID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	logs := make([]entities.AttendanceLog, 0, len(out.Items))
	for _, raw := range out.Items {
		var it attendanceItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		logs = append(logs, fromAttendanceItem(it))
	}
	return logs, nil
}

func toAttendanceItem(l entities.AttendanceLog) attendanceItem {
	it := attendanceItem{
		EmployeeID: l.EmployeeID,
		Date:       l.Date,
		PunchIn:    l.PunchIn.UTC().Format(time.RFC3339Nano),
		TotalHours: l.TotalHours,
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  l.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if l.PunchOut != nil {
		it.PunchOut = l.PunchOut.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromAttendanceItem(it attendanceItem) entities.AttendanceLog {
	l := entities.AttendanceLog{
		EmployeeID: it.EmployeeID,
		Date:       it.Date,
		PunchIn:    parseTime(it.PunchIn),
		TotalHours: it.TotalHours,
		Status:     entities.AttendanceStatus(it.Status),
		CreatedAt:  parseTime(it.CreatedAt),
		UpdatedAt:  parseTime(it.UpdatedAt),
	}
	if it.PunchOut != "" {
		t := parseTime(it.PunchOut)
		l.PunchOut = &t
	}
	return l
}
