package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type policyItem struct {
	ID           string `dynamodbav:"id"`
	CustomerCPF  string `dynamodbav:"customer_cpf"`
	CustomerName string `dynamodbav:"customer_name"`
	Type         int    `dynamodbav:"type"`
	Description  string `dynamodbav:"description"`
	Premium      string `dynamodbav:"premium"`
	Coverage     string `dynamodbav:"coverage"`
	Status       string `dynamodbav:"status"`
	StartDate    string `dynamodbav:"start_date"`
	EndDate      string `dynamodbav:"end_date"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

// PolicyDynamoRepository persists records of the generic policies API.
//
// Table requirements:
//   - PK: id (string)

type PolicyDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPolicyRepository = (*PolicyDynamoRepository)(nil)

func NewPolicyDynamoRepository(ddb *dynamodb.Client, tableName string) *PolicyDynamoRepository {
	return &PolicyDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PolicyDynamoRepository) Create(ctx context.Context, p entities.Policy) (entities.Policy, error) {
	av, err := attributevalue.MarshalMap(toPolicyItem(p))
	if err != nil {
		return entities.Policy{}, err
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
		return entities.Policy{}, err
	}
	return p, nil
}

func (r *PolicyDynamoRepository) GetByID(ctx context.Context, id string) (entities.Policy, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            policyKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Policy{}, err
	}
	if len(out.Item) == 0 {
		return entities.Policy{}, nil
	}

	var it policyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Policy{}, err
	}
	return fromPolicyItem(it), nil
}

func (r *PolicyDynamoRepository) List(ctx context.Context) ([]entities.Policy, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})

	var out []entities.Policy
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var its []policyItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &its); err != nil {
			return nil, err
		}
		for _, it := range its {
			out = append(out, fromPolicyItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Update replaces the mutable attributes of an existing policy.
func (r *PolicyDynamoRepository) Update(ctx context.Context, p entities.Policy) (entities.Policy, error) {
	it := toPolicyItem(p)
	return r.update(ctx, p.ID, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #customer_cpf = :customer_cpf, #customer_name = :customer_name, #type = :type, " +
			"#description = :description, #premium = :premium, #coverage = :coverage, #status = :status, " +
			"#start_date = :start_date, #end_date = :end_date, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":customer_cpf":  &types.AttributeValueMemberS{Value: it.CustomerCPF},
			":customer_name": &types.AttributeValueMemberS{Value: it.CustomerName},
			":type":          &types.AttributeValueMemberN{Value: formatInt(int64(it.Type))},
			":description":   &types.AttributeValueMemberS{Value: it.Description},
			":premium":       &types.AttributeValueMemberS{Value: it.Premium},
			":coverage":      &types.AttributeValueMemberS{Value: it.Coverage},
			":status":        &types.AttributeValueMemberS{Value: it.Status},
			":start_date":    &types.AttributeValueMemberS{Value: it.StartDate},
			":end_date":      &types.AttributeValueMemberS{Value: it.EndDate},
			":updated_at":    &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#customer_cpf":  "customer_cpf",
			"#customer_name": "customer_name",
			"#type":          "type",
			"#description":   "description",
			"#premium":       "premium",
			"#coverage":      "coverage",
			"#status":        "status",
			"#start_date":    "start_date",
			"#end_date":      "end_date",
			"#updated_at":    "updated_at",
		}
		return expr, vals, names
	})
}

func (r *PolicyDynamoRepository) Delete(ctx context.Context, id string) (entities.Policy, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      policyKey(id),
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
		ReturnValues:             types.ReturnValueAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Policy{}, nil
		}
		return entities.Policy{}, err
	}

	var it policyItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Policy{}, err
	}
	return fromPolicyItem(it), nil
}

func (r *PolicyDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Policy, error) {
	now := formatTime(time.Now())
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       policyKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Policy{}, nil
		}
		return entities.Policy{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Policy{}, nil
	}
	var it policyItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Policy{}, err
	}
	return fromPolicyItem(it), nil
}

func policyKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func toPolicyItem(p entities.Policy) policyItem {
	return policyItem{
		ID:           p.ID,
		CustomerCPF:  p.CustomerCPF,
		CustomerName: p.CustomerName,
		Type:         int(p.Type),
		Description:  p.Description,
		Premium:      formatDecimal(p.Premium),
		Coverage:     formatDecimal(p.Coverage),
		Status:       string(p.Status),
		StartDate:    formatTime(p.StartDate),
		EndDate:      formatTime(p.EndDate),
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

func fromPolicyItem(it policyItem) entities.Policy {
	return entities.Policy{
		ID:           it.ID,
		CustomerCPF:  it.CustomerCPF,
		CustomerName: it.CustomerName,
		Type:         entities.ProductKind(it.Type),
		Description:  it.Description,
		Premium:      parseDecimal(it.Premium),
		Coverage:     parseDecimal(it.Coverage),
		Status:       entities.PolicyStatus(it.Status),
		StartDate:    parseTime(it.StartDate),
		EndDate:      parseTime(it.EndDate),
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
}
