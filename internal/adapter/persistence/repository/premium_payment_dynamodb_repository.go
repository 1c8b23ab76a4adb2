package repository

import (
	"context"
	"errors"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const paymentsApoliceIDIndex = "apolice_id-index"

type premiumPaymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	ProviderID         string                 `dynamodbav:"provider_id,omitempty"`
	ApoliceID          int64                  `dynamodbav:"apolice_id"`
	Installment        int                    `dynamodbav:"installment"`
	Amount             string                 `dynamodbav:"amount"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// PremiumPaymentDynamoRepository persists PremiumPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, "<apolice_id>#<installment>")
//   - GSI: apolice_id-index (PK: apolice_id, number)

type PremiumPaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPremiumPaymentRepository = (*PremiumPaymentDynamoRepository)(nil)

func NewPremiumPaymentDynamoRepository(ddb *dynamodb.Client, tableName string) *PremiumPaymentDynamoRepository {
	return &PremiumPaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PremiumPaymentDynamoRepository) Reserve(ctx context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
	p.Status = entities.PaymentStatusPendente
	err := r.put(ctx, p, "attribute_not_exists(#id) OR #status = :denied", map[string]types.AttributeValue{
		":denied": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusNegado)},
	})
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return entities.PremiumPayment{}, interfaces.ErrInstallmentTaken
	}
	if err != nil {
		return entities.PremiumPayment{}, err
	}
	return p, nil
}

func (r *PremiumPaymentDynamoRepository) Save(ctx context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
	if err := r.put(ctx, p, "attribute_exists(#id)", nil); err != nil {
		return entities.PremiumPayment{}, err
	}
	return p, nil
}

func (r *PremiumPaymentDynamoRepository) put(ctx context.Context, p entities.PremiumPayment, cond string, values map[string]types.AttributeValue) error {
	av, err := attributevalue.MarshalMap(toPremiumPaymentItem(p))
	if err != nil {
		return err
	}
	names := map[string]string{"#id": "id"}
	if values != nil {
		names["#status"] = "status"
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      av,
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *PremiumPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.PremiumPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PremiumPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.PremiumPayment{}, nil
	}

	var it premiumPaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PremiumPayment{}, err
	}
	return fromPremiumPaymentItem(it), nil
}

func (r *PremiumPaymentDynamoRepository) ListByApoliceID(ctx context.Context, apoliceID int64) ([]entities.PremiumPayment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsApoliceIDIndex),
		KeyConditionExpression: aws.String("apolice_id = :aid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":aid": &types.AttributeValueMemberN{Value: formatInt(apoliceID)},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.PremiumPayment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it premiumPaymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPremiumPaymentItem(it))
	}
	return items, nil
}

func toPremiumPaymentItem(p entities.PremiumPayment) premiumPaymentItem {
	return premiumPaymentItem{
		ID:                 p.ID,
		ProviderID:         p.ProviderID,
		ApoliceID:          p.ApoliceID,
		Installment:        p.Installment,
		Amount:             formatDecimal(p.Amount),
		Date:               formatTime(p.Date),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromPremiumPaymentItem(it premiumPaymentItem) entities.PremiumPayment {
	return entities.PremiumPayment{
		ID:                 it.ID,
		ProviderID:         it.ProviderID,
		ApoliceID:          it.ApoliceID,
		Installment:        it.Installment,
		Amount:             parseDecimal(it.Amount),
		Date:               parseTime(it.Date),
		Status:             entities.PaymentStatus(it.Status),
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: []byte(it.ProviderPayloadRaw),
	}
}
