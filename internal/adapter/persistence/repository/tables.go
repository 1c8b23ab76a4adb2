package repository

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"corretora_seguros/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type tableSpec struct {
	name      string
	hashKey   string
	hashType  types.ScalarAttributeType
	indexName string
	indexKey  string
	indexType types.ScalarAttributeType
}

func tableSpecs(t config.TablesConfig) []tableSpec {
	return []tableSpec{
		{name: t.Proposals, hashKey: "apolice_id", hashType: types.ScalarAttributeTypeN,
			indexName: proposalCustomerIndex, indexKey: "cpf_cliente", indexType: types.ScalarAttributeTypeS},
		{name: t.Counters, hashKey: "name", hashType: types.ScalarAttributeTypeS},
		{name: t.Users, hashKey: "email", hashType: types.ScalarAttributeTypeS},
		{name: t.Policies, hashKey: "id", hashType: types.ScalarAttributeTypeS},
		{name: t.Payments, hashKey: "id", hashType: types.ScalarAttributeTypeS,
			indexName: paymentsApoliceIDIndex, indexKey: "apolice_id", indexType: types.ScalarAttributeTypeN},
	}
}

func (s tableSpec) input() *dynamodb.CreateTableInput {
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(s.name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(s.hashKey), AttributeType: s.hashType},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(s.hashKey), KeyType: types.KeyTypeHash},
		},
	}
	if s.indexName != "" {
		in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(s.indexKey), AttributeType: s.indexType,
		})
		in.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
			IndexName: aws.String(s.indexName),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(s.indexKey), KeyType: types.KeyTypeHash},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}}
	}
	return in
}

// CreateTables creates every table the service uses. Existing tables are left
// untouched, so the command is safe to run on each deploy.
func CreateTables(ctx context.Context, ddb *dynamodb.Client, t config.TablesConfig) error {
	for _, s := range tableSpecs(t) {
		_, err := ddb.CreateTable(ctx, s.input())
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				log.Printf("[dynamodb][tables] table exists name=%s", s.name)
				continue
			}
			log.Printf("[dynamodb][tables] create failed name=%s err=%v", s.name, err)
			return err
		}
		log.Printf("[dynamodb][tables] table created name=%s", s.name)
	}
	return seedProposalCounter(ctx, ddb, t.Counters)
}

// seedProposalCounter makes the first issued apolice_id firstProposalID. An
// existing counter is never reset.
func seedProposalCounter(ctx context.Context, ddb *dynamodb.Client, table string) error {
	waiter := dynamodb.NewTableExistsWaiter(ddb)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, time.Minute); err != nil {
		return err
	}
	_, err := ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: proposalCounterName},
			"seq":  &types.AttributeValueMemberN{Value: strconv.FormatInt(firstProposalID-1, 10)},
		},
		ConditionExpression:      aws.String("attribute_not_exists(#name)"),
		ExpressionAttributeNames: map[string]string{"#name": "name"},
	})
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return nil
	}
	if err != nil {
		log.Printf("[dynamodb][tables] counter seed failed table=%s err=%v", table, err)
		return err
	}
	log.Printf("[dynamodb][tables] counter seeded table=%s first_id=%d", table, firstProposalID)
	return nil
}
