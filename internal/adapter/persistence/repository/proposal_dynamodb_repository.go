package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	proposalCounterName   = "proposals"
	firstProposalID       = 501
	proposalCustomerIndex = "cpf_cliente-index"
)

type proposalItem struct {
	ApoliceID          int64             `dynamodbav:"apolice_id"`
	IDSeguro           int               `dynamodbav:"id_seguro"`
	CPFCliente         string            `dynamodbav:"cpf_cliente"`
	DesUsuario         string            `dynamodbav:"des_usuario"`
	ProdutoNome        string            `dynamodbav:"produto_nome"`
	ProdutoSegurado    string            `dynamodbav:"produto_segurado"`
	VlrProdutoSegurado *string           `dynamodbav:"vlr_produto_segurado,omitempty"`
	PremioBruto        string            `dynamodbav:"premio_bruto"`
	Parcelas           int               `dynamodbav:"parcelas"`
	VlrParcela         string            `dynamodbav:"vlr_parcela"`
	Status             string            `dynamodbav:"status"`
	Placa              string            `dynamodbav:"placa,omitempty"`
	IMEI               string            `dynamodbav:"imei,omitempty"`
	CIB                string            `dynamodbav:"cib,omitempty"`
	Detalhes           map[string]string `dynamodbav:"detalhes,omitempty"`
	CreatedAt          string            `dynamodbav:"created_at"`
	UpdatedAt          string            `dynamodbav:"updated_at"`
}

// ProposalDynamoRepository persists Proposal entities in DynamoDB.
//
// Table requirements:
//   - proposals: PK apolice_id (number), GSI cpf_cliente-index on cpf_cliente
//   - counters: PK name (string), numeric attribute seq
//
// apolice_id comes from an atomic ADD on the counters table, so ids are unique
// and increasing even with several API replicas.

type ProposalDynamoRepository struct {
	ddb           *dynamodb.Client
	tableName     string
	countersTable string
}

var _ interfaces.IProposalRepository = (*ProposalDynamoRepository)(nil)

func NewProposalDynamoRepository(ddb *dynamodb.Client, tableName, countersTable string) *ProposalDynamoRepository {
	return &ProposalDynamoRepository{
		ddb:           ddb,
		tableName:     tableName,
		countersTable: countersTable,
	}
}

func (r *ProposalDynamoRepository) nextID(ctx context.Context) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.countersTable),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: proposalCounterName},
		},
		UpdateExpression:          aws.String("ADD #seq :one"),
		ExpressionAttributeNames:  map[string]string{"#seq": "seq"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	seq, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("counter: missing seq attribute")
	}
	return strconv.ParseInt(seq.Value, 10, 64)
}

func (r *ProposalDynamoRepository) Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return entities.Proposal{}, fmt.Errorf("proposal: next id: %w", err)
	}
	p.ApoliceID = id

	av, err := attributevalue.MarshalMap(toProposalItem(p))
	if err != nil {
		return entities.Proposal{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "apolice_id",
		},
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalDynamoRepository) GetByID(ctx context.Context, apoliceID int64) (entities.Proposal, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            proposalKey(apoliceID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	if len(out.Item) == 0 {
		return entities.Proposal{}, nil
	}

	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

func (r *ProposalDynamoRepository) List(ctx context.Context) ([]entities.Proposal, error) {
	return r.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
}

func (r *ProposalDynamoRepository) ListByStatus(ctx context.Context, status entities.ProposalStatus) ([]entities.Proposal, error) {
	return r.scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          aws.String("#status = :status"),
		ExpressionAttributeNames:  map[string]string{"#status": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":status": &types.AttributeValueMemberS{Value: string(status)}},
	})
}

func (r *ProposalDynamoRepository) ListByCustomer(ctx context.Context, cpf string) ([]entities.Proposal, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(proposalCustomerIndex),
		KeyConditionExpression:    aws.String("#cpf = :cpf"),
		ExpressionAttributeNames:  map[string]string{"#cpf": "cpf_cliente"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":cpf": &types.AttributeValueMemberS{Value: cpf}},
	})

	var out []entities.Proposal
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items, err := unmarshalProposals(page.Items)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	sortProposals(out)
	return out, nil
}

func (r *ProposalDynamoRepository) scan(ctx context.Context, in *dynamodb.ScanInput) ([]entities.Proposal, error) {
	p := dynamodb.NewScanPaginator(r.ddb, in)

	var out []entities.Proposal
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items, err := unmarshalProposals(page.Items)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	sortProposals(out)
	return out, nil
}

// UpdateStatus moves a pending proposal to status and records any discriminant
// given. A zero Proposal means the id does not exist.
func (r *ProposalDynamoRepository) UpdateStatus(ctx context.Context, apoliceID int64, status entities.ProposalStatus, d entities.Discriminants) (entities.Proposal, error) {
	current, err := r.GetByID(ctx, apoliceID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if current.ApoliceID == 0 {
		return entities.Proposal{}, nil
	}

	expr, values, names := statusUpdateExpression(status, d, formatTime(time.Now()))

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       proposalKey(apoliceID),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "apolice_id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Proposal{}, interfaces.ErrProposalStatusConflict
		}
		return entities.Proposal{}, err
	}

	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

func statusUpdateExpression(status entities.ProposalStatus, d entities.Discriminants, now string) (string, map[string]types.AttributeValue, map[string]string) {
	expr := "SET #status = :status, #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":pending":    &types.AttributeValueMemberS{Value: string(entities.ProposalStatusPendente)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}

	for _, f := range []struct{ attr, value string }{
		{"placa", d.Placa},
		{"imei", d.IMEI},
		{"cib", d.CIB},
	} {
		if f.value == "" {
			continue
		}
		expr += fmt.Sprintf(", #%s = :%s", f.attr, f.attr)
		values[":"+f.attr] = &types.AttributeValueMemberS{Value: f.value}
		names["#"+f.attr] = f.attr
	}
	return expr, values, names
}

func proposalKey(apoliceID int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"apolice_id": &types.AttributeValueMemberN{Value: formatInt(apoliceID)},
	}
}

func unmarshalProposals(items []map[string]types.AttributeValue) ([]entities.Proposal, error) {
	var its []proposalItem
	if err := attributevalue.UnmarshalListOfMaps(items, &its); err != nil {
		return nil, err
	}
	out := make([]entities.Proposal, 0, len(its))
	for _, it := range its {
		out = append(out, fromProposalItem(it))
	}
	return out, nil
}

func sortProposals(list []entities.Proposal) {
	sort.Slice(list, func(i, j int) bool { return list[i].ApoliceID < list[j].ApoliceID })
}

func toProposalItem(p entities.Proposal) proposalItem {
	var insured *string
	if p.VlrProdutoSegurado != nil {
		v := formatDecimal(*p.VlrProdutoSegurado)
		insured = &v
	}
	return proposalItem{
		ApoliceID:          p.ApoliceID,
		IDSeguro:           int(p.IDSeguro),
		CPFCliente:         p.CPFCliente,
		DesUsuario:         p.DesUsuario,
		ProdutoNome:        p.ProdutoNome,
		ProdutoSegurado:    p.ProdutoSegurado,
		VlrProdutoSegurado: insured,
		PremioBruto:        formatDecimal(p.PremioBruto),
		Parcelas:           p.Parcelas,
		VlrParcela:         formatDecimal(p.VlrParcela),
		Status:             string(p.Status),
		Placa:              p.Placa,
		IMEI:               p.IMEI,
		CIB:                p.CIB,
		Detalhes:           p.Detalhes,
		CreatedAt:          formatTime(p.CreatedAt),
		UpdatedAt:          formatTime(p.UpdatedAt),
	}
}

func fromProposalItem(it proposalItem) entities.Proposal {
	var insured *decimal.Decimal
	if it.VlrProdutoSegurado != nil {
		v := parseDecimal(*it.VlrProdutoSegurado)
		insured = &v
	}
	return entities.Proposal{
		ApoliceID:          it.ApoliceID,
		IDSeguro:           entities.ProductKind(it.IDSeguro),
		CPFCliente:         it.CPFCliente,
		DesUsuario:         it.DesUsuario,
		ProdutoNome:        it.ProdutoNome,
		ProdutoSegurado:    it.ProdutoSegurado,
		VlrProdutoSegurado: insured,
		PremioBruto:        parseDecimal(it.PremioBruto),
		Parcelas:           it.Parcelas,
		VlrParcela:         parseDecimal(it.VlrParcela),
		Status:             entities.ProposalStatus(it.Status),
		Placa:              it.Placa,
		IMEI:               it.IMEI,
		CIB:                it.CIB,
		Detalhes:           it.Detalhes,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}
