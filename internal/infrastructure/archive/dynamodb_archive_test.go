package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	inputs []*dynamodb.PutItemInput
	err    error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.PutItemOutput{}, nil
}

func sampleBill() *billing.Bill {
	return &billing.Bill{
		ID:        "5f0c1d2e-0000-4000-8000-000000000001",
		CreatedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Customer:  billing.Customer{Name: "Ravi", VehicleNumber: "KA01AB1234"},
		Items: []billing.LineItem{
			{ID: "0", Kind: billing.KindCustom, Code: billing.CustomCode, Name: "Polish", UnitPrice: 50000, Quantity: 1, LineTotal: 50000},
		},
		SubTotal:      50000,
		GrandTotal:    50000,
		PaymentMethod: billing.PaymentUPI,
	}
}

func TestArchive_WritesConditionalPut(t *testing.T) {
	ddb := &fakeDynamo{}
	a := NewDynamoBillArchive(ddb, "")

	require.NoError(t, a.Archive(context.Background(), sampleBill()))
	require.Len(t, ddb.inputs, 1)

	in := ddb.inputs[0]
	assert.Equal(t, defaultTableName, aws.ToString(in.TableName))
	assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(in.ConditionExpression))

	id, ok := in.Item["id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "5f0c1d2e-0000-4000-8000-000000000001", id.Value)

	total, ok := in.Item["total"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "50000", total.Value)

	method := in.Item["payment_method"].(*types.AttributeValueMemberS)
	assert.Equal(t, "upi", method.Value)
}

func TestArchive_AlreadyArchivedIsNotAnError(t *testing.T) {
	ddb := &fakeDynamo{err: &types.ConditionalCheckFailedException{Message: aws.String("exists")}}
	a := NewDynamoBillArchive(ddb, "bills")

	assert.NoError(t, a.Archive(context.Background(), sampleBill()))
}

func TestArchive_PropagatesOtherErrors(t *testing.T) {
	boom := errors.New("throttled")
	a := NewDynamoBillArchive(&fakeDynamo{err: boom}, "bills")

	assert.ErrorIs(t, a.Archive(context.Background(), sampleBill()), boom)
}
