// Package archive keeps an off-site copy of submitted bills in DynamoDB.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/autospa/autospa-api/internal/config"
	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultTableName = "autospa_bills"

// PutItemAPI is the part of the DynamoDB client the archive uses
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type lineItem struct {
	ID       string `dynamodbav:"id"`
	Type     string `dynamodbav:"type"`
	Code     string `dynamodbav:"code"`
	Name     string `dynamodbav:"name"`
	Price    int64  `dynamodbav:"price"`
	Quantity int    `dynamodbav:"quantity"`
	Discount int64  `dynamodbav:"discount"`
	Total    int64  `dynamodbav:"total"`
}

// billItem is the stored form. Amounts are paise and discounts basis points;
// payload holds the bill in its JSON submission shape.
type billItem struct {
	ID            string     `dynamodbav:"id"`
	VehicleNumber string     `dynamodbav:"vehicle_number"`
	CustomerName  string     `dynamodbav:"customer_name,omitempty"`
	Mobile        string     `dynamodbav:"mobile,omitempty"`
	PaymentMethod string     `dynamodbav:"payment_method"`
	SubTotal      int64      `dynamodbav:"sub_total"`
	Discount      int64      `dynamodbav:"discount"`
	Total         int64      `dynamodbav:"total"`
	BilledAt      string     `dynamodbav:"billed_at"`
	ArchivedAt    string     `dynamodbav:"archived_at"`
	Items         []lineItem `dynamodbav:"items"`
	Payload       string     `dynamodbav:"payload"`
}

// DynamoBillArchive writes each bill once; a second write of the same id is
// ignored.
type DynamoBillArchive struct {
	ddb       PutItemAPI
	tableName string
	now       func() time.Time
}

var _ repository.BillArchive = (*DynamoBillArchive)(nil)

// NewDynamoBillArchive creates an archive writing to tableName
func NewDynamoBillArchive(ddb PutItemAPI, tableName string) *DynamoBillArchive {
	if tableName == "" {
		tableName = defaultTableName
	}
	return &DynamoBillArchive{ddb: ddb, tableName: tableName, now: time.Now}
}

// NewClient builds a DynamoDB client from the archive settings. Static
// credentials are used when both keys are set; otherwise the default AWS
// chain applies.
func NewClient(ctx context.Context, cfg config.ArchiveConfig) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// Archive implements repository.BillArchive
func (a *DynamoBillArchive) Archive(ctx context.Context, bill *billing.Bill) error {
	av, err := attributevalue.MarshalMap(a.toItem(bill))
	if err != nil {
		return fmt.Errorf("marshal bill %s: %w", bill.ID, err)
	}

	_, err = a.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(a.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	var conflict *types.ConditionalCheckFailedException
	if errors.As(err, &conflict) {
		return nil
	}
	return err
}

func (a *DynamoBillArchive) toItem(bill *billing.Bill) billItem {
	payload, _ := json.Marshal(bill)
	it := billItem{
		ID:            bill.ID,
		VehicleNumber: bill.Customer.VehicleNumber,
		CustomerName:  bill.Customer.Name,
		Mobile:        bill.Customer.Mobile,
		PaymentMethod: bill.PaymentMethod.String(),
		SubTotal:      int64(bill.SubTotal),
		Discount:      int64(bill.OverallDiscountPercent),
		Total:         int64(bill.GrandTotal),
		BilledAt:      bill.CreatedAt.UTC().Format(time.RFC3339),
		ArchivedAt:    a.now().UTC().Format(time.RFC3339),
		Items:         make([]lineItem, 0, len(bill.Items)),
		Payload:       string(payload),
	}
	for _, line := range bill.Items {
		it.Items = append(it.Items, lineItem{
			ID:       line.ID,
			Type:     line.Kind.String(),
			Code:     line.Code,
			Name:     line.Name,
			Price:    int64(line.UnitPrice),
			Quantity: line.Quantity,
			Discount: int64(line.DiscountPercent),
			Total:    int64(line.LineTotal),
		})
	}
	return it
}
