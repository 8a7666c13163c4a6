package results

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PutItemAPI is the part of the DynamoDB client the sink needs.
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput,
		optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoDBSink puts one item per result into a table. The item has the
// attributes deck, solveable, score and time, plus nodes and finished.
type DynamoDBSink struct {
	client PutItemAPI
	table  string
}

func NewDynamoDBSink(ctx context.Context, region, table string) (*DynamoDBSink, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &DynamoDBSink{client: dynamodb.NewFromConfig(cfg), table: table}, nil
}

func NewDynamoDBSinkWithClient(client PutItemAPI, table string) *DynamoDBSink {
	return &DynamoDBSink{client: client, table: table}
}

func item(r *Result) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"deck":      &types.AttributeValueMemberS{Value: r.DealID},
		"solveable": &types.AttributeValueMemberBOOL{Value: r.Solvable},
		"score":     &types.AttributeValueMemberN{Value: strconv.Itoa(r.Score)},
		"time":      &types.AttributeValueMemberS{Value: r.Elapsed.String()},
		"nodes":     &types.AttributeValueMemberN{Value: strconv.FormatUint(r.Nodes, 10)},
		"finished":  &types.AttributeValueMemberS{Value: r.Finished.UTC().Format(timeLayout)},
	}
}

func (s *DynamoDBSink) Record(ctx context.Context, r *Result) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item(r),
	})
	return err
}

func (s *DynamoDBSink) Close() error {
	return nil
}
