package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/matchclub-api/internal/domain"
)

// MatchRepo provides typed DynamoDB operations for the matches table.
// PK: match_id, with an email-index GSI for per-member listing.
type MatchRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMatchRepo(client *dynamodb.Client, tableName string) *MatchRepo {
	return &MatchRepo{client: client, tableName: tableName}
}

func (r *MatchRepo) Put(ctx context.Context, m *domain.Match) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal match: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *MatchRepo) ListByEmail(ctx context.Context, email string) ([]domain.Match, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("email-index"),
		KeyConditionExpression: aws.String("#e = :v"),
		ExpressionAttributeNames: map[string]string{"#e": "email"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, err
	}
	var matches []domain.Match
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}
