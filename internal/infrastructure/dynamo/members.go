package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/matchclub-api/internal/domain"
)

// MemberRepo provides typed DynamoDB operations for the members table.
// The partition key is the normalized (uppercased) email; callers are
// expected to pass keys through domain.NormalizeEmail first.
type MemberRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMemberRepo(client *dynamodb.Client, tableName string) *MemberRepo {
	return &MemberRepo{client: client, tableName: tableName}
}

func (r *MemberRepo) Put(ctx context.Context, m *domain.Member) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal member: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *MemberRepo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("member %s: %w", email, domain.ErrNotFound)
	}
	var m domain.Member
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Update applies a partial field update. Concurrent updates to the same
// member race last-writer-wins; there is no condition expression on purpose.
func (r *MemberRepo) Update(ctx context.Context, email string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("email", email),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
