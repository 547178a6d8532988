package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ErolGelbul/imbd-tracker/movie"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MovieRepository implements movie.Repository on a DynamoDB table keyed by
// the movie id. Title lookups scan the table with a filter.
type MovieRepository struct {
	client *dynamodb.Client
	table  string
	now    func() time.Time
}

// movieItem is the stored item. Seq records when the id was first written
// and orders title lookups.
type movieItem struct {
	ID          string `dynamodbav:"id"`
	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description"`
	ReleaseYear int    `dynamodbav:"release_year"`
	Watched     bool   `dynamodbav:"watched"`
	Seq         int64  `dynamodbav:"seq"`
}

func (i movieItem) toMovie() movie.Movie {
	return movie.Movie{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		ReleaseYear: i.ReleaseYear,
		Watched:     i.Watched,
	}
}

func NewMovieRepository(client *dynamodb.Client, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// EnsureTable creates the movies table when it does not exist yet.
func (r *MovieRepository) EnsureTable(ctx context.Context) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &r.table})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("dynamodb: describe movies table: %w", err)
	}

	_, err = r.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: &r.table,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: create movies table: %w", err)
	}

	waiter := dynamodb.NewTableExistsWaiter(r.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: &r.table}, time.Minute); err != nil {
		return fmt.Errorf("dynamodb: wait for movies table: %w", err)
	}
	return nil
}

// Create replaces every attribute of the movie but keeps seq of an existing item.
func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	values, err := attributevalue.MarshalMap(map[string]interface{}{
		":title":        m.Title,
		":description":  m.Description,
		":release_year": m.ReleaseYear,
		":watched":      m.Watched,
		":seq":          r.now().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: marshal movie: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &r.table,
		Key:       movieKey(m.ID),
		UpdateExpression: aws.String("SET #title = :title, #description = :description, " +
			"#release_year = :release_year, #watched = :watched, #seq = if_not_exists(#seq, :seq)"),
		ExpressionAttributeNames: map[string]string{
			"#title":        "title",
			"#description":  "description",
			"#release_year": "release_year",
			"#watched":      "watched",
			"#seq":          "seq",
		},
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: put movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            movieKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: get movie: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}

	m := item.toMovie()
	return &m, nil
}

// GetByTitle scans with a server-side filter; skip and limit are applied to
// the filtered items after ordering them by first write.
func (r *MovieRepository) GetByTitle(ctx context.Context, title string, skip, limit int) ([]movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	var items []movieItem
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                &r.table,
		FilterExpression:         aws.String("#title = :title"),
		ExpressionAttributeNames: map[string]string{"#title": "title"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":title": &types.AttributeValueMemberS{Value: title},
		},
		ConsistentRead: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan movies: %w", err)
		}

		var page []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		items = append(items, page...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Seq < items[j].Seq
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []movie.Movie{}, nil
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	movies := make([]movie.Movie, len(items))
	for i, item := range items {
		movies[i] = item.toMovie()
	}
	return movies, nil
}

// Update sets the listed attributes on an existing item only.
func (r *MovieRepository) Update(ctx context.Context, id string, changes movie.Changes) error {
	if err := validateTable(r.table); err != nil {
		return err
	}
	if err := changes.Validate(); err != nil {
		return err
	}

	names := map[string]string{"#id": "id"}
	values := map[string]types.AttributeValue{}
	var sets []string
	for field, value := range changes.Known() {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("dynamodb: marshal %s: %w", field, err)
		}
		names["#"+string(field)] = string(field)
		values[":"+string(field)] = av
		sets = append(sets, fmt.Sprintf("#%s = :%s", field, field))
	}

	if len(sets) == 0 {
		m, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return movie.ErrMovieNotFound(id)
		}
		return nil
	}
	sort.Strings(sets)

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &r.table,
		Key:                       movieKey(id),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return movie.ErrMovieNotFound(id)
		}
		return fmt.Errorf("dynamodb: update movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key:       movieKey(id),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: delete movie: %w", err)
	}
	return nil
}

func movieKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}
