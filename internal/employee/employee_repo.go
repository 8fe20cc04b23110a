package employee

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, emp *Employee) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindPage(ctx context.Context, keyword string, page, pageSize int) ([]Employee, int64, error)
	FindMatching(ctx context.Context, query string) ([]Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{col: db.Collection("employees")}
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, EmployeeIndexes)
	return err
}

// keywordFilter builds the shared multi-field filter: case-insensitive
// regex OR across the five searchable text fields. An empty keyword
// matches everything.
func keywordFilter(keyword string) bson.M {
	if keyword == "" {
		return bson.M{}
	}

	pattern := primitive.Regex{Pattern: keyword, Options: "i"}
	return bson.M{
		"$or": bson.A{
			bson.M{"firstName": pattern},
			bson.M{"lastName": pattern},
			bson.M{"email": pattern},
			bson.M{"department": pattern},
			bson.M{"position": pattern},
		},
	}
}

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, emp)
	return err
}

func (r *repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Employee, error) {
	var emp Employee
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&emp)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var emp Employee
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&emp)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// FindPage returns one page of the newest-first result set plus the
// total match count, both computed from the same filter. The count and
// the fetch are separate queries; eventual consistency between them is
// acceptable.
func (r *repository) FindPage(ctx context.Context, keyword string, page, pageSize int) ([]Employee, int64, error) {
	filter := keywordFilter(keyword)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(pageSize * (page - 1))).
		SetLimit(int64(pageSize))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	employees := []Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *repository) FindMatching(ctx context.Context, query string) ([]Employee, error) {
	cursor, err := r.col.Find(ctx, keywordFilter(query))
	if err != nil {
		return nil, err
	}

	employees := []Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	emp.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": emp.ID}, emp)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
