package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type employeeDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Phone      string             `bson:"phone"`
	Department string             `bson:"department"`
	Position   string             `bson:"position"`
	HireDate   time.Time          `bson:"hireDate"`
	Salary     float64            `bson:"salary"`
	Address    string             `bson:"address,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d *employeeDocument) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Department: domain.Department(d.Department),
		Position:   d.Position,
		HireDate:   d.HireDate.UTC(),
		Salary:     d.Salary,
		Address:    d.Address,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

type MongoRepository struct {
	coll         *mongo.Collection
	queryTimeout time.Duration
	now          func() time.Time
}

func NewMongoRepository(coll *mongo.Collection, queryTimeout time.Duration) *MongoRepository {
	return &MongoRepository{
		coll:         coll,
		queryTimeout: queryTimeout,
		// mongo 只保存到毫秒
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// EnsureIndexes 创建邮箱的唯一索引
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_1"),
	})
	return err
}

func (r *MongoRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := make([]employeeDocument, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	employees := make([]*domain.Employee, 0, len(docs))
	for i := range docs {
		employees = append(employees, docs[i].toDomain())
	}
	return employees, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// 非法的 ObjectID 一定不存在
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var doc employeeDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MongoRepository) Create(ctx context.Context, employee *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	now := r.now()
	doc := employeeDocument{
		ID:         primitive.NewObjectID(),
		Name:       employee.Name,
		Email:      employee.Email,
		Phone:      employee.Phone,
		Department: string(employee.Department),
		Position:   employee.Position,
		HireDate:   employee.HireDate,
		Salary:     employee.Salary,
		Address:    employee.Address,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, employee.Email)
		}
		return err
	}

	employee.ID = doc.ID.Hex()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, employee *domain.Employee) error {
	oid, err := primitive.ObjectIDFromHex(employee.ID)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: employee.Name},
		{Key: "email", Value: employee.Email},
		{Key: "phone", Value: employee.Phone},
		{Key: "department", Value: string(employee.Department)},
		{Key: "position", Value: employee.Position},
		{Key: "hireDate", Value: employee.HireDate},
		{Key: "salary", Value: employee.Salary},
		{Key: "address", Value: employee.Address},
		{Key: "updatedAt", Value: r.now()},
	}}}

	var doc employeeDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, employee.Email)
		default:
			return err
		}
	}

	*employee = *doc.toDomain()
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
