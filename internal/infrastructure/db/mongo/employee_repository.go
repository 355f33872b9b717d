package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffhub/employee-system/internal/core/domain"
)

const employeesCollection = "employees"

type MongoEmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *MongoEmployeeRepository {
	return &MongoEmployeeRepository{coll: db.Collection(employeesCollection)}
}

type mongoEmployee struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Skills       []string           `bson:"skills,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (me *mongoEmployee) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:           me.ID.Hex(),
		Name:         me.Name,
		Email:        me.Email,
		PasswordHash: me.PasswordHash,
		Role:         me.Role,
		Skills:       me.Skills,
		CreatedAt:    unixToTime(me.CreatedAt),
		UpdatedAt:    unixToTime(me.UpdatedAt),
	}
}

func fromDomainEmployee(e *domain.Employee) mongoEmployee {
	return mongoEmployee{
		Name:         e.Name,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		Role:         e.Role,
		Skills:       e.Skills,
		CreatedAt:    e.CreatedAt.Unix(),
		UpdatedAt:    e.UpdatedAt.Unix(),
	}
}

func (r *MongoEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	doc := fromDomainEmployee(employee)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmployeeExists
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	created := *employee
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoEmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	var me mongoEmployee
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return me.toDomain(), nil
}

func (r *MongoEmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var me mongoEmployee
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	return me.toDomain(), nil
}

func (r *MongoEmployeeRepository) FindAll(ctx context.Context) ([]domain.Employee, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	employees := make([]domain.Employee, 0)
	for cur.Next(ctx) {
		var me mongoEmployee
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		employees = append(employees, *me.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (r *MongoEmployeeRepository) Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(employee.ID)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	doc := fromDomainEmployee(employee)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmployeeExists
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEmployeeNotFound
	}
	return employee, nil
}

func (r *MongoEmployeeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmployeeNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}
