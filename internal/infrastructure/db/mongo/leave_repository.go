package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffhub/employee-system/internal/core/domain"
)

const leaveCollection = "leave_requests"

type MongoLeaveRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewLeaveRepository(db *mongo.Database) *MongoLeaveRepository {
	return &MongoLeaveRepository{
		coll:  db.Collection(leaveCollection),
		users: db.Collection(usersCollection),
	}
}

type mongoLeave struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id"`
	StartDate  int64              `bson:"start_date"`
	EndDate    int64              `bson:"end_date"`
	Reason     string             `bson:"reason"`
	Status     string             `bson:"status"`
	CreatedAt  int64              `bson:"created_at"`
	UpdatedAt  int64              `bson:"updated_at"`
}

func (ml *mongoLeave) toDomain() *domain.LeaveRequest {
	return &domain.LeaveRequest{
		ID:         ml.ID.Hex(),
		EmployeeID: ml.EmployeeID,
		StartDate:  unixToTime(ml.StartDate),
		EndDate:    unixToTime(ml.EndDate),
		Reason:     ml.Reason,
		Status:     domain.LeaveStatus(ml.Status),
		CreatedAt:  unixToTime(ml.CreatedAt),
		UpdatedAt:  unixToTime(ml.UpdatedAt),
	}
}

func (r *MongoLeaveRepository) Create(ctx context.Context, request *domain.LeaveRequest) (*domain.LeaveRequest, error) {
	doc := mongoLeave{
		EmployeeID: request.EmployeeID,
		StartDate:  request.StartDate.Unix(),
		EndDate:    request.EndDate.Unix(),
		Reason:     request.Reason,
		Status:     string(request.Status),
		CreatedAt:  request.CreatedAt.Unix(),
		UpdatedAt:  request.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert leave request: %w", err)
	}

	created := *request
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoLeaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeaveNotFound
	}

	var ml mongoLeave
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("find leave request: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *MongoLeaveRepository) FindByEmployee(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error) {
	return r.find(ctx, bson.M{"employee_id": employeeID}, false)
}

func (r *MongoLeaveRepository) FindAll(ctx context.Context) ([]domain.LeaveRequest, error) {
	return r.find(ctx, bson.M{}, true)
}

func (r *MongoLeaveRepository) UpdateStatus(ctx context.Context, id string, status domain.LeaveStatus) (*domain.LeaveRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeaveNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC().Unix(),
	}}
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ml mongoLeave
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, after).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("update leave status: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *MongoLeaveRepository) find(ctx context.Context, filter bson.M, withNames bool) ([]domain.LeaveRequest, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer cur.Close(ctx)

	requests := make([]domain.LeaveRequest, 0)
	for cur.Next(ctx) {
		var ml mongoLeave
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode leave request: %w", err)
		}
		req := ml.toDomain()
		if withNames {
			req.EmployeeName = r.employeeName(ctx, ml.EmployeeID)
		}
		requests = append(requests, *req)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return requests, nil
}

// employeeName resolves the requester's display name for the admin listing.
// A request whose account was deleted keeps an empty name instead of failing
// the whole listing.
func (r *MongoLeaveRepository) employeeName(ctx context.Context, employeeID string) string {
	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return ""
	}
	var doc struct {
		Name string `bson:"name"`
	}
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return ""
	}
	return doc.Name
}
