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

const projectsCollection = "projects"

type MongoProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{coll: db.Collection(projectsCollection)}
}

type mongoProject struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description,omitempty"`
	StartDate     int64              `bson:"start_date,omitempty"`
	EndDate       int64              `bson:"end_date,omitempty"`
	TeamMemberIDs []string           `bson:"team_member_ids,omitempty"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (mp *mongoProject) toDomain() *domain.Project {
	return &domain.Project{
		ID:            mp.ID.Hex(),
		Name:          mp.Name,
		Description:   mp.Description,
		StartDate:     unixToTime(mp.StartDate),
		EndDate:       unixToTime(mp.EndDate),
		TeamMemberIDs: mp.TeamMemberIDs,
		CreatedAt:     unixToTime(mp.CreatedAt),
		UpdatedAt:     unixToTime(mp.UpdatedAt),
	}
}

func fromDomainProject(p *domain.Project) mongoProject {
	doc := mongoProject{
		Name:          p.Name,
		Description:   p.Description,
		TeamMemberIDs: p.TeamMemberIDs,
		CreatedAt:     p.CreatedAt.Unix(),
		UpdatedAt:     p.UpdatedAt.Unix(),
	}
	if !p.StartDate.IsZero() {
		doc.StartDate = p.StartDate.Unix()
	}
	if !p.EndDate.IsZero() {
		doc.EndDate = p.EndDate.Unix()
	}
	return doc
}

func (r *MongoProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	doc := fromDomainProject(project)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProjectExists
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *project
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	var mp mongoProject
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoProjectRepository) FindAll(ctx context.Context) ([]domain.Project, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	projects := make([]domain.Project, 0)
	for cur.Next(ctx) {
		var mp mongoProject
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, *mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *MongoProjectRepository) Update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(project.ID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	doc := fromDomainProject(project)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProjectExists
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

func (r *MongoProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
