package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffhub/employee-system/internal/core/domain"
)

const auditCollection = "audit_events"

// MongoAuditStore persists audit events append-only.
type MongoAuditStore struct {
	coll *mongo.Collection
}

func NewAuditStore(db *mongo.Database) *MongoAuditStore {
	return &MongoAuditStore{coll: db.Collection(auditCollection)}
}

type mongoAudit struct {
	ActorID   string `bson:"actor_id,omitempty"`
	Action    string `bson:"action"`
	Subject   string `bson:"subject,omitempty"`
	Detail    string `bson:"detail,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (s *MongoAuditStore) Append(ctx context.Context, event domain.AuditEvent) error {
	doc := mongoAudit{
		ActorID:   event.ActorID,
		Action:    event.Action,
		Subject:   event.Subject,
		Detail:    event.Detail,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
