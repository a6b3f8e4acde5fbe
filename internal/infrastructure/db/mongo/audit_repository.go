package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/majiflow/billing-gateway/internal/core/ports"
)

const auditCollection = "audit_events"

// AuditRepository persists security audit events (login attempts, guard
// denials, forced logouts). Implements ports.AuditRepository.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository binds the repository to the audit_events collection.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// Insert writes one audit event.
func (r *AuditRepository) Insert(ctx context.Context, event ports.AuditEvent) error {
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("audit insert: %w", err)
	}
	return nil
}
