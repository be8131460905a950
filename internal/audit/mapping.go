package audit

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/talonhq/talon/pkg/query"
	"github.com/talonhq/talon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "audit_log", "a").
	Project("id", "ID").
	Project("actor_id", "ActorID").
	Project("actor_email", "ActorEmail").
	Project("actor_role", "ActorRole").
	Project("action", "Action").
	Project("entity_type", "EntityType").
	Project("entity_id", "EntityID").
	Project("entity_name", "EntityName").
	Project("before", "Before").
	Project("after", "After").
	Project("reason", "Reason").
	Project("reason_category", "ReasonCategory").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for audit queries.
// Nil fields are ignored; all comparisons are exact matches.
type Filters struct {
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	Action     *Action    `json:"action,omitempty"`
	EntityType *string    `json:"entity_type,omitempty"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ActorID", f.ActorID).
		WhereEquals("Action", f.Action).
		WhereEquals("EntityType", f.EntityType).
		WhereEquals("EntityID", f.EntityID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("actor_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.ActorID = &id
		}
	}

	if v := values.Get("action"); v != "" {
		action := Action(v)
		f.Action = &action
	}

	if v := values.Get("entity_type"); v != "" {
		f.EntityType = &v
	}

	if v := values.Get("entity_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.EntityID = &id
		}
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var rec Record
	err := s.Scan(
		&rec.ID,
		&rec.ActorID,
		&rec.ActorEmail,
		&rec.ActorRole,
		&rec.Action,
		&rec.EntityType,
		&rec.EntityID,
		&rec.EntityName,
		&rec.Before,
		&rec.After,
		&rec.Reason,
		&rec.ReasonCategory,
		&rec.CreatedAt,
	)
	return rec, err
}
