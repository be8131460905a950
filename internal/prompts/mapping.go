package prompts

import (
	"net/url"
	"strconv"

	"github.com/talonhq/talon/pkg/query"
	"github.com/talonhq/talon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("name", "Name").
	Project("industry", "Industry").
	Project("system_prompt", "SystemPrompt").
	Project("version", "Version").
	Project("active", "Active").
	Project("is_default", "Default").
	Project("usage_count", "UsageCount").
	Project("last_used_at", "LastUsedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "Name"},
	{Field: "Version", Descending: true},
}

const promptColumns = `id, name, industry, system_prompt, version,
		active, is_default, usage_count, last_used_at, created_at, updated_at`

// Filters contains optional filtering criteria for prompt queries.
// Nil fields are ignored. Industry, Active, and Default use exact matching.
// Name uses case-insensitive contains matching.
type Filters struct {
	Name     *string `json:"name,omitempty"`
	Industry *string `json:"industry,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Default  *bool   `json:"default,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("Industry", f.Industry).
		WhereEquals("Active", f.Active).
		WhereEquals("Default", f.Default)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if i := values.Get("industry"); i != "" {
		f.Industry = &i
	}

	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}

	if d := values.Get("default"); d != "" {
		if v, err := strconv.ParseBool(d); err == nil {
			f.Default = &v
		}
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Industry,
		&p.SystemPrompt,
		&p.Version,
		&p.Active,
		&p.Default,
		&p.UsageCount,
		&p.LastUsedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
