package hiringforms

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/talonhq/talon/pkg/query"
	"github.com/talonhq/talon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "hiring_forms", "f").
	Project("id", "ID").
	Project("title", "Title").
	Project("industry", "Industry").
	Project("requirements", "Requirements").
	Project("evaluation_categories", "EvaluationCategories").
	Project("cutoff_threshold", "CutoffThreshold").
	Project("auto_shortlist_threshold", "AutoShortlistThreshold").
	Project("interview_stages", "InterviewStages").
	Project("active", "Active").
	Project("usage_count", "UsageCount").
	Project("last_used_at", "LastUsedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Title",
}

const formColumns = `id, title, industry, requirements, evaluation_categories,
		cutoff_threshold, auto_shortlist_threshold, interview_stages,
		active, usage_count, last_used_at, created_at, updated_at`

// Filters contains optional filtering criteria for hiring form queries.
// Nil fields are ignored. Industry and Active use exact matching.
// Title uses case-insensitive contains matching.
type Filters struct {
	Title    *string `json:"title,omitempty"`
	Industry *string `json:"industry,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Title", f.Title).
		WhereEquals("Industry", f.Industry).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	if i := values.Get("industry"); i != "" {
		f.Industry = &i
	}

	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}

	return f
}

func scanForm(s repository.Scanner) (HiringForm, error) {
	var (
		f          HiringForm
		categories []byte
	)

	err := s.Scan(
		&f.ID,
		&f.Title,
		&f.Industry,
		&f.Requirements,
		&categories,
		&f.CutoffThreshold,
		&f.AutoShortlistThreshold,
		&f.InterviewStages,
		&f.Active,
		&f.UsageCount,
		&f.LastUsedAt,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return f, err
	}

	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &f.EvaluationCategories); err != nil {
			return f, err
		}
	}

	return f, nil
}
