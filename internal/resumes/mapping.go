package resumes

import (
	"encoding/json"
	"net/url"

	"github.com/talonhq/talon/pkg/query"
	"github.com/talonhq/talon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "resumes", "r").
	Project("id", "ID").
	Project("file_name", "FileName").
	Project("original_name", "OriginalName").
	Project("file_size", "FileSize").
	Project("mime_type", "MimeType").
	Project("uploaded_by", "UploadedBy").
	Project("raw_text", "RawText").
	Project("parsed_content", "ParsedContent").
	Project("parse_status", "ParseStatus").
	Project("parsed_by", "ParsedBy").
	Project("parsed_at", "ParsedAt").
	Project("parse_edits", "ParseEdits").
	Project("processing_status", "ProcessingStatus").
	Project("processing_error", "ProcessingError").
	Project("processing_started_at", "ProcessingStartedAt").
	Project("processing_completed_at", "ProcessingCompletedAt").
	Project("evaluation_id", "EvaluationID").
	Project("status", "Status").
	Project("search_text", "SearchText").
	Project("tags", "Tags").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

const resumeColumns = `id, file_name, original_name, file_size, mime_type,
		uploaded_by, raw_text, parsed_content, parse_status, parsed_by,
		parsed_at, parse_edits, processing_status, processing_error,
		processing_started_at, processing_completed_at, evaluation_id,
		status, search_text, tags, created_at, updated_at`

// Filters contains optional filtering criteria for resume queries.
// Nil fields are ignored. Statuses and UploadedBy use exact matching.
// OriginalName uses case-insensitive contains matching.
type Filters struct {
	OriginalName     *string           `json:"original_name,omitempty"`
	Status           *Status           `json:"status,omitempty"`
	ParseStatus      *ParseStatus      `json:"parse_status,omitempty"`
	ProcessingStatus *ProcessingStatus `json:"processing_status,omitempty"`
	UploadedBy       *string           `json:"uploaded_by,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("OriginalName", f.OriginalName).
		WhereEquals("Status", f.Status).
		WhereEquals("ParseStatus", f.ParseStatus).
		WhereEquals("ProcessingStatus", f.ProcessingStatus).
		WhereEquals("UploadedBy", f.UploadedBy)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("original_name"); n != "" {
		f.OriginalName = &n
	}

	if s := values.Get("status"); s != "" {
		status := Status(s)
		f.Status = &status
	}

	if p := values.Get("parse_status"); p != "" {
		status := ParseStatus(p)
		f.ParseStatus = &status
	}

	if p := values.Get("processing_status"); p != "" {
		status := ProcessingStatus(p)
		f.ProcessingStatus = &status
	}

	if u := values.Get("uploaded_by"); u != "" {
		f.UploadedBy = &u
	}

	return f
}

func scanResume(s repository.Scanner) (Resume, error) {
	var (
		r       Resume
		content []byte
		edits   []byte
		tags    []byte
	)

	err := s.Scan(
		&r.ID,
		&r.FileName,
		&r.OriginalName,
		&r.FileSize,
		&r.MimeType,
		&r.UploadedBy,
		&r.RawText,
		&content,
		&r.ParseStatus,
		&r.ParsedBy,
		&r.ParsedAt,
		&edits,
		&r.ProcessingStatus,
		&r.ProcessingError,
		&r.ProcessingStartedAt,
		&r.ProcessingCompletedAt,
		&r.EvaluationID,
		&r.Status,
		&r.SearchText,
		&tags,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return r, err
	}

	if len(content) > 0 {
		if err := json.Unmarshal(content, &r.ParsedContent); err != nil {
			return r, err
		}
	}
	if len(edits) > 0 {
		if err := json.Unmarshal(edits, &r.ParseEdits); err != nil {
			return r, err
		}
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &r.Tags); err != nil {
			return r, err
		}
	}

	return r, nil
}
