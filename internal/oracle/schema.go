package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const responseSchema = `{
	"type": "object",
	"required": ["candidate_name", "score", "confidence", "explanation",
		"plain_language_summary", "categories"],
	"properties": {
		"candidate_name": {"type": "string", "minLength": 1},
		"candidate_email": {"type": ["string", "null"]},
		"candidate_phone": {"type": ["string", "null"]},
		"score": {"type": "number", "minimum": 0, "maximum": 100},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"explanation": {"type": "string"},
		"plain_language_summary": {"type": "string"},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"gaps": {"type": "array", "items": {"type": "string"}},
		"risk_flags": {"type": "array", "items": {"type": "string"}},
		"integrity_signals": {"type": "array", "items": {"type": "string"}},
		"resume_quality_score": {"type": "number", "minimum": 0, "maximum": 100},
		"categories": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "score", "reasoning", "confidence"],
				"properties": {
					"name": {"type": "string"},
					"score": {"type": "number", "minimum": 0, "maximum": 100},
					"reasoning": {"type": "string"},
					"strengths": {"type": "array", "items": {"type": "string"}},
					"gaps": {"type": "array", "items": {"type": "string"}},
					"confidence": {"type": "number", "minimum": 0, "maximum": 1}
				}
			}
		},
		"evidence": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["section", "text_excerpt", "start_index", "end_index", "category"],
				"properties": {
					"section": {"type": "string"},
					"text_excerpt": {"type": "string"},
					"start_index": {"type": "integer", "minimum": 0},
					"end_index": {"type": "integer", "minimum": 0},
					"category": {"type": "string"},
					"relevance_score": {"type": ["number", "null"], "minimum": 0, "maximum": 1}
				}
			}
		}
	}
}`

var compiledSchema = jsonschema.MustCompileString("score.json", responseSchema)

// Parse cleans, validates, and decodes a raw model response. Markdown
// code fences and surrounding prose are tolerated; anything that fails
// schema validation maps to ErrMalformedResponse.
func Parse(raw string) (*ScoreResponse, error) {
	content := cleanResponse(raw)
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}

	var value any
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := compiledSchema.Validate(value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var resp ScoreResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &resp, nil
}

// cleanResponse strips markdown fences and trims to the outermost JSON
// object so fence-wrapped or prose-padded responses still parse.
func cleanResponse(content string) string {
	content = strings.TrimSpace(content)

	if after, ok := strings.CutPrefix(content, "```json"); ok {
		content = after
	} else if after, ok := strings.CutPrefix(content, "```"); ok {
		content = after
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		content = content[start : end+1]
	}

	return strings.TrimSpace(content)
}
