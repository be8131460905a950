package oracle_test

import (
	"errors"
	"testing"

	"github.com/talonhq/talon/internal/oracle"
)

const validResponse = `{
	"candidate_name": "Jane Smith",
	"candidate_email": "jane@example.com",
	"score": 82.5,
	"confidence": 0.9,
	"explanation": "Strong match on core requirements.",
	"plain_language_summary": "Jane is a strong candidate.",
	"strengths": ["Go", "distributed systems"],
	"gaps": ["no Kubernetes"],
	"resume_quality_score": 75,
	"categories": [
		{
			"name": "Technical Skills",
			"score": 85,
			"reasoning": "Covers most of the stack.",
			"confidence": 0.95
		}
	],
	"evidence": [
		{
			"section": "experience",
			"text_excerpt": "built payment services in Go",
			"start_index": 120,
			"end_index": 149,
			"category": "Technical Skills",
			"relevance_score": 0.8
		}
	]
}`

func TestParse(t *testing.T) {
	resp, err := oracle.Parse(validResponse)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if resp.CandidateName != "Jane Smith" {
		t.Errorf("CandidateName = %q, want %q", resp.CandidateName, "Jane Smith")
	}
	if resp.Score != 82.5 {
		t.Errorf("Score = %v, want 82.5", resp.Score)
	}
	if resp.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", resp.Confidence)
	}
	if len(resp.Categories) != 1 {
		t.Fatalf("len(Categories) = %d, want 1", len(resp.Categories))
	}
	if resp.Categories[0].Name != "Technical Skills" {
		t.Errorf("Categories[0].Name = %q, want %q", resp.Categories[0].Name, "Technical Skills")
	}
	if len(resp.Evidence) != 1 {
		t.Fatalf("len(Evidence) = %d, want 1", len(resp.Evidence))
	}
	if resp.Evidence[0].RelevanceScore == nil || *resp.Evidence[0].RelevanceScore != 0.8 {
		t.Errorf("Evidence[0].RelevanceScore = %v, want 0.8", resp.Evidence[0].RelevanceScore)
	}
}

func TestParseFenceTolerant(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n" + validResponse + "\n```"},
		{"bare fence", "```\n" + validResponse + "\n```"},
		{"surrounding prose", "Here is the evaluation:\n" + validResponse + "\nLet me know if you need more."},
		{"leading whitespace", "\n\n  " + validResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := oracle.Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if resp.CandidateName != "Jane Smith" {
				t.Errorf("CandidateName = %q, want %q", resp.CandidateName, "Jane Smith")
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "the candidate looks great"},
		{"truncated json", `{"candidate_name": "Jane`},
		{"missing required fields", `{"candidate_name": "Jane Smith"}`},
		{"empty candidate name", `{"candidate_name": "", "score": 50, "confidence": 0.5,
			"explanation": "x", "plain_language_summary": "y", "categories": []}`},
		{"score out of range", `{"candidate_name": "Jane", "score": 140, "confidence": 0.5,
			"explanation": "x", "plain_language_summary": "y", "categories": []}`},
		{"confidence out of range", `{"candidate_name": "Jane", "score": 50, "confidence": 1.5,
			"explanation": "x", "plain_language_summary": "y", "categories": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := oracle.Parse(tt.raw)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, oracle.ErrMalformedResponse) {
				t.Errorf("error %v is not ErrMalformedResponse", err)
			}
		})
	}
}
