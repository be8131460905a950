// Package prompts implements the evaluation prompt domain for Talon.
// Prompts are versioned oracle instruction sets, optionally scoped to an
// industry. The evaluate worker resolves the effective prompt for a hiring
// form's industry at scoring time.
package prompts

import (
	"time"

	"github.com/google/uuid"
)

// Prompt represents a versioned oracle instruction set.
// Industry is nil for the default prompt pool.
type Prompt struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Industry     *string    `json:"industry,omitempty"`
	SystemPrompt string     `json:"system_prompt"`
	Version      int        `json:"version"`
	Active       bool       `json:"active"`
	Default      bool       `json:"default"`
	UsageCount   int        `json:"usage_count"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to create a new prompt version.
type CreateCommand struct {
	Name         string  `json:"name"`
	Industry     *string `json:"industry,omitempty"`
	SystemPrompt string  `json:"system_prompt"`
	Default      bool    `json:"default"`
}

// UpdateCommand carries the data needed to update an existing prompt.
type UpdateCommand struct {
	Name         string  `json:"name"`
	Industry     *string `json:"industry,omitempty"`
	SystemPrompt string  `json:"system_prompt"`
	Default      bool    `json:"default"`
}
