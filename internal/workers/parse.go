package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talonhq/talon/internal/resumes"
	"github.com/talonhq/talon/pkg/queue"
)

// parseHandler structures a resume's raw text and moves it into human
// review. Failures are recorded on the resume before the job settles so
// the review queue never shows a silently stuck upload; a retry that
// succeeds overwrites the failure state.
func parseHandler(rt Runtime) queue.Handler {
	logger := rt.Logger.With("worker", "parse")

	return func(ctx context.Context, job *queue.Job) error {
		var payload resumes.ParseJob
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return queue.Permanent(fmt.Errorf("decode parse payload: %w", err))
		}

		logger.Info("parsing resume", "resume_id", payload.ResumeID, "attempt", job.Attempts)

		res, err := rt.Resumes.Find(ctx, payload.ResumeID)
		if err != nil {
			if errors.Is(err, resumes.ErrNotFound) {
				return queue.Permanent(err)
			}
			return fmt.Errorf("load resume: %w", err)
		}

		if res.RawText == nil || *res.RawText == "" {
			failResume(ctx, rt, logger, payload.ResumeID, resumes.ErrEmptyText)
			return queue.Permanent(resumes.ErrEmptyText)
		}

		content := resumes.Extract(*res.RawText)
		searchText := resumes.BuildSearchText(res.OriginalName, *res.RawText, content.Skills)

		if _, err := rt.Resumes.CompleteParse(ctx, payload.ResumeID, content, searchText); err != nil {
			failResume(ctx, rt, logger, payload.ResumeID, err)
			return fmt.Errorf("complete parse: %w", err)
		}

		logger.Info("resume parsed",
			"resume_id", payload.ResumeID,
			"skills", len(content.Skills),
			"experience", len(content.Experience),
		)
		return nil
	}
}

func failResume(ctx context.Context, rt Runtime, logger *slog.Logger, id uuid.UUID, cause error) {
	if err := rt.Resumes.FailParse(ctx, id, cause.Error()); err != nil {
		logger.Error("record parse failure", "resume_id", id, "error", err)
	}
}
