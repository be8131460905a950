package api

import (
	"github.com/talonhq/talon/internal/audit"
	"github.com/talonhq/talon/internal/evaluations"
	"github.com/talonhq/talon/internal/hiringforms"
	"github.com/talonhq/talon/internal/oracle"
	"github.com/talonhq/talon/internal/prompts"
	"github.com/talonhq/talon/internal/resumes"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Audit       audit.System
	HiringForms hiringforms.System
	Prompts     prompts.System
	Resumes     resumes.System
	Evaluations evaluations.System
	Scorer      oracle.Scorer
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	auditSystem := audit.New(
		db,
		runtime.Logger,
		runtime.Pagination,
	)

	formsSystem := hiringforms.New(
		db,
		runtime.Logger,
		runtime.Pagination,
	)

	promptsSystem := prompts.New(
		db,
		runtime.Logger,
		runtime.Pagination,
	)

	resumesSystem := resumes.New(
		db,
		runtime.Logger,
		runtime.Pagination,
		runtime.Queue,
		auditSystem,
	)

	evaluationsSystem := evaluations.New(
		db,
		runtime.Logger,
		runtime.Pagination,
		runtime.Queue,
		auditSystem,
	)

	return &Domain{
		Audit:       auditSystem,
		HiringForms: formsSystem,
		Prompts:     promptsSystem,
		Resumes:     resumesSystem,
		Evaluations: evaluationsSystem,
		Scorer:      oracle.NewClient(runtime.Oracle, runtime.Logger),
	}
}
