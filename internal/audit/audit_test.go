package audit_test

import (
	"testing"

	"github.com/talonhq/talon/internal/audit"
)

func TestReasonCategoryValid(t *testing.T) {
	valid := []audit.ReasonCategory{
		audit.ReasonSkillMismatch,
		audit.ReasonExperienceGap,
		audit.ReasonCultureFit,
		audit.ReasonIntegrityConcern,
		audit.ReasonOther,
	}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("%s.Valid() = false, want true", c)
		}
	}

	invalid := []audit.ReasonCategory{"", "budget", "SKILL_MISMATCH"}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("%q.Valid() = true, want false", c)
		}
	}
}
