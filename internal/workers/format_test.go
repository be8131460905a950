package workers_test

import (
	"strings"
	"testing"

	"github.com/talonhq/talon/internal/resumes"
	"github.com/talonhq/talon/internal/workers"
)

func TestFormatResumeText(t *testing.T) {
	content := resumes.ParsedContent{
		Skills: []string{"python", "aws"},
		Experience: []resumes.Experience{
			{
				Title:       "Position",
				Company:     "Acme Corp",
				Duration:    "2020 - 2022",
				Description: "Built a billing service.",
			},
		},
		Education: []resumes.Education{
			{Degree: "Bachelor Degree", Institution: "University"},
		},
		Projects: []resumes.Project{
			{
				Name:         "Project",
				Description:  "Internal tooling",
				Technologies: []string{"python"},
			},
		},
	}

	got := workers.FormatResumeText(content)

	wantFragments := []string{
		"SKILLS:\npython, aws",
		"EXPERIENCE:\nPosition at Acme Corp (2020 - 2022)\nBuilt a billing service.",
		"EDUCATION:\nBachelor Degree from University",
		"PROJECTS:\nProject: Internal tooling\nTechnologies: python",
	}

	for _, fragment := range wantFragments {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q\n\ngot:\n%s", fragment, got)
		}
	}
}

func TestFormatResumeTextEmptySections(t *testing.T) {
	got := workers.FormatResumeText(resumes.ParsedContent{})

	for _, header := range []string{"SKILLS:", "EXPERIENCE:", "EDUCATION:", "PROJECTS:"} {
		if !strings.Contains(got, header) {
			t.Errorf("output missing section header %q", header)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("output has trailing whitespace")
	}
}
