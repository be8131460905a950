package resumes_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/talonhq/talon/internal/resumes"
)

func TestExtract(t *testing.T) {
	rawText := "Python and Docker enthusiast.\n" +
		"2020 - 2022\nAcme Corp\nBuilt a billing service.\n" +
		"Bachelor of Science, MIT\n"

	got := resumes.Extract(rawText)

	want := resumes.ParsedContent{
		Skills: []string{"python", "docker"},
		Experience: []resumes.Experience{
			{
				Title:       "Position",
				Company:     "Acme Corp",
				Duration:    "2020 - 2022",
				Description: "Acme Corp\nBuilt a billing service.\nBachelor of Science, MIT",
			},
		},
		Education: []resumes.Education{
			{Degree: "Bachelor Degree", Institution: "University"},
		},
		Projects: []resumes.Project{
			{
				Name:         "Project",
				Description:  "2020 - 2022\nAcme Corp\nBuilt a billing service",
				Technologies: []string{},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNoSignals(t *testing.T) {
	got := resumes.Extract("A plain paragraph with nothing recognizable in it")

	if len(got.Skills) != 0 {
		t.Errorf("Skills = %v, want empty", got.Skills)
	}
	if len(got.Experience) != 0 {
		t.Errorf("Experience = %v, want empty", got.Experience)
	}
	if len(got.Education) != 0 {
		t.Errorf("Education = %v, want empty", got.Education)
	}
	if len(got.Projects) != 0 {
		t.Errorf("Projects = %v, want empty", got.Projects)
	}
}

func TestExtractExperienceCapped(t *testing.T) {
	text := "2014 - 2015\nA\n2016 - 2017\nB\n2018 - 2019\nC\n2020 - present\nD\n"

	got := resumes.Extract(text)

	if len(got.Experience) != 3 {
		t.Fatalf("len(Experience) = %d, want 3", len(got.Experience))
	}
	if got.Experience[0].Duration != "2014 - 2015" {
		t.Errorf("Experience[0].Duration = %q, want %q", got.Experience[0].Duration, "2014 - 2015")
	}
	if got.Experience[2].Duration != "2018 - 2019" {
		t.Errorf("Experience[2].Duration = %q, want %q", got.Experience[2].Duration, "2018 - 2019")
	}
}

func TestBuildSearchText(t *testing.T) {
	t.Run("combines name, text, and skills", func(t *testing.T) {
		got := resumes.BuildSearchText("resume.pdf", "some raw text", []string{"python", "aws"})

		want := "resume.pdf some raw text python aws"
		if got != want {
			t.Errorf("BuildSearchText() = %q, want %q", got, want)
		}
	})

	t.Run("bounded length", func(t *testing.T) {
		long := strings.Repeat("x", 5000)
		got := resumes.BuildSearchText("resume.pdf", long, nil)

		if len(got) != 2000 {
			t.Errorf("len = %d, want 2000", len(got))
		}
	})

	t.Run("never splits a rune at the bound", func(t *testing.T) {
		raw := strings.Repeat("é", 1200)
		for pad := 1980; pad < 2000; pad++ {
			got := resumes.BuildSearchText(strings.Repeat("a", pad), raw, nil)

			if !utf8.ValidString(got) {
				t.Fatalf("pad %d: result is not valid UTF-8 (len=%d)", pad, len(got))
			}
			if len(got) > 2000 {
				t.Fatalf("pad %d: len = %d, want <= 2000", pad, len(got))
			}
		}
	})
}
