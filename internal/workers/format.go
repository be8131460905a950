package workers

import (
	"fmt"
	"strings"

	"github.com/talonhq/talon/internal/resumes"
)

// FormatResumeText renders parsed content as the sectioned plain text the
// scoring model receives.
func FormatResumeText(content resumes.ParsedContent) string {
	var b strings.Builder

	b.WriteString("SKILLS:\n")
	b.WriteString(strings.Join(content.Skills, ", "))

	b.WriteString("\n\nEXPERIENCE:\n")
	entries := make([]string, 0, len(content.Experience))
	for _, exp := range content.Experience {
		entry := fmt.Sprintf("%s at %s (%s)", exp.Title, exp.Company, exp.Duration)
		if exp.Description != "" {
			entry += "\n" + exp.Description
		}
		entries = append(entries, entry)
	}
	b.WriteString(strings.Join(entries, "\n\n"))

	b.WriteString("\n\nEDUCATION:\n")
	entries = entries[:0]
	for _, edu := range content.Education {
		entries = append(entries, fmt.Sprintf("%s from %s", edu.Degree, edu.Institution))
	}
	b.WriteString(strings.Join(entries, "\n"))

	b.WriteString("\n\nPROJECTS:\n")
	entries = entries[:0]
	for _, proj := range content.Projects {
		entry := fmt.Sprintf("%s: %s", proj.Name, proj.Description)
		if len(proj.Technologies) > 0 {
			entry += "\nTechnologies: " + strings.Join(proj.Technologies, ", ")
		}
		entries = append(entries, entry)
	}
	b.WriteString(strings.Join(entries, "\n\n"))

	return strings.TrimSpace(b.String())
}
