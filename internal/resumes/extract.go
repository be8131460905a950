package resumes

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Heuristic content extraction. This is the fallback structuring pass used
// when no oracle-backed parser is configured; reviewers correct its output
// through the parse edit workflow.

const searchTextLimit = 2000

var skillKeywords = []string{
	"javascript", "python", "react", "node.js", "aws", "docker",
	"mongodb", "sql", "java", "c++", "typescript", "git",
}

var (
	dateRangePattern = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4}|\w+)`)
	educationPattern = regexp.MustCompile(`(?i)(bachelor|master|phd|degree|diploma|certificate)`)
)

var projectKeywords = []string{
	"project", "developed", "built", "created", "implemented",
}

// Extract structures raw resume text into parsed content using keyword and
// pattern heuristics.
func Extract(rawText string) ParsedContent {
	return ParsedContent{
		Skills:     extractSkills(rawText),
		Experience: extractExperience(rawText),
		Education:  extractEducation(rawText),
		Projects:   extractProjects(rawText),
	}
}

// BuildSearchText combines the display name, raw text, and extracted skills
// into a bounded search field.
func BuildSearchText(originalName, rawText string, skills []string) string {
	combined := fmt.Sprintf("%s %s %s", originalName, rawText, strings.Join(skills, " "))
	if len(combined) > searchTextLimit {
		cut := searchTextLimit
		for cut > 0 && !utf8.RuneStart(combined[cut]) {
			cut--
		}
		combined = combined[:cut]
	}
	return combined
}

func extractSkills(text string) []string {
	lower := strings.ToLower(text)

	skills := make([]string, 0)
	for _, skill := range skillKeywords {
		if strings.Contains(lower, skill) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// extractExperience treats each year range as the start of an entry and the
// text up to the next year range as its description. The first line of the
// description doubles as the company name. Limited to the three most
// recent entries.
func extractExperience(text string) []Experience {
	matches := dateRangePattern.FindAllStringSubmatchIndex(text, -1)
	experiences := make([]Experience, 0, len(matches))

	for i, m := range matches {
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		from := text[m[2]:m[3]]
		to := text[m[4]:m[5]]
		description := strings.TrimSpace(text[start:end])

		company := "Unknown Company"
		if line, _, _ := strings.Cut(description, "\n"); strings.TrimSpace(line) != "" {
			company = strings.TrimSpace(line)
		}

		experiences = append(experiences, Experience{
			Title:       "Position",
			Company:     company,
			Duration:    fmt.Sprintf("%s - %s", from, to),
			Description: description,
		})

		if len(experiences) == 3 {
			break
		}
	}

	return experiences
}

func extractEducation(text string) []Education {
	match := educationPattern.FindString(text)
	if match == "" {
		return []Education{}
	}

	return []Education{{
		Degree:      match + " Degree",
		Institution: "University",
	}}
}

func extractProjects(text string) []Project {
	projects := make([]Project, 0)

	for _, sentence := range strings.Split(text, ".") {
		lower := strings.ToLower(sentence)

		matched := false
		for _, keyword := range projectKeywords {
			if strings.Contains(lower, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		projects = append(projects, Project{
			Name:         "Project",
			Description:  strings.TrimSpace(sentence),
			Technologies: extractSkills(sentence),
		})

		if len(projects) == 3 {
			break
		}
	}

	return projects
}
