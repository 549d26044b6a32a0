// Package fields extracts structured resume data from plain text using
// heuristic pattern matching. Every field is best-effort: a missing match is
// an empty value, never an error.
package fields

import (
	"regexp"
	"strings"
)

// ResumeRecord is the structured output of field extraction.
type ResumeRecord struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Skills      []string `json:"skills"`
	Experience  []string `json:"experience"`
	Education   []string `json:"education"`
	RawText     string   `json:"raw_text"`
	ExtractedAt string   `json:"extracted_at,omitempty"`
}

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`\+?\(?\d[\d\-.\s()]{4,18}\d`)
	nameRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z .,'-]{1,59}$`)
)

const (
	minDigits = 7
	maxDigits = 15
)

// Parse extracts structured fields from resume text using DefaultVocabulary.
func Parse(text string) ResumeRecord {
	return ParseWithVocabulary(text, DefaultVocabulary)
}

// ParseWithVocabulary is Parse with an explicit skill vocabulary. It is a pure
// function: deterministic, no I/O.
func ParseWithVocabulary(text string, vocabulary []string) ResumeRecord {
	record := ResumeRecord{
		Skills:     []string{},
		Experience: []string{},
		Education:  []string{},
		RawText:    text,
	}
	if strings.TrimSpace(text) == "" {
		return record
	}

	record.Email = findEmail(text)
	record.Phone = findPhone(text)
	record.Name = findName(text)
	record.Skills = findSkills(text, vocabulary)
	record.Experience, record.Education = findSections(text)
	return record
}

func findEmail(text string) *string {
	if match := emailRe.FindString(text); match != "" {
		return &match
	}
	return nil
}

// findPhone returns the first digit run of plausible phone length (7-15 digits
// after separator stripping). Email local parts are masked out first so the
// digits of an address never count as a phone number.
func findPhone(text string) *string {
	masked := emailRe.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
	for _, candidate := range phoneRe.FindAllString(masked, -1) {
		digits := 0
		for _, r := range candidate {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= minDigits && digits <= maxDigits {
			trimmed := strings.TrimSpace(candidate)
			return &trimmed
		}
	}
	return nil
}

// findName scans the leading lines for something shaped like a person's name.
// This heuristic is unreliable by design: there is no confidence signal and the
// result may be wrong or absent.
func findName(text string) *string {
	for i, line := range strings.Split(text, "\n") {
		if i >= 10 {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.ContainsAny(trimmed, "@0123456789") {
			continue
		}
		if isSectionHeader(trimmed) != "" {
			continue
		}
		if nameRe.MatchString(trimmed) {
			return &trimmed
		}
	}
	return nil
}

func findSkills(text string, vocabulary []string) []string {
	lower := strings.ToLower(text)
	skills := []string{}
	for _, entry := range vocabulary {
		if strings.Contains(lower, strings.ToLower(entry)) {
			skills = append(skills, entry)
		}
	}
	return skills
}

// findSections groups lines under recognized "experience" and "education"
// headers. Lines between a recognized header and the next one (or end of text)
// belong to that header's section; everything else belongs to neither.
func findSections(text string) (experience, education []string) {
	experience = []string{}
	education = []string{}

	current := ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if section := isSectionHeader(trimmed); section != "" {
			current = section
			continue
		}
		switch current {
		case "experience":
			experience = append(experience, trimmed)
		case "education":
			education = append(education, trimmed)
		}
	}
	return experience, education
}

// isSectionHeader classifies short lines containing a section keyword.
func isSectionHeader(line string) string {
	if len(line) > 40 {
		return ""
	}
	lower := strings.ToLower(line)
	for _, kw := range experienceKeywords {
		if strings.Contains(lower, kw) {
			return "experience"
		}
	}
	for _, kw := range educationKeywords {
		if strings.Contains(lower, kw) {
			return "education"
		}
	}
	return ""
}
