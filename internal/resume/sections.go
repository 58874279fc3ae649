package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Sections is the structure recovered from a resume's text.
type Sections struct {
	Contact    Contact  `json:"contact"`
	Summary    string   `json:"summary,omitempty"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	Skills     []string `json:"skills"`
}

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)

	summaryHeading    = regexp.MustCompile(`(?i)\b(?:professional\s+summary|career\s+objective|summary|objective|profile|about)\b`)
	experienceHeading = regexp.MustCompile(`(?i)\b(?:experience|work\s+history|employment)\b`)
	educationHeading  = regexp.MustCompile(`(?i)\b(?:education|academic|qualifications?)\b`)
	skillsHeading     = regexp.MustCompile(`(?i)\b(?:technical\s+skills|skills|competencies)\b`)
	techHeading       = regexp.MustCompile(`(?i)\b(?:programming\s+languages|technologies)\b`)
	projectsHeading   = regexp.MustCompile(`(?i)\bprojects\b`)

	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	skillSeparator = regexp.MustCompile(`[,;\n]`)
)

func extractSections(text string) Sections {
	sec := Sections{
		Experience: []string{},
		Education:  []string{},
		Skills:     []string{},
	}

	sec.Contact.Email = emailPattern.FindString(text)
	sec.Contact.Phone = strings.TrimSpace(phonePattern.FindString(text))
	sec.Contact.LinkedIn = linkedInPattern.FindString(text)

	if body, ok := sectionBody(text, summaryHeading, experienceHeading, educationHeading, skillsHeading, projectsHeading); ok {
		sec.Summary = strings.TrimSpace(body)
	}
	if body, ok := sectionBody(text, experienceHeading, educationHeading, skillsHeading, projectsHeading); ok {
		sec.Experience = entries(body, 20)
	}
	if body, ok := sectionBody(text, educationHeading, experienceHeading, skillsHeading, projectsHeading); ok {
		sec.Education = entries(body, 10)
	}
	for _, heading := range []*regexp.Regexp{skillsHeading, techHeading} {
		body, ok := sectionBody(text, heading, experienceHeading, educationHeading, projectsHeading)
		if !ok {
			continue
		}
		for _, s := range skillSeparator.Split(body, -1) {
			if s = strings.TrimSpace(s); utf8.RuneCountInString(s) > 1 {
				sec.Skills = append(sec.Skills, s)
			}
		}
		break
	}
	return sec
}

// sectionBody returns the text after the first match of heading, up to the
// nearest following match of any stop heading.
func sectionBody(text string, heading *regexp.Regexp, stops ...*regexp.Regexp) (string, bool) {
	loc := heading.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	end := len(rest)
	for _, stop := range stops {
		if l := stop.FindStringIndex(rest); l != nil && l[0] < end {
			end = l[0]
		}
	}
	return strings.TrimLeft(rest[:end], " \t\n:"), true
}

func entries(body string, minLen int) []string {
	out := []string{}
	for _, e := range paragraphBreak.Split(body, -1) {
		if e = strings.TrimSpace(e); utf8.RuneCountInString(e) > minLen {
			out = append(out, e)
		}
	}
	return out
}

func (s Sections) standardCount() int {
	n := 0
	for _, found := range []bool{s.Summary != "", len(s.Experience) > 0, len(s.Education) > 0, len(s.Skills) > 0} {
		if found {
			n++
		}
	}
	return n
}
