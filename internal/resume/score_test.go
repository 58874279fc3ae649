package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongResume = `Jane Doe
jane.doe@example.com | (555) 123-4567 | linkedin.com/in/janedoe

Professional Summary
Backend engineer with six years building Python services on AWS.

Experience
Senior Engineer, Acme Corp, 2019 - 2024
- Led a team of 5 engineers and increased throughput by 40%.
- Built REST API microservices with Docker and Kubernetes.
- Reduced deployment time from 2 hours to 15 minutes.

Software Engineer, Globex Inc, 2016 - 2019
- Designed and implemented a billing pipeline used by 200 customers.
- Improved test coverage to 85%.

Education
B.Sc. Computer Science, Technical University Berlin, 2016

Skills
Python, Go, SQL, Docker, Kubernetes, AWS, Git`

func TestAnalyze_StrongResume(t *testing.T) {
	a := Analyze(strongResume)

	assert.Equal(t, "jane.doe@example.com", a.Sections.Contact.Email)
	assert.Equal(t, "(555) 123-4567", a.Sections.Contact.Phone)
	assert.Equal(t, "linkedin.com/in/janedoe", a.Sections.Contact.LinkedIn)
	assert.Contains(t, a.Sections.Summary, "Backend engineer")
	assert.Len(t, a.Sections.Experience, 2)
	assert.Len(t, a.Sections.Education, 1)
	assert.Equal(t, []string{"Python", "Go", "SQL", "Docker", "Kubernetes", "AWS", "Git"}, a.Sections.Skills)

	assert.Equal(t, 25, a.Breakdown.Structure)
	assert.Equal(t, 10, a.Breakdown.Contact)
	assert.Equal(t, 10, a.Breakdown.Formatting)
	assert.Equal(t, 5, a.Breakdown.ActionVerbs)
	assert.Equal(t, 5, a.Breakdown.Quantification)
	assert.Equal(t, 5, a.Breakdown.Achievements)
	assert.GreaterOrEqual(t, a.Breakdown.Keywords, 12)

	for _, absent := range []string{
		"Add standard sections: Summary, Experience, Education, Skills.",
		"Use bullet points to highlight achievements and responsibilities.",
		"Add a professional summary or objective statement.",
		"Add a professional email address.",
		"Include a contact phone number.",
		"Add your LinkedIn profile URL.",
		"Add more detailed work experience with specific achievements.",
		"Expand your skills section with relevant technical and soft skills.",
	} {
		assert.NotContains(t, a.Issues, absent)
	}
	assert.Contains(t, a.Issues, "Resume is too short; add details on projects, achievements, and impact.")

	weak := Analyze("just some text")
	assert.Greater(t, a.Score, weak.Score)
	assert.LessOrEqual(t, a.Score, 100)
}

func TestAnalyze_WeakResume(t *testing.T) {
	a := Analyze("just some text")

	assert.Equal(t, 34, a.Score)
	assert.Equal(t, 19, a.Breakdown.Grammar)
	assert.Equal(t, 15.0, a.Breakdown.Readability)
	assert.Equal(t, 0, a.Breakdown.Length)
	assert.Equal(t, 3, a.WordCount)
	assert.Empty(t, a.Sections.Skills)
	assert.NotNil(t, a.Sections.Experience)

	for _, want := range []string{
		"Add standard sections: Summary, Experience, Education, Skills.",
		"Fix capitalization and sentence punctuation in 1 places.",
		"Resume is too short; add details on projects, achievements, and impact.",
		"Add a professional email address.",
		"Include a contact phone number.",
		"Add your LinkedIn profile URL.",
		"Add more numbers, percentages, and metrics to quantify your achievements.",
	} {
		assert.Contains(t, a.Issues, want)
	}
	assert.NotContains(t, a.Issues, "Simplify sentences to improve readability (aim for 60+ Flesch score).")
}

func TestAnalyze_LongResumeIsFlagged(t *testing.T) {
	a := Analyze(strings.Repeat("Word ", 900))
	assert.Equal(t, 900, a.WordCount)
	assert.Contains(t, a.Issues, "Resume is too long; trim to most relevant achievements and experiences.")
}

func TestLengthPoints(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{100, 1},
		{250, 4},
		{299, 5},
		{300, 10},
		{550, 10},
		{800, 10},
		{900, 3},
		{2000, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lengthPoints(tt.words), "words=%d", tt.words)
	}
}

func TestSyllableCount(t *testing.T) {
	tests := map[string]int{
		"the":      1,
		"make":     1,
		"table":    2,
		"engineer": 3,
		"rhythm":   1,
		"Python,":  2,
		"2019":     0,
		"--":       0,
	}
	for word, want := range tests {
		assert.Equal(t, want, syllableCount(word), word)
	}
}

func TestCountGrammarErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"clean", "Built APIs. Led a team.", 0},
		{"lower case start", "built APIs.", 1},
		{"bullet marker ignored", "- Built APIs.", 0},
		{"long without punctuation", "Designed and shipped the billing pipeline", 1},
		{"both", "designed and shipped the billing pipeline", 2},
		{"short fragment", "Go, SQL", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countGrammarErrors(splitSentences(tt.text)))
		})
	}
}

func TestExtractSections_StopsAtNextHeading(t *testing.T) {
	sec := extractSections("Skills\nGo; SQL, Docker\nEducation\nMSc Informatics, 2020")
	require.Equal(t, []string{"Go", "SQL", "Docker"}, sec.Skills)
	assert.Equal(t, []string{"MSc Informatics, 2020"}, sec.Education)
	assert.Empty(t, sec.Experience)
	assert.Equal(t, 2, sec.standardCount())
}
