package resume

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Breakdown holds the points earned per category. The maxima are
// structure 25, grammar 20, readability 15, keywords 15, length 10,
// contact 10, formatting 10 and 5 each for the rest.
type Breakdown struct {
	Structure      int     `json:"structure"`
	Grammar        int     `json:"grammar"`
	Readability    float64 `json:"readability"`
	Keywords       int     `json:"keywords"`
	Length         int     `json:"length"`
	Contact        int     `json:"contact"`
	Achievements   int     `json:"achievements"`
	Formatting     int     `json:"formatting"`
	ActionVerbs    int     `json:"actionVerbs"`
	Quantification int     `json:"quantification"`
}

func (b Breakdown) total() float64 {
	return float64(b.Structure+b.Grammar+b.Keywords+b.Length+b.Contact+
		b.Achievements+b.Formatting+b.ActionVerbs+b.Quantification) + b.Readability
}

type Analysis struct {
	Score     int       `json:"score"`
	Issues    []string  `json:"issues"`
	Breakdown Breakdown `json:"breakdown"`
	Sections  Sections  `json:"sections"`
	WordCount int       `json:"wordCount"`
}

var (
	techKeywords = []string{
		"python", "javascript", "react", "sql", "management", "node", "java",
		"docker", "kubernetes", "aws", "azure", "gcp", "machine learning",
		"data analysis", "project management", "agile", "scrum", "git",
		"rest api", "microservices", "devops", "ci/cd", "tensorflow", "pytorch",
	}
	achievementWords = []string{
		"achieved", "increased", "improved", "reduced", "developed", "created", "managed", "led", "implemented",
	}
	actionVerbs = []string{
		"achieved", "accomplished", "administered", "analyzed", "assisted", "built", "collaborated",
		"created", "delivered", "designed", "developed", "executed", "facilitated", "generated",
		"implemented", "improved", "increased", "initiated", "launched", "led", "managed",
		"optimized", "organized", "performed", "planned", "produced", "reduced", "resolved",
		"streamlined", "supervised", "transformed", "utilized",
	}

	bulletLine     = regexp.MustCompile(`(?m)^\s*[-•*]\s`)
	bulletPrefix   = regexp.MustCompile(`^[-•*]\s*`)
	sentencePiece  = regexp.MustCompile(`[^.!?]+[.!?]*`)
	properName     = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+`)
	year           = regexp.MustCompile(`\d{4}`)
	formattedPhone = regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}|\d{3}-\d{3}-\d{4}`)
	number         = regexp.MustCompile(`\b\d+(?:\.\d+)?%?\b`)
	impactPhrase   = regexp.MustCompile(`(?i)\b(?:increased|decreased|reduced|improved|saved|generated|managed|led|supervised|trained|developed|created|built|delivered|achieved|accomplished|grew|expanded|optimized|streamlined|enhanced|boosted|raised|lowered|cut|eliminated|minimized|maximized|doubled|tripled|quadrupled|halved|by\s+\d+%?|\d+x|\d+\s+times|\d+\s+fold)\b`)
)

// Analyze scores resume text from 0 to 100 and lists what to improve.
func Analyze(text string) *Analysis {
	sec := extractSections(text)
	lower := strings.ToLower(text)
	words := len(strings.Fields(text))
	var b Breakdown

	found := sec.standardCount()
	bullets := len(bulletLine.FindAllStringIndex(text, -1))
	b.Structure = min(found*5+bullets, 25)

	sentences := splitSentences(text)
	grammarErrors := countGrammarErrors(sentences)
	b.Grammar = 20 - min(grammarErrors, 20)

	flesch := fleschReadingEase(text, len(sentences))
	b.Readability = math.Round(math.Max(0, math.Min(flesch/6.67, 15))*100) / 100

	keywords := countContained(lower, techKeywords)
	b.Keywords = min(keywords*2, 15)

	b.Length = lengthPoints(words)

	if sec.Contact.Email != "" {
		b.Contact += 4
	}
	if sec.Contact.Phone != "" {
		b.Contact += 3
	}
	if sec.Contact.LinkedIn != "" {
		b.Contact += 3
	}

	achievements := countContained(lower, achievementWords)
	b.Achievements = min(achievements, 5)

	b.Formatting = min(formattingPoints(text), 10)
	b.ActionVerbs = min(countContained(lower, actionVerbs), 5)
	b.Quantification = min(len(number.FindAllStringIndex(text, -1))+len(impactPhrase.FindAllStringIndex(text, -1)), 5)

	var issues []string
	add := func(cond bool, msg string) {
		if cond {
			issues = append(issues, msg)
		}
	}
	add(found < 3, "Add standard sections: Summary, Experience, Education, Skills.")
	add(bullets < 5, "Use bullet points to highlight achievements and responsibilities.")
	add(sec.Summary == "", "Add a professional summary or objective statement.")
	add(grammarErrors > 0, fmt.Sprintf("Fix capitalization and sentence punctuation in %d places.", grammarErrors))
	add(flesch < 50, "Simplify sentences to improve readability (aim for 60+ Flesch score).")
	add(keywords < 3, "Include more role-relevant keywords and technical skills.")
	add(words < 300, "Resume is too short; add details on projects, achievements, and impact.")
	add(words > 800, "Resume is too long; trim to most relevant achievements and experiences.")
	add(sec.Contact.Email == "", "Add a professional email address.")
	add(sec.Contact.Phone == "", "Include a contact phone number.")
	add(sec.Contact.LinkedIn == "", "Add your LinkedIn profile URL.")
	add(achievements < 2, "Include more quantifiable achievements and impact statements.")
	add(len(sec.Experience) < 2, "Add more detailed work experience with specific achievements.")
	add(len(sec.Skills) < 5, "Expand your skills section with relevant technical and soft skills.")
	add(b.Formatting < 6, "Improve formatting consistency and professional presentation.")
	add(b.ActionVerbs < 3, "Use more strong action verbs to describe your accomplishments.")
	add(b.Quantification < 2, "Add more numbers, percentages, and metrics to quantify your achievements.")
	if issues == nil {
		issues = []string{}
	}

	return &Analysis{
		Score:     int(math.Min(math.Max(b.total(), 0), 100)),
		Issues:    issues,
		Breakdown: b,
		Sections:  sec,
		WordCount: words,
	}
}

// lengthPoints is full marks for 300-800 words, losing a point per 50
// words away from 550 otherwise.
func lengthPoints(words int) int {
	if words >= 300 && words <= 800 {
		return 10
	}
	return max(10-abs(words-550)/50, 0)
}

func countContained(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}

func formattingPoints(text string) int {
	points := 0
	for _, ok := range []bool{
		properName.MatchString(text),
		year.MatchString(text),
		len(properName.FindAllStringIndex(text, -1)) > 2,
		strings.Contains(text, "@"),
		formattedPhone.MatchString(text),
	} {
		if ok {
			points += 2
		}
	}
	return points
}

// splitSentences breaks each line at terminal punctuation, dropping
// bullet markers.
func splitSentences(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = bulletPrefix.ReplaceAllString(strings.TrimSpace(line), "")
		for _, s := range sentencePiece.FindAllString(line, -1) {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// countGrammarErrors counts sentences that open in lower case and long
// sentences left without closing punctuation.
func countGrammarErrors(sentences []string) int {
	n := 0
	for _, s := range sentences {
		if first, _ := utf8.DecodeRuneInString(s); unicode.IsLower(first) {
			n++
		}
		if utf8.RuneCountInString(s) > 30 && !strings.ContainsAny(s[len(s)-1:], ".!?") {
			n++
		}
	}
	return n
}

func fleschReadingEase(text string, sentences int) float64 {
	words, syllables := 0, 0
	for _, w := range strings.Fields(text) {
		if n := syllableCount(w); n > 0 {
			words++
			syllables += n
		}
	}
	if words == 0 {
		return 0
	}
	sentences = max(sentences, 1)
	return 206.835 - 1.015*float64(words)/float64(sentences) - 84.6*float64(syllables)/float64(words)
}

// syllableCount approximates syllables by counting vowel groups. Tokens
// without letters count as zero.
func syllableCount(word string) int {
	w := strings.ToLower(strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }))
	if w == "" {
		return 0
	}
	count, prevVowel := 0, false
	for _, r := range w {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	return max(count, 1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
