package services

import (
	"strings"

	"github.com/justsurfingit/nexskill/internal/experience"
	"github.com/justsurfingit/nexskill/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching term as a
// literal substring. Use with ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// filterByExperience keeps jobs whose free-text requirement falls in
// bucket. Jobs without a parseable requirement are dropped.
func filterByExperience(jobs []models.Job, bucket string) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if experience.Matches(job.ExperienceRequired, bucket) {
			out = append(out, job)
		}
	}
	return out
}
