// Package scoring derives dashboard figures from raw quiz attempts.
package scoring

import (
	"sort"

	"github.com/garnizeh/boards/pkg/models"
)

// Score is the fraction of correct answers in an attempt, 0 for an empty attempt.
func Score(a models.Attempt) float64 {
	if a.TotalQuestions <= 0 {
		return 0
	}
	return float64(a.TotalCorrect) / float64(a.TotalQuestions)
}

// Summarize groups attempts by quiz. Each summary carries the best score and the
// attempt span; summaries are ordered by most recent attempt first.
func Summarize(attempts []models.Attempt) []models.QuizSummary {
	byQuiz := make(map[int64]*models.QuizSummary)

	for _, a := range attempts {
		s, ok := byQuiz[a.QuizID]
		if !ok {
			s = &models.QuizSummary{
				QuizID:           a.QuizID,
				QuizTitle:        a.QuizTitle,
				BestScore:        Score(a),
				BestCorrect:      a.TotalCorrect,
				BestTotal:        a.TotalQuestions,
				FirstAttemptedAt: a.AttemptedAt,
				LastAttemptedAt:  a.AttemptedAt,
			}
			byQuiz[a.QuizID] = s
		}
		s.TotalAttempts++

		if sc := Score(a); sc > s.BestScore {
			s.BestScore, s.BestCorrect, s.BestTotal = sc, a.TotalCorrect, a.TotalQuestions
		}
		if a.AttemptedAt < s.FirstAttemptedAt {
			s.FirstAttemptedAt = a.AttemptedAt
		}
		if a.AttemptedAt > s.LastAttemptedAt {
			s.LastAttemptedAt = a.AttemptedAt
		}
		if s.QuizTitle == "" {
			s.QuizTitle = a.QuizTitle
		}
	}

	out := make([]models.QuizSummary, 0, len(byQuiz))
	for _, s := range byQuiz {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastAttemptedAt != out[j].LastAttemptedAt {
			return out[i].LastAttemptedAt > out[j].LastAttemptedAt
		}
		return out[i].QuizID < out[j].QuizID
	})

	return out
}
