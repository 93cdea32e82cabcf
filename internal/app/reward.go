package app

import "quiz-league-service/internal/domain"

// ComputeReward scores submitted answers against the quiz's full question set.
// Every correct answer is worth budget/len(questions), so partial submissions
// are scored against the whole quiz, not against what was answered. Unknown
// question ids are skipped; stray or duplicate client data is not an error.
// The final value is truncated to an integer.
func ComputeReward(answers map[string]domain.Answer, questions []domain.Question, budget int) int {
	if len(questions) == 0 {
		return 0
	}

	correctByID := make(map[string]domain.Answer, len(questions))
	for _, q := range questions {
		correctByID[q.ID] = q.CorrectAnswer
	}

	perQuestion := float64(budget) / float64(len(questions))
	var reward float64
	for questionID, answer := range answers {
		correct, ok := correctByID[questionID]
		if !ok {
			continue
		}
		if answer == correct {
			reward += perQuestion
		}
	}
	return int(reward)
}
