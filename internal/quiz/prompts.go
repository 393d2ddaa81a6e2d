package quiz

import "fmt"

func buildEvaluationPrompt(question, correctAnswer, userAnswer, language string) string {
	return fmt.Sprintf(`Question: %s
Correct Answer: %s
User's Answer: %s

Provide a detailed explanation of whether the user's answer is correct or incorrect, and why.
Be encouraging and educational in your response.
Respond in %s.`, question, correctAnswer, userAnswer, language)
}

func buildDiscussionPrompt(q Question, userQuestion, language string) string {
	return fmt.Sprintf("Regarding the question '%s' and the answer '%s', the user asks: %s. Respond in %s.",
		q.PromptPrimary, q.Answer, userQuestion, language)
}
