package quiz

import (
	"fmt"
	"strings"
)

const DefaultQuestionCount = 5

func buildBankPrompt(lectureText string, count int) string {
	return fmt.Sprintf(`Based on the following lecture content, generate %d quiz questions with their answers. Provide each question in both English and Arabic:

%s

Format each question and answer as follows:
Question (English): [Question in English]
Question (Arabic): [Question in Arabic]
Answer: [Answer]

---

`, count, lectureText)
}

// ParseBank extracts questions from a model response. Chunks are separated by
// lines made only of three or more dashes. A chunk yields a question only when
// exactly three non-blank lines remain and none of their values is empty;
// anything else is dropped. An empty result is not an error.
func ParseBank(text string) []Question {
	var bank []Question
	for _, chunk := range splitChunks(text) {
		if len(chunk) != 3 {
			continue
		}
		q := Question{
			PromptPrimary:   fieldValue(chunk[0]),
			PromptSecondary: fieldValue(chunk[1]),
			Answer:          fieldValue(chunk[2]),
		}
		if q.PromptPrimary == "" || q.PromptSecondary == "" || q.Answer == "" {
			continue
		}
		bank = append(bank, q)
	}
	return bank
}

func splitChunks(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var chunks [][]string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if isDelimiter(line) {
			chunks = append(chunks, current)
			current = nil
			continue
		}
		if line != "" {
			current = append(current, line)
		}
	}
	return append(chunks, current)
}

func isDelimiter(line string) bool {
	return len(line) >= 3 && strings.Trim(line, "-") == ""
}

// fieldValue returns the text after the first ": ", or the whole line when
// there is no label. Lines are trimmed before this runs, so a label with
// nothing after it ends in a bare colon and has an empty value.
func fieldValue(line string) string {
	if _, value, ok := strings.Cut(line, ": "); ok {
		return strings.TrimSpace(value)
	}
	if strings.HasSuffix(line, ":") {
		return ""
	}
	return strings.TrimSpace(line)
}
