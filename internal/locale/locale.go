// Package locale holds the UI strings and the model language directive for
// each supported locale. A Locale is plain data resolved once per request;
// nothing here is global mutable state.
package locale

import (
	"fmt"
	"strconv"
	"strings"
)

type Tag string

const (
	English Tag = "en"
	Arabic  Tag = "ar"
)

// Default is used whenever a session carries no locale or an unknown one.
const Default = English

type Locale struct {
	Tag Tag `json:"tag"`
	// Language is the name sent to the model in "Respond in ..." directives.
	Language string  `json:"language"`
	RTL      bool    `json:"rtl"`
	Strings  Strings `json:"strings"`
}

// Strings is every user-facing label the presentation layer renders.
type Strings struct {
	Title           string `json:"title"`
	SelectSubject   string `json:"select_subject"`
	SelectLesson    string `json:"select_lesson"`
	ChatMode        string `json:"chat_mode"`
	ChatPlaceholder string `json:"chat_placeholder"`
	Language        string `json:"language"`

	QuizMode            string `json:"quiz_mode"`
	Question            string `json:"question"`
	Of                  string `json:"of"`
	YourAnswer          string `json:"your_answer"`
	SubmitAnswer        string `json:"submit_answer"`
	NextQuestion        string `json:"next_question"`
	DiscussAnswer       string `json:"discuss_answer"`
	DiscussHere         string `json:"discuss_here"`
	YourQuestion        string `json:"your_question"`
	SubmitQuestion      string `json:"submit_question"`
	GenerateNew         string `json:"generate_new"`
	GeneratingQuestions string `json:"generating_questions"`
	EvaluatingAnswer    string `json:"evaluating_answer"`
	GeneratingResponse  string `json:"generating_response"`
	ErrorGenerating     string `json:"error_generating_questions"`
	NoQuestions         string `json:"no_questions_available"`
	ErrorResponse       string `json:"error_response"`
}

var locales = map[Tag]Locale{
	English: {
		Tag:      English,
		Language: "English",
		Strings: Strings{
			Title:           "AI Lecture Explanation Chatbot",
			SelectSubject:   "Select Subject",
			SelectLesson:    "Select Lesson",
			ChatMode:        "Chat Mode",
			ChatPlaceholder: "Ask about the lecture",
			Language:        "Language",

			QuizMode:            "Quiz Mode",
			Question:            "Question",
			Of:                  "of",
			YourAnswer:          "Your answer:",
			SubmitAnswer:        "Submit Answer",
			NextQuestion:        "Next Question",
			DiscussAnswer:       "Discuss Answer",
			DiscussHere:         "Discuss your answer here:",
			YourQuestion:        "Your question about the answer:",
			SubmitQuestion:      "Submit Question",
			GenerateNew:         "Generate New Questions",
			GeneratingQuestions: "Generating questions...",
			EvaluatingAnswer:    "Evaluating your answer...",
			GeneratingResponse:  "Generating response...",
			ErrorGenerating:     "An error occurred while generating questions. Please try again.",
			NoQuestions:         "No questions are available. Please generate new questions.",
			ErrorResponse:       "The assistant could not answer right now. Please try again.",
		},
	},
	Arabic: {
		Tag:      Arabic,
		Language: "Arabic",
		RTL:      true,
		Strings: Strings{
			Title:           "روبوت شرح المحاضرات بالذكاء الاصطناعي",
			SelectSubject:   "اختر المادة",
			SelectLesson:    "اختر الدرس",
			ChatMode:        "وضع المحادثة",
			ChatPlaceholder: "اسأل عن المحاضرة",
			Language:        "اللغة",

			QuizMode:            "وضع الاختبار",
			Question:            "السؤال",
			Of:                  "من",
			YourAnswer:          "إجابتك:",
			SubmitAnswer:        "أرسل الإجابة",
			NextQuestion:        "السؤال التالي",
			DiscussAnswer:       "ناقش الإجابة",
			DiscussHere:         "ناقش إجابتك هنا:",
			YourQuestion:        "سؤالك حول الإجابة:",
			SubmitQuestion:      "أرسل السؤال",
			GenerateNew:         "توليد أسئلة جديدة",
			GeneratingQuestions: "جاري توليد الأسئلة...",
			EvaluatingAnswer:    "جاري تقييم إجابتك...",
			GeneratingResponse:  "جاري إنشاء الرد...",
			ErrorGenerating:     "حدث خطأ أثناء توليد الأسئلة. يرجى المحاولة مرة أخرى.",
			NoQuestions:         "لا توجد أسئلة متاحة. يرجى توليد أسئلة جديدة.",
			ErrorResponse:       "تعذر على المساعد الرد الآن. يرجى المحاولة مرة أخرى.",
		},
	},
}

// Lookup returns the locale for tag and whether it is supported.
func Lookup(tag Tag) (Locale, bool) {
	l, ok := locales[Tag(strings.ToLower(string(tag)))]
	return l, ok
}

// Resolve returns the locale for tag, falling back to Default.
func Resolve(tag Tag) Locale {
	if l, ok := Lookup(tag); ok {
		return l
	}
	return locales[Default]
}

// All returns the supported locales in a stable order.
func All() []Locale {
	return []Locale{locales[English], locales[Arabic]}
}

// UsesPrimaryPrompt reports whether quiz questions are shown in their
// primary (English) rendering for this locale.
func (l Locale) UsesPrimaryPrompt() bool {
	return l.Tag == English
}

// Number renders n with the locale's digits.
func (l Locale) Number(n int) string {
	s := strconv.Itoa(n)
	if l.Tag != Arabic {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune('٠' + (r - '0'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// QuestionNumber renders "Question 2 of 5" (zero-based index in).
func (l Locale) QuestionNumber(index, total int) string {
	return fmt.Sprintf("%s %s %s %s", l.Strings.Question, l.Number(index+1), l.Strings.Of, l.Number(total))
}
