package intelligence

import "fmt"

// Templates are interpolated with the unit title (and task text) verbatim.
const (
	quizPromptTemplate = `Create 3 multiple-choice questions for "%s". Return ONLY a raw JSON array (no markdown fences) where each object has: "question", "options" (array of strings), and "answer" (the correct string). Do not include any intro text.`

	explainPromptTemplate = `Explain the concept of "%s" simply, as if teaching a beginner software tester. Use **bold** for key terms. Use an analogy if possible. Keep it under 150 words.`

	codePromptTemplate = `Write a concise Python Playwright script that demonstrates: "%s". Include comments explaining the key parts.`

	explainTaskPromptTemplate = `Briefly explain how to complete this task: "%s". The context is learning "%s". Provide practical steps or definitions. Use **bold** for key terms. Keep it short (under 3 sentences).`
)

// QuizPrompt asks for three multiple-choice questions as a raw JSON array.
func QuizPrompt(title string) string {
	return fmt.Sprintf(quizPromptTemplate, title)
}

// ExplainPrompt asks for a beginner-level explanation of a unit's topic.
func ExplainPrompt(title string) string {
	return fmt.Sprintf(explainPromptTemplate, title)
}

// CodePrompt asks for a Playwright script demonstrating the topic.
func CodePrompt(title string) string {
	return fmt.Sprintf(codePromptTemplate, title)
}

// ExplainTaskPrompt asks how to complete one checklist item in the context
// of its unit.
func ExplainTaskPrompt(title, task string) string {
	return fmt.Sprintf(explainTaskPromptTemplate, task, title)
}
