package lessons

import (
	"fmt"
	"strings"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/vocabselect"
)

const readingSystemPrompt = `You are an English teacher creating structured reading lessons.`

const listeningSystemPrompt = `You are an English teacher creating a complete listening lesson.`

const writingSystemPrompt = `You are an English writing instructor. You help learners practice writing through clear, focused tasks.`

const speakingSystemPrompt = `You are an English teacher creating a speaking task.`

func wordList(words []vocabselect.Word) string {
	names := make([]string, len(words))
	for i, w := range words {
		names[i] = w.Word
	}
	return strings.Join(names, ", ")
}

func writeTopicHeader(b *strings.Builder, level progression.Level, primary, secondary string, words []vocabselect.Word) {
	fmt.Fprintf(b, "Level: %s\n\n", level)
	fmt.Fprintf(b, "PRIMARY TOPIC (main focus, must not change):\n%s\n\n", primary)
	if secondary != "" {
		fmt.Fprintf(b, "SECONDARY TOPIC (background only):\n%s\n\n", secondary)
	}
	fmt.Fprintf(b, "Target words for this lesson:\n%s\n", wordList(words))
}

func buildReadingUserMessage(level progression.Level, primary, secondary string, words []vocabselect.Word) string {
	var b strings.Builder
	b.WriteString("Create a reading lesson for an English learner.\n\n")
	writeTopicHeader(&b, level, primary, secondary, words)
	fmt.Fprintf(&b, `
Instructions:
- The reading text MUST clearly be about the PRIMARY topic
- The title and the FIRST sentence must reflect the primary topic
- The secondary topic may appear lightly but must not replace the main topic
- Target words are the learning focus; use each naturally
- Vocabulary and grammar must stay at %s level
- Do NOT define or translate words in the text
- Write a clear, coherent, neutral reading passage
- For challenge_words, gloss each target word with a short Turkish meaning

After the text:
- Create exactly 5 comprehension questions
- Each question has 4 options with only ONE correct answer
- Provide the exact sentence from the text as evidence
`, level)
	return b.String()
}

func buildListeningUserMessage(level progression.Level, primary, secondary string, words []vocabselect.Word) string {
	var b strings.Builder
	b.WriteString("Create a listening lesson for an English learner.\n\n")
	writeTopicHeader(&b, level, primary, secondary, words)
	b.WriteString(`
Listening text rules:
- 80-120 words of natural spoken English
- Clear real-life situation
- MUST clearly relate to the PRIMARY topic
- Use SOME target words naturally, do NOT force all
- Do NOT define or translate words
- Do NOT mention "student", "exercise", or "listening task"

After the listening text:
1) Create EXACTLY 5 fill-in-the-blank questions.
   Blanks MUST come directly from the listening text; each blank
   replaces ONE important word. Do NOT invent new sentences.
2) Create EXACTLY 5 multiple-choice questions testing understanding
   of the text, each with 4 options and ONE correct answer.
`)
	return b.String()
}

func buildWritingUserMessage(level progression.Level, primary, secondary string, words []vocabselect.Word) string {
	var b strings.Builder
	b.WriteString("Create a writing assignment for a student learning English.\n\n")
	writeTopicHeader(&b, level, primary, secondary, words)
	fmt.Fprintf(&b, `
Instructions:
- Write ONE clear writing question or task
- The task MUST focus on the primary topic
- The task should invite personal opinion, experience, or simple reasoning
- Do NOT write a sample answer
- Do NOT explain the target words
- Keep the task appropriate for %s level
`, level)
	return b.String()
}

func buildSpeakingUserMessage(level progression.Level, primary, secondary string, words []vocabselect.Word) string {
	var b strings.Builder
	b.WriteString("Create a speaking task for an English learner.\n\n")
	writeTopicHeader(&b, level, primary, secondary, words)
	fmt.Fprintf(&b, `
Task rules:
- Create ONE speaking prompt the learner answers aloud in 30-60 seconds
- The prompt MUST focus on the primary topic
- Invite personal experience or opinion
- Do NOT mention the target words in the task text
- Keep the prompt appropriate for %s level
`, level)
	return b.String()
}
