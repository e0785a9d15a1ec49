package examgate

import (
	"fmt"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

// examTextWords returns the target passage length for generated exam
// parts. Beginner levels get short texts, B1 and above full-length ones.
func examTextWords(level progression.Level) int {
	switch level {
	case progression.LevelA1, progression.LevelA2:
		return 150
	default:
		return 300
	}
}

func comprehensionExamSystemPrompt(skill progression.Skill, level progression.Level) string {
	kind := "reading"
	medium := "read"
	if skill == progression.SkillListening {
		kind = "listening"
		medium = "listen to"
	}
	return fmt.Sprintf(`You are a CEFR English examiner preparing a %s level advancement exam.
Create a %s exam with exactly 2 parts. Each part must have:
- an original text of about %d words at %s level, on a different everyday topic per part, which the candidate will %s
- exactly 5 multiple-choice questions with 4 options each, answerable only from the text
- exactly 5 fill-in-the-blank sentences taken from the text with one word replaced by _____, where correct_word is the removed word
- exactly 5 true/false statements about the text, answer "True" or "False"
All questions must be in English. Do not reuse a question across parts.`,
		level, kind, examTextWords(level), level, medium)
}

func writingExamSystemPrompt(level progression.Level) string {
	return fmt.Sprintf(`You are a CEFR English examiner preparing a %s level writing advancement exam.
Create exactly 2 independent writing tasks. For each task give:
- a concrete topic suited to %s level
- instructions naming the text type and the points the candidate must cover
- constraints stating a word count range appropriate for the level and any required structures
The two tasks must differ in topic and text type. Write everything in English.`,
		level, level)
}

func speakingExamSystemPrompt(level progression.Level) string {
	return fmt.Sprintf(`You are a CEFR English examiner preparing a %s level speaking advancement exam.
Create exactly 2 tasks:
- one "interview" task: a personal question the candidate answers in about a minute
- one "long_turn" task: a topic the candidate describes or argues for about two minutes
Both prompts must suit %s level and be in English.`,
		level, level)
}

func summaryGradeSystemPrompt(level progression.Level) string {
	return fmt.Sprintf(`You are a strict CEFR English examiner grading a %s level exam.
The candidate read a passage and wrote a summary of it in their own words.
Score the summary 0-100 for how accurately and completely it captures the
passage's main ideas. Copied sentences and invented content lower the score.`,
		level)
}

func summaryGradeUserMessage(text, summary string) string {
	return fmt.Sprintf("PASSAGE:\n%s\n\nCANDIDATE SUMMARY:\n%s", text, summary)
}

func essayGradeSystemPrompt(level progression.Level, topic, constraints string) string {
	return fmt.Sprintf(`You are a strict CEFR English examiner grading a %s level writing exam task.
Topic: %s
Constraints: %s
Score the essay 0-100 against the task. Weigh task achievement, coherence,
grammar, and vocabulary range expected at %s level. An off-topic essay or one
ignoring the constraints cannot score above 40.`,
		level, topic, constraints, level)
}

func spokenContentSystemPrompt(level progression.Level, prompt string) string {
	return fmt.Sprintf(`You are a strict CEFR English examiner grading a %s level speaking exam task.
The task given to the candidate was: %s
You will receive the transcript of the candidate's answer. Score grammar,
vocabulary, coherence, and task_achievement each 0-100 by %s level standards.
An answer that ignores the task scores low on task_achievement regardless of accuracy.`,
		level, prompt, level)
}
