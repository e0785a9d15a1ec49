package scoring

import "math"

// Comprehension combines an oracle comprehension judgment with an
// objective quiz result. Used for reading practice and the gist half of
// listening practice.
//
//	final = clamp(comprehension*0.6 + quiz*0.4, 0, 100)
func Comprehension(comprehension Subscore, quiz Ratio) Score {
	q := quiz.Percent()
	v := clamp(comprehension.val()*0.6+q.val()*0.4, 0, 100)
	return Score{
		Value:    int(v),
		Fallback: comprehension.tainted() || q.tainted(),
	}
}

// ListeningFull combines the three listening assessment parts.
//
//	final = gist*0.4 + blanks*0.3 + multipleChoice*0.3
func ListeningFull(gist Subscore, blanks, multipleChoice Ratio) Score {
	b := blanks.Percent()
	mc := multipleChoice.Percent()
	v := gist.val()*0.4 + b.val()*0.3 + mc.val()*0.3
	return Score{
		Value:    int(clamp(v, 0, 100)),
		Fallback: gist.tainted() || b.tainted() || mc.tainted(),
	}
}

// WritingScores carries the writing oracle's verdict.
type WritingScores struct {
	Invalid   bool // off-topic submission
	Overall   Subscore
	Grammar   Subscore
	Vocab     Subscore
	Coherence Subscore
}

// Writing scores a writing submission. An invalid (off-topic) verdict
// forces the final score to zero regardless of sub-scores.
func Writing(w WritingScores) Score {
	if w.Invalid {
		return Score{Value: 0, Fallback: w.Overall.tainted()}
	}
	return Score{
		Value:    int(clamp(w.Overall.val(), 0, 100)),
		Fallback: w.Overall.tainted(),
	}
}

// PronunciationScores are the speech oracle's metrics.
type PronunciationScores struct {
	Accuracy      Subscore
	Fluency       Subscore
	Pronunciation Subscore
}

func (p PronunciationScores) mean() float64 {
	return (p.Accuracy.val() + p.Fluency.val() + p.Pronunciation.val()) / 3
}

func (p PronunciationScores) missing() bool {
	return p.Accuracy.tainted() || p.Fluency.tainted() || p.Pronunciation.tainted()
}

// ContentScores are the text oracle's judgment of a spoken transcript.
type ContentScores struct {
	Grammar         Subscore
	Vocabulary      Subscore
	Coherence       Subscore
	TaskAchievement Subscore
}

func (c ContentScores) mean() float64 {
	return (c.Grammar.val() + c.Vocabulary.val() + c.Coherence.val() + c.TaskAchievement.val()) / 4
}

func (c ContentScores) missing() bool {
	return c.Grammar.tainted() || c.Vocabulary.tainted() || c.Coherence.tainted() || c.TaskAchievement.tainted()
}

// ZeroContent is the forced all-zero content judgment used when a
// transcript is too short to grade.
func ZeroContent() ContentScores {
	return ContentScores{Sub(0), Sub(0), Sub(0), Sub(0)}
}

// Speaking combines pronunciation metrics and content judgment half and
// half. The result is rounded, not truncated; the hybrid mean is the one
// aggregation that rounds.
func Speaking(pron PronunciationScores, content ContentScores) Score {
	v := (pron.mean() + content.mean()) / 2
	return Score{
		Value:    int(math.Round(clamp(v, 0, 100))),
		Fallback: pron.missing() || content.missing(),
	}
}

// SpeakingTaskScore is the unrounded hybrid score for a single exam task.
func SpeakingTaskScore(pron PronunciationScores, content ContentScores) float64 {
	return clamp((pron.mean()+content.mean())/2, 0, 100)
}
