package scoring

// ExamPart is one graded part of a two-part reading or listening exam:
// objective items worth two points each plus an oracle-graded summary
// contributing a fifth of its 0-100 score.
type ExamPart struct {
	ObjectiveCorrect int
	Summary          Subscore
}

// ReadingListeningExam sums the per-part objective and summary
// contributions and caps the total at 100.
func ReadingListeningExam(parts []ExamPart) Score {
	var total float64
	fallback := false
	for _, p := range parts {
		total += float64(p.ObjectiveCorrect * 2)
		total += p.Summary.val() * 0.2
		fallback = fallback || p.Summary.tainted()
	}
	v := int(total)
	if v > 100 {
		v = 100
	}
	return Score{Value: v, Fallback: fallback}
}

// TaskMean averages per-task exam scores. Used for writing exams (two
// oracle-graded tasks) and speaking exams (two hybrid task scores). An
// empty task list scores zero.
func TaskMean(tasks []Subscore) Score {
	if len(tasks) == 0 {
		return Score{}
	}
	var sum float64
	fallback := false
	for _, t := range tasks {
		sum += t.val()
		fallback = fallback || t.tainted()
	}
	return Score{
		Value:    int(clamp(sum/float64(len(tasks)), 0, 100)),
		Fallback: fallback,
	}
}
