package scoring

// WritingPlacement combines the static grammar test with the oracle's
// progressive essay judgment, 40/60.
func WritingPlacement(grammar int, essay Subscore) Score {
	v := float64(grammar)*0.4 + essay.val()*0.6
	return Score{Value: int(clamp(v, 0, 100)), Fallback: essay.tainted()}
}

// SpeakingPlacementTask is the per-level placement speaking score: the
// pronunciation metric mean weighted 60 against the oracle's level-fit
// judgment weighted 40.
func SpeakingPlacementTask(pron PronunciationScores, fit Subscore) float64 {
	return clamp(pron.mean()*0.6+fit.val()*0.4, 0, 100)
}
