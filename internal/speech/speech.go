// Package speech provides the audio oracle: speech-to-text with
// pronunciation assessment for speaking practice and exams.
package speech

import (
	"context"
	"errors"
)

// ErrNoSpeech means the audio contained no recognizable speech.
var ErrNoSpeech = errors.New("speech: no recognizable speech in audio")

// Scores are the pronunciation metrics on a 0-100 scale.
type Scores struct {
	Accuracy      float64
	Fluency       float64
	Pronunciation float64
	Prosody       float64
}

// Assessment is the oracle's verdict on one utterance.
type Assessment struct {
	Transcript string
	Scores     Scores
}

// Recognizer is the audio oracle interface. Audio is mono 16kHz PCM WAV.
type Recognizer interface {
	Assess(ctx context.Context, audio []byte) (*Assessment, error)
}

// Config holds speech service credentials.
type Config struct {
	Key      string
	Region   string
	Language string // Default: "en-US"
}
