package speech

import (
	"context"
	"sync"
)

// MockAssessment is a canned result for the MockRecognizer.
type MockAssessment struct {
	Assessment Assessment
	Err        error
}

// MockRecognizer is a deterministic Recognizer for testing. It returns
// canned assessments in FIFO order and records all audio it was given.
type MockRecognizer struct {
	mu      sync.Mutex
	results []MockAssessment
	Calls   [][]byte
}

func NewMockRecognizer(results ...MockAssessment) *MockRecognizer {
	return &MockRecognizer{results: results}
}

func (m *MockRecognizer) Assess(_ context.Context, audio []byte) (*Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, audio)

	if len(m.results) == 0 {
		return nil, ErrNoSpeech
	}

	result := m.results[0]
	m.results = m.results[1:]

	if result.Err != nil {
		return nil, result.Err
	}
	assessment := result.Assessment
	return &assessment, nil
}

// CallCount returns the number of Assess calls made.
func (m *MockRecognizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
