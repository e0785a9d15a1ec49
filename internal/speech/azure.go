package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AzureRecognizer assesses audio through the Azure Speech short-audio
// REST endpoint with pronunciation assessment enabled. Unscripted mode:
// the reference text is left empty so Azure scores free speech.
type AzureRecognizer struct {
	key      string
	language string
	endpoint string
	client   *http.Client
}

// NewAzureRecognizer creates a recognizer for the configured region.
func NewAzureRecognizer(cfg Config) (*AzureRecognizer, error) {
	if cfg.Key == "" || cfg.Region == "" {
		return nil, fmt.Errorf("speech: azure key and region are required")
	}
	language := cfg.Language
	if language == "" {
		language = "en-US"
	}
	return &AzureRecognizer{
		key:      cfg.Key,
		language: language,
		endpoint: fmt.Sprintf("https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1", cfg.Region),
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// pronunciationParams is the assessment config carried in the
// Pronunciation-Assessment header, base64-encoded JSON per the API.
type pronunciationParams struct {
	ReferenceText string `json:"ReferenceText"`
	GradingSystem string `json:"GradingSystem"`
	Granularity   string `json:"Granularity"`
	Dimension     string `json:"Dimension"`
}

type azureResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
	NBest             []struct {
		Display       string  `json:"Display"`
		AccuracyScore float64 `json:"AccuracyScore"`
		FluencyScore  float64 `json:"FluencyScore"`
		PronScore     float64 `json:"PronScore"`
		ProsodyScore  float64 `json:"ProsodyScore"`
	} `json:"NBest"`
}

func (r *AzureRecognizer) Assess(ctx context.Context, audio []byte) (*Assessment, error) {
	params, err := json.Marshal(pronunciationParams{
		GradingSystem: "HundredMark",
		Granularity:   "Phoneme",
		Dimension:     "Comprehensive",
	})
	if err != nil {
		return nil, fmt.Errorf("speech: marshal assessment params: %w", err)
	}

	url := r.endpoint + "?language=" + r.language + "&format=detailed"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("speech: build request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", r.key)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm; samplerate=16000")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Pronunciation-Assessment", base64.StdEncoding.EncodeToString(params))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech: azure request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speech: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech: azure returned %d: %s", resp.StatusCode, body)
	}

	var parsed azureResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("speech: decode response: %w", err)
	}
	if parsed.RecognitionStatus != "Success" || len(parsed.NBest) == 0 {
		return nil, fmt.Errorf("%w (status %s)", ErrNoSpeech, parsed.RecognitionStatus)
	}

	best := parsed.NBest[0]
	transcript := parsed.DisplayText
	if transcript == "" {
		transcript = best.Display
	}
	return &Assessment{
		Transcript: transcript,
		Scores: Scores{
			Accuracy:      best.AccuracyScore,
			Fluency:       best.FluencyScore,
			Pronunciation: best.PronScore,
			Prosody:       best.ProsodyScore,
		},
	}, nil
}
