package advisory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/crimewatch/crimewatch-api/internal/features/reports"
)

const geminiModel = "gemini-2.0-flash"

const systemInstruction = `### AI-Powered Fake Report Detection
You are analyzing a crime report for possible fake or misleading information. Use text and image recognition to assign a confidence score.
If confidence is below 0.3, it's likely real.
If confidence is between 0.3-0.6, needs admin review.
If confidence is above 0.6, flag it as potentially fake.`

// GeminiAnalyzer assesses reports with the Gemini API
type GeminiAnalyzer struct {
	client *genai.Client
}

// NewGeminiAnalyzer creates a Gemini-backed analyzer
func NewGeminiAnalyzer(ctx context.Context, apiKey string) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiAnalyzer{client: client}, nil
}

// Close releases the underlying client
func (g *GeminiAnalyzer) Close() error {
	return g.client.Close()
}

// Analyze sends the report description and evidence images to Gemini and
// returns the model's assessment verbatim
func (g *GeminiAnalyzer) Analyze(ctx context.Context, report *reports.CrimeReport) (string, error) {
	model := g.client.GenerativeModel(geminiModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	parts := []genai.Part{
		genai.Text("Crime Report Description: " + report.Description),
	}

	for _, url := range report.Images {
		data, format, err := fetchImage(ctx, url)
		if err != nil {
			// A single unreachable evidence image does not sink the analysis
			continue
		}
		parts = append(parts, genai.ImageData(format, data))
	}

	parts = append(parts, genai.Text("Analyze this report."))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini analysis failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", errors.New("gemini returned no text")
	}

	return sb.String(), nil
}

// fetchImage downloads an evidence image so it can be inlined in the
// request. Returns the image bytes and a format hint derived from the
// response content type.
func fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d fetching image", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return nil, "", err
	}

	format := "jpeg"
	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(ct, "image/") {
		format = strings.TrimPrefix(ct, "image/")
	}

	return data, format, nil
}
