// File: services/intelligence/gemini.go
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"moveline/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiAnalyzer estimates move volume and crew requirements from the
// uploaded photo batch using Gemini. It satisfies gateway.PhotoAnalyzer.
type GeminiAnalyzer struct {
	model *genai.GenerativeModel
}

// NewGeminiAnalyzer builds an analyzer backed by the given API key.
func NewGeminiAnalyzer(ctx context.Context, apiKey string) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiAnalyzer{model: model}, nil
}

const analysisPrompt = `You are estimating a house move from %d uploaded photos (file names: %s).
Respond with a single JSON object, no prose, with keys:
volume (string, e.g. "7.5 m³"), itemCount (int), itemTypes ([]string),
disassemblyNeeded (bool), suggestedVehicle (one of "Van", "Medium Truck", "Large Truck"),
suggestedMovers (int, 1-8), estimatedPrice (int, whole USD).`

// AnalyzePhotos asks Gemini for a structured estimate and parses its reply.
func (g *GeminiAnalyzer) AnalyzePhotos(ctx context.Context, photos []models.UploadedPhoto) (*models.AIAnalysis, error) {
	names := make([]string, 0, len(photos))
	for _, p := range photos {
		names = append(names, p.FileName)
	}
	prompt := fmt.Sprintf(analysisPrompt, len(photos), strings.Join(names, ", "))

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	var analysis models.AIAnalysis
	if err := json.Unmarshal([]byte(extractJSON(sb.String())), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse gemini analysis: %w", err)
	}
	return &analysis, nil
}

// extractJSON strips markdown fencing the model sometimes wraps around its
// JSON reply.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
