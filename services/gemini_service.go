package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crisuscata/nutriscan-ai/config"
	"github.com/crisuscata/nutriscan-ai/models"
	"github.com/crisuscata/nutriscan-ai/utils"
)

const systemInstruction = `Act as a highly accurate Visual Nutrition Analysis System. Your task is to analyze the image of a plate of food, identify the foods present, estimate the visible quantity and, based on standard nutrition databases (USDA/global references), calculate the total calories and the macronutrient breakdown for the estimated portion.

Your analysis must be an estimate based on visual appearance.`

// GeminiService talks to the Gemini generateContent API and holds the
// structured-response contract the model is constrained to.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiService(cfg config.Config) *GeminiService {
	return &GeminiService{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		baseURL: strings.TrimSuffix(cfg.GeminiBaseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Wire types for the generateContent request/response.
type geminiRequest struct {
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	Contents          []geminiContent   `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature      float64       `json:"temperature"`
	ResponseMIMEType string        `json:"responseMimeType,omitempty"`
	ResponseSchema   *geminiSchema `json:"responseSchema,omitempty"`
}

type geminiSchema struct {
	Type       string                   `json:"type"`
	Properties map[string]*geminiSchema `json:"properties,omitempty"`
	Items      *geminiSchema            `json:"items,omitempty"`
	Required   []string                 `json:"required,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// analysisSchema is the strict output contract: without it, free-form model
// output is not reliably parseable.
func analysisSchema() *geminiSchema {
	number := func() *geminiSchema { return &geminiSchema{Type: "NUMBER"} }
	str := func() *geminiSchema { return &geminiSchema{Type: "STRING"} }

	return &geminiSchema{
		Type: "OBJECT",
		Properties: map[string]*geminiSchema{
			"estimatedDishName": str(),
			"totals": {
				Type: "OBJECT",
				Properties: map[string]*geminiSchema{
					"totalCalories":     number(),
					"proteinGrams":      number(),
					"carbohydrateGrams": number(),
					"fatGrams":          number(),
				},
				Required: []string{"totalCalories", "proteinGrams", "carbohydrateGrams", "fatGrams"},
			},
			"components": {
				Type: "ARRAY",
				Items: &geminiSchema{
					Type: "OBJECT",
					Properties: map[string]*geminiSchema{
						"foodName":          str(),
						"estimatedQuantity": str(),
						"calories":          number(),
						"macros": {
							Type: "OBJECT",
							Properties: map[string]*geminiSchema{
								"protein":      number(),
								"carbohydrate": number(),
								"fat":          number(),
							},
						},
					},
				},
			},
			"accuracyNotice": str(),
		},
		Required: []string{"estimatedDishName", "totals", "components", "accuracyNotice"},
	}
}

// AnalyzeFoodImage sends one food photo to the model and returns the parsed
// nutritional breakdown. image is base64, with or without a data-URL prefix;
// userContext is free text and may be empty. Each call is independent: no
// caching, no retries.
func (s *GeminiService) AnalyzeFoodImage(ctx context.Context, image, userContext string) (*models.NutritionalAnalysis, error) {
	payload, mimeType := utils.SplitImagePayload(image)

	contextText := strings.TrimSpace(userContext)
	if contextText == "" {
		// An explicit placeholder keeps the model from treating missing
		// context as license to invent details.
		contextText = "none provided"
	}

	prompt := fmt.Sprintf(`The user has provided an image of a food item.
Additional context: %s.
Desired measurement unit: grams.

Analyze the image and return the nutritional data.`, contextText)

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &inlineData{MIMEType: mimeType, Data: payload}},
				{Text: prompt},
			},
		}},
		GenerationConfig: &generationConfig{
			// Low temperature favors literal extraction over creative variation.
			Temperature:      0.2,
			ResponseMIMEType: "application/json",
			ResponseSchema:   analysisSchema(),
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisService, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrAnalysisService, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gemini API error %d: %s", ErrAnalysisService, resp.StatusCode, respBody)
	}

	var gr geminiResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", ErrMalformedResponse, err)
	}

	text := candidateText(gr)
	if text == "" {
		return nil, fmt.Errorf("%w: no candidate text", ErrEmptyResponse)
	}
	text = stripCodeFences(text)

	var analysis models.NutritionalAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// A response missing totals is a partial result, not a failure: dish
	// name and components are still worth showing, so repair with zeros.
	if analysis.Totals == nil {
		analysis.Totals = &models.AnalysisTotals{}
	}
	if analysis.Components == nil {
		analysis.Components = []models.FoodComponent{}
	}
	return &analysis, nil
}

func candidateText(gr geminiResponse) string {
	if len(gr.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}

// stripCodeFences removes markdown fencing the model sometimes wraps its
// JSON in despite the response MIME type.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
