package verification

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/internal/utils"
)

const verificationTimeout = 30 * time.Second

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	bareJSONPattern   = regexp.MustCompile(`(?s)\{.*\}`)
)

type (
	// VerificationService calls the vision model to classify a food image.
	// The model responds with free-form text; the embedded JSON object is
	// extracted defensively (fenced block first, then bare object).
	VerificationService interface {
		VerifyFood(ctx context.Context, imageData []byte, mimeType string) (domain.FoodVerification, error)
		VerifyFoodBase64(ctx context.Context, image string) (domain.FoodVerification, error)
	}

	verificationService struct {
		httpClient *http.Client
		baseURL    string
	}
)

func NewVerificationService() VerificationService {
	return &verificationService{
		httpClient: &http.Client{Timeout: verificationTimeout},
		baseURL:    "https://generativelanguage.googleapis.com/v1beta/models",
	}
}

// NewVerificationServiceWithBaseURL is used by tests to point the service at a fake model endpoint.
func NewVerificationServiceWithBaseURL(baseURL string) VerificationService {
	return &verificationService{
		httpClient: &http.Client{Timeout: verificationTimeout},
		baseURL:    baseURL,
	}
}

func (s *verificationService) VerifyFoodBase64(ctx context.Context, image string) (domain.FoodVerification, error) {
	if image == "" {
		return domain.FoodVerification{}, domain.ErrVerificationImageMissing
	}

	mimeType := "image/jpeg"
	// Accept data URLs ("data:image/png;base64,....") as well as bare base64.
	if strings.HasPrefix(image, "data:") {
		parts := strings.SplitN(image, ",", 2)
		if len(parts) == 2 {
			meta := strings.TrimPrefix(parts[0], "data:")
			if idx := strings.Index(meta, ";"); idx > 0 {
				mimeType = meta[:idx]
			}
			image = parts[1]
		}
	}

	imageData, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return domain.FoodVerification{}, domain.ErrVerificationImageMissing
	}

	return s.VerifyFood(ctx, imageData, mimeType)
}

func (s *verificationService) VerifyFood(ctx context.Context, imageData []byte, mimeType string) (domain.FoodVerification, error) {
	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return domain.FoodVerification{}, fmt.Errorf("GEMINI_API_KEY not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return domain.FoodVerification{}, fmt.Errorf("GEMINI_MODEL not set")
	}

	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	geminiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", s.baseURL, geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": "You are an expert in food analysis. Analyze this image and respond ONLY with a valid JSON object containing exactly these fields: 'foodType' (string, short food name), 'quantity' (string, estimate in portions or kg), 'confidence' (number between 0 and 1), and 'expiryHours' (number of hours before the food might spoil). Do not include any explanations, markdown formatting, or extra text.",
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(imageData),
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return domain.FoodVerification{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return domain.FoodVerification{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return domain.FoodVerification{}, domain.ErrVerificationTimeout
		}
		return domain.FoodVerification{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.FoodVerification{}, fmt.Errorf("%w: %s - %s", domain.ErrVerificationRejected, resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return domain.FoodVerification{}, domain.ErrMalformedVerificationResponse
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return domain.FoodVerification{}, domain.ErrVerificationRejected
	}

	return parseVerificationText(geminiResp.Candidates[0].Content.Parts[0].Text)
}

// parseVerificationText extracts the JSON result from the model's free-form
// reply: a fenced ```json block wins, then the first bare object, else the
// response is malformed.
func parseVerificationText(text string) (domain.FoodVerification, error) {
	jsonText := ""
	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		jsonText = m[1]
	} else if m := bareJSONPattern.FindString(text); m != "" {
		jsonText = m
	} else {
		return domain.FoodVerification{}, domain.ErrMalformedVerificationResponse
	}

	var result domain.FoodVerification
	if err := json.Unmarshal([]byte(strings.TrimSpace(jsonText)), &result); err != nil {
		return domain.FoodVerification{}, domain.ErrMalformedVerificationResponse
	}

	if result.FoodType == "" {
		return domain.FoodVerification{}, domain.ErrVerificationRejected
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		result.Confidence = 0.5
	}
	if result.ExpiryHours < 0 {
		result.ExpiryHours = 0
	}

	return result, nil
}

func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
