package verification

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FoodLoop-Backend/domain"

	"github.com/stretchr/testify/require"
)

func setGeminiEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-test")
}

func fakeModelServer(t *testing.T, replyText string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"parts": []map[string]any{
							{"text": replyText},
						},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestVerifyFoodFencedJSON(t *testing.T) {
	setGeminiEnv(t)
	server := fakeModelServer(t, "Here is the result:\n```json\n{\"foodType\": \"rice\", \"quantity\": \"2 kg\", \"confidence\": 0.92, \"expiryHours\": 12}\n```")
	service := NewVerificationServiceWithBaseURL(server.URL)

	result, err := service.VerifyFood(context.Background(), []byte("fake-image"), "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "rice", result.FoodType)
	require.Equal(t, "2 kg", result.Quantity)
	require.InDelta(t, 0.92, result.Confidence, 0.001)
	require.Equal(t, 12, result.ExpiryHours)
}

func TestVerifyFoodBareJSON(t *testing.T) {
	setGeminiEnv(t)
	server := fakeModelServer(t, `{"foodType": "bread", "quantity": "5 portions", "confidence": 0.8, "expiryHours": 24}`)
	service := NewVerificationServiceWithBaseURL(server.URL)

	result, err := service.VerifyFood(context.Background(), []byte("fake-image"), "image/png")
	require.NoError(t, err)
	require.Equal(t, "bread", result.FoodType)
	require.Equal(t, 24, result.ExpiryHours)
}

func TestVerifyFoodMalformedReply(t *testing.T) {
	setGeminiEnv(t)
	server := fakeModelServer(t, "I cannot tell what this image contains.")
	service := NewVerificationServiceWithBaseURL(server.URL)

	_, err := service.VerifyFood(context.Background(), []byte("fake-image"), "image/jpeg")
	require.ErrorIs(t, err, domain.ErrMalformedVerificationResponse)
}

func TestVerifyFoodEmptyFoodTypeRejected(t *testing.T) {
	setGeminiEnv(t)
	server := fakeModelServer(t, `{"foodType": "", "quantity": "", "confidence": 0.1, "expiryHours": 0}`)
	service := NewVerificationServiceWithBaseURL(server.URL)

	_, err := service.VerifyFood(context.Background(), []byte("fake-image"), "image/jpeg")
	require.ErrorIs(t, err, domain.ErrVerificationRejected)
}

func TestVerifyFoodConfidenceClamped(t *testing.T) {
	setGeminiEnv(t)
	server := fakeModelServer(t, `{"foodType": "curry", "quantity": "1 kg", "confidence": 3.5, "expiryHours": -4}`)
	service := NewVerificationServiceWithBaseURL(server.URL)

	result, err := service.VerifyFood(context.Background(), []byte("fake-image"), "image/jpeg")
	require.NoError(t, err)
	require.InDelta(t, 0.5, result.Confidence, 0.001)
	require.Equal(t, 0, result.ExpiryHours)
}

func TestVerifyFoodTimeout(t *testing.T) {
	setGeminiEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(server.Close)
	service := NewVerificationServiceWithBaseURL(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := service.VerifyFood(ctx, []byte("fake-image"), "image/jpeg")
	require.ErrorIs(t, err, domain.ErrVerificationTimeout)
}

func TestVerifyFoodBase64DataURL(t *testing.T) {
	setGeminiEnv(t)
	server := fakeModelServer(t, `{"foodType": "fruit", "quantity": "3 kg", "confidence": 0.7, "expiryHours": 48}`)
	service := NewVerificationServiceWithBaseURL(server.URL)

	image := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-image"))
	result, err := service.VerifyFoodBase64(context.Background(), image)
	require.NoError(t, err)
	require.Equal(t, "fruit", result.FoodType)
}

func TestVerifyFoodBase64Missing(t *testing.T) {
	service := NewVerificationServiceWithBaseURL("http://unused")

	_, err := service.VerifyFoodBase64(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrVerificationImageMissing)

	_, err = service.VerifyFoodBase64(context.Background(), "!!!not-base64!!!")
	require.ErrorIs(t, err, domain.ErrVerificationImageMissing)
}
