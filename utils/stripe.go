package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// stripe payment-intent response, trimmed to what we read back
type paymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePaymentIntent asks Stripe for a payment intent and returns the
// client secret the frontend confirms with. The amount is in whole
// currency units and must be at least 1.
func CreatePaymentIntent(amount float64) (string, error) {
	apiURL := os.Getenv("STRIPE_API_URL") // override in tests
	if apiURL == "" {
		apiURL = "https://api.stripe.com/v1/payment_intents"
	}
	secretKey := os.Getenv("STRIPE_SECRET_KEY")
	if secretKey == "" {
		return "", fmt.Errorf("missing STRIPE_SECRET_KEY")
	}

	if amount < 1 {
		return "", fmt.Errorf("amount must be at least 1")
	}

	// Stripe wants the amount in the smallest currency unit. Round,
	// don't truncate: 19.99*100 is 1998.999... in float64.
	form := url.Values{}
	form.Set("amount", strconv.Itoa(int(math.Round(amount*100))))
	form.Set("currency", "usd")
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequest("POST", apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+secretKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var intent paymentIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", fmt.Errorf("decode stripe response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		if intent.Error != nil {
			return "", fmt.Errorf("stripe API error: %s", intent.Error.Message)
		}
		return "", fmt.Errorf("stripe API error: %s", resp.Status)
	}
	if intent.ClientSecret == "" {
		return "", fmt.Errorf("stripe response missing client_secret")
	}

	return intent.ClientSecret, nil
}
