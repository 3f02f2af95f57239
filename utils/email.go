package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// ZeptoMail API payload
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// SendEmail sends an HTML email through the ZeptoMail HTTP API.
func SendEmail(to, toName, subject, body string) error {
	apiURL := os.Getenv("ZEPTO_API_URL") // e.g. https://api.zeptomail.com/v1.1/email
	apiKey := os.Getenv("ZEPTO_API_KEY")
	from := os.Getenv("EMAIL_FROM") // e.g. noreply@bloodify.app

	if apiURL == "" || apiKey == "" || from == "" {
		return fmt.Errorf("missing ZEPTO_API_URL, ZEPTO_API_KEY, or EMAIL_FROM")
	}

	payload := emailRequest{
		From:     emailAddress{Address: from},
		To:       []toRecipient{{Email: emailWithName{Address: to, Name: toName}}},
		Subject:  subject,
		HtmlBody: body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}
	return nil
}

// NotifyDonorAssigned tells a requester that a donor picked up their
// donation request. Failures are logged, never surfaced to the caller.
func NotifyDonorAssigned(logger *zap.Logger, requesterEmail, requesterName, donorName, hospital string) {
	if logger == nil {
		logger = zap.NewNop()
	}
	subject := "A donor has been assigned to your request"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> has volunteered to donate blood for your request at %s. They may reach out to coordinate a time.</p><p>&mdash; The Bloodify team</p>",
		requesterName, donorName, hospital,
	)
	if err := SendEmail(requesterEmail, requesterName, subject, body); err != nil {
		logger.Warn("donor-assigned email failed",
			zap.String("to", requesterEmail),
			zap.Error(err),
		)
	}
}
