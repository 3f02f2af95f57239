package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	config "github.com/bloodify/bloodify-server/config"
)

// Amount validation must answer with an explicit 400 before the
// provider or the database is ever touched, so a bare Config works.
func TestCreatePaymentIntentRejectsBadAmount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/create-payment-intent", CreatePaymentIntent(&config.Config{}))

	tests := []struct {
		name string
		body string
	}{
		{"missing amount", `{}`},
		{"zero amount", `{"amount": 0}`},
		{"fractional below one", `{"amount": 0.5}`},
		{"negative amount", `{"amount": -10}`},
		{"not json", `amount=10`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error", "failure must carry a body, never an empty 200")
		})
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payments", RecordPayment(&config.Config{}))

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","amount":25}`},
		{"bad email", `{"name":"A","email":"nope","amount":25}`},
		{"amount below one", `{"name":"A","email":"a@b.com","amount":0.2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/payments", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
