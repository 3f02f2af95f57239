package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	config "github.com/bloodify/bloodify-server/config"
	models "github.com/bloodify/bloodify-server/models"
	utils "github.com/bloodify/bloodify-server/utils"
)

// ---------------- PAYMENT INTENT ----------------
// A bad amount is an explicit 400. The Stripe call only happens after
// validation passes.
func CreatePaymentIntent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Amount float64 `json:"amount"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Amount < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be at least 1"})
			return
		}

		clientSecret, err := utils.CreatePaymentIntent(input.Amount)
		if err != nil {
			cfg.Logger.Warn("payment intent creation failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not create payment intent"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
	}
}

// ---------------- RECORD ----------------
func RecordPayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name          string  `json:"name" binding:"required"`
			Email         string  `json:"email" binding:"required,email"`
			Amount        float64 `json:"amount" binding:"required,gte=1"`
			TransactionID string  `json:"transaction_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		payment := models.Payment{
			ID:            primitive.NewObjectID(),
			Name:          input.Name,
			Email:         input.Email,
			Amount:        input.Amount,
			TransactionID: input.TransactionID,
			CreatedAt:     time.Now(),
		}

		col := cfg.Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, payment); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record payment"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":      payment.ID.Hex(),
			"message": "payment recorded",
		})
	}
}

// ---------------- LIST ----------------
func ListPayments(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch payments"})
			return
		}

		var payments []models.Payment
		if err := cursor.All(ctx, &payments); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode payments"})
			return
		}

		if len(payments) == 0 {
			c.JSON(http.StatusOK, []models.Payment{})
			return
		}

		c.JSON(http.StatusOK, payments)
	}
}
