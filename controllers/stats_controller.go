package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	config "github.com/bloodify/bloodify-server/config"
	middleware "github.com/bloodify/bloodify-server/middleware"
)

// totalFunding sums payments.amount with a single $group stage.
func totalFunding(ctx context.Context, cfg *config.Config) (float64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}},
	}

	cursor, err := cfg.Collection("payments").Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// ---------------- SUMMARY ----------------
// Full recount on every call, nothing is memoized.
func GetStatistics(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		userCount, err := cfg.Collection("users").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count users"})
			return
		}

		requestCount, err := cfg.Collection("donation_requests").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count donation requests"})
			return
		}

		funding, err := totalFunding(ctx, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute total funding"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"userCount":    userCount,
			"requestCount": requestCount,
			"totalFunding": funding,
		})
	}
}

// ---------------- MY COUNTS ----------------
func GetMyStatistics(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.CtxEmailKey)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		usersCount, err := cfg.Collection("users").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count users"})
			return
		}

		requestsCount, err := cfg.Collection("donation_requests").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count donation requests"})
			return
		}

		myRequestsCount, err := cfg.Collection("donation_requests").CountDocuments(ctx, bson.M{"requester_email": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count donation requests"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"usersCount":      usersCount,
			"requestsCount":   requestsCount,
			"myRequestsCount": myRequestsCount,
		})
	}
}
