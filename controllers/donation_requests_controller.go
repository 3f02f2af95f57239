package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/bloodify/bloodify-server/config"
	middleware "github.com/bloodify/bloodify-server/middleware"
	models "github.com/bloodify/bloodify-server/models"
	utils "github.com/bloodify/bloodify-server/utils"
)

// ---------------- CREATE ----------------
func CreateDonationRequest(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			RequesterName  string `json:"requester_name" binding:"required"`
			RequesterEmail string `json:"requester_email" binding:"required,email"`
			District       string `json:"district" binding:"required"`
			Upazilla       string `json:"upazilla" binding:"required"`
			RecipientName  string `json:"recipient_name" binding:"required"`
			Hospital       string `json:"hospital" binding:"required"`
			Address        string `json:"address" binding:"required"`
			Date           string `json:"date" binding:"required"`
			Time           string `json:"time" binding:"required"`
			Description    string `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		request := models.DonationRequest{
			ID:             primitive.NewObjectID(),
			RequesterName:  input.RequesterName,
			RequesterEmail: input.RequesterEmail,
			District:       input.District,
			Upazilla:       input.Upazilla,
			RecipientName:  input.RecipientName,
			Hospital:       input.Hospital,
			Address:        input.Address,
			Date:           input.Date,
			Time:           input.Time,
			Description:    input.Description,
			Status:         models.RequestPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		col := cfg.Collection("donation_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, request); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create donation request"})
			return
		}

		c.JSON(http.StatusCreated, request)
	}
}

// ---------------- GET ----------------
func GetDonationRequest(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation request id"})
			return
		}

		var request models.DonationRequest
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.Collection("donation_requests").FindOne(ctx, bson.M{"_id": oid}).Decode(&request)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "donation request not found"})
			return
		}

		if notModified(c, utils.GenerateETag(request.ID, request.UpdatedAt)) {
			return
		}

		c.JSON(http.StatusOK, request)
	}
}

// ---------------- LIST ----------------
func ListDonationRequests(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("donation_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			if !models.ValidRequestStatus(status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			filter["status"] = status
		}

		cursor, err := col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch donation requests"})
			return
		}

		var requests []models.DonationRequest
		if err := cursor.All(ctx, &requests); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode donation requests"})
			return
		}

		if len(requests) == 0 {
			c.JSON(http.StatusOK, []models.DonationRequest{})
			return
		}

		// conditional GET off the freshest record, same as single reads
		latest := requests[0]
		for _, r := range requests {
			if r.UpdatedAt.After(latest.UpdatedAt) {
				latest = r
			}
		}
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))
		if notModified(c, utils.GenerateETag(latest.ID, latest.UpdatedAt)) {
			return
		}

		c.JSON(http.StatusOK, requests)
	}
}

// ---------------- LIST MINE ----------------
// Scoped to the caller's email. status defaults to "all"; the "all"
// path is the only one that paginates.
func ListMyDonationRequests(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.CtxEmailKey)

		col := cfg.Collection("donation_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{"requester_email": email}
		opts := options.Find().SetSort(bson.M{"created_at": -1})

		status := c.DefaultQuery("status", "all")
		if status == "all" {
			if skip, limit, ok := pagingParams(c); ok {
				opts.SetSkip(skip).SetLimit(limit)
			}
		} else {
			if !models.ValidRequestStatus(status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			filter["status"] = status
		}

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch donation requests"})
			return
		}

		var requests []models.DonationRequest
		if err := cursor.All(ctx, &requests); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode donation requests"})
			return
		}

		if len(requests) == 0 {
			c.JSON(http.StatusOK, []models.DonationRequest{})
			return
		}

		c.JSON(http.StatusOK, requests)
	}
}

// ---------------- UPDATE ----------------
func UpdateDonationRequest(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation request id"})
			return
		}

		var patch DonationRequestPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		kind := patch.Classify()
		if kind == patchInvalid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		col := cfg.Collection("donation_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.DonationRequest
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "donation request not found"})
			return
		}

		now := time.Now()
		var update bson.M
		switch kind {
		case patchStatusChange, patchDonorAssignment:
			if !models.ValidRequestStatus(patch.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			if !models.CanTransition(existing.Status, patch.Status) {
				c.JSON(http.StatusConflict, gin.H{
					"error": "illegal status transition",
					"from":  existing.Status,
					"to":    patch.Status,
				})
				return
			}
			if kind == patchDonorAssignment {
				update = patch.donorUpdate(now)
			} else {
				update = patch.statusUpdate(now)
			}
		case patchFieldEdit:
			update = patch.fieldUpdate(now)
		}

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update donation request"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "donation request not found"})
			return
		}

		if kind == patchDonorAssignment {
			go utils.NotifyDonorAssigned(cfg.Logger, existing.RequesterEmail, existing.RequesterName, patch.DonorName, existing.Hospital)
		}

		c.JSON(http.StatusOK, gin.H{"message": "donation request updated", "id": oid.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteDonationRequest(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation request id"})
			return
		}

		col := cfg.Collection("donation_requests")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete donation request"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "donation request not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "donation request deleted", "id": oid.Hex()})
	}
}
