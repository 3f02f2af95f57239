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
func CreateBlog(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title     string `json:"title" binding:"required"`
			Thumbnail string `json:"thumbnail"`
			Content   string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		blog := models.Blog{
			ID:          primitive.NewObjectID(),
			Title:       input.Title,
			Thumbnail:   input.Thumbnail,
			Content:     input.Content,
			AuthorEmail: c.GetString(middleware.CtxEmailKey),
			Status:      models.BlogDraft,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		col := cfg.Collection("blogs")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, blog); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create blog"})
			return
		}

		c.JSON(http.StatusCreated, blog)
	}
}

// ---------------- LIST ----------------
func ListBlogs(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("blogs")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if status := c.Query("status"); status != "" && status != "all" {
			filter["status"] = status
		}

		cursor, err := col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch blogs"})
			return
		}

		var blogs []models.Blog
		if err := cursor.All(ctx, &blogs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode blogs"})
			return
		}

		if len(blogs) == 0 {
			c.JSON(http.StatusOK, []models.Blog{})
			return
		}

		c.JSON(http.StatusOK, blogs)
	}
}

// ---------------- LIST PUBLISHED ----------------
// Public feed, published posts only.
func ListPublishedBlogs(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("blogs")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx,
			bson.M{"status": models.BlogPublished},
			options.Find().SetSort(bson.M{"created_at": -1}),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch blogs"})
			return
		}

		var blogs []models.Blog
		if err := cursor.All(ctx, &blogs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode blogs"})
			return
		}

		if len(blogs) == 0 {
			c.JSON(http.StatusOK, []models.Blog{})
			return
		}

		latest := blogs[0]
		for _, b := range blogs {
			if b.UpdatedAt.After(latest.UpdatedAt) {
				latest = b
			}
		}
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))
		if notModified(c, utils.GenerateETag(latest.ID, latest.UpdatedAt)) {
			return
		}

		c.JSON(http.StatusOK, blogs)
	}
}

// ---------------- PUBLISH TOGGLE ----------------
func ToggleBlogPublish(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid blog id"})
			return
		}

		col := cfg.Collection("blogs")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var blog models.Blog
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&blog); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "blog not found"})
			return
		}

		next, ok := models.TogglePublishStatus(blog.Status)
		if !ok {
			// unknown stored status, leave the record alone
			c.JSON(http.StatusOK, gin.H{"message": "blog status unchanged", "status": blog.Status})
			return
		}

		_, err = col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
			"$set": bson.M{"status": next, "updated_at": time.Now()},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update blog"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "blog status updated", "status": next})
	}
}

// ---------------- DELETE ----------------
func DeleteBlog(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid blog id"})
			return
		}

		col := cfg.Collection("blogs")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete blog"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "blog not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "blog deleted", "id": oid.Hex()})
	}
}
