package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/bloodify/bloodify-server/config"
	middleware "github.com/bloodify/bloodify-server/middleware"
	models "github.com/bloodify/bloodify-server/models"
	utils "github.com/bloodify/bloodify-server/utils"
)

// ---------------- CREATE ----------------
func CreateUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Image    string `json:"image"`
			Blood    string `json:"blood" binding:"required"`
			Division string `json:"division" binding:"required"`
			District string `json:"district" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// email is the unique key
		var existing models.User
		if err := col.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}

		now := time.Now()
		user := models.User{
			ID:        primitive.NewObjectID(),
			Name:      input.Name,
			Email:     input.Email,
			Image:     input.Image,
			Blood:     input.Blood,
			Division:  input.Division,
			District:  input.District,
			Password:  input.Password,
			Role:      models.RoleDonor,
			Status:    models.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := col.InsertOne(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":      user.ID.Hex(),
			"message": "user created",
		})
	}
}

// ---------------- GET ----------------
func GetUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		var user models.User
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := cfg.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		if notModified(c, utils.GenerateETag(user.ID, user.UpdatedAt)) {
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// ---------------- ROLE CHECK ----------------
func GetUserRole(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		var user models.User
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := cfg.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"role":  user.Role,
			"admin": user.Role == models.RoleAdmin,
		})
	}
}

// ---------------- LIST ----------------
func ListUsers(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		opts := options.Find().SetSort(bson.M{"created_at": -1})
		if skip, limit, ok := pagingParams(c); ok {
			opts.SetSkip(skip).SetLimit(limit)
		}

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch users"})
			return
		}

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode users"})
			return
		}

		if len(users) == 0 {
			c.JSON(http.StatusOK, []models.User{})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// ---------------- UPDATE ----------------
// One branch runs per call: a status change, a role change, or a
// profile edit, in that order. Mixing the groups in one request is
// rejected so an admin cannot silently drop half an update.
func UpdateUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		var input struct {
			Status   string `json:"status"`
			Role     string `json:"role"`
			Name     string `json:"name"`
			Image    string `json:"image"`
			Blood    string `json:"blood"`
			Division string `json:"division"`
			District string `json:"district"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now()}
		switch {
		case input.Status != "":
			if input.Role != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "status and role cannot be changed together"})
				return
			}
			if input.Status != models.StatusActive && input.Status != models.StatusBlocked {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			update["status"] = input.Status

		case input.Role != "":
			if input.Role != models.RoleDonor && input.Role != models.RoleVolunteer && input.Role != models.RoleAdmin {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
				return
			}
			update["role"] = input.Role

		default:
			if input.Name != "" {
				update["name"] = input.Name
			}
			if input.Image != "" {
				update["image"] = input.Image
			}
			if input.Blood != "" {
				update["blood"] = input.Blood
			}
			if input.Division != "" {
				update["division"] = input.Division
			}
			if input.District != "" {
				update["district"] = input.District
			}
			if input.Password != "" {
				update["password"] = input.Password
			}
			if len(update) == 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
				return
			}
		}

		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "user updated", "email": email})
	}
}

// ---------------- AVATAR ----------------

// avatarWriter is the one collection method the avatar save needs,
// split out so the write deadline can be checked without a database.
type avatarWriter interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// saveAvatarURL records the uploaded image URL under a fresh write
// deadline. The upload itself may take up to a minute, so the
// request-scoped context can already be expired by the time this runs.
func saveAvatarURL(col avatarWriter, email, url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := col.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"image": url, "updated_at": time.Now()},
	})
	return err
}

func UploadUserAvatar(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		caller := c.GetString(middleware.CtxEmailKey)

		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.User
		if err := col.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		// self or admin
		if caller != email {
			var callerUser models.User
			err := col.FindOne(ctx, bson.M{"email": caller}).Decode(&callerUser)
			if err != nil || callerUser.Role != models.RoleAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
				return
			}
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		url, err := utils.UploadAvatar(file, fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
			return
		}

		if err := saveAvatarURL(col, email, url); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save avatar"})
			return
		}

		// best effort cleanup of the replaced image
		if existing.Image != "" {
			go func(old string) {
				_ = utils.DeleteAvatar(old)
			}(existing.Image)
		}

		c.JSON(http.StatusOK, gin.H{"message": "avatar updated", "image": url})
	}
}
