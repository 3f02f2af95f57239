package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/bloodify/bloodify-server/config"
	controllers "github.com/bloodify/bloodify-server/controllers"
	middleware "github.com/bloodify/bloodify-server/middleware"
	models "github.com/bloodify/bloodify-server/models"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	roles := middleware.MongoRoleLookup(cfg)
	adminOnly := middleware.RequireRole(roles, models.RoleAdmin)
	adminOrVolunteer := middleware.RequireRole(roles, models.RoleAdmin, models.RoleVolunteer)

	// public
	r.POST("/jwt", controllers.IssueToken(cfg))
	r.POST("/users", controllers.CreateUser(cfg))
	r.GET("/users/:email", controllers.GetUser(cfg))
	r.GET("/donation_requests", controllers.ListDonationRequests(cfg))
	r.GET("/blogs/published", controllers.ListPublishedBlogs(cfg))
	r.POST("/create-payment-intent", controllers.CreatePaymentIntent(cfg))

	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("", adminOnly, controllers.ListUsers(cfg))
		users.GET("/:email/role", controllers.GetUserRole(cfg))
		users.PATCH("/:email", adminOnly, controllers.UpdateUser(cfg))
		users.POST("/:email/avatar", controllers.UploadUserAvatar(cfg))
	}

	requests := r.Group("/donation_requests")
	requests.Use(auth)
	{
		requests.POST("", controllers.CreateDonationRequest(cfg))
		requests.GET("/mine", controllers.ListMyDonationRequests(cfg))
		requests.GET("/:id", controllers.GetDonationRequest(cfg))
		requests.PATCH("/:id", adminOrVolunteer, controllers.UpdateDonationRequest(cfg))
		requests.DELETE("/:id", adminOnly, controllers.DeleteDonationRequest(cfg))
	}

	blogs := r.Group("/blogs")
	blogs.Use(auth)
	{
		blogs.POST("", adminOrVolunteer, controllers.CreateBlog(cfg))
		blogs.GET("", adminOrVolunteer, controllers.ListBlogs(cfg))
		blogs.PATCH("/:id/publish", adminOnly, controllers.ToggleBlogPublish(cfg))
		blogs.DELETE("/:id", adminOnly, controllers.DeleteBlog(cfg))
	}

	stats := r.Group("/statistics")
	stats.Use(auth)
	{
		stats.GET("", controllers.GetStatistics(cfg))
		stats.GET("/me", controllers.GetMyStatistics(cfg))
	}

	payments := r.Group("/payments")
	payments.Use(auth)
	{
		payments.POST("", controllers.RecordPayment(cfg))
		payments.GET("", adminOnly, controllers.ListPayments(cfg))
	}
}
