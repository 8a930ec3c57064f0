package routes

import (
	"lawncare-backend/config"
	"lawncare-backend/controllers"
	"lawncare-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://greenscape-lawncare.com",
			"https://app.greenscape-lawncare.com",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/refresh", controllers.RefreshToken)
	}

	// Public routes: catalog browsing, price estimates, quote requests,
	// published reviews and weather lookups need no account.
	public := r.Group("/api")
	{
		public.GET("/services/packages", controllers.GetServicePackages)
		public.GET("/services/addons", controllers.GetAddOnServices)
		public.POST("/services/calculate-price", controllers.CalculatePrice)
		public.POST("/services/quick-quote", controllers.QuickQuote)

		public.POST("/quotes", controllers.SubmitQuote)

		public.GET("/reviews", controllers.GetReviews)
		public.GET("/reviews/:id", controllers.GetReview)

		public.GET("/weather/current/:zipCode", controllers.GetCurrentWeather)
		public.GET("/weather/forecast/:date/:zipCode", controllers.GetWeatherForecast)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer self-service routes
		customers := api.Group("/customers")
		{
			customers.GET("/profile", controllers.GetProfile)
			customers.PUT("/profile", controllers.UpdateProfile)
			customers.PUT("/password", controllers.ChangePassword)
			customers.DELETE("/profile", controllers.DeleteAccount)
			customers.GET("/appointments/upcoming", controllers.GetUpcomingAppointments)
			customers.GET("/appointments/history", controllers.GetServiceHistory)
			customers.PATCH("/pause-service", controllers.PauseService)
			customers.PATCH("/resume-service", controllers.ResumeService)
		}

		// Property routes
		properties := api.Group("/properties")
		{
			properties.POST("", controllers.CreateProperty)
			properties.GET("", controllers.GetProperties)
			properties.GET("/:id", controllers.GetProperty)
			properties.PUT("/:id", controllers.UpdateProperty)
			properties.DELETE("/:id", controllers.DeleteProperty)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PUT("/:id", controllers.UpdateBooking)
			bookings.DELETE("/:id", controllers.CancelBooking)
			bookings.PATCH("/:id/reschedule", controllers.RescheduleAppointment)
			bookings.PATCH("/:id/complete", utils.AdminMiddleware(), controllers.CompleteAppointment)
			bookings.POST("/:id/services", controllers.AddBookingServices)
		}

		// Payment routes
		payments := api.Group("/payments")
		{
			payments.POST("/intent", controllers.CreatePaymentIntent)
			payments.POST("/confirm", controllers.ConfirmPayment)
			payments.GET("", controllers.GetPayments)
			payments.GET("/:id", controllers.GetPayment)
			payments.GET("/:id/invoice", controllers.DownloadInvoice)
		}

		// Review routes (write side; reading is public)
		reviews := api.Group("/reviews")
		{
			reviews.POST("", controllers.CreateReview)
			reviews.PUT("/:id", controllers.UpdateReview)
			reviews.DELETE("/:id", controllers.DeleteReview)
			reviews.PATCH("/:id/approve", utils.AdminMiddleware(), controllers.ApproveReview)
			reviews.PATCH("/:id/feature", utils.AdminMiddleware(), controllers.FeatureReview)
		}

		api.POST("/quotes/:id/accept", controllers.AcceptQuote)
	}

	admin := r.Group("/api/admin")
	admin.Use(utils.AuthMiddleware(), utils.AdminMiddleware())
	{
		// Catalog management
		admin.POST("/services/packages", controllers.CreateServicePackage)
		admin.PUT("/services/packages/:id", controllers.UpdateServicePackage)
		admin.DELETE("/services/packages/:id", controllers.DeleteServicePackage)
		admin.POST("/services/addons", controllers.CreateAddOnService)
		admin.PUT("/services/addons/:id", controllers.UpdateAddOnService)
		admin.DELETE("/services/addons/:id", controllers.DeleteAddOnService)

		// Crew management
		admin.GET("/crew", controllers.GetCrewMembers)
		admin.POST("/crew", controllers.CreateCrewMember)
		admin.PUT("/crew/:id", controllers.UpdateCrewMember)
		admin.DELETE("/crew/:id", controllers.DeleteCrewMember)

		// Customer management
		admin.GET("/customers", controllers.GetCustomers)
		admin.GET("/customers/:id", controllers.GetCustomer)
		admin.POST("/customers", controllers.CreateCustomer)
		admin.PUT("/customers/:id", controllers.UpdateCustomer)
		admin.DELETE("/customers/:id", controllers.ArchiveCustomer)

		// Quote management
		admin.GET("/quotes", controllers.GetQuotes)
		admin.GET("/quotes/:id", controllers.GetQuote)
		admin.PUT("/quotes/:id/respond", controllers.RespondToQuote)

		// Review moderation
		admin.GET("/reviews/pending", controllers.GetPendingReviews)

		// Dashboard
		admin.GET("/dashboard/stats", controllers.GetDashboardStats)
		admin.GET("/dashboard/revenue", controllers.GetRevenueStats)
		admin.GET("/dashboard/today", controllers.GetTodayAppointments)
		admin.GET("/dashboard/customer-metrics", controllers.GetCustomerMetrics)
	}

	return r
}
