package main

import (
	"fmt"
	"log"
	"os"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/routes"
	"lawncare-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.ServicePackage{},
		&models.Service{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Payment{},
		&models.Review{},
		&models.Quote{},
		&models.CrewMember{},
	)

	services.Notifier = services.NewNotificationService()

	quoteExpiry := services.NewQuoteExpiryService(config.DB)
	quoteExpiry.StartScheduler()
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
