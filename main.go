package main

import (
	"log"
	"os"

	"github.com/celestecruzzg/IOT-FINAL/config"
	"github.com/celestecruzzg/IOT-FINAL/controllers"
	"github.com/celestecruzzg/IOT-FINAL/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	if err := config.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer config.Log.Sync()

	// Connect to PostgreSQL and migrate models
	db, err := config.Connect(os.Getenv("DATABASE_URL"))
	if err != nil {
		config.Log.Fatalw("failed to connect to database", "error", err)
	}
	if err := controllers.MigrateModels(db); err != nil {
		config.Log.Fatalw("failed to run migrations", "error", err)
	}

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	registerRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	config.Log.Infow("servidor corriendo", "port", port)
	r.Run(":" + port)
}

func registerRoutes(r *gin.Engine) {
	// Public routes
	auth := r.Group("/api/auth")
	auth.POST("/register", controllers.Register)
	auth.POST("/login", controllers.Login)
	auth.POST("/security-question", controllers.GetSecurityQuestion)
	auth.POST("/google", controllers.GoogleLogin)

	// Protected routes using auth middleware
	sensors := r.Group("/api/sensors")
	sensors.Use(middlewares.AuthMiddleware())
	sensors.GET("/fetch", controllers.FetchAndStore)
	sensors.POST("/store-sensor-data", controllers.StoreSensorData)
	sensors.GET("/history/general", controllers.GetGeneralHistory)
	sensors.GET("/history/parcela/:parcelaId", controllers.GetParcelaHistory)
	sensors.GET("/history/parcelas-eliminadas", controllers.GetParcelasEliminadas)
	sensors.GET("/parcelas", controllers.GetParcelas)
	sensors.GET("/parcelasAPI", controllers.GetParcelasAPI)
	sensors.GET("/export-csv", controllers.ExportCSV)
	sensors.GET("/ws", controllers.HandleWebSocket)
}
