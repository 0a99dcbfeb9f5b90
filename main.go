package main

import (
	"os"

	"github.com/kbrat32c1/wrestling-rankings-app/config"
	_ "github.com/kbrat32c1/wrestling-rankings-app/docs" // Swagger docs
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Wrestling Rankings API
// @version         1.0
// @description     Competitive results tracking for NCAA Division III wrestling, with Elo, RPI, hybrid and dominance ratings.

// @contact.name   API Support

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	logger.Info("Database connection established")

	r := gin.Default()
	r.Use(cors.Default())

	module := core.NewModule(config.DB, logger)
	module.SetupRoutes(r)

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", healthHandler)

	if err := module.StartScheduler(); err != nil {
		logger.WithError(err).Fatal("Failed to start scheduler")
	}
	defer module.StopScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.WithField("port", port).Info("Server starting")
	if err := r.Run(":" + port); err != nil {
		logger.WithError(err).Fatal("Server exited")
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	c.JSON(200, HealthResponse{
		Message:  "Server is running",
		Database: "connected",
	})
}
