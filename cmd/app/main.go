package main

import (
	"villa/config"
	"villa/di"
	"villa/shared/logger"
)

// @title Villa Booking API
// @version 1.0
// @description Booking backend for a single vacation rental property.
// @BasePath /
// @securityDefinitions.apikey AdminSecret
// @in header
// @name X-Admin-Secret
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin session token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)
	logger.SetOutput(cfg)

	http := di.InitializeService()
	http.Serve()
}
