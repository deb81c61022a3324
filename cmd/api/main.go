package main

import (
	"context"
	"fmt"

	_ "github.com/joho/godotenv/autoload"

	_ "zerovicio/docs"
	"zerovicio/internal/adapter/http/routes"
	"zerovicio/internal/infrastructure/telemetry"
)

// @title           Zero Vícios PIX API
// @version         1.0
// @description     PIX checkout service: gateway fallback chain with a development mock.

// @host localhost:8080

// @BasePath  /

func main() {
	if err := telemetry.Init("zerovicio-pix"); err != nil {
		panic(fmt.Sprintf("failed to initialize telemetry: %v", err))
	}
	defer telemetry.Shutdown(context.Background())

	routes.Run()
}
