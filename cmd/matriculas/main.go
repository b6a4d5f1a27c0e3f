package main

import (
	"github.com/joho/godotenv"

	"github.com/plateseries/matriculas/internal/cli"
)

func main() {
	// Local runs read MATRICULAS_SOURCES and credentials from .env.
	_ = godotenv.Load()

	cli.Execute()
}
