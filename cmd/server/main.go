package main

import (
	_ "github.com/eleven-am/stt-sidecar/docs"
	"github.com/eleven-am/stt-sidecar/internal/bootstrap"
)

// @title STT Sidecar API
// @version 1.0.0
// @description Streaming speech-to-text session coordinator

// @host localhost:8100
// @BasePath /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	bootstrap.Run()
}
