package main

import (
	"log"
	"os"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/startup"
)

func main() {
	if err := startup.Initialize(); err != nil {
		log.Fatalf("Engine startup failed: %v", err)
		os.Exit(1)
	}

	log.Println("Engine has shut down gracefully.")
}
