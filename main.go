package main

import (
	"userdirectory/config"
	"userdirectory/internal/api"
)

func main() {
	// load configuration
	cfg := config.LoadConfig()

	api.StartServer(cfg)
}
