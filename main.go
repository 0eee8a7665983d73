package main

import (
	"github.com/skilledwork/worker_service/config"
	"github.com/skilledwork/worker_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
