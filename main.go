package main

import (
	"github.com/feedstack/feedstack/config"
	"github.com/feedstack/feedstack/models"
	"github.com/feedstack/feedstack/routes"
	"github.com/feedstack/feedstack/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	utils.InitRedis(cfg)

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
