// file: main.go
package main

import (
	"log/slog"
	"net/http"

	"vibebuild/config"
	"vibebuild/database"
	"vibebuild/logger"
	"vibebuild/routes"
	"vibebuild/utils"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Env)
	utils.InitJWT(cfg.JWTSecret)

	database.Connect(cfg)
	database.MigrateTables()
	database.InitRedis(cfg)

	r := routes.SetupRouter(database.DB, database.RDB, cfg)

	addr := ":" + cfg.Port
	slog.Info("Server listening", "address", addr)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		slog.Error("Critical server error", "error", err)
	}
}
