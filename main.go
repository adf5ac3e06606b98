// @title Método VAP API
// @version 1.0
// @description Backend do portal do aluno Método VAP.

// @contact.name Suporte
// @contact.email suporte@metodovap.com.br

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"
	"path/filepath"

	"github.com/Cleverson128/METODO-VAP/internal/app"
	"github.com/Cleverson128/METODO-VAP/internal/config"
	"github.com/Cleverson128/METODO-VAP/pkg/configwatcher"
	"github.com/Cleverson128/METODO-VAP/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// The webhook controller reads the secret per request, so rotating
	// it in the config file takes effect without a restart.
	go configwatcher.WatchConfig(filepath.Join("configs", "config.yaml"), func(newCfg *config.Config) {
		cfg.Hotmart = newCfg.Hotmart
	})

	application.Run()
}
