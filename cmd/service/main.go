// File: cmd/service/main.go
// @title        NaDespensa API
// @version      1.0
// @description  食材庫存管理 API：註冊、登入與食材 CRUD
// @host         localhost:3000
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	cmd := run
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		cmd = rollback
	}
	if err := cmd(); err != nil {
		log.Error().Err(err).Msg("service exited")
		exitFunc(1)
	}
}
