package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	"github.com/luthfirf17/catat-jasamu-api/internal/cache"
	"github.com/luthfirf17/catat-jasamu-api/internal/config"
	dbpkg "github.com/luthfirf17/catat-jasamu-api/internal/db"
	"github.com/luthfirf17/catat-jasamu-api/internal/routes"
	"github.com/luthfirf17/catat-jasamu-api/internal/scheduler"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	summaryCache := cache.New(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	reminder := scheduler.NewPaymentReminder(db, auditDispatcher)
	reminder.Start()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, auditDispatcher, summaryCache)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
