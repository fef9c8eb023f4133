package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "Backend-Feedback/docs"
	"Backend-Feedback/src/config"
	"Backend-Feedback/src/database"
	"Backend-Feedback/src/database/inmem"
	"Backend-Feedback/src/database/mongostore"
	"Backend-Feedback/src/jobs"
	"Backend-Feedback/src/seeder"
	"Backend-Feedback/src/server"
	"Backend-Feedback/src/services/notifications"
)

// @title Academic Feedback API
// @version 1.0
// @description Feedback forms, anonymous student responses and re-feedback for teaching staff.
// @BasePath /api
func main() {
	cfg := config.Load()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	redisClient := database.InitRedis(cfg.RedisURI)
	asynqClient := database.InitAsynq(cfg.RedisURI, redisClient != nil)

	opts := server.Options{Redis: redisClient, Asynq: asynqClient}
	if cfg.SMTP.Enabled() {
		sender, err := notifications.NewSMTPSender(cfg.SMTP)
		if err != nil {
			log.Println("⚠️ SMTP disabled:", err)
		} else {
			opts.Mailer = sender
		}
	}

	srv := server.New(cfg, store, opts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := seeder.SeedAdmin(ctx, srv.Accounts, cfg.SeedAdmin); err != nil {
		log.Println("❌ Failed to seed admin:", err)
	}
	if cfg.SeedSampleData {
		if err := seeder.SeedSampleForms(ctx, srv.Accounts, srv.Forms, cfg.SeedAdmin); err != nil {
			log.Println("❌ Failed to seed sample forms:", err)
		}
	}
	cancel()

	if asynqClient != nil {
		worker, err := jobs.StartWorker(cfg.RedisURI, jobs.NewServeMux(srv.Jobs))
		if err != nil {
			log.Println("❌ Failed to start asynq worker:", err)
		} else {
			defer worker.Shutdown()
		}
		defer asynqClient.Close()
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down...")
		_ = srv.App.Shutdown()
	}()

	// เริ่มเซิร์ฟเวอร์
	log.Println("Server is running on port " + cfg.AppURI)
	if err := srv.App.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.AppURI))); err != nil {
		log.Println("❌ Server stopped:", err)
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := database.DisconnectMongoDB(shutdownCtx); err != nil {
		log.Println("⚠️ MongoDB disconnect:", err)
	}
}

func openStore(cfg *config.Config) (server.Store, error) {
	if cfg.Storage == "memory" {
		log.Println("⚠️ STORAGE=memory, data is lost on restart")
		return inmem.NewDB(), nil
	}

	db, err := database.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return mongostore.New(db, cfg.MongoTransactions), nil
}
