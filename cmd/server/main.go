// @title ETIQO API
// @version 1.0
// @description Purchase-order ingestion and label generation service
// @BasePath /api/v1
package main

import (
	"log"

	"etiqo/internal/alert/noop"
	"etiqo/internal/alert/ses"
	"etiqo/internal/config"
	"etiqo/internal/handler"
	"etiqo/internal/orderparse"
	"etiqo/internal/port"
	"etiqo/internal/renderer/labelsvc"
	"etiqo/internal/router"
	"etiqo/internal/service"
	"etiqo/internal/storage/s3"
	"etiqo/internal/vision/gcv"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	storage, err := s3.NewS3Client(&cfg.S3)
	if err != nil {
		return err
	}

	var alerts port.AlertSender
	switch cfg.Alert.Provider {
	case "ses":
		alerts, err = ses.NewSESSender(&cfg.Alert)
		if err != nil {
			return err
		}
	default:
		alerts = noop.NewNoopSender()
	}

	vision := gcv.NewClient(&cfg.Vision)
	renderer := labelsvc.NewClient(&cfg.Renderer)
	parser := orderparse.NewParser(vision, cfg.Parse.MaxPDFPages)

	orderService := service.NewOrderService(parser, alerts, cfg.Parse.MaxFileSizeMB)
	labelService := service.NewLabelService(renderer, storage, cfg.S3.Bucket, cfg.S3.PresignExpiry)

	orderHandler := handler.NewOrderHandler(orderService)
	labelHandler := handler.NewLabelHandler(labelService)
	healthHandler := handler.NewHealthHandler()

	r := router.Setup(cfg, orderHandler, labelHandler, healthHandler)

	log.Printf("starting server on %s (env: %s)", cfg.Server.Port, cfg.Server.Environment)
	return r.Run(cfg.Server.Port)
}
