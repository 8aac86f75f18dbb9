package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"storefront/config"
	"storefront/db"
	"storefront/logging"
	"storefront/mail"
	"storefront/message"
	"storefront/service"
	observability "storefront/trace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Could not load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logging.Init(level)

	tp := observability.ConfigureTraceProvider(cfg.JaegerEndpoint)
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	conn, err := db.NewDBConn(cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("Could not connect to postgres")
	}
	defer conn.Close()

	conn.MigrateSchema()
	if err := db.EnsureSeedData(ctx, &conn); err != nil {
		logrus.WithError(err).Fatal("Could not seed catalog")
	}

	mailSender, err := mail.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPassword, cfg.EmailFrom)
	if err != nil {
		logrus.WithError(err).Fatal("Could not create mail client")
	}

	redisClient := message.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()

	svc := service.New(cfg, redisClient, conn, mailSender)

	logrus.Info("Server starting...")

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("Service stopped with error")
	}
}
