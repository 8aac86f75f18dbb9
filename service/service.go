// Package service is the composition root: it wires the repositories, the
// commit pipeline, the queue and the HTTP surface together.
package service

import (
	"context"
	"net/http"

	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"storefront/config"
	"storefront/db"
	storefrontHttp "storefront/http"
	"storefront/logging"
	"storefront/message"
	"storefront/message/event"
	"storefront/orders"
)

type Service struct {
	httpAddr        string
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	notifications   *message.NotificationPublisher
	queuePinger     message.Pinger
}

func New(
	cfg config.Config,
	redisClient *redis.Client,
	conn db.DB,
	mailSender event.MailSender,
) Service {
	watermillLogger := logging.NewWatermill(logging.FromContext(context.Background()))

	redisPublisher := message.NewRedisPublisher(redisClient, watermillLogger)
	eventBus := event.NewBus(redisPublisher)
	notifications := message.NewNotificationPublisher(eventBus)

	productRepo := db.NewProductRepository(&conn)
	orderRepo := db.NewOrderRepository(&conn)
	commitService := orders.NewService(productRepo, orderRepo, notifications)

	eventsHandler := event.NewHandler(mailSender)
	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)
	watermillRouter := message.NewWatermillRouter(
		eventProcessorConfig,
		eventsHandler,
		watermillLogger,
	)

	echoRouter := storefrontHttp.NewHttpRouter(
		commitService,
		productRepo,
		orderRepo,
		[]byte(cfg.JWTSecret),
	)

	return Service{
		httpAddr:        cfg.HTTPAddr,
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		notifications:   notifications,
		queuePinger:     message.RedisPinger{Client: redisClient},
	}
}

func (s Service) Run(ctx context.Context) error {
	// The queue comes up in the background; order placement never waits on it.
	s.notifications.Connect(ctx, s.queuePinger)

	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// the consumer must be running before the HTTP surface reports healthy
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(s.httpAddr)
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
