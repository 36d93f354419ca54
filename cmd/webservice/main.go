package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "time/tzdata"

	"github.com/alimikegami/point-of-sales/cashier-service/config"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/controller"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/infrastructure/alert"
	circuitbreaker "github.com/alimikegami/point-of-sales/cashier-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/infrastructure/database/postgres"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/alimikegami/point-of-sales/cashier-service/internal/infrastructure/payment-gateway"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/infrastructure/settings"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/point-of-sales/cashier-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/repository"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/service"
	pkgdto "github.com/alimikegami/point-of-sales/cashier-service/pkg/dto"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	config := config.CreateNewConfig()

	kafkaProducer := kafka.CreateKafkaProducer(config)

	db, err := postgres.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		panic(err)
	}

	traceProvider, err := tracing.InitTracing(config.TracingConfig.CollectorHost)
	if err != nil {
		fmt.Println(err)
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			fmt.Println(err)
		}
	}()

	tracer := traceProvider.Tracer("cashier-service")

	e := echo.New()
	g := e.Group("/api/v1")

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			// add the context to the request
			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))
	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)

	g.GET("/ping", func(c echo.Context) error {
		return pkgdto.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	isLoggedIn := localmiddleware.JWTAuth(config.JWTSecret)

	cb := circuitbreaker.CreateCircuitBreaker[*coreapi.ChargeResponse]("cashier-service")
	gateway := paymentgateway.CreateMidtransGateway(config, cb)
	settingsProvider := settings.CreateSettingsProvider(config)
	alerter := alert.CreateLowStockAlerter(kafkaProducer, config)

	transactionRepo := repository.CreateTransactionRepository(db)
	transactionSvc := service.CreateTransactionService(transactionRepo, gateway, settingsProvider, alerter, kafkaProducer, config)
	controller.CreateTransactionController(g, transactionSvc, isLoggedIn)

	s, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	// cancel pending gateway transactions whose payment window has closed
	_, err = s.NewJob(
		gocron.DurationJob(
			time.Minute,
		),
		gocron.NewTask(
			transactionSvc.ExpireStalePayments,
		),
	)
	if err != nil {
		panic(err)
	}

	s.Start()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", config.ServicePort)))
}
