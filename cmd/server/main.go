package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun/migrate"
	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/opsdeskhq/opsdesk/db"
	"github.com/opsdeskhq/opsdesk/db/migrations"
	"github.com/opsdeskhq/opsdesk/lib/logging"
	"github.com/opsdeskhq/opsdesk/lib/service"
	"github.com/opsdeskhq/opsdesk/lib/tokens"
	"github.com/opsdeskhq/opsdesk/lib/tracker"
	"github.com/opsdeskhq/opsdesk/lib/transport"
	"github.com/opsdeskhq/opsdesk/rabbitmq"
)

func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := logging.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	// If no RABBITMQ_URI was provided we will not attempt to create a client
	// and invoice lifecycle events will not be emitted.
	var invoiceEvents rabbitmq.Client
	if c.RabbitMQUri != "" {
		invoiceEvents, err = rabbitmq.Dial(c.RabbitMQUri,
			rabbitmq.WithExchange(c.RabbitMQInvoiceExchange),
			rabbitmq.WithLogger(logger),
		)
		if err != nil {
			logger.Fatal(err)
		}
		// close the connection gently at the end of the runtime
		defer invoiceEvents.Close()
	}

	svc := &service.OpsdeskService{
		Config:        c,
		DB:            dbConn,
		Logger:        logger,
		TimerStore:    tracker.NewStore(c.TimerStatePath),
		InvoiceEvents: invoiceEvents,
	}

	// align the local timer state file with the database, which is
	// authoritative after a crash or concurrent edit
	if _, err := svc.ReconcileTimer(startupCtx); err != nil {
		logger.Errorf("Error reconciling timer state: %v", err)
	}

	// init echo server
	e := transport.InitEcho(c, logger)
	// if Datadog is configured, add datadog middleware
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("opsdesk")))
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for the endpoints that mutate billing state
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	secured := e.Group("", tokens.Middleware(c.JWTSecret), logMw)
	securedWithStrictRateLimit := e.Group("", tokens.Middleware(c.JWTSecret), strictRateLimitMiddleware, logMw)

	transport.RegisterEndpoints(svc, e, secured, securedWithStrictRateLimit, strictRateLimitMiddleware, tokens.AdminTokenMiddleware(c.AdminToken), logMw, transport.CreateCacheClient())

	backgroundCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)

	// Start Prometheus server if necessary
	var echoPrometheus *echo.Echo
	if svc.Config.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, svc, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backgroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	if echoPrometheus != nil {
		if err := echoPrometheus.Shutdown(ctx); err != nil {
			e.Logger.Fatal(err)
		}
	}
	svc.Logger.Info("Opsdesk exiting gracefully. Goodbye.")
}
