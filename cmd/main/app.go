package main

import (
	"bookStore/internal/book"
	"bookStore/internal/cart"
	"bookStore/internal/config"
	"bookStore/internal/handlers"
	"bookStore/internal/order"
	"bookStore/internal/review"
	"bookStore/internal/session"
	"bookStore/internal/user"
	"bookStore/package/client/broker"
	"bookStore/package/client/cache"
	"bookStore/package/client/database"
	"bookStore/package/logger"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug("No .env file loaded")
	}
	cfg := config.GetConfig()
	logger.Configure(cfg.Debug())
	decimal.MarshalJSONWithoutQuotes = true

	logger.Log.Info("Starting database")
	db := database.Init(cfg)
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Log.Error("Can not close database")
		}
	}(db)
	if err := database.Migrate(context.Background(), db); err != nil {
		logger.Log.Fatal(err)
	}

	var sessionCache session.Cache
	redisClient, err := cache.Connect(cfg.Cache)
	if err != nil {
		logger.Log.Fatal(err)
	}
	if redisClient != nil {
		defer func(client *redis.Client) {
			if err := client.Close(); err != nil {
				logger.Log.Error("Can not close redis client")
			}
		}(redisClient)
		sessionCache = session.NewRedisCache(redisClient, cfg.Cache.TTL)
	}

	var publisher order.Publisher
	producer, err := broker.Connect(cfg.Broker)
	if err != nil {
		logger.Log.Fatal(err)
	}
	if producer != nil {
		defer func(producer *broker.Producer) {
			if err := producer.Close(); err != nil {
				logger.Log.Error("Can not close kafka producer")
			}
		}(producer)
		publisher = producer
	}

	sessions := session.NewStore(session.NewStorage(db), sessionCache)
	cookies := session.Cookies{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	}

	router := httprouter.New()
	for _, handler := range []handlers.Handler{
		user.NewHandler(user.NewService(user.NewStorage(db), sessions), cookies),
		book.NewHandler(book.NewService(book.NewStorage(db))),
		cart.NewHandler(cart.NewManager(cart.NewStorage(db)), sessions, cookies),
		order.NewHandler(order.NewWorkflow(order.NewStorage(db), publisher), sessions, cookies),
		review.NewHandler(review.NewService(review.NewStorage(db)), sessions, cookies),
	} {
		handler.Register(router)
	}

	logger.Log.Info("Starting app")
	start(router, cfg)
}

func start(router *httprouter.Router, cfg *config.Config) {
	address := fmt.Sprintf("%s:%s", cfg.Listen.BindIp, cfg.Listen.Port)
	logger.Log.Info("Listening ", address)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		logger.Log.Fatal("Listener was not created: ", err)
	}

	server := &http.Server{
		Handler:      router,
		WriteTimeout: cfg.Listen.WriteTimeout,
		ReadTimeout:  cfg.Listen.ReadTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Server shutdown failed: ", err)
		}
	}()

	if err = server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Error("Server stopped: ", err)
	}
}
