package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/MarcGrol/onlineshop/lib/mydb"
	"github.com/MarcGrol/onlineshop/lib/myhttpclient"
	"github.com/MarcGrol/onlineshop/lib/mypubsub"
	"github.com/MarcGrol/onlineshop/lib/myratelimit"
	"github.com/MarcGrol/onlineshop/lib/mytime"
	"github.com/MarcGrol/onlineshop/lib/myuuid"
	"github.com/MarcGrol/onlineshop/services/cart"
	"github.com/MarcGrol/onlineshop/services/catalog"
	"github.com/MarcGrol/onlineshop/services/checkout"
	"github.com/MarcGrol/onlineshop/services/notify"
	"github.com/MarcGrol/onlineshop/services/order"
	"github.com/MarcGrol/onlineshop/services/warmup"
)

type endpointRegistrar interface {
	RegisterEndpoints(c context.Context, router *mux.Router) error
}

func main() {
	c := context.Background()

	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file found; using environment")
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}

	router := mux.NewRouter()

	cleanup, err := createServices(c, cfg, router)
	defer cleanup()
	if err != nil {
		log.Fatalf("Error creating services: %s", err)
	}

	startWebServerBlocking(cfg, router)
}

func createServices(c context.Context, cfg config, router *mux.Router) (func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	db, dbCleanup, err := mydb.Open(c, cfg.dbDriver, cfg.dbDSN)
	if err != nil {
		return cleanup, fmt.Errorf("error opening database: %s", err)
	}
	cleanups = append(cleanups, dbCleanup)

	sessions, sessionsCleanup, err := createSessionStore(c, cfg, nower)
	if err != nil {
		return cleanup, err
	}
	cleanups = append(cleanups, sessionsCleanup)

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		return cleanup, fmt.Errorf("error creating pubsub: %s", err)
	}
	cleanups = append(cleanups, pubsubCleanup)

	orderPublisher, err := notify.NewPubSubNotifier(c, pubsub, cfg.orderTopic)
	if err != nil {
		return cleanup, err
	}
	notifier := notify.NewFanout(
		notify.NewTelegramNotifier(myhttpclient.New(notify.TelegramTimeout), notify.TelegramBaseURL, cfg.botToken, cfg.adminChatID),
		orderPublisher,
	)

	products := catalog.NewSQLCatalog(db)
	orders := order.NewSQLRepository(db)
	carts := cart.NewService(sessions, products, nower)
	checkoutService := checkout.NewService(carts, products, orders, notifier, cfg.policy, nower, uuider)

	for _, s := range []endpointRegistrar{
		catalog.NewWebService(products),
		cart.NewWebService(carts, uuider, cfg.sessionTTL),
		checkout.NewWebService(checkoutService, uuider, cfg.sessionTTL, myratelimit.New(nower, cfg.checkoutRatePerMinute, cfg.checkoutRatePerMinute)),
		order.NewWebService(orders),
		warmup.NewWebService(db),
	} {
		err = s.RegisterEndpoints(c, router)
		if err != nil {
			return cleanup, fmt.Errorf("error registering endpoints: %s", err)
		}
	}

	return cleanup, nil
}

// createSessionStore prefers redis and falls back to the document store.
func createSessionStore(c context.Context, cfg config, nower mytime.Nower) (cart.SessionStore, func(), error) {
	if cfg.redisAddr == "" {
		store, cleanup, err := cart.NewDocumentSessionStore(c, nower, cfg.sessionTTL)
		if err != nil {
			return nil, func() {}, err
		}
		return store, cleanup, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.redisAddr,
	})
	err := client.Ping(c).Err()
	if err != nil {
		client.Close()
		return nil, func() {}, fmt.Errorf("error connecting to redis at %s: %s", cfg.redisAddr, err)
	}

	return cart.NewRedisSessionStore(client, cfg.sessionTTL), func() {
		client.Close()
	}, nil
}

func startWebServerBlocking(cfg config, router *mux.Router) {
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Starting webserver on port %s (try http://localhost:%s)", cfg.port, cfg.port)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting webserver on port %s: %s", cfg.port, err)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	<-signals

	log.Printf("Shutting down webserver")
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := server.Shutdown(c)
	if err != nil {
		log.Printf("Error shutting down webserver: %s", err)
	}
}
