package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/onlineshop/lib/mydb"
	"github.com/MarcGrol/onlineshop/services/checkout"
)

type config struct {
	port                  string
	dbDriver              string
	dbDSN                 string
	redisAddr             string
	sessionTTL            time.Duration
	policy                checkout.Policy
	botToken              string
	adminChatID           string
	orderTopic            string
	corsAllowedOrigins    []string
	checkoutRatePerMinute int
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func loadConfig() (config, error) {
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "720h"))
	if err != nil || sessionTTL <= 0 {
		return config{}, fmt.Errorf("invalid SESSION_TTL: %q", os.Getenv("SESSION_TTL"))
	}

	expressFee, err := decimal.NewFromString(getEnv("EXPRESS_FEE", "300.00"))
	if err != nil || expressFee.IsNegative() {
		return config{}, fmt.Errorf("invalid EXPRESS_FEE: %q", os.Getenv("EXPRESS_FEE"))
	}

	minLeadHours, err := strconv.Atoi(getEnv("MIN_LEAD_HOURS", "24"))
	if err != nil || minLeadHours < 0 {
		return config{}, fmt.Errorf("invalid MIN_LEAD_HOURS: %q", os.Getenv("MIN_LEAD_HOURS"))
	}

	location, err := time.LoadLocation(getEnv("SHOP_TIMEZONE", "UTC"))
	if err != nil {
		return config{}, fmt.Errorf("invalid SHOP_TIMEZONE: %s", err)
	}

	ratePerMinute, err := strconv.Atoi(getEnv("CHECKOUT_RATE_PER_MINUTE", "10"))
	if err != nil || ratePerMinute <= 0 {
		return config{}, fmt.Errorf("invalid CHECKOUT_RATE_PER_MINUTE: %q", os.Getenv("CHECKOUT_RATE_PER_MINUTE"))
	}

	dbDriver := getEnv("DB_DRIVER", mydb.DriverSqlite)
	if dbDriver != mydb.DriverSqlite && dbDriver != mydb.DriverPostgres {
		return config{}, fmt.Errorf("invalid DB_DRIVER: %q", dbDriver)
	}

	return config{
		port:       getEnv("PORT", "8080"),
		dbDriver:   dbDriver,
		dbDSN:      getEnv("DB_DSN", "file:shop.db"),
		redisAddr:  os.Getenv("REDIS_ADDR"),
		sessionTTL: sessionTTL,
		policy: checkout.Policy{
			ExpressFee:   expressFee.Round(2),
			MinLeadHours: minLeadHours,
			Location:     location,
		},
		botToken:              os.Getenv("BOT_TOKEN"),
		adminChatID:           os.Getenv("ADMIN_CHAT_ID"),
		orderTopic:            getEnv("ORDER_TOPIC", "order"),
		corsAllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		checkoutRatePerMinute: ratePerMinute,
	}, nil
}

func splitList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
