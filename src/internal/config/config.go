package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=money_transfer_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultChannelID = "TransferApp"
const defaultChannelKey = "TransferKey001"
const defaultServiceName = "money-transfer-service"
const defaultShutdownTimeout = 15 * time.Second

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	DatabaseDSN     string
	MigrationsDir   string
	StoreDriver     string
	HTTPAddr        string
	ChannelID       string
	ChannelKeyHash  string
	NATSURL         string
	OTLPEndpoint    string
	ServiceName     string
	ShutdownTimeout time.Duration
}

func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	conn := getEnv("DATABASE_DSN", defaultConnectionString)

	storeDriver := strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres))
	if storeDriver != StoreDriverPostgres && storeDriver != StoreDriverMemory {
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q: expected %s or %s", storeDriver, StoreDriverPostgres, StoreDriverMemory)
	}

	channelKeyHash := getEnv("CHANNEL_KEY_HASH", "")
	if channelKeyHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("CHANNEL_KEY", defaultChannelKey)), bcrypt.DefaultCost)
		if err != nil {
			return Config{}, fmt.Errorf("hash channel key: %w", err)
		}
		channelKeyHash = string(hash)
	}

	shutdownTimeout := defaultShutdownTimeout
	if raw := getEnv("SHUTDOWN_TIMEOUT_SECONDS", ""); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be a positive integer")
		}
		shutdownTimeout = time.Duration(seconds) * time.Second
	}

	return Config{
		DatabaseDSN:     normalizeConnectionString(conn),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", filepath.Join("src", "migrations")),
		StoreDriver:     storeDriver,
		HTTPAddr:        getEnv("HTTP_ADDR", defaultHTTPAddr),
		ChannelID:       getEnv("CHANNEL_ID", defaultChannelID),
		ChannelKeyHash:  channelKeyHash,
		NATSURL:         getEnv("NATS_URL", ""),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:     getEnv("SERVICE_NAME", defaultServiceName),
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func normalizeConnectionString(raw string) string {
	// URL-style DSNs are understood by lib/pq as-is.
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
