package params

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Server struct {
	Addr        string
	CORSOrigins []string
}

type Storage struct {
	// Dir is the Pebble data directory. Empty means run on the in-memory
	// store (development only; nothing survives a restart).
	Dir string
}

type Book struct {
	// DepthLimit caps the number of price levels returned per side when a
	// depth request carries no explicit limit.
	DepthLimit int
}

type Log struct {
	// File receives a copy of the structured log stream; empty disables the
	// file sink.
	File string
	// Level is a zap textual level ("debug", "info", "warn", ...).
	Level string
}

type Config struct {
	Server  Server
	Storage Storage
	Book    Book
	Log     Log
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:        ":8080",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:3001"},
		},
		Storage: Storage{
			Dir: "data/tokex",
		},
		Book: Book{
			DepthLimit: 50,
		},
		Log: Log{
			File:  "data/tokexd.log",
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	// Optional .env file; won't fail if missing.
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if addr := os.Getenv("API_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.Storage.Dir = dir
	}
	if limit := os.Getenv("DEPTH_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			cfg.Book.DepthLimit = n
		}
	}
	if file, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.Log.File = file
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg
}
