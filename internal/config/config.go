package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the shelf CLI configuration values.
type Config struct {
	Env   string `validate:"required,oneof=dev prod"`
	Shelf struct {
		Path       string `validate:"required"`
		Table      string `validate:"required"`
		Durability string `validate:"required,oneof=eager lazy"`
	}
	Log struct {
		ConsoleLevel string `validate:"required,oneof=debug info warn error"`
		FileLevel    string `validate:"required,oneof=debug info warn error"`
		File         string
	}
}

var validate = validator.New()

// Load reads configuration from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	c.Env = getenv("ENV", "prod")
	c.Shelf.Path = getenv("SHELF_DB", "shelf.db")
	c.Shelf.Table = getenv("SHELF_TABLE", "shelf")
	c.Shelf.Durability = strings.ToLower(getenv("SHELF_DURABILITY", "eager"))
	c.Log.ConsoleLevel = strings.ToLower(getenv("SHELF_LOG_CONSOLE_LEVEL", "warn"))
	c.Log.FileLevel = strings.ToLower(getenv("SHELF_LOG_FILE_LEVEL", "debug"))
	c.Log.File = getenv("SHELF_LOG_FILE", "")

	if err := validate.Struct(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
