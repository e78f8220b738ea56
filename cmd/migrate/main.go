package main

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/m04kA/SMC-ChatbotService/internal/config"
)

func main() {
	configPath := flag.String("config", "config.toml", "путь к конфигурации")
	migrationsPath := flag.String("migrations", "migrations", "каталог с миграциями")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	m, err := migrate.New("file://"+*migrationsPath, databaseURL(cfg))
	if err != nil {
		fmt.Printf("Failed to initialize migrations: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "drop":
		err = m.Drop()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			err = verr
			break
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
	default:
		fmt.Printf("Unknown command %q, expected up|down|drop|version\n", command)
		os.Exit(1)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No migrations to apply")
		return
	}
	if err != nil {
		fmt.Printf("Migration %s failed: %v\n", command, err)
		os.Exit(1)
	}

	fmt.Printf("Migration %s completed\n", command)
}

// databaseURL собирает URL подключения для golang-migrate
func databaseURL(cfg *config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.Database.User),
		url.QueryEscape(cfg.Database.Password),
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)
}
