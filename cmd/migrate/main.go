package main

import (
	"errors"
	"flag"
	"log"

	"savings-core/pkg/config"
	"savings-core/pkg/database"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var (
		command string
		source  string
		steps   int
	)
	flag.StringVar(&command, "cmd", "up", "Command to run: up, down, steps, version")
	flag.StringVar(&source, "path", "migrations", "Directory containing the SQL migrations")
	flag.IntVar(&steps, "n", 1, "Number of migrations for -cmd=steps (negative rolls back)")
	flag.Parse()

	// 加载配置
	config.Init()
	db := config.Global.DB

	m, err := migrate.New("file://"+source, database.PostgresURL(db.Host, db.Port, db.User, db.Password, db.Name))
	if err != nil {
		log.Fatalf("Migration init failed: %v", err)
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Migration up failed: %v", err)
		}
		log.Println("Migration up done")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Migration down failed: %v", err)
		}
		log.Println("Migration down done")
	case "steps":
		if err := m.Steps(steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Migration steps failed: %v", err)
		}
		log.Printf("Migrated %d step(s)", steps)
	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("Read version failed: %v", err)
		}
		log.Printf("Schema version: %d (dirty=%v)", v, dirty)
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}
