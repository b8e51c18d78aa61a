//cmd/seeder/main.go
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/unclebandit/customer-segmentation/internal/db"
	"github.com/unclebandit/customer-segmentation/internal/repository"
	"github.com/unclebandit/customer-segmentation/internal/seed"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}
	file := os.Getenv("SEED_FILE")
	if file == "" {
		file = "seed/customers.csv"
	}

	conn, err := db.OpenDSN(dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// empty name lets the driver ask for the current database
	if err := db.Migrate(conn, ""); err != nil {
		log.Fatal(err)
	}

	records, err := seed.LoadFile(file)
	if err != nil {
		log.Fatalf("failed to read %s: %v", file, err)
	}

	repo := &repository.CustomerRepository{DB: conn}
	inserted, err := seed.Load(context.Background(), repo, records)
	if err != nil {
		log.Fatalf("failed to seed %s: %v", file, err)
	}
	log.Printf("Seeded: %s (%d rows inserted)\n", file, inserted)
	log.Println("Database seeding completed successfully!")
}
