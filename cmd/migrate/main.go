package main

import (
	"context"
	"database/sql"
	"log"

	"bookcourier/internal/config"
	"bookcourier/internal/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	log.Println("Creating tables...")
	createTables(ctx, db)

	log.Println("Creating indexes...")
	createIndexes(ctx, db)

	log.Println("Seeding coverage areas...")
	seedCoverage(ctx, db)

	log.Println("Done.")
}

func createTables(ctx context.Context, db *bun.DB) {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Book)(nil),
		(*models.Order)(nil),
		(*models.Payment)(nil),
		(*models.WishlistItem)(nil),
		(*models.Review)(nil),
		(*models.CoverageArea)(nil),
	}
	for _, m := range tables {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			log.Fatalf("Failed to create table for %T: %v", m, err)
		}
	}
}

// The unique indexes make the "already exists" checks hold under
// concurrent requests, not just sequential ones. users.email and
// payments.transaction_id come from the model tags; the wishlist natural
// key is composite so it needs an explicit index.
func createIndexes(ctx context.Context, db *bun.DB) {
	_, err := db.NewCreateIndex().
		Model((*models.WishlistItem)(nil)).
		Index("wishlist_items_book_user_key").
		Unique().
		IfNotExists().
		Column("book_id", "user_email").
		Exec(ctx)
	if err != nil {
		log.Fatalf("Failed to create wishlist index: %v", err)
	}

	_, err = db.NewCreateIndex().
		Model((*models.Review)(nil)).
		Index("reviews_book_customer_key").
		Unique().
		IfNotExists().
		Column("book_id", "customer_email").
		Exec(ctx)
	if err != nil {
		log.Fatalf("Failed to create reviews index: %v", err)
	}
}

func seedCoverage(ctx context.Context, db *bun.DB) {
	count, err := db.NewSelect().Model((*models.CoverageArea)(nil)).Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count coverage areas: %v", err)
	}
	if count > 0 {
		log.Printf("Coverage areas already seeded (%d rows), skipping", count)
		return
	}

	areas := []models.CoverageArea{
		{ID: uuid.NewString(), District: "Dhaka", City: "Dhaka", Area: "Dhanmondi", Latitude: 23.7461, Longitude: 90.3742},
		{ID: uuid.NewString(), District: "Dhaka", City: "Dhaka", Area: "Mirpur", Latitude: 23.8223, Longitude: 90.3654},
		{ID: uuid.NewString(), District: "Dhaka", City: "Dhaka", Area: "Uttara", Latitude: 23.8759, Longitude: 90.3795},
		{ID: uuid.NewString(), District: "Chattogram", City: "Chattogram", Area: "Agrabad", Latitude: 22.3252, Longitude: 91.8123},
		{ID: uuid.NewString(), District: "Chattogram", City: "Chattogram", Area: "Pahartali", Latitude: 22.3688, Longitude: 91.7951},
		{ID: uuid.NewString(), District: "Sylhet", City: "Sylhet", Area: "Zindabazar", Latitude: 24.8949, Longitude: 91.8687},
		{ID: uuid.NewString(), District: "Khulna", City: "Khulna", Area: "Sonadanga", Latitude: 22.8158, Longitude: 89.5403},
		{ID: uuid.NewString(), District: "Rajshahi", City: "Rajshahi", Area: "Shaheb Bazar", Latitude: 24.3664, Longitude: 88.6026},
	}
	if _, err := db.NewInsert().Model(&areas).Exec(ctx); err != nil {
		log.Fatalf("Failed to seed coverage areas: %v", err)
	}
	log.Printf("Seeded %d coverage areas", len(areas))
}
