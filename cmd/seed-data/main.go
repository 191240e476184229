package main

import (
	"log"
	"time"

	"github.com/azurestay/booking-backend/internal/config"
	"github.com/azurestay/booking-backend/internal/database"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the catalog with sample rooms, extras, promo codes and an initial
// admin account. Safe to run against an empty database only.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	seedAdmin(db, cfg.Security.BcryptCost)
	seedRooms(db)
	seedExtras(db)
	seedPromoCodes(db)

	log.Println("Seed data inserted")
}

func seedAdmin(db database.DB, bcryptCost int) {
	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123"), bcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'admin', true, NOW(), NOW())
	`, uuid.NewString(), "admin@azurestay.test", string(hash), "Site", "Admin")
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	log.Println("Seeded admin account admin@azurestay.test (password: ChangeMe123)")
}

func seedRooms(db database.DB) {
	rooms := []struct {
		name      string
		roomType  string
		desc      string
		price     float64
		occupancy int
		size      float64
		amenities string
		features  string
		inventory int
	}{
		{"Deluxe King Room", "deluxe", "A spacious king room with city views, a work desk and a marble bathroom.", 189, 2, 32, `{"WiFi","Air Conditioning","Mini Bar","Room Service"}`, `{"King Bed","City View","Work Desk"}`, 12},
		{"Standard Twin Room", "standard", "Two comfortable twin beds, ideal for friends or colleagues travelling together.", 129, 2, 24, `{"WiFi","Air Conditioning"}`, `{"Twin Beds","Garden View"}`, 20},
		{"Family Suite", "suite", "A two-room suite sleeping up to five guests, with a kitchenette and a living area.", 289, 5, 58, `{"WiFi","Air Conditioning","Kitchenette","Washer"}`, `{"Two Bedrooms","Living Area","Balcony"}`, 6},
		{"Presidential Suite", "presidential", "The finest suite in the house with panoramic views, private dining and butler service.", 899, 4, 120, `{"WiFi","Air Conditioning","Private Bar","Butler Service","Jacuzzi"}`, `{"Panoramic View","Private Dining","Grand Piano"}`, 1},
	}

	for _, r := range rooms {
		_, err := db.Exec(`
			INSERT INTO rooms (id, name, type, description, price, max_occupancy, size,
				images, amenities, features, available, inventory, rating, review_count,
				created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, '{}', $8, $9, true, $10, 0, 0, NOW(), NOW())
		`, uuid.NewString(), r.name, r.roomType, r.desc, r.price, r.occupancy, r.size, r.amenities, r.features, r.inventory)
		if err != nil {
			log.Fatalf("Failed to seed room %q: %v", r.name, err)
		}
	}
	log.Printf("Seeded %d rooms", len(rooms))
}

func seedExtras(db database.DB) {
	extras := []struct {
		name     string
		desc     string
		price    float64
		category string
	}{
		{"Airport Transfer", "Private car transfer from the airport", 45, "transport"},
		{"Breakfast Buffet", "Full breakfast buffet, per person per stay", 20, "dining"},
		{"Late Checkout", "Checkout at 3pm instead of 11am", 30, "convenience"},
		{"Spa Package", "60 minute massage for two", 110, "wellness"},
	}

	for _, e := range extras {
		_, err := db.Exec(`
			INSERT INTO extras (id, name, description, price, category, available)
			VALUES ($1, $2, $3, $4, $5, true)
		`, uuid.NewString(), e.name, e.desc, e.price, e.category)
		if err != nil {
			log.Fatalf("Failed to seed extra %q: %v", e.name, err)
		}
	}
	log.Printf("Seeded %d extras", len(extras))
}

func seedPromoCodes(db database.DB) {
	expires := time.Now().AddDate(1, 0, 0)

	codes := []struct {
		code         string
		discountType string
		value        float64
	}{
		{"WELCOME10", "percent", 10},
		{"SUMMER25", "amount", 25},
	}

	for _, p := range codes {
		_, err := db.Exec(`
			INSERT INTO promo_codes (code, description, discount_type, value, active, end_date, created_at)
			VALUES ($1, '', $2, $3, true, $4, NOW())
		`, p.code, p.discountType, p.value, expires)
		if err != nil {
			log.Fatalf("Failed to seed promo code %q: %v", p.code, err)
		}
	}
	log.Printf("Seeded %d promo codes", len(codes))
}
