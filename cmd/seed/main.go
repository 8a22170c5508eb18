package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/Andrew-Karvelis/sparkd/internal/database"
	"github.com/Andrew-Karvelis/sparkd/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "sparkd.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.GalleryImage{},
		&domain.CreditTransaction{},
		&domain.PaymentEvent{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payment_events")
	db.Exec("DELETE FROM credit_transactions")
	db.Exec("DELETE FROM gallery_images")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	users := []struct {
		email   string
		name    string
		credits int64
	}{
		{"demo@sparkd.app", "Demo User", 10},
		{"empty@sparkd.app", "No Credits", 0},
		{"fresh@sparkd.app", "Fresh Signup", 3},
	}

	for _, u := range users {
		hash, _ := bcrypt.GenerateFromPassword([]byte("sparkd123"), bcrypt.DefaultCost)
		user := domain.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Credits:      u.credits,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatal("failed to create user:", err)
		}
		log.Printf("User created: %s / sparkd123 (credits=%d)", u.email, u.credits)

		if u.credits > 0 {
			txn := domain.CreditTransaction{
				UserID:    user.ID,
				Amount:    u.credits,
				Type:      domain.CreditTransactionAdd,
				Reference: "seed",
			}
			db.Create(&txn)
		}
	}

	demo := domain.User{}
	db.Where("email = ?", "demo@sparkd.app").First(&demo)
	for i, theme := range []string{"nature", "formal"} {
		img := domain.GalleryImage{
			UserID: demo.ID,
			Theme:  theme,
			URL:    fmt.Sprintf("/static/gallery/seed_%d.png", i+1),
		}
		db.Create(&img)
	}

	log.Println("Seed complete.")
}
