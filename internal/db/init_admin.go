package db

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// InitAdmin seeds the bootstrap manager account from the environment
// when the users table is empty of it. Staff and breeder accounts are
// created through the admin console afterwards.
func InitAdmin(database *Database) {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminUsername == "" {
		log.Println("ADMIN_USERNAME not set, skipping admin bootstrap")
		return
	}

	var count int
	err := database.ExecQueryRow(context.Background(), "SELECT COUNT(*) FROM users WHERE username = $1", adminUsername).Scan(&count)
	if err != nil {
		log.Fatal(err)
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	_, err = database.Exec(context.Background(),
		"INSERT INTO users (username, password, role) VALUES ($1, $2, 'manager')",
		adminUsername, string(hashed))
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Admin user created successfully.")
}
