// Seeds a local database with demo reservations for working on the guide.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"flatguide/internal/database"
	"flatguide/internal/domain"
	"flatguide/internal/guestconfig"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "flatguide.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := guestconfig.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	repo := guestconfig.NewRepository(db)
	ctx := context.Background()

	today := time.Now()
	demos := []domain.GuestConfig{
		{
			RID:            "LILI01",
			GuestName:      "Ana Souza",
			Email:          "ana@example.com",
			Property:       domain.PropertyFlatLili,
			FlatNumber:     "32",
			LockCode:       "4711",
			SafeCode:       "0815",
			WifiSSID:       "FlatLili",
			WifiPassword:   "welcome-home",
			WelcomeMessage: "Bem-vinda, Ana!",
			CheckInDate:    today.Format("2006-01-02"),
			CheckoutDate:   today.AddDate(0, 0, 4).Format("2006-01-02"),
			CheckInTime:    "after 14:00",
			CheckOutTime:   "until 11:00",
			IsReleased:     true,
		},
		{
			RID:          "LUA042",
			GuestName:    "Marcos Lima",
			Property:     domain.PropertyFlatLua,
			FlatNumber:   "7",
			LockCode:     "2580",
			WifiSSID:     "FlatLua",
			WifiPassword: "moonlight",
			CheckInDate:  today.AddDate(0, 0, 10).Format("2006-01-02"),
			CheckoutDate: today.AddDate(0, 0, 11).Format("2006-01-02"),
			CheckInTime:  "after 15:00",
			CheckOutTime: "until 10:00",
		},
		{
			RID:                "SOLOFF",
			GuestName:          "Revoked Guest",
			Property:           domain.PropertyFlatSol,
			ManualDeactivation: true,
		},
	}

	for i := range demos {
		err := repo.Create(ctx, &demos[i])
		if errors.Is(err, guestconfig.ErrDuplicateRID) {
			log.Printf("seed: %s already exists, skipping", demos[i].RID)
			continue
		}
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("seed: created %s (%s)", demos[i].RID, demos[i].GuestName)
	}
}
