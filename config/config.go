package config

import (
	"log"
	"os"
	"time"

	"food-marketplace-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "food_marketplace_super_secret_2025"))

// Config holds everything read from the environment at boot
type Config struct {
	Port   string
	DBPath string
	// WeekStart decides where "this week" begins for dashboard aggregation.
	// Whether week boundaries are a product requirement is an open question
	// upstream, so it is configuration rather than a constant.
	WeekStart time.Weekday
}

// Load reads .env (when present) and the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("⚠️ could not read .env:", err)
	}
	// .env may carry JWT_SECRET; re-read after loading it
	JWTSecret = []byte(getEnv("JWT_SECRET", "food_marketplace_super_secret_2025"))

	return &Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "food_marketplace.db"),
		WeekStart: parseWeekday(getEnv("WEEK_START", "monday")),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func parseWeekday(s string) time.Weekday {
	switch s {
	case "sunday", "Sunday":
		return time.Sunday
	case "saturday", "Saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}

var DB *gorm.DB

// InitDB opens the sqlite database and migrates every model
func InitDB(cfg *Config) {
	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}

// Migrate runs the schema migration on any gorm connection (tests open their own)
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Restaurant{},
		&models.Menu{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// SeedAdmin creates the first platform admin from ADMIN_EMAIL/ADMIN_PASSWORD
func SeedAdmin(db *gorm.DB) error {
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("⚠️ skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&models.Admin{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.Admin{Email: email, PasswordHash: string(hash)}).Error
}
