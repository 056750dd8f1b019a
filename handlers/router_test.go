package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/models"
	"food-marketplace-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires a full router against a fresh in-memory database. The
// handlers read the global connection, so each test swaps it out.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r, &config.Config{Port: "8080", WeekStart: time.Monday})
	return r
}

// doJSON performs a request with an optional bearer token and JSON body
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// signupCustomer registers a customer through the API and returns their token
func signupCustomer(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	rec := doJSON(t, r, "POST", "/api/v1/signup", "", gin.H{
		"name": "Test Customer", "email": email, "password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: got %d: %s", rec.Code, rec.Body.String())
	}
	return decodeBody(t, rec)["token"].(string)
}

// seedApprovedRestaurant creates an approved, open restaurant directly and
// returns it with a login token
func seedApprovedRestaurant(t *testing.T, r *gin.Engine, email string) (*models.Restaurant, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	restaurant := &models.Restaurant{
		Name:         "Test Kitchen",
		Email:        email,
		PasswordHash: string(hash),
		Status:       models.RestaurantApproved,
		IsOpen:       true,
	}
	if err := config.DB.Create(restaurant).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}

	rec := doJSON(t, r, "POST", "/api/v1/restaurants/login", "", gin.H{
		"email": email, "password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("restaurant login: got %d: %s", rec.Code, rec.Body.String())
	}
	return restaurant, decodeBody(t, rec)["token"].(string)
}

// seedAdmin creates a platform admin directly and returns a login token
func seedAdmin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := config.DB.Create(&models.Admin{Email: email, PasswordHash: string(hash)}).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	rec := doJSON(t, r, "POST", "/api/v1/admin/login", "", gin.H{
		"email": email, "password": "adminpass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login: got %d: %s", rec.Code, rec.Body.String())
	}
	return decodeBody(t, rec)["token"].(string)
}
