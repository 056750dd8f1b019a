package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

func TestAdminApproveRestaurant(t *testing.T) {
	r := newTestRouter(t)
	adminToken := seedAdmin(t, r, "approver@example.com")

	rec := doJSON(t, r, "POST", "/api/v1/restaurants/signup", "", gin.H{
		"name": "Hopeful Kitchen", "email": "hopeful@example.com", "password": "secret123",
	})
	restaurantID := int(decodeBody(t, rec)["restaurant"].(map[string]interface{})["id"].(float64))

	rec = doJSON(t, r, "PATCH", fmt.Sprintf("/api/v1/admin/restaurants/%d/approve", restaurantID), adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: got %d: %s", rec.Code, rec.Body.String())
	}

	var restaurant models.Restaurant
	config.DB.First(&restaurant, restaurantID)
	if restaurant.Status != models.RestaurantApproved {
		t.Errorf("status: got %s, want approved", restaurant.Status)
	}

	// The same endpoint can suspend with an explicit status
	rec = doJSON(t, r, "PATCH", fmt.Sprintf("/api/v1/admin/restaurants/%d/approve", restaurantID),
		adminToken, gin.H{"status": "suspended"})
	if rec.Code != http.StatusOK {
		t.Fatalf("suspend: got %d: %s", rec.Code, rec.Body.String())
	}
	config.DB.First(&restaurant, restaurantID)
	if restaurant.Status != models.RestaurantSuspended {
		t.Errorf("status: got %s, want suspended", restaurant.Status)
	}
}

func TestAdminApproveRejectsUnknownStatus(t *testing.T) {
	r := newTestRouter(t)
	adminToken := seedAdmin(t, r, "strict@example.com")
	restaurant, _ := seedApprovedRestaurant(t, r, "victim@example.com")

	rec := doJSON(t, r, "PATCH", fmt.Sprintf("/api/v1/admin/restaurants/%d/approve", restaurant.ID),
		adminToken, gin.H{"status": "banished"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestAdminUpdateUser(t *testing.T) {
	r := newTestRouter(t)
	adminToken := seedAdmin(t, r, "hr@example.com")
	signupCustomer(t, r, "promotee@example.com")

	var user models.User
	config.DB.Where("email = ?", "promotee@example.com").First(&user)

	rec := doJSON(t, r, "PUT", fmt.Sprintf("/api/v1/admin/users/%d", user.ID),
		adminToken, gin.H{"role": "rider"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update user: got %d: %s", rec.Code, rec.Body.String())
	}

	config.DB.First(&user, user.ID)
	if user.Role != models.RoleRider {
		t.Errorf("role: got %s, want rider", user.Role)
	}

	rec = doJSON(t, r, "PUT", fmt.Sprintf("/api/v1/admin/users/%d", user.ID),
		adminToken, gin.H{"role": "emperor"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad role: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestAdminForceOrderStatus(t *testing.T) {
	r := newTestRouter(t)
	adminToken := seedAdmin(t, r, "fixer@example.com")
	restaurant, vendorToken := seedApprovedRestaurant(t, r, "stuck@example.com")
	itemID := seedMenuItem(t, r, vendorToken, 10)
	customerToken := signupCustomer(t, r, "stuck-customer@example.com")
	orderID := placeOrder(t, r, customerToken, restaurant.ID, itemID, 1)

	// Admin overrides skip the state machine entirely
	rec := doJSON(t, r, "PUT", fmt.Sprintf("/api/v1/admin/orders/%d", orderID),
		adminToken, gin.H{"status": "completed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("force status: got %d: %s", rec.Code, rec.Body.String())
	}

	var order models.Order
	config.DB.First(&order, orderID)
	if order.Status != models.StatusCompleted {
		t.Errorf("status: got %s, want completed", order.Status)
	}
}

func TestAdminListFilters(t *testing.T) {
	r := newTestRouter(t)
	adminToken := seedAdmin(t, r, "lister@example.com")
	signupCustomer(t, r, "c1@example.com")
	doJSON(t, r, "POST", "/api/v1/signup", "", gin.H{
		"name": "Rider", "email": "r1@example.com", "password": "secret123", "role": "rider",
	})
	seedApprovedRestaurant(t, r, "approved-list@example.com")
	doJSON(t, r, "POST", "/api/v1/restaurants/signup", "", gin.H{
		"name": "Pending Kitchen", "email": "pending-list@example.com", "password": "secret123",
	})

	rec := doJSON(t, r, "GET", "/api/v1/admin/users?role=rider", adminToken, nil)
	if got := decodeBody(t, rec)["count"].(float64); got != 1 {
		t.Errorf("rider count: got %v, want 1", got)
	}

	rec = doJSON(t, r, "GET", "/api/v1/admin/restaurants?status=pending", adminToken, nil)
	if got := decodeBody(t, rec)["count"].(float64); got != 1 {
		t.Errorf("pending restaurant count: got %v, want 1", got)
	}
}

func TestAdminDeleteRestaurantCascades(t *testing.T) {
	r := newTestRouter(t)
	adminToken := seedAdmin(t, r, "reaper@example.com")
	restaurant, vendorToken := seedApprovedRestaurant(t, r, "doomed-r@example.com")
	seedMenuItem(t, r, vendorToken, 10)

	rec := doJSON(t, r, "DELETE", fmt.Sprintf("/api/v1/admin/restaurants/%d", restaurant.ID), adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete restaurant: got %d: %s", rec.Code, rec.Body.String())
	}

	var menus, items int64
	config.DB.Model(&models.Menu{}).Where("restaurant_id = ?", restaurant.ID).Count(&menus)
	config.DB.Model(&models.MenuItem{}).Count(&items)
	if menus != 0 || items != 0 {
		t.Errorf("cascade: %d menus and %d items left behind", menus, items)
	}
}

func TestOrdersReportExport(t *testing.T) {
	r := newTestRouter(t)
	adminToken := seedAdmin(t, r, "accountant@example.com")
	restaurant, vendorToken := seedApprovedRestaurant(t, r, "exported@example.com")
	itemID := seedMenuItem(t, r, vendorToken, 10)
	customerToken := signupCustomer(t, r, "exported-c@example.com")
	placeOrder(t, r, customerToken, restaurant.ID, itemID, 1)

	rec := doJSON(t, r, "GET", "/api/v1/admin/reports/orders.xlsx", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type: got %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("workbook should not be empty")
	}
}
