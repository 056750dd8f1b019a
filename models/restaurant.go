package models

import (
	"strconv"
	"time"
)

// RestaurantStatus tracks the admin approval lifecycle of a restaurant
type RestaurantStatus string

const (
	RestaurantPending   RestaurantStatus = "pending"
	RestaurantApproved  RestaurantStatus = "approved"
	RestaurantSuspended RestaurantStatus = "suspended"
)

func (s RestaurantStatus) Valid() bool {
	switch s {
	case RestaurantPending, RestaurantApproved, RestaurantSuspended:
		return true
	}
	return false
}

// Restaurant is both a marketplace listing and a login principal: vendors
// authenticate with the restaurant's own email and password.
type Restaurant struct {
	ID                  uint             `json:"id" gorm:"primaryKey"`
	Name                string           `json:"name" gorm:"not null"`
	Email               string           `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash        string           `json:"-" gorm:"not null"`
	ContactNumber       string           `json:"contact_number"`
	Address             string           `json:"address"`
	Description         string           `json:"description"`
	Status              RestaurantStatus `json:"status" gorm:"not null;default:'pending'"`
	CuisineType         string           `json:"cuisine_type" gorm:"index"`
	OpeningTime         string           `json:"opening_time"` // "HH:MM"
	ClosingTime         string           `json:"closing_time"`
	IsOpen              bool             `json:"is_open" gorm:"default:false"`
	DeliveryTimeMinutes int              `json:"delivery_time_minutes"`
	PickupTimeMinutes   int              `json:"pickup_time_minutes"`
	MinOrderAmount      float64          `json:"min_order_amount"`
	DeliveryFee         float64          `json:"delivery_fee"`
	Rating              float64          `json:"rating" gorm:"default:0"`
	ReviewsCount        int              `json:"reviews_count" gorm:"default:0"`
	LogoURL             string           `json:"logo_url"`
	CoverImageURL       string           `json:"cover_image_url"`
	Menus               []Menu           `json:"menus,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// DeliveryETA is what storefront cards show: the delivery estimate when
// delivery is configured, otherwise the pickup one.
func (r *Restaurant) DeliveryETA() string {
	switch {
	case r.DeliveryTimeMinutes > 0:
		return strconv.Itoa(r.DeliveryTimeMinutes) + " min"
	case r.PickupTimeMinutes > 0:
		return strconv.Itoa(r.PickupTimeMinutes) + " min"
	}
	return ""
}
