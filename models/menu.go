package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// AvailabilityStatus is the vendor-facing visibility of a menu item
type AvailabilityStatus string

const (
	ItemAvailable AvailabilityStatus = "available"
	ItemSoldOut   AvailabilityStatus = "sold_out"
	ItemHidden    AvailabilityStatus = "hidden"
)

func (s AvailabilityStatus) Valid() bool {
	switch s {
	case ItemAvailable, ItemSoldOut, ItemHidden:
		return true
	}
	return false
}

// Menu groups items under a restaurant; deleting a menu removes its items.
type Menu struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	RestaurantID   uint       `json:"restaurant_id" gorm:"not null;index"`
	Name           string     `json:"name" gorm:"not null"`
	Description    string     `json:"description"`
	MenuType       string     `json:"menu_type"`
	// Bool flags carry no column default: gorm omits zero-value fields
	// that have one, which would store an explicit false as true.
	IsActive       bool       `json:"is_active" gorm:"not null"`
	AvailableFrom  string     `json:"available_from"`  // "HH:MM", empty = always
	AvailableUntil string     `json:"available_until"` // "HH:MM"
	MenuItems      []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AvailableNow reports whether the menu's time-of-day window covers the given
// instant. Windows may wrap midnight (e.g. 18:00 - 02:00). Menus without a
// complete window are always available.
func (m *Menu) AvailableNow(now time.Time) bool {
	from, okFrom := parseClock(m.AvailableFrom)
	until, okUntil := parseClock(m.AvailableUntil)
	if !okFrom || !okUntil {
		return true
	}
	cur := now.Hour()*60 + now.Minute()
	if until < from {
		// Overnight window
		return cur >= from || cur <= until
	}
	return cur >= from && cur <= until
}

// parseClock turns "HH:MM" into minutes since midnight
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, m := atoi2(parts[0]), atoi2(parts[1])
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// ValidClock reports whether s is a well-formed "HH:MM" time of day. It is
// the same parser AvailableNow uses, so anything accepted here is honored at
// ordering time rather than silently treated as always-available.
func ValidClock(s string) bool {
	_, ok := parseClock(s)
	return ok
}

func atoi2(s string) int {
	n := 0
	if s == "" {
		return -1
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// MenuItem is a dish on a menu. Position orders items within their menu and
// is assigned max+1 on create when the caller does not set one.
type MenuItem struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	MenuID             uint               `json:"menu_id" gorm:"not null;index"`
	Name               string             `json:"name" gorm:"not null"`
	Description        string             `json:"description"`
	Price              float64            `json:"price" gorm:"not null"`
	Currency           string             `json:"currency" gorm:"default:'PKR'"`
	Category           string             `json:"category"`
	DietaryTags        string             `json:"dietary_tags"` // comma separated
	AvailabilityStatus AvailabilityStatus `json:"availability_status" gorm:"default:'available'"`
	SpiceLevel         string             `json:"spice_level"`
	Calories           int                `json:"calories"`
	PrepTimeMinutes    int                `json:"prep_time_minutes"`
	IsAvailable        bool               `json:"is_available" gorm:"not null"`
	ImageURL           string             `json:"image_url"`
	Position           int                `json:"position" gorm:"not null;default:0;index"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// BeforeCreate assigns the next position within the menu when none was given
func (mi *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if mi.Position > 0 {
		return nil
	}
	var max int
	if err := tx.Model(&MenuItem{}).
		Where("menu_id = ?", mi.MenuID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error; err != nil {
		return err
	}
	mi.Position = max + 1
	return nil
}

// DietaryTagsList splits the stored comma-separated tags
func (mi *MenuItem) DietaryTagsList() []string {
	if mi.DietaryTags == "" {
		return []string{}
	}
	raw := strings.Split(mi.DietaryTags, ",")
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Orderable reports whether a customer can add the item to an order
func (mi *MenuItem) Orderable() bool {
	return mi.IsAvailable && mi.AvailabilityStatus == ItemAvailable
}
