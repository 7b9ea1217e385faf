package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole distinguishes super admins from regular admins.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "Super Admin"
	RoleAdmin      AdminRole = "Admin"
)

// Admin is a back-office operator. FCMTokens are the push-notification
// device tokens registered from the admin portal.
type Admin struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Role      AdminRole `json:"role" db:"role"`
	Email     string    `json:"email" db:"email"`
	FCMTokens []string  `json:"fcmTokens" db:"fcm_tokens"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Activity is one back-office audit entry (login, logout, destructive edits).
type Activity struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AdminName string    `json:"adminName" db:"admin_name"`
	Action    string    `json:"action" db:"action"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Overview backs the admin dashboard landing page.
type Overview struct {
	TotalOrders    int              `json:"totalOrders"`
	TotalRevenue   float64          `json:"totalRevenue"`
	TotalCustomers int              `json:"totalCustomers"`
	RecentOrders   []Order          `json:"recentOrders"`
	TopProducts    []TopProduct     `json:"topProducts"`
	Alerts         DashboardAlerts  `json:"alerts"`
}

// DashboardAlerts are the sidebar counters that need admin attention.
type DashboardAlerts struct {
	PendingOrders    int `json:"pendingOrdersCount"`
	LowStockProducts int `json:"lowStockProductsCount"`
	PendingReviews   int `json:"pendingReviewsCount"`
}

// TopProduct is one row of the best-sellers list.
type TopProduct struct {
	ProductID uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Images    []string  `json:"images"`
	TotalSold int       `json:"totalSold"`
}

// MonthlySales is one month of shipped-or-delivered revenue.
type MonthlySales struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	TotalSales float64 `json:"totalSales"`
}
