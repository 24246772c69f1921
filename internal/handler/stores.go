package handler

import (
	"context"
	"time"

	"github.com/SChakraborty04/KiitEats/internal/model"
	"github.com/SChakraborty04/KiitEats/internal/queue"
	"github.com/SChakraborty04/KiitEats/internal/repository"
)

// Handlers consume narrow store interfaces instead of concrete repositories
// so tests can substitute in-memory implementations. The repository types in
// internal/repository satisfy these one for one.

// UserStore covers the identity/OTP table.
type UserStore interface {
	UpsertOTP(ctx context.Context, mail, otp string, createdAt, expiresAt time.Time) error
	VerifyOTP(ctx context.Context, mail, otp string, now time.Time) error
	GetByMail(ctx context.Context, mail string) (model.User, error)
}

// FoodCourtStore covers food court lookups and vendor credentials.
type FoodCourtStore interface {
	ListAll(ctx context.Context) ([]repository.CourtSummary, error)
	GetByID(ctx context.Context, id uint64) (repository.CourtSummary, error)
	Explore(ctx context.Context) ([]repository.ExploreCourt, error)
	GetCredential(ctx context.Context, id uint64) (name, passwordHash string, err error)
	SetCredential(ctx context.Context, id uint64, passwordHash string) error
}

// InventoryStore covers stock reads and vendor inventory mutations.
type InventoryStore interface {
	ListByCourt(ctx context.Context, foodCourtID uint64) ([]repository.InventoryRow, error)
	CourtStock(ctx context.Context, foodCourtID uint64) ([]repository.StockItem, error)
	ListByArea(ctx context.Context, area string) ([]repository.AreaStockItem, error)
	AddItem(ctx context.Context, foodCourtID uint64, name string, price float64, quantity int64) (uint64, error)
	SetQuantity(ctx context.Context, foodCourtID, foodItemID uint64, quantity int64) (int64, error)
}

// OrderStore covers checkout, the customer read views and the vendor status
// transitions.
type OrderStore interface {
	PlaceOrder(ctx context.Context, userID uint64, lines []repository.OrderLine, payment, status, uniqueCode string) error
	ListByUser(ctx context.Context, mail string) ([]repository.OrderDetail, error)
	ListRecentByUser(ctx context.Context, mail string, limit int) ([]repository.OrderDetail, error)
	ListHistoryByUser(ctx context.Context, mail string) ([]repository.OrderDetail, error)
	ListOpenByUser(ctx context.Context, mail string) ([]repository.OrderDetail, error)
	ListByCourt(ctx context.Context, foodCourtID uint64) ([]repository.VendorOrder, error)
	Accept(ctx context.Context, orderID uint64) error
	Reject(ctx context.Context, orderID uint64) error
	Complete(ctx context.Context, orderID uint64, uniqueCode string) error
}

// DashboardStore covers the read-only rollups.
type DashboardStore interface {
	Favorites(ctx context.Context, mail string) ([]repository.FavoriteStat, error)
	Stats(ctx context.Context, mail string) (repository.UserStats, error)
}

// Mailer delivers one-time codes.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// OrderEventPublisher pushes checkout events to the broker. Publish failures
// are logged by the implementation and never fail the checkout.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event queue.OrderPlacedEvent) error
}
