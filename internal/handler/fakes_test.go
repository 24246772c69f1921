package handler

import (
	"context"
	"strings"
	"time"

	"github.com/SChakraborty04/KiitEats/internal/model"
	"github.com/SChakraborty04/KiitEats/internal/queue"
	"github.com/SChakraborty04/KiitEats/internal/repository"
)

// In-memory store implementations backing the handler tests. They mirror the
// SQL repositories' observable behavior, including the deliberate quirks
// (reject without existence check, quantity updates that match nothing still
// succeeding).

type fakeUserStore struct {
	users  map[string]*model.User
	nextID uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}, nextID: 1}
}

func (s *fakeUserStore) UpsertOTP(_ context.Context, mail, otp string, createdAt, expiresAt time.Time) error {
	mail = strings.ToLower(mail)
	if u, ok := s.users[mail]; ok {
		u.OTP = otp
		u.CreatedAt = createdAt
		u.ExpiresAt = expiresAt
		return nil
	}
	s.users[mail] = &model.User{ID: s.nextID, Mail: mail, OTP: otp, CreatedAt: createdAt, ExpiresAt: expiresAt}
	s.nextID++
	return nil
}

func (s *fakeUserStore) VerifyOTP(_ context.Context, mail, otp string, now time.Time) error {
	u, ok := s.users[strings.ToLower(mail)]
	if !ok || u.OTP != otp || !u.ExpiresAt.After(now) {
		return repository.ErrInvalidOTP
	}
	return nil
}

func (s *fakeUserStore) GetByMail(_ context.Context, mail string) (model.User, error) {
	u, ok := s.users[strings.ToLower(mail)]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return *u, nil
}

type fakeMailer struct {
	sent []string // "mail:code"
	err  error
}

func (m *fakeMailer) SendOTP(_ context.Context, to, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+":"+code)
	return nil
}

type fakeCourtStore struct {
	courts      map[uint64]repository.CourtSummary
	explore     []repository.ExploreCourt
	credentials map[uint64]string // id -> password hash
}

func newFakeCourtStore() *fakeCourtStore {
	return &fakeCourtStore{
		courts:      map[uint64]repository.CourtSummary{},
		credentials: map[uint64]string{},
	}
}

func (s *fakeCourtStore) ListAll(_ context.Context) ([]repository.CourtSummary, error) {
	out := make([]repository.CourtSummary, 0, len(s.courts))
	for _, c := range s.courts {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCourtStore) GetByID(_ context.Context, id uint64) (repository.CourtSummary, error) {
	c, ok := s.courts[id]
	if !ok {
		return repository.CourtSummary{}, repository.ErrFoodCourtNotFound
	}
	return c, nil
}

func (s *fakeCourtStore) Explore(_ context.Context) ([]repository.ExploreCourt, error) {
	return s.explore, nil
}

func (s *fakeCourtStore) GetCredential(_ context.Context, id uint64) (string, string, error) {
	hash, ok := s.credentials[id]
	if !ok {
		return "", "", repository.ErrFoodCourtNotFound
	}
	return s.courts[id].Name, hash, nil
}

func (s *fakeCourtStore) SetCredential(_ context.Context, id uint64, passwordHash string) error {
	s.credentials[id] = passwordHash
	return nil
}

type stockKey struct {
	item  uint64
	court uint64
}

type fakeInventoryStore struct {
	stock      map[stockKey]int64
	names      map[uint64]string
	prices     map[uint64]float64
	nextItemID uint64
}

func newFakeInventoryStore() *fakeInventoryStore {
	return &fakeInventoryStore{
		stock:      map[stockKey]int64{},
		names:      map[uint64]string{},
		prices:     map[uint64]float64{},
		nextItemID: 1,
	}
}

func (s *fakeInventoryStore) ListByCourt(_ context.Context, foodCourtID uint64) ([]repository.InventoryRow, error) {
	var out []repository.InventoryRow
	for k, q := range s.stock {
		if k.court == foodCourtID {
			out = append(out, repository.InventoryRow{Name: s.names[k.item], ID: k.item, Quantity: q})
		}
	}
	return out, nil
}

func (s *fakeInventoryStore) CourtStock(_ context.Context, foodCourtID uint64) ([]repository.StockItem, error) {
	var out []repository.StockItem
	for k, q := range s.stock {
		if k.court == foodCourtID {
			out = append(out, repository.StockItem{ID: k.item, Name: s.names[k.item], Price: s.prices[k.item], Quantity: q})
		}
	}
	return out, nil
}

func (s *fakeInventoryStore) ListByArea(_ context.Context, _ string) ([]repository.AreaStockItem, error) {
	var out []repository.AreaStockItem
	for k, q := range s.stock {
		out = append(out, repository.AreaStockItem{
			ID:          k.item,
			Name:        s.names[k.item],
			Price:       s.prices[k.item],
			Quantity:    q,
			FoodCourtID: k.court,
		})
	}
	return out, nil
}

func (s *fakeInventoryStore) AddItem(_ context.Context, foodCourtID uint64, name string, price float64, quantity int64) (uint64, error) {
	id := s.nextItemID
	s.nextItemID++
	s.names[id] = name
	s.prices[id] = price
	s.stock[stockKey{item: id, court: foodCourtID}] = quantity
	return id, nil
}

func (s *fakeInventoryStore) SetQuantity(_ context.Context, foodCourtID, foodItemID uint64, quantity int64) (int64, error) {
	k := stockKey{item: foodItemID, court: foodCourtID}
	if _, ok := s.stock[k]; !ok {
		return 0, nil
	}
	s.stock[k] = quantity
	return 1, nil
}

type placedOrder struct {
	orderID    uint64
	userID     uint64
	line       repository.OrderLine
	payment    string
	status     string
	uniqueCode string
}

type fakeOrderStore struct {
	inventory *fakeInventoryStore
	orders    []placedOrder
	nextID    uint64
}

func newFakeOrderStore(inv *fakeInventoryStore) *fakeOrderStore {
	return &fakeOrderStore{inventory: inv, nextID: 1}
}

func (s *fakeOrderStore) PlaceOrder(_ context.Context, userID uint64, lines []repository.OrderLine, payment, status, uniqueCode string) error {
	for _, ln := range lines {
		s.orders = append(s.orders, placedOrder{
			orderID:    s.nextID,
			userID:     userID,
			line:       ln,
			payment:    payment,
			status:     status,
			uniqueCode: uniqueCode,
		})
		s.nextID++
		if s.inventory != nil {
			k := stockKey{item: ln.FoodItemID, court: ln.FoodCourtID}
			s.inventory.stock[k] -= ln.Quantity
		}
	}
	return nil
}

func (s *fakeOrderStore) ListByUser(_ context.Context, _ string) ([]repository.OrderDetail, error) {
	var out []repository.OrderDetail
	for _, o := range s.orders {
		out = append(out, repository.OrderDetail{
			OrderID:    o.orderID,
			Quantity:   o.line.Quantity,
			Payment:    o.payment,
			Status:     o.status,
			UniqueCode: o.uniqueCode,
		})
	}
	return out, nil
}

func (s *fakeOrderStore) ListRecentByUser(ctx context.Context, mail string, limit int) ([]repository.OrderDetail, error) {
	all, _ := s.ListByUser(ctx, mail)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (s *fakeOrderStore) ListHistoryByUser(ctx context.Context, mail string) ([]repository.OrderDetail, error) {
	all, _ := s.ListByUser(ctx, mail)
	var out []repository.OrderDetail
	for _, o := range all {
		if o.Status == model.StatusCompleted || o.Status == model.StatusCancelled {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListOpenByUser(ctx context.Context, mail string) ([]repository.OrderDetail, error) {
	all, _ := s.ListByUser(ctx, mail)
	var out []repository.OrderDetail
	for _, o := range all {
		if o.Status == model.StatusPending || o.Status == model.StatusAccepted {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListByCourt(_ context.Context, foodCourtID uint64) ([]repository.VendorOrder, error) {
	var out []repository.VendorOrder
	for _, o := range s.orders {
		if o.line.FoodCourtID == foodCourtID {
			out = append(out, repository.VendorOrder{
				OrderID:    o.orderID,
				Quantity:   o.line.Quantity,
				Status:     o.status,
				UniqueCode: o.uniqueCode,
			})
		}
	}
	return out, nil
}

func (s *fakeOrderStore) find(orderID uint64) *placedOrder {
	for i := range s.orders {
		if s.orders[i].orderID == orderID {
			return &s.orders[i]
		}
	}
	return nil
}

func (s *fakeOrderStore) Accept(_ context.Context, orderID uint64) error {
	o := s.find(orderID)
	if o == nil {
		return repository.ErrOrderNotFound
	}
	o.status = model.StatusAccepted
	return nil
}

func (s *fakeOrderStore) Reject(_ context.Context, orderID uint64) error {
	if o := s.find(orderID); o != nil {
		o.status = model.StatusCancelled
	}
	return nil
}

func (s *fakeOrderStore) Complete(_ context.Context, orderID uint64, uniqueCode string) error {
	o := s.find(orderID)
	if o == nil {
		return repository.ErrOrderNotFound
	}
	if o.uniqueCode != uniqueCode {
		return repository.ErrCodeMismatch
	}
	o.status = model.StatusCompleted
	return nil
}

type fakeDashboardStore struct {
	favorites []repository.FavoriteStat
	stats     repository.UserStats
}

func (s *fakeDashboardStore) Favorites(_ context.Context, _ string) ([]repository.FavoriteStat, error) {
	return s.favorites, nil
}

func (s *fakeDashboardStore) Stats(_ context.Context, _ string) (repository.UserStats, error) {
	return s.stats, nil
}

type fakePublisher struct {
	events []queue.OrderPlacedEvent
	err    error
}

func (p *fakePublisher) PublishOrderPlaced(_ context.Context, event queue.OrderPlacedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
