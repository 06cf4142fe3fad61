package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/printshophq/printshop-backend/internal/metrics"
	"github.com/printshophq/printshop-backend/internal/offline"
)

// CacheEntity is the offline-store bucket for customer snapshots.
const CacheEntity = "customers"

// Service defines customer business logic. List and Search fall back to the
// offline cache when the database is unreachable; the stale flag tells the
// caller the data came from the last successful sync.
type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	Get(ctx context.Context, id string) (*Customer, error)
	GetByDisplayID(ctx context.Context, displayID string) (*Customer, error)
	GetByUserID(ctx context.Context, userID string) (*Customer, error)
	List(ctx context.Context) (customers []*Customer, stale bool, err error)
	Search(ctx context.Context, query string) (customers []*Customer, stale bool, err error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error)
}

type service struct {
	repo  Repository
	cache *offline.Store
}

// NewService creates a new customer service. cache may be nil, which disables
// the offline fallback.
func NewService(repo Repository, cache *offline.Store) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	c := &Customer{
		ID:        uuid.New(),
		DisplayID: generateDisplayID(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   req.Address,
	}
	if req.UserID != "" {
		uid, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id: %w", err)
		}
		c.UserID = &uid
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByDisplayID(ctx context.Context, displayID string) (*Customer, error) {
	return s.repo.GetByDisplayID(ctx, displayID)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Customer, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context) ([]*Customer, bool, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return s.cachedList(ctx), true, nil
	}
	s.snapshot(ctx, customers)
	return customers, false, nil
}

func (s *service) Search(ctx context.Context, query string) ([]*Customer, bool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}
	customers, err := s.repo.Search(ctx, query)
	if err != nil {
		var matched []*Customer
		for _, c := range s.cachedList(ctx) {
			if Matches(c, query) {
				matched = append(matched, c)
			}
		}
		sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
		return matched, true, nil
	}
	return customers, false, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	c.Name = strings.TrimSpace(req.Name)
	c.Email = strings.TrimSpace(strings.ToLower(req.Email))
	c.Phone = strings.TrimSpace(req.Phone)
	c.Address = req.Address

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return c, nil
}

// Matches reports whether a customer matches a search query: substring of
// name, email, or display id, case-insensitive.
func Matches(c *Customer, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Email), q) ||
		strings.Contains(strings.ToLower(c.DisplayID), q)
}

func (s *service) snapshot(ctx context.Context, customers []*Customer) {
	if s.cache == nil {
		return
	}
	rows := make(map[string][]byte, len(customers))
	for _, c := range customers {
		payload, err := json.Marshal(c)
		if err != nil {
			continue
		}
		rows[c.ID.String()] = payload
	}
	// Best effort: a failed snapshot never fails the read it mirrors.
	_ = s.cache.Snapshot(ctx, CacheEntity, rows)
}

func (s *service) cachedList(ctx context.Context) []*Customer {
	customers := []*Customer{}
	if s.cache == nil {
		return customers
	}
	metrics.OfflineFallbacks.Inc()
	payloads, _ := s.cache.List(ctx, CacheEntity)
	for _, p := range payloads {
		c := &Customer{}
		if err := json.Unmarshal(p, c); err != nil {
			continue
		}
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })
	return customers
}

// generateDisplayID creates a human-shareable customer id: CUST-XXXXXX
func generateDisplayID() string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return fmt.Sprintf("CUST-%s", suffix)
}
