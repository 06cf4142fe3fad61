package catalog

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

// CacheEntity is the offline-store bucket for catalog snapshots.
const CacheEntity = "services"

// Service defines catalog business logic. List falls back to the offline
// cache when the database is unreachable.
type Service interface {
	Create(ctx context.Context, req SaveServiceRequest) (*PrintService, error)
	Get(ctx context.Context, id string) (*PrintService, error)
	List(ctx context.Context, category string, activeOnly bool) (services []*PrintService, stale bool, err error)
	Update(ctx context.Context, id string, req SaveServiceRequest) (*PrintService, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	cache *offline.Store
}

// NewService creates a new catalog service. cache may be nil.
func NewService(repo Repository, cache *offline.Store) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) Create(ctx context.Context, req SaveServiceRequest) (*PrintService, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p := &PrintService{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Category:         req.Category,
		BasePrice:        req.BasePrice,
		PaperTypes:       req.PaperTypes,
		PaperWeights:     req.PaperWeights,
		FinishingOptions: req.FinishingOptions,
		ImageURL:         req.ImageURL,
		IsActive:         active,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*PrintService, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, category string, activeOnly bool) ([]*PrintService, bool, error) {
	services, err := s.repo.List(ctx, category, activeOnly)
	if err != nil {
		return s.cachedList(ctx, category, activeOnly), true, nil
	}
	s.snapshot(ctx, services)
	return services, false, nil
}

func (s *service) Update(ctx context.Context, id string, req SaveServiceRequest) (*PrintService, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service not found: %w", err)
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Category = req.Category
	p.BasePrice = req.BasePrice
	p.PaperTypes = req.PaperTypes
	p.PaperWeights = req.PaperWeights
	p.FinishingOptions = req.FinishingOptions
	p.ImageURL = req.ImageURL
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return p, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

func validate(req SaveServiceRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if req.BasePrice < 0 {
		return fmt.Errorf("base_price must not be negative")
	}
	return nil
}

func (s *service) snapshot(ctx context.Context, services []*PrintService) {
	if s.cache == nil {
		return
	}
	rows := make(map[string][]byte, len(services))
	for _, p := range services {
		payload, err := json.Marshal(p)
		if err != nil {
			continue
		}
		rows[p.ID.String()] = payload
	}
	_ = s.cache.Snapshot(ctx, CacheEntity, rows)
}

func (s *service) cachedList(ctx context.Context, category string, activeOnly bool) []*PrintService {
	services := []*PrintService{}
	if s.cache == nil {
		return services
	}
	metrics.OfflineFallbacks.Inc()
	payloads, _ := s.cache.List(ctx, CacheEntity)
	for _, raw := range payloads {
		p := &PrintService{}
		if err := json.Unmarshal(raw, p); err != nil {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		services = append(services, p)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services
}
