package showcase

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSlideNotFound = errors.New("slide not found")

// Service manages the display-screen slide rotation.
type Service interface {
	Create(ctx context.Context, title, description, filename string, image io.Reader) (*Slide, error)
	Get(ctx context.Context, id string) (*Slide, error)
	List(ctx context.Context, activeOnly bool) ([]*Slide, error)
	Update(ctx context.Context, id string, req UpdateSlideRequest) (*Slide, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	images ImageStore
	logger *zap.Logger
}

func NewService(repo Repository, images ImageStore, logger *zap.Logger) Service {
	return &service{repo: repo, images: images, logger: logger}
}

func (s *service) Create(ctx context.Context, title, description, filename string, image io.Reader) (*Slide, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	stored, err := s.images.Save(filename, image)
	if err != nil {
		return nil, err
	}

	slide := &Slide{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		ImageName:   stored,
		Active:      true,
	}
	if err := s.repo.Create(ctx, slide); err != nil {
		if delErr := s.images.Delete(stored); delErr != nil {
			s.logger.Warn("orphaned slide image", zap.String("name", stored), zap.Error(delErr))
		}
		return nil, err
	}
	return s.withURL(s.repo.GetByID(ctx, slide.ID.String()))
}

func (s *service) Get(ctx context.Context, id string) (*Slide, error) {
	slide, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSlideNotFound
	}
	slide.ImageURL = s.images.PublicURL(slide.ImageName)
	return slide, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]*Slide, error) {
	slides, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	for _, slide := range slides {
		slide.ImageURL = s.images.PublicURL(slide.ImageName)
	}
	return slides, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSlideRequest) (*Slide, error) {
	slide, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSlideNotFound
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, errors.New("title is required")
		}
		slide.Title = *req.Title
	}
	if req.Description != nil {
		slide.Description = *req.Description
	}
	if req.SortOrder != nil {
		slide.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		slide.Active = *req.Active
	}

	if err := s.repo.Update(ctx, slide); err != nil {
		return nil, err
	}
	return s.withURL(s.repo.GetByID(ctx, id))
}

func (s *service) Delete(ctx context.Context, id string) error {
	slide, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrSlideNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.images.Delete(slide.ImageName); err != nil {
		s.logger.Warn("orphaned slide image", zap.String("name", slide.ImageName), zap.Error(err))
	}
	return nil
}

func (s *service) withURL(slide *Slide, err error) (*Slide, error) {
	if err != nil {
		return nil, err
	}
	slide.ImageURL = s.images.PublicURL(slide.ImageName)
	return slide, nil
}
