package services

import (
	"context"
	"strings"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// NewsQuery narrows the article list.
type NewsQuery struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// NewsService manages site announcements and their images
type NewsService struct {
	repo     repositories.NewsRepository
	uploads  providers.UploadStore
	eventBus providers.EventBus
}

// NewNewsService creates a new news service
func NewNewsService(repo repositories.NewsRepository, uploads providers.UploadStore, bus providers.EventBus) *NewsService {
	return &NewsService{repo: repo, uploads: uploads, eventBus: bus}
}

// List returns articles newest first. Only admins see drafts.
func (s *NewsService) List(ctx context.Context, auth entities.AuthContext, q NewsQuery) ([]*entities.News, int, error) {
	if !auth.IsAdmin() {
		q.Status = string(entities.NewsStatusPublished)
	}
	status, err := query.BuildNewsStatusFilter(q.Status)
	if err != nil {
		return nil, 0, err
	}
	where := query.And(status, query.BuildSearchFilter(q.Search, query.NewsSearchFields...))

	news, err := s.repo.List(ctx, repositories.ListQuery{
		Where:  where,
		Order:  query.NewsOrder(),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, where)
	if err != nil {
		return nil, 0, err
	}
	return news, total, nil
}

// Get returns one article. Drafts are hidden from non-admins.
func (s *NewsService) Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.News, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Status != entities.NewsStatusPublished && !auth.IsAdmin() {
		return nil, apperrors.NewNotFoundError("news not found")
	}
	return n, nil
}

// Create stores an article and its optional image. Admin only.
func (s *NewsService) Create(ctx context.Context, auth entities.AuthContext, input entities.NewsInput, image *entities.Upload) (*entities.News, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	n := &entities.News{AuthorID: auth.UserID}
	if err := applyNewsInput(n, input); err != nil {
		return nil, err
	}

	if image != nil {
		path, err := s.uploads.Save(ctx, *image)
		if err != nil {
			return nil, err
		}
		n.ImagePath = path
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.discard(ctx, n.ImagePath)
		return nil, err
	}
	publish(ctx, s.eventBus, changeEvent(auth, entities.ChangeEventNews, entities.ChangeActionCreated, n.ID))
	return n, nil
}

// Update edits an article. A new image replaces the stored one.
func (s *NewsService) Update(ctx context.Context, auth entities.AuthContext, id int64, input entities.NewsInput, image *entities.Upload) (*entities.News, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyNewsInput(n, input); err != nil {
		return nil, err
	}

	previous := n.ImagePath
	if image != nil {
		path, err := s.uploads.Save(ctx, *image)
		if err != nil {
			return nil, err
		}
		n.ImagePath = path
	}

	if err := s.repo.Update(ctx, n); err != nil {
		if n.ImagePath != previous {
			s.discard(ctx, n.ImagePath)
		}
		return nil, err
	}
	if n.ImagePath != previous {
		s.discard(ctx, previous)
	}
	publish(ctx, s.eventBus, changeEvent(auth, entities.ChangeEventNews, entities.ChangeActionUpdated, id))
	return n, nil
}

// Delete removes an article and its image. Admin only.
func (s *NewsService) Delete(ctx context.Context, auth entities.AuthContext, id int64) error {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return err
	}
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, n.ImagePath)
	publish(ctx, s.eventBus, changeEvent(auth, entities.ChangeEventNews, entities.ChangeActionDeleted, id))
	return nil
}

func (s *NewsService) discard(ctx context.Context, path string) {
	if path == "" || s.uploads == nil {
		return
	}
	if err := s.uploads.Remove(ctx, path); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("path", path).Msg("failed to remove upload")
	}
}

func applyNewsInput(n *entities.News, in entities.NewsInput) error {
	n.Title = strings.TrimSpace(in.Title)
	n.Content = strings.TrimSpace(in.Content)
	if n.Title == "" || n.Content == "" {
		return apperrors.NewValidationError("title and content are required")
	}
	switch entities.NewsStatus(strings.ToLower(in.Status)) {
	case "", entities.NewsStatusDraft:
		n.Status = entities.NewsStatusDraft
	case entities.NewsStatusPublished:
		n.Status = entities.NewsStatusPublished
	default:
		return apperrors.NewValidationError("invalid news status: " + in.Status)
	}
	return nil
}
