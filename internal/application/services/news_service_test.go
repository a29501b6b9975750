package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

func TestNewsService_List_PublicSeesPublishedOnly(t *testing.T) {
	repo := new(MockNewsRepository)
	service := services.NewNewsService(repo, nil, nil)

	draft := entities.News{Status: entities.NewsStatusDraft}
	published := entities.News{Status: entities.NewsStatusPublished}
	repo.On("List", mock.Anything, mock.MatchedBy(func(q repositories.ListQuery) bool {
		return q.Where.Matches(published) && !q.Where.Matches(draft)
	})).Return([]*entities.News{&published}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(1, nil)

	items, total, err := service.List(context.Background(), entities.AuthContext{}, services.NewsQuery{Status: "draft"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, total)
}

func TestNewsService_Get_HidesDrafts(t *testing.T) {
	repo := new(MockNewsRepository)
	service := services.NewNewsService(repo, nil, nil)

	repo.On("GetByID", mock.Anything, int64(4)).Return(&entities.News{ID: 4, Status: entities.NewsStatusDraft}, nil)

	_, err := service.Get(context.Background(), patientAuth, 4)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	n, err := service.Get(context.Background(), adminAuth, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n.ID)
}

func TestNewsService_Create_WithImage(t *testing.T) {
	repo := new(MockNewsRepository)
	uploads := new(MockUploadStore)
	service := services.NewNewsService(repo, uploads, nil)

	image := &entities.Upload{Filename: "banner.png", Size: 3, Content: []byte("png")}
	uploads.On("Save", mock.Anything, *image).Return("uploads/abc.png", nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.News) bool {
		return n.ImagePath == "uploads/abc.png" && n.AuthorID == adminAuth.UserID && n.Status == entities.NewsStatusPublished
	})).Return(nil)

	n, err := service.Create(context.Background(), adminAuth, entities.NewsInput{Title: "Open day", Content: "Free checkups", Status: "published"}, image)
	require.NoError(t, err)
	assert.Equal(t, "uploads/abc.png", n.ImagePath)
	repo.AssertExpectations(t)
}

func TestNewsService_Create_RemovesImageOnFailure(t *testing.T) {
	repo := new(MockNewsRepository)
	uploads := new(MockUploadStore)
	service := services.NewNewsService(repo, uploads, nil)

	uploads.On("Save", mock.Anything, mock.Anything).Return("uploads/abc.png", nil)
	uploads.On("Remove", mock.Anything, "uploads/abc.png").Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.NewQueryError("failed to create news", assert.AnError))

	_, err := service.Create(context.Background(), adminAuth, entities.NewsInput{Title: "Open day", Content: "Free checkups"}, &entities.Upload{Filename: "a.png"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeQuery))
	uploads.AssertExpectations(t)
}

func TestNewsService_Update_ReplacesImage(t *testing.T) {
	repo := new(MockNewsRepository)
	uploads := new(MockUploadStore)
	service := services.NewNewsService(repo, uploads, nil)

	repo.On("GetByID", mock.Anything, int64(2)).Return(&entities.News{ID: 2, ImagePath: "uploads/old.png"}, nil)
	uploads.On("Save", mock.Anything, mock.Anything).Return("uploads/new.png", nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.News) bool { return n.ImagePath == "uploads/new.png" })).Return(nil)
	uploads.On("Remove", mock.Anything, "uploads/old.png").Return(nil)

	_, err := service.Update(context.Background(), adminAuth, 2, entities.NewsInput{Title: "T", Content: "C"}, &entities.Upload{Filename: "new.png"})
	require.NoError(t, err)
	uploads.AssertExpectations(t)
}

func TestNewsService_Delete(t *testing.T) {
	repo := new(MockNewsRepository)
	uploads := new(MockUploadStore)
	service := services.NewNewsService(repo, uploads, nil)

	err := service.Delete(context.Background(), doctorAuth, 2)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

	repo.On("GetByID", mock.Anything, int64(2)).Return(&entities.News{ID: 2}, nil)
	repo.On("Delete", mock.Anything, int64(2)).Return(nil)
	require.NoError(t, service.Delete(context.Background(), adminAuth, 2))
	uploads.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestNewsService_MutationsPublishChanges(t *testing.T) {
	repo := new(MockNewsRepository)
	bus := new(MockEventBus)
	service := services.NewNewsService(repo, nil, bus)

	for _, action := range []entities.ChangeAction{entities.ChangeActionCreated, entities.ChangeActionUpdated, entities.ChangeActionDeleted} {
		bus.On("Publish", mock.Anything, providers.EventChannelChanges, mock.MatchedBy(func(e *entities.ChangeEvent) bool {
			return e.Type == entities.ChangeEventNews && e.Action == action && e.ActorID == adminAuth.UserID
		})).Return(nil).Once()
	}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("GetByID", mock.Anything, int64(6)).Return(&entities.News{ID: 6, Status: entities.NewsStatusPublished}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	repo.On("Delete", mock.Anything, int64(6)).Return(nil)

	input := entities.NewsInput{Title: "Flu clinic", Content: "Walk-ins welcome", Status: "published"}
	_, err := service.Create(context.Background(), adminAuth, input, nil)
	require.NoError(t, err)
	_, err = service.Update(context.Background(), adminAuth, 6, input, nil)
	require.NoError(t, err)
	require.NoError(t, service.Delete(context.Background(), adminAuth, 6))

	bus.AssertExpectations(t)
}

func TestNewsService_FailedDeleteDoesNotPublish(t *testing.T) {
	repo := new(MockNewsRepository)
	bus := new(MockEventBus)
	service := services.NewNewsService(repo, nil, bus)

	repo.On("GetByID", mock.Anything, int64(6)).Return(&entities.News{ID: 6}, nil)
	repo.On("Delete", mock.Anything, int64(6)).Return(apperrors.NewNotFoundError("news with id 6 not found"))

	err := service.Delete(context.Background(), adminAuth, 6)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
