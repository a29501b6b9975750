package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

func completedWith(doctorID int64) entities.AppointmentView {
	return entities.AppointmentView{Appointment: entities.Appointment{
		DoctorID:  doctorID,
		PatientID: patientAuth.ProfileID,
		Status:    entities.AppointmentStatusCompleted,
	}}
}

func TestReviewService_Create(t *testing.T) {
	t.Run("requires a completed appointment", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		appts := new(MockAppointmentRepository)
		service := services.NewReviewService(reviews, appts, nil)

		appts.On("Count", mock.Anything, mock.Anything).Return(0, nil)

		_, err := service.Create(context.Background(), patientAuth, entities.ReviewInput{DoctorID: 10, Rating: 5})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("stores the review for the caller", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		appts := new(MockAppointmentRepository)
		service := services.NewReviewService(reviews, appts, nil)

		appts.On("Count", mock.Anything, mock.MatchedBy(func(w query.Predicate) bool {
			other := completedWith(11)
			scheduled := completedWith(10)
			scheduled.Status = entities.AppointmentStatusScheduled
			return w.Matches(completedWith(10)) && !w.Matches(other) && !w.Matches(scheduled)
		})).Return(1, nil)
		reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
			return r.PatientID == patientAuth.ProfileID && r.DoctorID == 10 && r.Rating == 4 && r.Comment == "kind"
		})).Return(nil)

		review, err := service.Create(context.Background(), patientAuth, entities.ReviewInput{DoctorID: 10, Rating: 4, Comment: " kind "})
		require.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
		reviews.AssertExpectations(t)
	})

	t.Run("rating bounds and roles", func(t *testing.T) {
		service := services.NewReviewService(new(MockReviewRepository), new(MockAppointmentRepository), nil)

		_, err := service.Create(context.Background(), patientAuth, entities.ReviewInput{DoctorID: 10, Rating: 6})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		_, err = service.Create(context.Background(), doctorAuth, entities.ReviewInput{DoctorID: 10, Rating: 5})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})
}
