package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

func TestReportService_Summary(t *testing.T) {
	reports := new(MockReportRepository)
	service := services.NewReportService(reports, 5).WithClock(fixedClock)

	reports.On("AppointmentFacts", mock.Anything, mock.Anything).Return(sampleFacts(), nil)

	summary, err := service.Summary(context.Background(), adminAuth, entities.ReportRange{})
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 50.0, summary.CompletionRate)
	require.Len(t, summary.ByCity, 1)
	assert.Equal(t, "N/A", summary.ByCity[0].Label)
	assert.Equal(t, fixedClock(), summary.GeneratedAt)
}

func TestReportService_Summary_Rejects(t *testing.T) {
	service := services.NewReportService(new(MockReportRepository), 5)

	_, err := service.Summary(context.Background(), adminAuth, entities.ReportRange{
		From: entities.NewDate(2024, 3, 1),
		To:   entities.NewDate(2024, 2, 1),
	})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.Summary(context.Background(), patientAuth, entities.ReportRange{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
}

func TestReportService_Monthly(t *testing.T) {
	reports := new(MockReportRepository)
	service := services.NewReportService(reports, 5).WithClock(fixedClock)

	reports.On("AppointmentFacts", mock.Anything, mock.Anything).Return(sampleFacts(), nil)

	report, err := service.Monthly(context.Background(), adminAuth, 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, report.Year)
	require.Len(t, report.Months, 12)
	assert.Equal(t, "2024-01", report.Months[0].Month)
	assert.Equal(t, "2024-12", report.Months[11].Month)
	assert.Equal(t, 2, report.Months[2].Count)
	assert.Equal(t, 4, report.Total)
	// March against February, not December against November
	assert.Equal(t, 100.0, report.GrowthPercent)
}

func TestReportService_DoctorPerformance(t *testing.T) {
	reports := new(MockReportRepository)
	service := services.NewReportService(reports, 5)

	reports.On("AppointmentFacts", mock.Anything, mock.Anything).Return(sampleFacts(), nil)
	reports.On("RatingSummaries", mock.Anything, int64(0)).Return([]entities.RatingSummary{
		{DoctorID: 1, AverageRating: 4.666, ReviewCount: 3},
	}, nil)

	rows, err := service.DoctorPerformance(context.Background(), adminAuth, entities.ReportRange{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].DoctorID)
	assert.Equal(t, 3, rows[0].Appointments)
	assert.Equal(t, 2, rows[0].Completed)
	assert.Equal(t, 66.7, rows[0].CompletionRate)
	assert.Equal(t, 4.67, rows[0].AverageRating)

	assert.Equal(t, int64(2), rows[1].DoctorID)
	assert.Equal(t, 1, rows[1].Cancelled)
	assert.Zero(t, rows[1].ReviewCount)
}

func TestReportService_TopRated(t *testing.T) {
	reports := new(MockReportRepository)
	service := services.NewReportService(reports, 2)

	reports.On("RatingSummaries", mock.Anything, int64(0)).Return([]entities.RatingSummary{
		{DoctorID: 1, FullName: "Amir Khan", AverageRating: 4.2, ReviewCount: 10},
		{DoctorID: 2, FullName: "Sara Ali", AverageRating: 5, ReviewCount: 1},
		{DoctorID: 3, FullName: "Omar Farooq", AverageRating: 4.8, ReviewCount: 4},
		{DoctorID: 4, FullName: "Zara Noor", AverageRating: 3.9, ReviewCount: 7},
	}, nil)

	top, err := service.TopRated(context.Background(), adminAuth, 0, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(3), top[0].DoctorID)
	assert.Equal(t, "O", top[0].Initials)
	assert.Equal(t, int64(1), top[1].DoctorID)
}
