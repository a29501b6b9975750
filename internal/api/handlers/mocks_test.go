package handlers_test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/anushahashmi071/CareGroup-sub001/internal/api/handlers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/api/middleware"
	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
)

var (
	adminAuth   = entities.AuthContext{UserID: 1, Role: entities.RoleAdmin}
	doctorAuth  = entities.AuthContext{UserID: 2, Role: entities.RoleDoctor, ProfileID: 10}
	patientAuth = entities.AuthContext{UserID: 3, Role: entities.RolePatient, ProfileID: 20}
)

func as(req *http.Request, auth entities.AuthContext) *http.Request {
	return req.WithContext(middleware.WithAuth(req.Context(), auth))
}

type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) List(ctx context.Context, auth entities.AuthContext, q services.AppointmentQuery) ([]*entities.AppointmentView, int, error) {
	args := m.Called(ctx, auth, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AppointmentView), args.Int(1), args.Error(2)
}

func (m *MockAppointmentService) Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.AppointmentView, error) {
	args := m.Called(ctx, auth, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AppointmentView), args.Error(1)
}

func (m *MockAppointmentService) Create(ctx context.Context, auth entities.AuthContext, input entities.AppointmentInput) (*entities.Appointment, error) {
	args := m.Called(ctx, auth, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentService) UpdateStatus(ctx context.Context, auth entities.AuthContext, id int64, update entities.AppointmentStatusUpdate) error {
	return m.Called(ctx, auth, id, update).Error(0)
}

func (m *MockAppointmentService) Delete(ctx context.Context, auth entities.AuthContext, id int64) error {
	return m.Called(ctx, auth, id).Error(0)
}

type MockNewsService struct {
	mock.Mock
}

func (m *MockNewsService) List(ctx context.Context, auth entities.AuthContext, q services.NewsQuery) ([]*entities.News, int, error) {
	args := m.Called(ctx, auth, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.News), args.Int(1), args.Error(2)
}

func (m *MockNewsService) Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.News, error) {
	args := m.Called(ctx, auth, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.News), args.Error(1)
}

func (m *MockNewsService) Create(ctx context.Context, auth entities.AuthContext, input entities.NewsInput, image *entities.Upload) (*entities.News, error) {
	args := m.Called(ctx, auth, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.News), args.Error(1)
}

func (m *MockNewsService) Update(ctx context.Context, auth entities.AuthContext, id int64, input entities.NewsInput, image *entities.Upload) (*entities.News, error) {
	args := m.Called(ctx, auth, id, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.News), args.Error(1)
}

func (m *MockNewsService) Delete(ctx context.Context, auth entities.AuthContext, id int64) error {
	return m.Called(ctx, auth, id).Error(0)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, login, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResult), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Admin(ctx context.Context, auth entities.AuthContext) (*entities.AdminDashboard, error) {
	args := m.Called(ctx, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdminDashboard), args.Error(1)
}

func (m *MockDashboardService) Doctor(ctx context.Context, auth entities.AuthContext) (*entities.DoctorDashboard, error) {
	args := m.Called(ctx, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DoctorDashboard), args.Error(1)
}

func (m *MockDashboardService) Patient(ctx context.Context, auth entities.AuthContext) (*entities.PatientDashboard, error) {
	args := m.Called(ctx, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PatientDashboard), args.Error(1)
}

var (
	_ handlers.AppointmentService = (*MockAppointmentService)(nil)
	_ handlers.NewsService        = (*MockNewsService)(nil)
	_ handlers.Authenticator      = (*MockAuthenticator)(nil)
	_ handlers.DashboardService   = (*MockDashboardService)(nil)
)
