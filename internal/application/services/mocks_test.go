package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
)

// Mocks

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id int64) (*entities.AppointmentView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AppointmentView), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context, q repositories.ListQuery) ([]*entities.AppointmentView, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AppointmentView), args.Error(1)
}

func (m *MockAppointmentRepository) Count(ctx context.Context, where query.Predicate) (int, error) {
	args := m.Called(ctx, where)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentRepository) SlotTaken(ctx context.Context, doctorID int64, date entities.Date, clock string) (bool, error) {
	args := m.Called(ctx, doctorID, date, clock)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id int64, update repositories.AppointmentOutcome) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor *entities.Doctor, user *entities.User) error {
	args := m.Called(ctx, doctor, user)
	return args.Error(0)
}

func (m *MockDoctorRepository) GetByID(ctx context.Context, id int64) (*entities.DoctorView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DoctorView), args.Error(1)
}

func (m *MockDoctorRepository) GetByUserID(ctx context.Context, userID int64) (*entities.DoctorView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DoctorView), args.Error(1)
}

func (m *MockDoctorRepository) List(ctx context.Context, q repositories.ListQuery) ([]*entities.DoctorView, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DoctorView), args.Error(1)
}

func (m *MockDoctorRepository) Count(ctx context.Context, where query.Predicate) (int, error) {
	args := m.Called(ctx, where)
	return args.Int(0), args.Error(1)
}

func (m *MockDoctorRepository) Update(ctx context.Context, doctor *entities.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *entities.Patient, user *entities.User) error {
	args := m.Called(ctx, patient, user)
	return args.Error(0)
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id int64) (*entities.PatientView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PatientView), args.Error(1)
}

func (m *MockPatientRepository) GetByUserID(ctx context.Context, userID int64) (*entities.PatientView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PatientView), args.Error(1)
}

func (m *MockPatientRepository) List(ctx context.Context, q repositories.ListQuery) ([]*entities.PatientView, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PatientView), args.Error(1)
}

func (m *MockPatientRepository) Count(ctx context.Context, where query.Predicate) (int, error) {
	args := m.Called(ctx, where)
	return args.Int(0), args.Error(1)
}

func (m *MockPatientRepository) Update(ctx context.Context, patient *entities.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByLogin(ctx context.Context, login string) (*entities.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, q repositories.ListQuery) ([]*entities.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, where query.Predicate) (int, error) {
	args := m.Called(ctx, where)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*entities.Review, error) {
	args := m.Called(ctx, doctorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Get(ctx context.Context, key string) (*entities.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Setting), args.Error(1)
}

func (m *MockSettingRepository) All(ctx context.Context) ([]*entities.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Setting), args.Error(1)
}

func (m *MockSettingRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type MockNewsRepository struct {
	mock.Mock
}

func (m *MockNewsRepository) Create(ctx context.Context, news *entities.News) error {
	args := m.Called(ctx, news)
	return args.Error(0)
}

func (m *MockNewsRepository) GetByID(ctx context.Context, id int64) (*entities.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.News), args.Error(1)
}

func (m *MockNewsRepository) List(ctx context.Context, q repositories.ListQuery) ([]*entities.News, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.News), args.Error(1)
}

func (m *MockNewsRepository) Count(ctx context.Context, where query.Predicate) (int, error) {
	args := m.Called(ctx, where)
	return args.Int(0), args.Error(1)
}

func (m *MockNewsRepository) Update(ctx context.Context, news *entities.News) error {
	args := m.Called(ctx, news)
	return args.Error(0)
}

func (m *MockNewsRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Totals(ctx context.Context) (*entities.Totals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Totals), args.Error(1)
}

func (m *MockReportRepository) AppointmentFacts(ctx context.Context, where query.Predicate) ([]entities.AppointmentFact, error) {
	args := m.Called(ctx, where)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.AppointmentFact), args.Error(1)
}

func (m *MockReportRepository) RatingSummaries(ctx context.Context, doctorID int64) ([]entities.RatingSummary, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.RatingSummary), args.Error(1)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.ChangeEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ChangeEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.ChangeEvent), args.Error(1)
}

func (m *MockEventBus) Close() error {
	return m.Called().Error(0)
}

type MockDoctorIndex struct {
	mock.Mock
}

func (m *MockDoctorIndex) Upsert(ctx context.Context, doctor *entities.DoctorView) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorIndex) Remove(ctx context.Context, doctorID int64) error {
	args := m.Called(ctx, doctorID)
	return args.Error(0)
}

func (m *MockDoctorIndex) Search(ctx context.Context, filter entities.DoctorFilter) ([]int64, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]int64), args.Int(1), args.Error(2)
}

type MockUploadStore struct {
	mock.Mock
}

func (m *MockUploadStore) Save(ctx context.Context, upload entities.Upload) (string, error) {
	args := m.Called(ctx, upload)
	return args.String(0), args.Error(1)
}

func (m *MockUploadStore) Remove(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheProvider) DeletePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

var (
	_ repositories.AppointmentRepository = (*MockAppointmentRepository)(nil)
	_ providers.EventBus                 = (*MockEventBus)(nil)
	_ providers.DoctorIndex              = (*MockDoctorIndex)(nil)
	_ providers.UploadStore              = (*MockUploadStore)(nil)
	_ providers.CacheProvider            = (*MockCacheProvider)(nil)
)

var (
	adminAuth   = entities.AuthContext{UserID: 1, Role: entities.RoleAdmin}
	doctorAuth  = entities.AuthContext{UserID: 2, Role: entities.RoleDoctor, ProfileID: 10}
	patientAuth = entities.AuthContext{UserID: 3, Role: entities.RolePatient, ProfileID: 20}
)

type MockSpecializationRepository struct {
	mock.Mock
}

func (m *MockSpecializationRepository) List(ctx context.Context) ([]*entities.Specialization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Specialization), args.Error(1)
}

func (m *MockSpecializationRepository) GetByID(ctx context.Context, id int64) (*entities.Specialization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Specialization), args.Error(1)
}

func (m *MockSpecializationRepository) Create(ctx context.Context, s *entities.Specialization) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSpecializationRepository) Update(ctx context.Context, s *entities.Specialization) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSpecializationRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) List(ctx context.Context) ([]*entities.City, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.City), args.Error(1)
}

func (m *MockCityRepository) GetByID(ctx context.Context, id int64) (*entities.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.City), args.Error(1)
}

func (m *MockCityRepository) Create(ctx context.Context, c *entities.City) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCityRepository) Update(ctx context.Context, c *entities.City) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCityRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
