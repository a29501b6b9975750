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

const reindexPageSize = 200

// DoctorService manages the doctor directory
type DoctorService struct {
	repo  repositories.DoctorRepository
	index providers.DoctorIndex
	bus   providers.EventBus
}

// NewDoctorService creates a new doctor service. index and bus may be nil.
func NewDoctorService(repo repositories.DoctorRepository, index providers.DoctorIndex, bus providers.EventBus) *DoctorService {
	return &DoctorService{repo: repo, index: index, bus: bus}
}

// Search lists doctors matching filter. Only admins see inactive doctors.
// Free-text searches go to the search index when one is configured and fall
// back to SQL when it fails.
func (s *DoctorService) Search(ctx context.Context, auth entities.AuthContext, filter entities.DoctorFilter) ([]*entities.DoctorView, int, error) {
	ctx, span := observability.StartSpan(ctx, "DoctorService.Search")
	defer span.End()

	if !auth.IsAdmin() {
		filter.Status = string(entities.DoctorStatusActive)
	}
	filter.Search = strings.TrimSpace(filter.Search)

	if s.index != nil && filter.Search != "" {
		doctors, total, err := s.searchIndex(ctx, filter)
		if err == nil {
			return doctors, total, nil
		}
		observability.RecordError(span, err)
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("doctor index search failed, falling back to SQL")
	}
	return s.searchSQL(ctx, filter)
}

func (s *DoctorService) searchIndex(ctx context.Context, filter entities.DoctorFilter) ([]*entities.DoctorView, int, error) {
	ids, total, err := s.index.Search(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []*entities.DoctorView{}, total, nil
	}

	rows, err := s.repo.List(ctx, repositories.ListQuery{Where: query.In(query.DoctorID, ids)})
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]*entities.DoctorView, len(rows))
	for _, d := range rows {
		byID[d.ID] = d
	}
	// keep the index's relevance order
	out := make([]*entities.DoctorView, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, total, nil
}

func (s *DoctorService) searchSQL(ctx context.Context, filter entities.DoctorFilter) ([]*entities.DoctorView, int, error) {
	status, err := query.BuildDoctorStatusFilter(filter.Status)
	if err != nil {
		return nil, 0, err
	}
	where := query.And(
		query.BuildSearchFilter(filter.Search, query.DoctorSearchFields...),
		query.BuildIDFilter(query.DoctorSpecialization, filter.SpecializationID),
		query.BuildIDFilter(query.DoctorCityID, filter.CityID),
		status,
	)

	doctors, err := s.repo.List(ctx, repositories.ListQuery{
		Where:  where,
		Order:  query.DoctorOrder(),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, where)
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

// Get returns one doctor. Inactive doctors are visible to admins only.
func (s *DoctorService) Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.DoctorView, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Status != entities.DoctorStatusActive && !auth.IsAdmin() && !(auth.IsDoctor() && auth.ProfileID == id) {
		return nil, apperrors.NewNotFoundError("doctor not found")
	}
	return d, nil
}

// Create adds a doctor and its login account. Admin only.
func (s *DoctorService) Create(ctx context.Context, auth entities.AuthContext, input entities.DoctorInput) (*entities.DoctorView, error) {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username, email and password are required")
	}
	status := entities.DoctorStatusActive
	if input.Status != "" {
		parsed, err := entities.ParseDoctorStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         entities.RoleDoctor,
		Status:       entities.UserStatusActive,
	}
	doctor := &entities.Doctor{Status: status}
	applyDoctorInput(doctor, input)

	if err := s.repo.Create(ctx, doctor, user); err != nil {
		return nil, err
	}

	view, err := s.repo.GetByID(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	s.indexDoctor(ctx, view)
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventDoctor, entities.ChangeActionCreated, doctor.ID))
	return view, nil
}

// Update edits a doctor profile. Doctors may edit their own profile but not
// its status.
func (s *DoctorService) Update(ctx context.Context, auth entities.AuthContext, id int64, input entities.DoctorInput) (*entities.DoctorView, error) {
	if !auth.IsAdmin() && !(auth.IsDoctor() && auth.ProfileID == id) {
		return nil, apperrors.NewForbiddenError("insufficient permissions")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doctor := current.Doctor
	applyDoctorInput(&doctor, input)
	if auth.IsAdmin() && input.Status != "" {
		status, err := entities.ParseDoctorStatus(input.Status)
		if err != nil {
			return nil, err
		}
		doctor.Status = status
	}

	if err := s.repo.Update(ctx, &doctor); err != nil {
		return nil, err
	}

	view, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.indexDoctor(ctx, view)
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventDoctor, entities.ChangeActionUpdated, id))
	return view, nil
}

// Delete removes a doctor without appointments or reviews. Admin only.
func (s *DoctorService) Delete(ctx context.Context, auth entities.AuthContext, id int64) error {
	if err := requireRole(auth, entities.RoleAdmin); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.Remove(ctx, id); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Int64("doctor_id", id).Msg("failed to remove doctor from index")
		}
	}
	publish(ctx, s.bus, changeEvent(auth, entities.ChangeEventDoctor, entities.ChangeActionDeleted, id))
	return nil
}

// Reindex writes every doctor into the search index and returns how many
// were written
func (s *DoctorService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, nil
	}
	written := 0
	for offset := 0; ; offset += reindexPageSize {
		page, err := s.repo.List(ctx, repositories.ListQuery{
			Order:  query.DoctorOrder(),
			Limit:  reindexPageSize,
			Offset: offset,
		})
		if err != nil {
			return written, err
		}
		for _, d := range page {
			if err := s.index.Upsert(ctx, d); err != nil {
				return written, err
			}
			written++
		}
		if len(page) < reindexPageSize {
			return written, nil
		}
	}
}

func (s *DoctorService) indexDoctor(ctx context.Context, d *entities.DoctorView) {
	if s.index == nil {
		return
	}
	if err := s.index.Upsert(ctx, d); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Int64("doctor_id", d.ID).Msg("failed to index doctor")
	}
}

func applyDoctorInput(d *entities.Doctor, in entities.DoctorInput) {
	d.FullName = strings.TrimSpace(in.FullName)
	d.SpecializationID = in.SpecializationID
	d.CityID = in.CityID
	d.Qualification = strings.TrimSpace(in.Qualification)
	d.ExperienceYears = in.ExperienceYears
	d.RegistrationNumber = strings.TrimSpace(in.RegistrationNumber)
	d.ConsultationFee = in.ConsultationFee
	d.Phone = strings.TrimSpace(in.Phone)
	d.Bio = strings.TrimSpace(in.Bio)
}
