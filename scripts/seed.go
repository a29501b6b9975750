package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anushahashmi071/CareGroup-sub001/internal/adapters/database"
	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/postgres"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
	"github.com/anushahashmi071/CareGroup-sub001/pkg/config"
)

// seedAdmin is the caller every seeded record is written as.
var seedAdmin = entities.AuthContext{Role: entities.RoleAdmin}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("caregroup-seed", cfg.Env)

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer pgClient.Close()

	if _, err := pgClient.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				reviews,
				appointments,
				news,
				doctors,
				patients,
				users,
				specializations,
				cities
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	appointmentRepo := database.NewAppointmentAdapter(pgClient)
	doctorRepo := database.NewDoctorAdapter(pgClient)
	reference := services.NewReferenceService(database.NewSpecializationAdapter(pgClient), database.NewCityAdapter(pgClient), nil)
	users := services.NewUserService(database.NewUserAdapter(pgClient), nil)
	doctors := services.NewDoctorService(doctorRepo, nil, nil)
	patients := services.NewPatientService(database.NewPatientAdapter(pgClient), nil)
	appointments := services.NewAppointmentService(appointmentRepo, doctorRepo, nil)
	reviews := services.NewReviewService(database.NewReviewAdapter(pgClient), appointmentRepo, nil)
	news := services.NewNewsService(database.NewNewsAdapter(pgClient), nil, nil)

	// 1. Administrator
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin12345"
	}
	if _, err := users.Create(ctx, seedAdmin, entities.UserInput{
		Username: "admin",
		Email:    "admin@caregroup.local",
		Password: adminPassword,
		Role:     string(entities.RoleAdmin),
	}); err != nil {
		log.Warn().Err(err).Msg("failed to create admin")
	}

	// 2. Reference data
	specializations := map[string]int64{}
	for _, in := range []entities.LookupInput{
		{Name: "Cardiology", Description: "Heart and blood vessels"},
		{Name: "Dermatology", Description: "Skin, hair and nails"},
		{Name: "Neurology", Description: "Brain and nervous system"},
		{Name: "Pediatrics", Description: "Infants, children and adolescents"},
		{Name: "Orthopedics", Description: "Bones and joints"},
	} {
		s, err := reference.CreateSpecialization(ctx, seedAdmin, in)
		if err != nil {
			log.Warn().Err(err).Str("name", in.Name).Msg("failed to create specialization")
			continue
		}
		specializations[s.Name] = s.ID
	}

	cities := map[string]int64{}
	for _, in := range []entities.LookupInput{
		{Name: "Lahore", State: "Punjab"},
		{Name: "Karachi", State: "Sindh"},
		{Name: "Islamabad", State: "Capital Territory"},
	} {
		c, err := reference.CreateCity(ctx, seedAdmin, in)
		if err != nil {
			log.Warn().Err(err).Str("name", in.Name).Msg("failed to create city")
			continue
		}
		cities[c.Name] = c.ID
	}

	// 3. Doctors
	doctorInputs := []entities.DoctorInput{
		{
			FullName: "Dr. Sara Khan", SpecializationID: specializations["Cardiology"], CityID: cities["Lahore"],
			Qualification: "MBBS, FCPS (Cardiology)", ExperienceYears: 12, RegistrationNumber: "PMC-10234",
			ConsultationFee: 3000, Phone: "0300-1111111", Username: "sarakhan", Email: "sara.khan@caregroup.local", Password: "doctor12345",
		},
		{
			FullName: "Dr. Bilal Ahmed", SpecializationID: specializations["Neurology"], CityID: cities["Karachi"],
			Qualification: "MBBS, MD (Neurology)", ExperienceYears: 8, RegistrationNumber: "PMC-20871",
			ConsultationFee: 2500, Phone: "0300-2222222", Username: "bilalahmed", Email: "bilal.ahmed@caregroup.local", Password: "doctor12345",
		},
		{
			FullName: "Dr. Ayesha Malik", SpecializationID: specializations["Pediatrics"], CityID: cities["Islamabad"],
			Qualification: "MBBS, DCH", ExperienceYears: 5, RegistrationNumber: "PMC-31560",
			ConsultationFee: 2000, Phone: "0300-3333333", Username: "ayeshamalik", Email: "ayesha.malik@caregroup.local", Password: "doctor12345",
		},
	}
	doctorIDs := []int64{}
	for _, in := range doctorInputs {
		d, err := doctors.Create(ctx, seedAdmin, in)
		if err != nil {
			log.Warn().Err(err).Str("name", in.FullName).Msg("failed to create doctor")
			continue
		}
		doctorIDs = append(doctorIDs, d.ID)
	}

	// 4. Patients
	patientInputs := []entities.PatientInput{
		{
			FullName: "Ali Raza", Gender: "male", DateOfBirth: "1988-04-12", BloodGroup: "B+",
			Phone: "0311-4444444", CityID: cities["Lahore"], Username: "aliraza", Email: "ali.raza@example.com", Password: "patient12345",
		},
		{
			FullName: "Fatima Noor", Gender: "female", DateOfBirth: "1995-09-30", BloodGroup: "O+",
			Phone: "0311-5555555", CityID: cities["Karachi"], Allergies: "Penicillin",
			Username: "fatimanoor", Email: "fatima.noor@example.com", Password: "patient12345",
		},
	}
	patientIDs := []int64{}
	for _, in := range patientInputs {
		p, err := patients.Create(ctx, seedAdmin, in)
		if err != nil {
			log.Warn().Err(err).Str("name", in.FullName).Msg("failed to create patient")
			continue
		}
		patientIDs = append(patientIDs, p.ID)
	}

	// 5. Appointments, one completed and reviewed per patient
	today := time.Now()
	for i, patientID := range patientIDs {
		if len(doctorIDs) == 0 {
			break
		}
		doctorID := doctorIDs[i%len(doctorIDs)]

		past, err := appointments.Create(ctx, seedAdmin, entities.AppointmentInput{
			PatientID: patientID,
			DoctorID:  doctorID,
			Date:      today.AddDate(0, 0, -7*(i+1)).Format(entities.DateLayout),
			Time:      "10:00",
			Symptoms:  "Follow-up consultation",
		})
		if err != nil {
			log.Warn().Err(err).Int64("patient_id", patientID).Msg("failed to create appointment")
			continue
		}
		if err := appointments.UpdateStatus(ctx, seedAdmin, past.ID, entities.AppointmentStatusUpdate{
			Status:       string(entities.AppointmentStatusCompleted),
			Diagnosis:    "Stable",
			Prescription: "Continue current medication",
		}); err != nil {
			log.Warn().Err(err).Int64("appointment_id", past.ID).Msg("failed to complete appointment")
		}

		patient := entities.AuthContext{Role: entities.RolePatient, ProfileID: patientID}
		if _, err := reviews.Create(ctx, patient, entities.ReviewInput{
			DoctorID: doctorID,
			Rating:   4 + i%2,
			Comment:  "Attentive and thorough.",
		}); err != nil {
			log.Warn().Err(err).Int64("doctor_id", doctorID).Msg("failed to create review")
		}

		if _, err := appointments.Create(ctx, patient, entities.AppointmentInput{
			DoctorID: doctorID,
			Date:     today.AddDate(0, 0, 3+i).Format(entities.DateLayout),
			Time:     "11:30",
			Symptoms: "Routine check-up",
		}); err != nil {
			log.Warn().Err(err).Int64("patient_id", patientID).Msg("failed to book appointment")
		}
	}

	// 6. News
	if _, err := news.Create(ctx, seedAdmin, entities.NewsInput{
		Title:   "Welcome to CareGroup",
		Content: "Book appointments with our specialists online and view your consultation history at any time.",
		Status:  string(entities.NewsStatusPublished),
	}, nil); err != nil {
		log.Warn().Err(err).Msg("failed to create news")
	}

	log.Info().
		Int("doctors", len(doctorIDs)).
		Int("patients", len(patientIDs)).
		Msg("seeding completed")
}
