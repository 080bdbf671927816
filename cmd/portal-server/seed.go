package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthify/portal/internal/config"
	"github.com/healthify/portal/internal/domain/identity"
	"github.com/healthify/portal/internal/domain/scheduling"
	"github.com/healthify/portal/internal/platform/baas"
	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/platform/slotlock"
	"github.com/healthify/portal/internal/web"
)

var specialties = []struct{ code, display string }{
	{"394579002", "Cardiology"},
	{"394582007", "Dermatology"},
	{"394814009", "General practice"},
	{"394583002", "Endocrinology"},
	{"394591006", "Neurology"},
	{"394537008", "Pediatrics"},
}

var cities = []string{"Colombo", "Kandy", "Galle", "Jaffna", "Negombo", "Kurunegala"}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fake patients, practitioners and appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			patients, _ := cmd.Flags().GetInt("patients")
			practitioners, _ := cmd.Flags().GetInt("practitioners")
			appointments, _ := cmd.Flags().GetInt("appointments")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			handles, err := baas.Connect(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			s := newSeeder(handles.Service, logger)
			return s.run(ctx, patients, practitioners, appointments)
		},
	}
	cmd.Flags().Int("patients", 20, "Number of patients to create")
	cmd.Flags().Int("practitioners", 5, "Number of practitioners to create")
	cmd.Flags().Int("appointments", 30, "Number of appointments to book across the seeded patients")
	return cmd
}

// seeder writes through the service handle, which bypasses row-level
// policies. It is never reachable from a request.
type seeder struct {
	identity *identity.Service
	booking  *scheduling.Service
	logger   zerolog.Logger
	now      func() time.Time
}

func newSeeder(service baas.Handle, logger zerolog.Logger) *seeder {
	return &seeder{
		identity: identity.NewService(
			identity.NewPatientRepo(service),
			identity.NewPractitionerRepo(service),
			web.NewValidator(),
			logger,
		),
		booking: scheduling.NewService(
			scheduling.NewRepo(service, service),
			slotlock.NewMemoryLocker(slotlock.DefaultTTL),
			logger,
		),
		logger: logger,
		now:    time.Now,
	}
}

func (s *seeder) run(ctx context.Context, patients, practitioners, appointments int) error {
	if patients < 0 || practitioners < 0 || appointments < 0 {
		return fmt.Errorf("counts must not be negative")
	}
	if appointments > 0 && patients == 0 {
		return fmt.Errorf("appointments need at least one patient")
	}
	gofakeit.Seed(time.Now().UnixNano())

	for i := 0; i < practitioners; i++ {
		if _, err := s.identity.RegisterPractitioner(ctx, fakePractitioner()); err != nil {
			return fmt.Errorf("seed practitioner %d: %w", i+1, err)
		}
	}
	s.logger.Info().Int("count", practitioners).Msg("practitioners seeded")

	refs := make([]fhir.Reference, 0, patients)
	for i := 0; i < patients; i++ {
		in := fakePatient()
		rec, err := s.identity.RegisterPatient(ctx, in)
		if errors.Is(err, identity.ErrDuplicatePatient) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed patient %d: %w", i+1, err)
		}
		refs = append(refs, fhir.NewReference("Patient", rec.ID, in.Given[0]+" "+in.Family))
	}
	s.logger.Info().Int("count", len(refs)).Msg("patients seeded")

	booked, skipped := 0, 0
	for i := 0; i < appointments && len(refs) > 0; i++ {
		patient := refs[gofakeit.Number(0, len(refs)-1)]
		_, err := s.booking.Book(ctx, patient, fakeBooking(s.now()))
		switch {
		case err == nil:
			booked++
		case errors.Is(err, scheduling.ErrSlotBooked), errors.Is(err, slotlock.ErrSlotTaken):
			skipped++
		default:
			return fmt.Errorf("seed appointment %d: %w", i+1, err)
		}
	}
	s.logger.Info().Int("count", booked).Int("skipped", skipped).Msg("appointments seeded")
	return nil
}

func pick(list []string) string {
	return list[gofakeit.Number(0, len(list)-1)]
}

func lkPhone() string {
	return gofakeit.Numerify("+947########")
}

func fakePatient() identity.PatientInput {
	gender := fhir.GenderFemale
	if gofakeit.Bool() {
		gender = fhir.GenderMale
	}
	born := gofakeit.DateRange(time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2015, 12, 31, 0, 0, 0, 0, time.UTC))
	return identity.PatientInput{
		Family:      gofakeit.LastName(),
		Given:       []string{gofakeit.FirstName()},
		Gender:      gender,
		BirthDate:   born.Format("2006-01-02"),
		NIC:         gofakeit.Numerify("############"),
		Phone:       lkPhone(),
		Email:       gofakeit.Email(),
		AddressLine: []string{gofakeit.Street()},
		City:        pick(cities),
		PostalCode:  gofakeit.Numerify("#####"),
	}
}

func fakePractitioner() identity.PractitionerInput {
	sp := specialties[gofakeit.Number(0, len(specialties)-1)]
	return identity.PractitionerInput{
		Family:        gofakeit.LastName(),
		Given:         []string{gofakeit.FirstName()},
		Prefix:        "Dr.",
		SLMCNumber:    gofakeit.Numerify("#####"),
		SpecialtyCode: sp.code,
		Specialty:     sp.display,
		Phone:         lkPhone(),
		Email:         gofakeit.Email(),
	}
}

func fakeBooking(now time.Time) scheduling.BookingForm {
	mode := "in-person"
	if gofakeit.Bool() {
		mode = "video"
	}
	return scheduling.BookingForm{
		Provider: scheduling.Providers()[gofakeit.Number(0, len(scheduling.Providers())-1)].ID,
		Date:     pick(scheduling.AvailableDates(now)),
		Time:     pick(scheduling.TimeSlots()),
		Mode:     mode,
		Reason:   pick([]string{"Follow-up visit", "Annual check-up", "Blood pressure review", "Skin rash", "Persistent headache"}),
	}
}
