package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath/course-scheduler/internal/dto"
	appErrors "github.com/brightpath/course-scheduler/pkg/errors"
)

type fakeCatalog struct {
	offerings []dto.CatalogOffering
	err       error
}

func (f *fakeCatalog) FetchOfferings(ctx context.Context, subjects []string) ([]dto.CatalogOffering, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.offerings, nil
}

func professorFixture(id int, name string) *dto.MaybeProfessor {
	return &dto.MaybeProfessor{Value: &dto.CatalogProfesor{ID: id, Nombre: name}}
}

func newFixtureService(t *testing.T, catalog []dto.CatalogOffering) *ScheduleGeneratorService {
	t.Helper()
	return NewScheduleGeneratorService(&fakeCatalog{offerings: catalog}, nil, nil, ScheduleGeneratorConfig{})
}

func TestGenerateTwoSubjectsAllCompatible(t *testing.T) {
	catalog := []dto.CatalogOffering{
		{ID: 1, Materia: dto.CatalogMateria{ID: 1, Nombre: "Algebra"}, Profesor: professorFixture(1, "Dr. A"),
			Schedules: []dto.CatalogScheduleSlot{{Dia: "Monday", HoraInicio: "09:00:00", HoraFin: "10:00:00"}}},
		{ID: 2, Materia: dto.CatalogMateria{ID: 1, Nombre: "Algebra"}, Profesor: professorFixture(1, "Dr. A"),
			Schedules: []dto.CatalogScheduleSlot{{Dia: "Monday", HoraInicio: "10:00:00", HoraFin: "11:00:00"}}},
		{ID: 3, Materia: dto.CatalogMateria{ID: 2, Nombre: "Calculus"}, Profesor: professorFixture(2, "Dr. C"),
			Schedules: []dto.CatalogScheduleSlot{{Dia: "Monday", HoraInicio: "11:00:00", HoraFin: "12:00:00"}}},
		{ID: 4, Materia: dto.CatalogMateria{ID: 2, Nombre: "Calculus"}, Profesor: professorFixture(2, "Dr. C"),
			Schedules: []dto.CatalogScheduleSlot{{Dia: "Tuesday", HoraInicio: "09:00:00", HoraFin: "10:00:00"}}},
	}

	svc := newFixtureService(t, catalog)
	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		Courses: []string{"Algebra", "Calculus"},
		Minimum: 2,
	})
	require.NoError(t, err)
	require.Len(t, resp.CompatibleSchedules, 4)
	require.Len(t, resp.SimplifiedSchedules, 4)
	for _, group := range resp.CompatibleSchedules {
		assert.Len(t, group, 2)
	}
}

func TestGenerateConflictEliminationFallsBackToCriteriaMessage(t *testing.T) {
	catalog := []dto.CatalogOffering{
		{ID: 1, Materia: dto.CatalogMateria{ID: 1, Nombre: "Algebra"}, Profesor: professorFixture(1, "Dr. A"),
			Schedules: []dto.CatalogScheduleSlot{{Dia: "Monday", HoraInicio: "09:00:00", HoraFin: "10:00:00"}}},
		{ID: 2, Materia: dto.CatalogMateria{ID: 2, Nombre: "Calculus"}, Profesor: professorFixture(2, "Dr. C"),
			Schedules: []dto.CatalogScheduleSlot{{Dia: "Monday", HoraInicio: "09:30:00", HoraFin: "10:30:00"}}},
	}

	svc := newFixtureService(t, catalog)
	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		Courses: []string{"Algebra", "Calculus"},
		Minimum: 2,
	})
	require.NoError(t, err)
	require.Empty(t, resp.CompatibleSchedules)
	require.Contains(t, resp.Messages, "No combinations possible with the given criteria.")
}

func TestGenerateFallbackToIndividualCourses(t *testing.T) {
	catalog := []dto.CatalogOffering{
		{ID: 1, Materia: dto.CatalogMateria{ID: 1, Nombre: "Algebra"}, Profesor: professorFixture(1, "Dr. A"),
			Schedules: []dto.CatalogScheduleSlot{{Dia: "Monday", HoraInicio: "09:00:00", HoraFin: "10:00:00"}}},
		{ID: 2, Materia: dto.CatalogMateria{ID: 2, Nombre: "Calculus"}, Profesor: professorFixture(2, "Dr. C"),
			Schedules: []dto.CatalogScheduleSlot{{Dia: "Monday", HoraInicio: "09:30:00", HoraFin: "10:30:00"}}},
	}

	svc := newFixtureService(t, catalog)
	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		Courses: []string{"Algebra", "Calculus"},
		Minimum: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.CompatibleSchedules, 2)
	require.Contains(t, resp.Messages, "No combinations possible, showing individual courses.")
}

func TestGenerateMissingProfessorReturnsMessageNotError(t *testing.T) {
	catalog := []dto.CatalogOffering{
		{ID: 1, Materia: dto.CatalogMateria{ID: 1, Nombre: "Algebra"}, Profesor: professorFixture(1, "Dr. Aby"),
			Schedules: []dto.CatalogScheduleSlot{{Dia: "Monday", HoraInicio: "09:00:00", HoraFin: "10:00:00"}}},
	}

	svc := newFixtureService(t, catalog)
	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		Courses:    []string{"Algebra"},
		Minimum:    1,
		Professors: []string{"Dr. Zed"},
	})
	require.NoError(t, err)
	require.Empty(t, resp.CompatibleSchedules)
	require.Contains(t, resp.Messages, "Professors not found teaching the selected courses: Dr. Zed")
}

func TestGenerateRejectsMinimumAboveCourseCount(t *testing.T) {
	svc := newFixtureService(t, nil)
	_, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		Courses: []string{"Algebra"},
		Minimum: 5,
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidRequest.Code, appErr.Code)
}

func TestGenerateRejectsEmptyCourses(t *testing.T) {
	svc := newFixtureService(t, nil)
	_, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{Courses: []string{}})
	require.Error(t, err)
}

func TestGenerateSkipsWrapAroundMeetingTime(t *testing.T) {
	catalog := []dto.CatalogOffering{
		{ID: 1, Materia: dto.CatalogMateria{ID: 1, Nombre: "Algebra"}, Profesor: professorFixture(1, "Dr. A"),
			Schedules: []dto.CatalogScheduleSlot{
				{Dia: "Monday", HoraInicio: "10:00:00", HoraFin: "09:00:00"},
				{Dia: "Tuesday", HoraInicio: "09:00:00", HoraFin: "09:00:00"},
				{Dia: "Wednesday", HoraInicio: "09:00:00", HoraFin: "10:00:00"},
			}},
	}

	svc := newFixtureService(t, catalog)
	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		Courses: []string{"Algebra"},
		Minimum: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.SimplifiedSchedules, 1)
	require.Len(t, resp.SimplifiedSchedules[0].Courses[0].Schedules, 1)
	assert.Equal(t, "Wed", resp.SimplifiedSchedules[0].Courses[0].Schedules[0].Dia)
	assert.Contains(t, resp.Messages, "skipped a wrap-around or zero-length meeting time for a course offering")
}

func TestGenerateLegacyDayFlagsExpandIntoSlots(t *testing.T) {
	catalog := []dto.CatalogOffering{
		{ID: 1, Materia: dto.CatalogMateria{ID: 1, Nombre: "Algebra"}, Profesor: professorFixture(1, "Dr. A"),
			Schedules: []dto.CatalogScheduleSlot{{HoraInicio: "09:00:00", HoraFin: "10:00:00", Lunes: true, Miercoles: true}}},
	}

	svc := newFixtureService(t, catalog)
	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{
		Courses: []string{"Algebra"},
		Minimum: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.SimplifiedSchedules, 1)
	require.Len(t, resp.SimplifiedSchedules[0].Courses[0].Schedules, 2)
}
