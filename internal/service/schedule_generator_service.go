package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/brightpath/course-scheduler/internal/dto"
	"github.com/brightpath/course-scheduler/internal/engine"
	appErrors "github.com/brightpath/course-scheduler/pkg/errors"
)

// offeringFetcher is the catalog dependency the generator pulls course
// offerings through. Satisfied by *CatalogClient; narrowed to an interface
// so tests can substitute a fixture.
type offeringFetcher interface {
	FetchOfferings(ctx context.Context, subjects []string) ([]dto.CatalogOffering, error)
}

// ScheduleGeneratorConfig governs generator behaviour.
type ScheduleGeneratorConfig struct {
	MaxSchedules  int
	RequestBudget time.Duration
}

// ScheduleGeneratorService implements the RECV -> VALIDATE -> FETCH ->
// GROUP -> BUILD_GRAPH -> ENUMERATE -> ASSEMBLE -> PROJECT pipeline: it
// fetches candidate offerings from the catalog, builds the weekly
// time-conflict compatibility graph, enumerates maximal cliques, and
// assembles/projects the resulting schedules.
type ScheduleGeneratorService struct {
	catalog   offeringFetcher
	validator *validator.Validate
	logger    *zap.Logger
	config    ScheduleGeneratorConfig
}

// NewScheduleGeneratorService wires generator dependencies.
func NewScheduleGeneratorService(
	catalog offeringFetcher,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ScheduleGeneratorConfig,
) *ScheduleGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxSchedules <= 0 {
		cfg.MaxSchedules = 100
	}
	if cfg.RequestBudget <= 0 {
		cfg.RequestBudget = 5 * time.Second
	}
	return &ScheduleGeneratorService{
		catalog:   catalog,
		validator: validate,
		logger:    logger,
		config:    cfg,
	}
}

// Generate runs the full pipeline for one request.
func (s *ScheduleGeneratorService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidRequest.Code, appErrors.ErrInvalidRequest.Status, "invalid schedule generation payload")
	}
	if int(req.Minimum) > len(req.Courses) {
		return nil, appErrors.Clone(appErrors.ErrInvalidRequest, "minimum cannot exceed the number of requested courses")
	}

	budgetCtx, cancel := context.WithTimeout(ctx, s.config.RequestBudget)
	defer cancel()

	raw, err := s.catalog.FetchOfferings(budgetCtx, req.Courses)
	if err != nil {
		return nil, err
	}

	offerings, rawByID, warnings := convertOfferings(raw)

	grouped := engine.Group(offerings, req.Courses, req.Professors)
	messages := append([]string{}, warnings...)
	messages = append(messages, grouped.Messages...)

	if !grouped.ProfessorsSatisfied {
		s.logger.Info("schedule generation stopped: professor filter unsatisfied",
			zap.Strings("requested_professors", req.Professors),
			zap.Strings("missing", grouped.MissingProfessors),
		)
		return &dto.GenerateScheduleResponse{
			Status:              200,
			CompatibleSchedules: [][]dto.CatalogOffering{},
			SimplifiedSchedules: []dto.SimplifiedSchedule{},
			Messages:            messages,
		}, nil
	}

	floor := int(req.Minimum)
	if floor < 1 {
		floor = 1
	}

	graph := engine.BuildGraph(grouped.BySubject)

	if budgetCtx.Err() != nil {
		return nil, appErrors.Clone(appErrors.ErrScheduleTimeout, "request exceeded time budget before enumeration")
	}

	cliques, truncated := engine.EnumerateCliques(budgetCtx, graph, floor, s.config.MaxSchedules)
	if budgetCtx.Err() != nil {
		return nil, appErrors.Clone(appErrors.ErrScheduleTimeout, "request exceeded time budget during clique enumeration")
	}

	assembled := engine.Assemble(budgetCtx, graph, cliques, engine.AssembleOptions{
		RequestedSubjectCount: len(req.Courses),
		Floor:                 floor,
		ProfessorFilter:       req.Professors,
		Cap:                   s.config.MaxSchedules,
	})
	messages = append(messages, assembled.Messages...)
	if truncated || assembled.Truncated {
		messages = append(messages, fmt.Sprintf("Results truncated to %d schedules.", s.config.MaxSchedules))
	}

	compatible := make([][]dto.CatalogOffering, 0, len(assembled.Schedules))
	for _, sched := range assembled.Schedules {
		group := make([]dto.CatalogOffering, 0, len(sched.Offerings))
		for _, off := range sched.Offerings {
			if r, ok := rawByID[off.ID]; ok {
				group = append(group, r)
			}
		}
		compatible = append(compatible, group)
	}

	simplified := make([]dto.SimplifiedSchedule, 0, len(assembled.Schedules))
	for _, projected := range engine.ProjectAll(assembled.Schedules) {
		simplified = append(simplified, toDTOSimplified(projected))
	}

	return &dto.GenerateScheduleResponse{
		Status:              200,
		CompatibleSchedules: compatible,
		SimplifiedSchedules: simplified,
		Messages:            messages,
	}, nil
}

func toDTOSimplified(p engine.SimplifiedSchedule) dto.SimplifiedSchedule {
	courses := make([]dto.CourseInfo, 0, len(p.Courses))
	for _, c := range p.Courses {
		slots := make([]dto.ScheduleInfo, 0, len(c.Slots))
		for _, slot := range c.Slots {
			slots = append(slots, dto.ScheduleInfo{
				Dia:        slot.Day,
				HoraInicio: slot.Start,
				HoraFin:    slot.End,
				Salon:      slot.Room,
				Capacidad:  slot.Capacity,
			})
		}
		courses = append(courses, dto.CourseInfo{
			Materia:   c.Subject,
			Profesor:  c.Professor,
			Schedules: slots,
		})
	}
	return dto.SimplifiedSchedule{ScheduleNumber: p.Number, Courses: courses}
}

// convertOfferings maps the catalog's wire shape onto the engine's domain
// model, expanding legacy day-boolean rows into per-day meeting slots and
// skipping (with a warning, never an error) any slot that fails to parse -
// a single malformed row upstream should not fail the whole request.
func convertOfferings(raw []dto.CatalogOffering) ([]engine.Offering, map[int]dto.CatalogOffering, []string) {
	offerings := make([]engine.Offering, 0, len(raw))
	rawByID := make(map[int]dto.CatalogOffering, len(raw))
	var warnings []string

	for _, r := range raw {
		rawByID[r.ID] = r

		slots, slotWarnings := convertSlots(r)
		warnings = append(warnings, slotWarnings...)

		offerings = append(offerings, engine.Offering{
			ID:        r.ID,
			Subject:   engine.Subject{ID: r.Materia.ID, Name: r.Materia.Nombre},
			Professor: convertProfessor(r.Profesor),
			Assistant: convertProfessor(r.Adjunto),
			Slots:     slots,
			Metadata:  r.Extra,
		})
	}

	return offerings, rawByID, warnings
}

func convertProfessor(m *dto.MaybeProfessor) *engine.Professor {
	if m == nil || m.Value == nil {
		return nil
	}
	return &engine.Professor{ID: m.Value.ID, Name: m.Value.Nombre}
}

func convertSlots(r dto.CatalogOffering) ([]engine.MeetingSlot, []string) {
	var slots []engine.MeetingSlot
	var warnings []string

	for _, raw := range r.Schedules {
		room := engine.Room{}
		if raw.Salon != nil {
			room = engine.Room{ID: raw.Salon.ID, Name: raw.Salon.Nombre, Capacity: raw.Salon.Capacidad}
		}

		start, startErr := engine.ParseClock(raw.HoraInicio)
		end, endErr := engine.ParseClock(raw.HoraFin)
		if startErr != nil || endErr != nil {
			warnings = append(warnings, "skipped a malformed meeting time for a course offering")
			continue
		}
		if start >= end {
			warnings = append(warnings, "skipped a wrap-around or zero-length meeting time for a course offering")
			continue
		}

		if raw.Dia != "" {
			day, ok := engine.NormalizeWeekday(raw.Dia)
			if !ok {
				warnings = append(warnings, "skipped an unrecognized meeting day for a course offering")
				continue
			}
			slots = append(slots, engine.MeetingSlot{Day: day, Start: start, End: end, Room: room})
			continue
		}

		flags := engine.LegacyDayFlags{
			Lunes:     raw.Lunes,
			Martes:    raw.Martes,
			Miercoles: raw.Miercoles,
			Jueves:    raw.Jueves,
			Viernes:   raw.Viernes,
			Sabado:    raw.Sabado,
			Domingo:   raw.Domingo,
		}
		for _, day := range flags.ExpandDays() {
			slots = append(slots, engine.MeetingSlot{Day: day, Start: start, End: end, Room: room})
		}
	}

	return slots, warnings
}
