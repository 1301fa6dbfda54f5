package engine

import (
	"context"
	"sort"
	"strconv"
	"strings"
)

// AssembleResult is the ScheduleAssembler's output.
type AssembleResult struct {
	Schedules []Schedule
	Messages  []string
	Truncated bool
}

// AssembleOptions configures the assembly pass.
type AssembleOptions struct {
	RequestedSubjectCount int
	Floor                 int
	ProfessorFilter       []string
	Cap                   int
}

// Assemble turns maximal cliques into ordered, deduplicated Schedules,
// applying subject-coverage and professor-coverage requirements, capping at
// opts.Cap, and falling back to one-schedule-per-offering when nothing
// survives and the floor allows size-1 sets.
func Assemble(ctx context.Context, g *CompatibilityGraph, cliques []CliqueResult, opts AssembleOptions) AssembleResult {
	legacyMode := opts.Floor == opts.RequestedSubjectCount

	// When more than one subject was requested, a single-subject clique is
	// not a combination - it's the degenerate case the singleton fallback
	// below exists for. Keeping it in the normal path would make scenario 4
	// (conflicting offerings across subjects) report the isolated singletons
	// as success instead of falling back, so it's excluded here and left to
	// the fallback pass to decide whether singletons are worth showing.
	minSubjectsPerSchedule := 1
	if opts.RequestedSubjectCount > 1 {
		minSubjectsPerSchedule = 2
	}

	var schedules []Schedule
	var truncated bool
	seen := make(map[string]struct{})

	for _, clique := range cliques {
		offerings := make([]Offering, 0, len(clique))
		subjectsSeen := make(map[int]struct{})
		for _, nodeIdx := range clique {
			node := g.Nodes[nodeIdx]
			offerings = append(offerings, node.Offering)
			subjectsSeen[node.SubjectID] = struct{}{}
		}

		sort.Slice(offerings, func(i, j int) bool {
			if offerings[i].Subject.Name != offerings[j].Subject.Name {
				return offerings[i].Subject.Name < offerings[j].Subject.Name
			}
			return offerings[i].ID < offerings[j].ID
		})

		if legacyMode && len(subjectsSeen) < opts.RequestedSubjectCount {
			continue
		}

		if len(subjectsSeen) < minSubjectsPerSchedule {
			continue
		}

		if len(opts.ProfessorFilter) > 0 && !coversProfessors(offerings, opts.ProfessorFilter) {
			continue
		}

		key := dedupeKey(offerings)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		schedules = append(schedules, Schedule{Offerings: offerings})
		if opts.Cap > 0 && len(schedules) >= opts.Cap {
			truncated = true
			break
		}
	}

	var messages []string
	if len(schedules) == 0 && opts.Floor <= 1 {
		for _, node := range g.Nodes {
			schedules = append(schedules, Schedule{Offerings: []Offering{node.Offering}})
		}
		if len(schedules) > 0 {
			messages = append(messages, "No combinations possible, showing individual courses.")
		}
	} else if len(schedules) == 0 {
		messages = append(messages, "No combinations possible with the given criteria.")
	}

	_ = ctx // reserved for cooperative cancellation of very large candidate pools

	return AssembleResult{Schedules: schedules, Messages: messages, Truncated: truncated}
}

func coversProfessors(offerings []Offering, requested []string) bool {
	present := make(map[string]struct{}, len(offerings))
	for _, off := range offerings {
		if off.Professor != nil {
			present[strings.TrimSpace(off.Professor.Name)] = struct{}{}
		}
	}
	for _, name := range requested {
		if _, ok := present[strings.TrimSpace(name)]; !ok {
			return false
		}
	}
	return true
}

func dedupeKey(offerings []Offering) string {
	ids := make([]string, len(offerings))
	for i, off := range offerings {
		ids[i] = strconv.Itoa(off.ID)
	}
	return strings.Join(ids, ",")
}
