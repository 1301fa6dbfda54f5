package engine

import (
	"sort"
	"strings"
)

// GroupResult is the Grouper's output: candidate offerings per requested
// subject, plus accumulated diagnostic messages.
type GroupResult struct {
	BySubject map[string][]Offering
	Messages  []string
	// ProfessorsSatisfied is false when a professor filter was supplied and
	// at least one requested professor name has no matching offering.
	ProfessorsSatisfied bool
	MissingProfessors   []string
}

// Group filters the catalog to the requested subjects, partitions candidates
// per subject, and validates the optional professor filter precondition.
// Subject/professor names are matched by trimmed equality.
func Group(catalog []Offering, requestedSubjects []string, professorFilter []string) GroupResult {
	normalizedSubjects := make(map[string]struct{}, len(requestedSubjects))
	for _, s := range requestedSubjects {
		normalizedSubjects[strings.TrimSpace(s)] = struct{}{}
	}

	subjectsFound := make(map[string]struct{})
	bySubject := make(map[string][]Offering)
	for _, off := range catalog {
		name := strings.TrimSpace(off.Subject.Name)
		if _, wanted := normalizedSubjects[name]; !wanted {
			continue
		}
		subjectsFound[name] = struct{}{}
		bySubject[name] = append(bySubject[name], off)
	}

	var result GroupResult
	result.BySubject = bySubject
	result.ProfessorsSatisfied = true

	var notFound []string
	for s := range normalizedSubjects {
		if _, ok := subjectsFound[s]; !ok {
			notFound = append(notFound, s)
		}
	}
	if len(notFound) > 0 {
		sort.Strings(notFound)
		result.Messages = append(result.Messages, "Subjects not found: "+strings.Join(notFound, ", "))
	}

	if len(professorFilter) == 0 {
		return result
	}

	professorsPresent := make(map[string]struct{})
	for _, offs := range bySubject {
		for _, off := range offs {
			if off.Professor != nil {
				professorsPresent[strings.TrimSpace(off.Professor.Name)] = struct{}{}
			}
		}
	}

	var missing []string
	for _, requested := range professorFilter {
		name := strings.TrimSpace(requested)
		if _, ok := professorsPresent[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		result.ProfessorsSatisfied = false
		result.MissingProfessors = missing
		result.Messages = append(result.Messages, "Professors not found teaching the selected courses: "+strings.Join(missing, ", "))
	}

	return result
}
