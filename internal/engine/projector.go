package engine

import "fmt"

// SimplifiedSlot is one (day, start, end, room) tuple in the projected view.
type SimplifiedSlot struct {
	Day      string
	Start    string
	End      string
	Room     string
	Capacity *int
}

// SimplifiedCourse is one Offering's projected view within a schedule group.
type SimplifiedCourse struct {
	Subject   string
	Professor string
	Slots     []SimplifiedSlot
}

// SimplifiedSchedule is a sequentially numbered (1-based) projected Schedule.
type SimplifiedSchedule struct {
	Number  int
	Courses []SimplifiedCourse
}

// Project produces the compact, frontend-friendly view of a Schedule: the
// subject name, the primary professor name (or "Unknown" when absent), and
// the slot tuples in the Offering's own slot order.
func Project(number int, s Schedule) SimplifiedSchedule {
	out := SimplifiedSchedule{Number: number}
	for _, off := range s.Offerings {
		professorName := "Unknown"
		if off.Professor != nil && off.Professor.Name != "" {
			professorName = off.Professor.Name
		}

		course := SimplifiedCourse{Subject: off.Subject.Name, Professor: professorName}
		for _, slot := range off.Slots {
			course.Slots = append(course.Slots, SimplifiedSlot{
				Day:      string(slot.Day),
				Start:    formatClock(slot.Start),
				End:      formatClock(slot.End),
				Room:     slot.Room.Name,
				Capacity: slot.Room.Capacity,
			})
		}
		out.Courses = append(out.Courses, course)
	}
	return out
}

// ProjectAll projects every schedule in order, numbering sequentially from 1.
func ProjectAll(schedules []Schedule) []SimplifiedSchedule {
	out := make([]SimplifiedSchedule, 0, len(schedules))
	for i, s := range schedules {
		out = append(out, Project(i+1, s))
	}
	return out
}

func formatClock(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
