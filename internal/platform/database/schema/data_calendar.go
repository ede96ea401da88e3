package schema

// CalendarTable represents the 'data.calendar' table.
type CalendarTable struct {
	Table string
	Day   string
}

// Calendar is the schema definition for data.calendar.
var Calendar = CalendarTable{
	Table: "data.calendar",
	Day:   "day",
}

func (t CalendarTable) Columns() []string {
	return []string{t.Day}
}
