package schema

// DatesTable represents the 'data.dates' table.
type DatesTable struct {
	Table string
	Name  string
	Day   string
}

// Dates is the schema definition for data.dates.
var Dates = DatesTable{
	Table: "data.dates",
	Name:  "name",
	Day:   "day",
}

func (t DatesTable) Columns() []string {
	return []string{t.Name, t.Day}
}
