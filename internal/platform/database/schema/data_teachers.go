package schema

// TeachersTable represents the 'data.teachers' table.
type TeachersTable struct {
	Table string
	Uname string
	Name  string
}

// Teachers is the schema definition for data.teachers.
var Teachers = TeachersTable{
	Table: "data.teachers",
	Uname: "uname",
	Name:  "name",
}

func (t TeachersTable) Columns() []string {
	return []string{t.Uname, t.Name}
}
