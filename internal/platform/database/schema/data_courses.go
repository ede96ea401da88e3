package schema

// CoursesTable represents the 'data.courses' table.
type CoursesTable struct {
	Table string
	ID    string
	Sym   string
	Title string
	Book  string
	Level string
}

// Courses is the schema definition for data.courses.
var Courses = CoursesTable{
	Table: "data.courses",
	ID:    "id",
	Sym:   "sym",
	Title: "title",
	Book:  "book",
	Level: "level",
}

func (t CoursesTable) Columns() []string {
	return []string{t.ID, t.Sym, t.Title, t.Book, t.Level}
}
