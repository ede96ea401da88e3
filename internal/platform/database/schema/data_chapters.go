package schema

// ChaptersTable represents the 'data.chapters' table.
type ChaptersTable struct {
	Table    string
	ID       string
	Course   string
	Sequence string
	Title    string
	Subject  string
	Weight   string
}

// Chapters is the schema definition for data.chapters.
var Chapters = ChaptersTable{
	Table:    "data.chapters",
	ID:       "id",
	Course:   "course",
	Sequence: "sequence",
	Title:    "title",
	Subject:  "subject",
	Weight:   "weight",
}

func (t ChaptersTable) Columns() []string {
	return []string{t.ID, t.Course, t.Sequence, t.Title, t.Subject, t.Weight}
}
