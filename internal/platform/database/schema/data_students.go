package schema

// StudentsTable represents the 'data.students' table.
type StudentsTable struct {
	Table              string
	Uname              string
	Last               string
	Rest               string
	Teacher            string
	Parent             string
	FallExam           string
	SpringExam         string
	FallExamFraction   string
	SpringExamFraction string
	FallNotices        string
	SpringNotices      string
}

// Students is the schema definition for data.students.
var Students = StudentsTable{
	Table:              "data.students",
	Uname:              "uname",
	Last:               "last",
	Rest:               "rest",
	Teacher:            "teacher",
	Parent:             "parent",
	FallExam:           "fall_exam",
	SpringExam:         "spring_exam",
	FallExamFraction:   "fall_exam_fraction",
	SpringExamFraction: "spring_exam_fraction",
	FallNotices:        "fall_notices",
	SpringNotices:      "spring_notices",
}

func (t StudentsTable) Columns() []string {
	return []string{
		t.Uname, t.Last, t.Rest, t.Teacher, t.Parent,
		t.FallExam, t.SpringExam, t.FallExamFraction, t.SpringExamFraction,
		t.FallNotices, t.SpringNotices,
	}
}
