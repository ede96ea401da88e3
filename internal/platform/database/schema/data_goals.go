package schema

// GoalsTable represents the 'data.goals' table.
type GoalsTable struct {
	Table      string
	ID         string
	Uname      string
	Sym        string
	Seq        string
	Review     string
	Incomplete string
	Due        string
	Done       string
	Tries      string
	Score      string
}

// Goals is the schema definition for data.goals.
var Goals = GoalsTable{
	Table:      "data.goals",
	ID:         "id",
	Uname:      "uname",
	Sym:        "sym",
	Seq:        "seq",
	Review:     "review",
	Incomplete: "incomplete",
	Due:        "due",
	Done:       "done",
	Tries:      "tries",
	Score:      "score",
}

func (t GoalsTable) Columns() []string {
	return []string{
		t.ID, t.Uname, t.Sym, t.Seq, t.Review, t.Incomplete,
		t.Due, t.Done, t.Tries, t.Score,
	}
}
