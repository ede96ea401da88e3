package schema

// UsersTable represents the 'data.users' table.
type UsersTable struct {
	Table string
	Uname string
	Role  string
	Salt  string
	Email string
}

// Users is the schema definition for data.users.
var Users = UsersTable{
	Table: "data.users",
	Uname: "uname",
	Role:  "role",
	Salt:  "salt",
	Email: "email",
}

func (t UsersTable) Columns() []string {
	return []string{t.Uname, t.Role, t.Salt, t.Email}
}
