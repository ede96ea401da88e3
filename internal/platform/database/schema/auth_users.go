package schema

// AuthUsersTable represents the 'auth.users' table.
type AuthUsersTable struct {
	Table string
	Uname string
	Hash  string
}

// AuthUsers is the schema definition for auth.users.
var AuthUsers = AuthUsersTable{
	Table: "auth.users",
	Uname: "uname",
	Hash:  "hash",
}

func (t AuthUsersTable) Columns() []string {
	return []string{t.Uname, t.Hash}
}
