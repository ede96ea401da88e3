package schema

// KeysTable represents the 'auth.keys' table.
type KeysTable struct {
	Table    string
	Key      string
	Uname    string
	LastUsed string
}

// Keys is the schema definition for auth.keys.
var Keys = KeysTable{
	Table:    "auth.keys",
	Key:      "key",
	Uname:    "uname",
	LastUsed: "last_used",
}

func (t KeysTable) Columns() []string {
	return []string{t.Key, t.Uname, t.LastUsed}
}
