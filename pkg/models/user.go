package models

// User is a row of the users dimension. Only Level changes after the first insert.
type User struct {
	ID        int64
	FirstName *string
	LastName  *string
	Gender    *string
	Level     *string
}

// Args returns the users insert tuple: id, first_name, last_name, gender, level.
func (u *User) Args() []any {
	return []any{u.ID, u.FirstName, u.LastName, u.Gender, u.Level}
}
