package user

// User is someone allowed to edit the grid.
type User struct {
	Username     string
	PasswordHash string
}
