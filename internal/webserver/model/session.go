package model

// Session holds the claims of an authenticated request
type Session struct {
	Uuid               string
	Name               string
	Email              string
	Role               int
	MustChangePassword bool
	Exp                float64
}

func (s Session) IsOperator() bool {
	return s.Role == RoleStaff || s.Role == RoleAdmin
}
