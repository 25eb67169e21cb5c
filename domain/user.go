package domain

// User is a brokerage client record managed through the users API.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
	Policies int    `json:"policies"`
	JoinDate string `json:"joinDate"`
}

// UserPatch lists the fields an update may change. Nil fields are left
// untouched; the id is never updatable.
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Status   *string `json:"status"`
	Policies *int    `json:"policies"`
	JoinDate *string `json:"joinDate"`
}

// Apply merges p into u.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.Policies != nil {
		u.Policies = *p.Policies
	}
	if p.JoinDate != nil {
		u.JoinDate = *p.JoinDate
	}
	return u
}
