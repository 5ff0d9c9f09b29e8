package domain

type Role string

const (
	RoleAnonymous Role = "anonymous" // never persisted
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Persisted reports whether r may be stored on a user record
func (r Role) Persisted() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Id        UserId   `json:"-"`
	Username  Username `json:"username"`
	Email     Email    `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Bio       string   `json:"bio"`
	Role      Role     `json:"role"`
	StateHash string   `json:"-"` // rotated on every profile change, feeds confirmation codes
}

func (u User) Actor() Actor {
	return Actor{Id: u.Id, Username: u.Username, Role: u.Role}
}

// Actor is whoever performs an operation: a verified token holder or an anonymous caller
type Actor struct {
	Id       UserId
	Username Username
	Role     Role
}

func Anonymous() Actor {
	return Actor{Role: RoleAnonymous}
}

func (a Actor) IsAnonymous() bool {
	return a.Role == RoleAnonymous || a.Role == ""
}

// Owns reports whether the actor authored a resource
func (a Actor) Owns(authorId UserId) bool {
	return !a.IsAnonymous() && a.Id == authorId
}

// Partial update. nil fields stay untouched.
type UserUpdate struct {
	Username  *Username
	Email     *Email
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *Role
}

func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.FirstName == nil && u.LastName == nil && u.Bio == nil && u.Role == nil
}

// Apply returns a copy of user with non-nil fields of u applied
func (u UserUpdate) Apply(user User) User {
	if u.Username != nil {
		user.Username = *u.Username
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.Bio != nil {
		user.Bio = *u.Bio
	}
	if u.Role != nil {
		user.Role = *u.Role
	}
	return user
}

type UserCreationData struct {
	Username  Username
	Email     Email
	FirstName string
	LastName  string
	Bio       string
	Role      Role
}
