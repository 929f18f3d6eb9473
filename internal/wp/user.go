package wp

// Roles, highest privilege first.
const (
	RoleAdministrator = "administrator"
	RoleEditor        = "editor"
	RoleAuthor        = "author"
	RoleSubscriber    = "subscriber"
)

// User is the WP_User data shape.
type User struct {
	ID                int64  `json:"ID"`
	UserLogin         string `json:"user_login"`
	UserPass          string `json:"user_pass"`
	UserNicename      string `json:"user_nicename"`
	UserEmail         string `json:"user_email"`
	UserURL           string `json:"user_url"`
	UserRegistered    string `json:"user_registered"`
	UserActivationKey string `json:"user_activation_key"`
	UserStatus        int    `json:"user_status"`
	DisplayName       string `json:"display_name"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Role              string `json:"role"`
}

func (u *User) Columns() []Column {
	return []Column{
		{"ID", u.ID},
		{"user_login", u.UserLogin},
		{"user_pass", u.UserPass},
		{"user_nicename", u.UserNicename},
		{"user_email", u.UserEmail},
		{"user_url", u.UserURL},
		{"user_registered", u.UserRegistered},
		{"user_activation_key", u.UserActivationKey},
		{"user_status", u.UserStatus},
		{"display_name", u.DisplayName},
		{"first_name", u.FirstName},
		{"last_name", u.LastName},
		{"role", u.Role},
	}
}

func (u *User) Column(name string) (any, bool) {
	return lookup(u.Columns(), name)
}
