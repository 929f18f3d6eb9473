package adapter

import (
	"strings"

	"github.com/roach88/wp4bd/internal/record"
	"github.com/roach88/wp4bd/internal/wp"
)

// roleMap maps store role identifiers to the role they grant.
var roleMap = map[string]string{
	"administrator":  wp.RoleAdministrator,
	"admin":          wp.RoleAdministrator,
	"editor":         wp.RoleEditor,
	"content_editor": wp.RoleEditor,
	"author":         wp.RoleAuthor,
	"contributor":    wp.RoleAuthor,
}

var rolePriority = []string{wp.RoleAdministrator, wp.RoleEditor, wp.RoleAuthor}

// superUserID is the account that always holds the administrator role.
const superUserID = 1

// User adapts an account. It returns nil for a nil account or uid 0.
func User(a *record.Account, env Env) *wp.User {
	if a == nil || a.UID == 0 {
		return nil
	}

	display := a.DisplayName
	if strings.TrimSpace(display) == "" {
		display = a.Name
	}
	first, last := splitName(display)

	return &wp.User{
		ID:             a.UID,
		UserLogin:      a.Name,
		UserNicename:   SanitizeTitle(display),
		UserEmail:      a.Mail,
		UserURL:        "",
		UserRegistered: formatUTC(a.Created),
		DisplayName:    display,
		FirstName:      first,
		LastName:       last,
		Role:           Role(a),
	}
}

// Role returns the single role for an account.
func Role(a *record.Account) string {
	if a.UID == superUserID {
		return wp.RoleAdministrator
	}
	granted := make(map[string]bool, len(a.Roles))
	for _, r := range a.Roles {
		if mapped, ok := roleMap[strings.ToLower(r)]; ok {
			granted[mapped] = true
		}
	}
	for _, r := range rolePriority {
		if granted[r] {
			return r
		}
	}
	return wp.RoleSubscriber
}

// splitName splits on the first whitespace run. Names without whitespace
// yield empty first and last names.
func splitName(display string) (string, string) {
	parts := strings.Fields(display)
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
