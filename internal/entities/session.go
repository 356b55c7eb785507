package entities

import "strings"

type Role string

const (
	RoleOriginator    Role = "ORIGINATOR"
	RoleDriver        Role = "DRIVER"
	RoleDepotOperator Role = "DEPOT_OPERATOR"
)

func (r Role) String() string {
	return string(r)
}

// WireName - имя роли, которое понимает удаленный сервис.
func (r Role) WireName() string {
	switch r {
	case RoleOriginator:
		return "farmer"
	case RoleDriver:
		return "driver"
	case RoleDepotOperator:
		return "depot_manager"
	default:
		return ""
	}
}

// ParseRole сопоставляет значение без учета регистра с фиксированным набором ролей.
// Все, что вне набора, невалидно.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "driver":
		return RoleDriver, true
	case "farmer", "originator":
		return RoleOriginator, true
	case "depot_manager", "depot_operator":
		return RoleDepotOperator, true
	default:
		return "", false
	}
}

// Session живет от логина до логаута или истечения credential.
type Session struct {
	ID      string
	Role    Role
	Token   string
	Subject string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}
