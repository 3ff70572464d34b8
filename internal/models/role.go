package models

import (
	"fmt"
	"strconv"
	"strings"
)

type Role int

const (
	RoleUnknown Role = iota
	RoleStudent
	RoleCompany
	RoleCounselor
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleCompany:
		return "company"
	case RoleCounselor:
		return "counselor"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// RoleFromString accepts role names as well as the numeric codes older
// tokens and the users table carry (1 student, 2 company, 3 counselor, 4 admin).
func RoleFromString(s string) Role {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		return roleFromCode(n)
	}
	switch s {
	case "student":
		return RoleStudent
	case "company":
		return RoleCompany
	case "counselor", "counsellor":
		return RoleCounselor
	case "admin":
		return RoleAdmin
	}
	return RoleUnknown
}

// RoleFromClaim resolves the "role" claim of a token, which may be a string or a JSON number.
func RoleFromClaim(claim any) Role {
	switch v := claim.(type) {
	case string:
		return RoleFromString(v)
	case float64:
		return roleFromCode(int(v))
	case int:
		return roleFromCode(v)
	case nil:
		return RoleUnknown
	default:
		return RoleFromString(fmt.Sprint(v))
	}
}

func roleFromCode(code int) Role {
	switch code {
	case 1:
		return RoleStudent
	case 2:
		return RoleCompany
	case 3:
		return RoleCounselor
	case 4:
		return RoleAdmin
	}
	return RoleUnknown
}

// Identity is the authenticated caller, resolved once by the auth middleware.
type Identity struct {
	UserID string
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanManage reports whether the identity may mutate resources owned by ownerID.
func (i Identity) CanManage(ownerID string) bool {
	return i.UserID == ownerID || i.IsAdmin()
}

type User struct {
	ID   string
	Role Role
}
