package domain

import (
	"encoding/json"
	"strings"

	"github.com/fundwit/go-commons/types"
)

// Role is the normalized role of a member row. Raw role strings must go through NormalizeRole
// before any comparison.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleLeader  Role = "leader"
	RoleMember  Role = "member"
)

var roleSynonyms = map[string]Role{
	"owner":           RoleOwner,
	"manager":         RoleManager,
	"pm":              RoleManager,
	"project manager": RoleManager,
	"project_manager": RoleManager,
	"leader":          RoleLeader,
	"lead":            RoleLeader,
	"coordinator":     RoleLeader,
	"ketua":           RoleLeader,
	"ketua divisi":    RoleLeader,
	"ketua_divisi":    RoleLeader,
	"member":          RoleMember,
	"anggota":         RoleMember,
}

// NormalizeRole maps free-form role text onto the four known roles; anything unrecognized is a member.
func NormalizeRole(raw string) Role {
	key := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if r, found := roleSynonyms[key]; found {
		return r
	}
	return RoleMember
}

// Special reports whether the role is anything other than a plain member.
func (r Role) Special() bool {
	return NormalizeRole(string(r)) != RoleMember
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NormalizeRole(raw)
	return nil
}

func (r *Role) UnmarshalParam(param string) error {
	*r = NormalizeRole(param)
	return nil
}

var rolePrecedence = map[Role]int{RoleOwner: 4, RoleManager: 3, RoleLeader: 2, RoleMember: 1}

// ProjectRoleOf resolves the project-level role of a user: owner and manager come from the project
// record, otherwise the strongest role among the user's member rows. ok is false for non-members.
func ProjectRoleOf(p Project, members []Member, userID types.ID) (role Role, ok bool) {
	if userID == 0 {
		return "", false
	}
	if userID == p.OwnerID {
		return RoleOwner, true
	}
	if p.ManagerID != 0 && userID == p.ManagerID {
		return RoleManager, true
	}
	for _, m := range members {
		if m.ProjectID != p.ID || m.UserID != userID {
			continue
		}
		r := NormalizeRole(string(m.Role))
		if !ok || rolePrecedence[r] > rolePrecedence[role] {
			role, ok = r, true
		}
	}
	return role, ok
}
