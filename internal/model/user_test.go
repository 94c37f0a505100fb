package model

import "testing"

func TestRoleLevelOrdering(t *testing.T) {
	if !(RoleBasic.Level() < RolePremium.Level() && RolePremium.Level() < RoleAdmin.Level()) {
		t.Fatalf("role levels out of order: basic=%d premium=%d admin=%d",
			RoleBasic.Level(), RolePremium.Level(), RoleAdmin.Level())
	}
}

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		name string
		role Role
		min  Role
		want bool
	}{
		{"basic meets basic", RoleBasic, RoleBasic, true},
		{"basic below premium", RoleBasic, RolePremium, false},
		{"basic below admin", RoleBasic, RoleAdmin, false},
		{"premium meets premium", RolePremium, RolePremium, true},
		{"premium below admin", RolePremium, RoleAdmin, false},
		{"admin meets basic", RoleAdmin, RoleBasic, true},
		{"admin meets admin", RoleAdmin, RoleAdmin, true},
		{"unknown role fails basic", Role("superuser"), RoleBasic, false},
		{"empty role fails basic", Role(""), RoleBasic, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.AtLeast(tt.min); got != tt.want {
				t.Errorf("Role(%q).AtLeast(%q) = %v, want %v", tt.role, tt.min, got, tt.want)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleBasic, RolePremium, RoleAdmin} {
		if !role.Valid() {
			t.Errorf("Role(%q).Valid() = false, want true", role)
		}
	}
	for _, role := range []Role{"", "root", "ADMIN"} {
		if Role(role).Valid() {
			t.Errorf("Role(%q).Valid() = true, want false", role)
		}
	}
}
