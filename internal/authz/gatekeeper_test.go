package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMatrix(t *testing.T) {
	g := NewGatekeeper(nil)

	cases := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleAdmin, AssetsDelete, true},
		{RoleAdmin, UnscopedView, true},
		{RoleHR, AssetsDelete, true},
		{RoleHR, TrackingExport, true},
		{RoleHR, UnscopedView, false},
		{RoleEmployee, AssetsView, true},
		{RoleEmployee, AssetsCreate, false},
		{RoleEmployee, AttachmentsDelete, false},
		{"intern", AssetsView, false},
	}
	for _, tc := range cases {
		t.Run(tc.role+" "+tc.permission, func(t *testing.T) {
			assert.Equal(t, tc.want, g.Can(tc.role, tc.permission))
		})
	}
}

func TestPermissionsList(t *testing.T) {
	g := NewGatekeeper(nil)
	assert.ElementsMatch(t, viewPermissions, g.Permissions(RoleEmployee))
	assert.Empty(t, g.Permissions("unknown"))
}
