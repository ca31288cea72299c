package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"User", RoleUser, true},
		{"manager", RoleManager, true},
		{" ADMIN ", RoleAdmin, true},
		{"Owner", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestUpdateEmployeeValidate(t *testing.T) {
	mgrID := 9
	orig := Employee{ID: 4, Username: "jdoe", Email: "jdoe@test.com", RoleID: RoleUser, ManagerID: &mgrID}

	t.Run("empty fields fall back to original", func(t *testing.T) {
		ue := UpdateEmployee{}
		assert.NoError(t, ue.Validate(orig))
		assert.Equal(t, "jdoe", ue.Username)
		assert.Equal(t, "jdoe@test.com", ue.Email)
		assert.Equal(t, RoleUser, ue.RoleID)
		assert.Equal(t, &mgrID, ue.ManagerID)
	})

	t.Run("provided fields win", func(t *testing.T) {
		ue := UpdateEmployee{Username: "jdoe2", RoleID: RoleManager}
		assert.NoError(t, ue.Validate(orig))
		assert.Equal(t, "jdoe2", ue.Username)
		assert.Equal(t, RoleManager, ue.RoleID)
	})

	t.Run("bad email rejected", func(t *testing.T) {
		ue := UpdateEmployee{Email: "nope"}
		assert.Error(t, ue.Validate(orig))
	})
}

func TestFilterByUsername(t *testing.T) {
	employees := []Employee{
		{ID: 1, Username: "Alice"},
		{ID: 2, Username: "malick"},
		{ID: 3, Username: "Bob"},
	}

	assert.Equal(t, employees, FilterByUsername(employees, "  "))

	got := FilterByUsername(employees, "ALI")
	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)

	assert.Empty(t, FilterByUsername(employees, "zz"))
}
