package employee

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportCSV(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		in := `employeeId,username,email,roleID,managerID
7,jdoe,JDoe@Test.com,1,3
,asmith,asmith@test.com,2,null
,mfall,mfall@test.com,3,
`
		records, err := ParseImportCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, records, 3)

		require.NotNil(t, records[0].EmployeeID)
		assert.Equal(t, 7, *records[0].EmployeeID)
		assert.Equal(t, "jdoe", records[0].Username)
		assert.Equal(t, "jdoe@test.com", records[0].Email) // lowered
		assert.Equal(t, RoleUser, records[0].RoleID)
		require.NotNil(t, records[0].ManagerID)
		assert.Equal(t, 3, *records[0].ManagerID)

		assert.Nil(t, records[1].EmployeeID)
		assert.Equal(t, RoleManager, records[1].RoleID)
		assert.Nil(t, records[1].ManagerID) // literal "null"

		assert.Equal(t, RoleAdmin, records[2].RoleID)
		assert.Nil(t, records[2].ManagerID) // empty cell
	})

	t.Run("column order is free", func(t *testing.T) {
		in := "email,roleID,username\njdoe@test.com,1,jdoe\n"
		records, err := ParseImportCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "jdoe", records[0].Username)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ParseImportCSV(strings.NewReader(""))
		assert.Equal(t, ErrMissingHeader, err)
	})

	t.Run("header only", func(t *testing.T) {
		_, err := ParseImportCSV(strings.NewReader("username,email,roleID\n"))
		assert.Equal(t, ErrEmptyFile, err)
	})

	t.Run("bad roleID", func(t *testing.T) {
		in := "username,email,roleID\njdoe,jdoe@test.com,abc\n"
		_, err := ParseImportCSV(strings.NewReader(in))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("invalid row fails validation", func(t *testing.T) {
		in := "username,email,roleID\njdoe,not-an-email,1\n"
		_, err := ParseImportCSV(strings.NewReader(in))
		assert.Error(t, err)
	})
}
