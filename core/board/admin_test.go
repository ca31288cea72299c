package board

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkashQuad/trackqfrontend/core/employee"
)

type directoryStub struct {
	stubAPI

	inserted   []employee.ImportRecord
	deleted    []int
	deleteHook func() // runs before the delete lands, when set
}

func (s *directoryStub) BatchInsertEmployees(_ context.Context, records []employee.ImportRecord) error {
	s.inserted = records
	return nil
}

func (s *directoryStub) BatchDeleteEmployees(_ context.Context, ids []int) error {
	if s.deleteHook != nil {
		s.deleteHook()
	}
	s.deleted = ids
	return nil
}

func testDirectory(t *testing.T, api API) *Directory {
	t.Helper()
	b := testBoard(t, api, employee.RoleAdmin)
	dir, err := b.Directory()
	require.NoError(t, err)
	return dir
}

func TestDirectoryBatchPreconditions(t *testing.T) {
	// the stub panics on any unexpected API call, so reaching the assertions
	// proves no request went out
	api := &directoryStub{}
	dir := testDirectory(t, api)
	ctx := context.Background()

	assert.Equal(t, ErrEmptySelection, dir.BatchSoftDelete(ctx, nil))
	assert.Equal(t, ErrEmptySelection, dir.BatchHardDelete(ctx, nil))
	assert.Equal(t, ErrEmptySelection, dir.BatchRestore(ctx, nil))
	assert.Equal(t, ErrEmptySelection, dir.BatchUpdateManagers(ctx, nil, nil))
	assert.Equal(t, ErrEmptySelection, dir.BatchUpdateRoles(ctx, nil, employee.RoleUser))

	assert.Error(t, dir.BatchUpdateRoles(ctx, []int{1}, employee.Role(9)))
	assert.Empty(t, api.deleted)

	require.NoError(t, dir.BatchSoftDelete(ctx, []int{4, 5}))
	assert.Equal(t, []int{4, 5}, api.deleted)
}

func TestDirectoryBatchInFlightMarker(t *testing.T) {
	api := &directoryStub{}
	started := make(chan struct{})
	release := make(chan struct{})
	api.deleteHook = func() {
		close(started)
		<-release
	}

	b := testBoard(t, api, employee.RoleAdmin)
	dir, err := b.Directory()
	require.NoError(t, err)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- dir.BatchSoftDelete(ctx, []int{4, 5}) }()
	<-started

	// the whole selection runs under one marker
	assert.True(t, b.Actions().Active("batch-soft-delete"))

	// re-submitting the action while in flight is a no-op: no second request
	require.NoError(t, dir.BatchSoftDelete(ctx, []int{6}))

	close(release)
	require.NoError(t, <-done)
	assert.False(t, b.Actions().Active("batch-soft-delete"))
	assert.Equal(t, []int{4, 5}, api.deleted)
}

func TestDirectoryImport(t *testing.T) {
	api := &directoryStub{}
	dir := testDirectory(t, api)

	in := "username,email,roleID,managerID\njdoe,jdoe@test.com,1,null\nasmith,asmith@test.com,2,1\n"
	n, err := dir.Import(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, api.inserted, 2)
	assert.Equal(t, "jdoe", api.inserted[0].Username)

	// a bad file never reaches the API
	api.inserted = nil
	_, err = dir.Import(context.Background(), strings.NewReader("username,email,roleID\n"))
	assert.Error(t, err)
	assert.Empty(t, api.inserted)
}
