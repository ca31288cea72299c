package main

import (
	"io"
	"log"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/employee"
	"github.com/AkashQuad/trackqfrontend/core/session"
	"github.com/AkashQuad/trackqfrontend/core/task"
	emailsvc "github.com/AkashQuad/trackqfrontend/services/email"
	logsvc "github.com/AkashQuad/trackqfrontend/services/logger"
	"github.com/AkashQuad/trackqfrontend/services/restapi"
	"github.com/AkashQuad/trackqfrontend/services/stubapi"
)

const testPassword = "Sup3r$ecret"

func setup(t *testing.T) (*commandLine, *stubapi.Store) {
	conf := core.Config{
		TestMode:            true,
		SecretKey:           "test secret",
		JWTExpirationDelta:  time.Hour,
		RequestTimeout:      5 * time.Second,
		ReminderWindowStart: 0,
		ReminderWindowEnd:   24,
		StorePath:           filepath.Join(t.TempDir(), "session.json"),
	}

	logger = log.New(io.Discard, "", 0)
	quiet := logsvc.NewStdLogger(logger)

	apiStore := stubapi.NewStore()
	srv := stubapi.NewServer(&stubapi.Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         quiet,
		EmailSvc:       emailsvc.NewConsoleService(conf),
		Store:          apiStore,
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	conf.APIBaseURL = ts.URL

	store, err := session.NewStore(conf.StorePath)
	require.NoError(t, err)

	client := restapi.NewClient(conf, quiet)
	client.TokenSource = store.Token

	return &commandLine{conf: conf, store: store, client: client}, apiStore
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	failure bool // any error is acceptable
	pwd     string
}

func Test_commandLine_run(t *testing.T) {
	cli, apiStore := setup(t)

	emp, err := apiStore.CreateEmployee(
		employee.Employee{Username: "awe", Email: "awe@test.com", RoleID: employee.RoleUser},
		testPassword,
	)
	require.NoError(t, err)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	seeded := apiStore.CreateTask(task.Task{
		EmployeeID: emp.ID,
		Topic:      "Provisioning",
		Priority:   3,
		Status:     task.StatusNotStarted,
		Date:       &today,
		StartDate:  &today,
		EndDate:    &today,
	})

	tests := []cliTest{
		{name: "no command", args: nil, wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "whoami before login", args: []string{"whoami"}, failure: true},
		{name: "login: no email", args: []string{"login"}, wantErr: errHelp},
		{name: "login: empty password", args: []string{"login", "-email", "awe@test.com"}, wantErr: errHelp},
		{name: "login: bad password", args: []string{"login", "-email", "awe@test.com"}, pwd: "nope", failure: true},
		{name: "login", args: []string{"login", "-email", "awe@test.com"}, pwd: testPassword},
		{name: "whoami", args: []string{"whoami"}},
		{name: "tasks", args: []string{"tasks"}},
		{name: "tasks: filtered out", args: []string{"tasks", "-status", "Completed"}},
		{name: "kanban", args: []string{"kanban"}},
		{name: "remind", args: []string{"remind"}},
		{name: "loghours: no task", args: []string{"loghours", "-hours", "2"}, wantErr: errHelp},
		{name: "loghours", args: []string{"loghours", "-task", "1", "-hours", "2.5"}},
		{name: "complete: unknown task", args: []string{"complete", "-task", "99"}, failure: true},
		{name: "complete", args: []string{"complete", "-task", "1"}},
		{name: "dashboard: wrong role", args: []string{"dashboard"}, failure: true},
		{name: "admin-list: wrong role", args: []string{"admin-list"}, failure: true},
		{name: "logout", args: []string{"logout"}},
		{name: "tasks after logout", args: []string{"tasks"}, failure: true},
	}
	for _, tt := range tests {
		args := append([]string{"trackq"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.failure:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}

	// hours logged through the CLI land on the completed task total
	refreshed, err := apiStore.GetTask(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, refreshed.Status)
	assert.Equal(t, 2.5, refreshed.CompletedHours)
}
