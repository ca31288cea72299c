package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/board"
	"github.com/AkashQuad/trackqfrontend/core/session"
	"github.com/AkashQuad/trackqfrontend/core/task"
	logsvc "github.com/AkashQuad/trackqfrontend/services/logger"
	"github.com/AkashQuad/trackqfrontend/services/restapi"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   core.Config
	store  *session.Store
	client *restapi.Client
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -email EMAIL                              - sign in; the password is prompted")
	fmt.Println("  logout                                          - drop the stored session")
	fmt.Println("  whoami                                          - show the signed-in account")
	fmt.Println("  tasks [-mode all|private|assigned|active|overdue] [-status STATUS] [-search TEXT] [-sort priority|dueDate|topic|status|expectedHours] [-desc]")
	fmt.Println("  kanban [-date YYYY-MM-DD]                       - status columns for one day")
	fmt.Println("  loghours -task ID -hours N                      - append today's hours to a task")
	fmt.Println("  complete -task ID                               - mark a task completed")
	fmt.Println("  remind                                          - tasks still needing hours today")
	fmt.Println("  dashboard [-date YYYY-MM-DD] [-search TEXT] [-status STATUS]  - manager team review")
	fmt.Println("  assign -topic T -priority N -start D -end D [-employees 1,2] [-teams 3]")
	fmt.Println("  admin-list [-page N] [-size N] [-search TEXT] [-deleted]")
	fmt.Println("  admin-import -file FILE.csv                     - bulk-insert employees from CSV")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cli.conf.RequestTimeout)
	defer cancel()

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		return cli.store.Clear()
	case "whoami":
		sess, err := cli.session()
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> (%s)\n", sess.Username, sess.Email, sess.Role)
		return nil
	case "tasks":
		return cli.tasks(ctx, args[2:])
	case "kanban":
		return cli.kanban(ctx, args[2:])
	case "loghours":
		return cli.logHours(ctx, args[2:])
	case "complete":
		return cli.complete(ctx, args[2:])
	case "remind":
		return cli.remind(ctx)
	case "dashboard":
		return cli.dashboard(ctx, args[2:])
	case "assign":
		return cli.assign(ctx, args[2:])
	case "admin-list":
		return cli.adminList(ctx, args[2:])
	case "admin-import":
		return cli.adminImport(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// session resolves the stored token into the caller's identity.
func (cli *commandLine) session() (session.Session, error) {
	sess, err := session.Resolve(cli.store.Token())
	if err != nil {
		return session.Session{}, errors.Wrap(err, "not signed in (run: login -email EMAIL)")
	}
	return sess, nil
}

func (cli *commandLine) board() (*board.Board, error) {
	sess, err := cli.session()
	if err != nil {
		return nil, err
	}
	return board.New(sess, cli.client, cli.store, cli.conf, logsvc.NewStdLogger(logger)), nil
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := cmd.String("email", "", "The account email. The password will be prompted next.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		cmd.Usage()
		return errHelp
	}

	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return errHelp
	}

	token, err := cli.client.Login(ctx, restapi.LoginForm{Email: *email, Password: string(pwd)})
	if err != nil {
		return err
	}
	if err = cli.store.SetToken(token); err != nil {
		return err
	}

	sess, err := session.Resolve(token)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", sess.Username, sess.Role)
	return nil
}

func parseIDList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Errorf("bad id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseStatusFlag(s string) (*task.Status, error) {
	if s == "" {
		return nil, nil
	}
	st, ok := task.ParseStatus(s)
	if !ok {
		return nil, errors.Errorf("unknown status %q", s)
	}
	return &st, nil
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

func printTasks(tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return
	}
	for _, t := range tasks {
		due := "-"
		if t.EndDate != nil {
			due = task.DayKey(*t.EndDate)
		}
		fmt.Printf("#%-4d p%-2d %-12s due %-10s %s\n", t.ID, t.Priority, t.Status, due, t.Topic)
	}
}
