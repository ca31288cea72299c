package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/AkashQuad/trackqfrontend/core/board"
)

func (cli *commandLine) dashboard(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("dashboard", flag.ExitOnError)
	date := cmd.String("date", "", "yyyy-mm-dd (default today)")
	search := cmd.String("search", "", "filter reports by username")
	status := cmd.String("status", "", "filter tasks by status")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	day, err := parseDateFlag(*date)
	if err != nil {
		return err
	}
	st, err := parseStatusFlag(*status)
	if err != nil {
		return err
	}

	b, err := cli.board()
	if err != nil {
		return err
	}
	mgr, err := b.Manager()
	if err != nil {
		return err
	}

	agg, err := mgr.Refresh(ctx, day)
	if err != nil {
		return err
	}

	rows := board.FilterEmployees(agg.Employees, *search, st)
	fmt.Printf("%s — %d reports, %d teams, %d tasks (%d done / %d in progress / %d not started)\n\n",
		agg.Date.Format("2006-01-02"),
		agg.Stats.TotalEmployees, agg.Stats.TotalTeams, agg.Stats.TotalTasks,
		agg.Stats.Completed, agg.Stats.InProgress, agg.Stats.NotStarted)
	for _, row := range rows {
		fmt.Printf("%s (#%d) — %s\n", row.Employee.Username, row.Employee.ID, row.Summary())
		printTasks(row.Tasks)
		fmt.Println()
	}
	return nil
}

func (cli *commandLine) assign(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("assign", flag.ExitOnError)
	employees := cmd.String("employees", "", "comma-separated employee IDs")
	teams := cmd.String("teams", "", "comma-separated team IDs")
	topic := cmd.String("topic", "", "task topic")
	subTopic := cmd.String("subtopic", "", "task sub-topic")
	description := cmd.String("description", "", "task description")
	priority := cmd.Int("priority", 5, "1 (most urgent) .. 10")
	hours := cmd.Float64("hours", 0, "expected hours")
	start := cmd.String("start", "", "start date yyyy-mm-dd")
	end := cmd.String("end", "", "end date yyyy-mm-dd")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	employeeIDs, err := parseIDList(*employees)
	if err != nil {
		return err
	}
	teamIDs, err := parseIDList(*teams)
	if err != nil {
		return err
	}

	b, err := cli.board()
	if err != nil {
		return err
	}
	mgr, err := b.Manager()
	if err != nil {
		return err
	}

	report, err := mgr.Assign(ctx, board.Assignment{
		EmployeeIDs:   employeeIDs,
		TeamIDs:       teamIDs,
		Topic:         *topic,
		SubTopic:      *subTopic,
		Description:   *description,
		Priority:      *priority,
		ExpectedHours: *hours,
		StartDate:     *start,
		EndDate:       *end,
	})
	if err != nil {
		return err
	}

	if report.AllSucceeded() {
		fmt.Printf("assigned to %d employee(s)\n", len(report.Results))
		return nil
	}
	for _, res := range report.Results {
		if res.Err != nil {
			fmt.Printf("employee #%d: FAILED: %v\n", res.EmployeeID, res.Err)
		} else {
			fmt.Printf("employee #%d: ok\n", res.EmployeeID)
		}
	}
	return nil
}
