package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/AkashQuad/trackqfrontend/core/board"
	"github.com/AkashQuad/trackqfrontend/core/task"
)

func (cli *commandLine) tasks(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("tasks", flag.ExitOnError)
	mode := cmd.String("mode", "all", "all|private|assigned|active|overdue")
	status := cmd.String("status", "", "filter by status")
	search := cmd.String("search", "", "free-text search over topic/subtopic/description")
	sortBy := cmd.String("sort", "", "priority|dueDate|topic|status|expectedHours")
	desc := cmd.Bool("desc", false, "sort descending")
	page := cmd.Int("page", 1, "page number")
	size := cmd.Int("size", 10, "page size")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	b, err := cli.board()
	if err != nil {
		return err
	}
	tasks, err := b.Tasks().Fetch(ctx, board.FetchMode(*mode))
	if err != nil {
		return err
	}

	st, err := parseStatusFlag(*status)
	if err != nil {
		return err
	}
	direction := task.SortAsc
	if *desc {
		direction = task.SortDesc
	}
	query := task.Query{
		Search:    *search,
		Status:    st,
		SortField: task.SortField(*sortBy),
		Direction: direction,
	}

	pageTasks, n, pages := task.Paginate(query.Apply(tasks), *page, *size)
	printTasks(pageTasks)
	fmt.Printf("page %d/%d\n", n, pages)
	return nil
}

func (cli *commandLine) kanban(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("kanban", flag.ExitOnError)
	date := cmd.String("date", "", "yyyy-mm-dd (default today)")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	day, err := parseDateFlag(*date)
	if err != nil {
		return err
	}

	b, err := cli.board()
	if err != nil {
		return err
	}
	tasks, err := b.Tasks().ForDate(ctx, day)
	if err != nil {
		return err
	}

	kb := task.NewKanbanBoard(tasks)
	for _, st := range task.Statuses {
		fmt.Printf("== %s (%d)\n", st, len(kb.Column(st)))
		printTasks(kb.Column(st))
	}
	if len(kb.Unrecognized) > 0 {
		fmt.Printf("== Unrecognized (%d)\n", len(kb.Unrecognized))
		printTasks(kb.Unrecognized)
	}
	return nil
}

func (cli *commandLine) logHours(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("loghours", flag.ExitOnError)
	taskID := cmd.Int("task", 0, "task ID")
	hours := cmd.Float64("hours", 0, "hours spent today")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *taskID == 0 {
		cmd.Usage()
		return errHelp
	}

	b, err := cli.board()
	if err != nil {
		return err
	}
	if err = b.Tasks().LogHours(ctx, *taskID, *hours); err != nil {
		return err
	}
	fmt.Printf("logged %.2fh on task #%d\n", *hours, *taskID)
	return nil
}

func (cli *commandLine) complete(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("complete", flag.ExitOnError)
	taskID := cmd.Int("task", 0, "task ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *taskID == 0 {
		cmd.Usage()
		return errHelp
	}

	b, err := cli.board()
	if err != nil {
		return err
	}
	tasks, err := b.Tasks().Fetch(ctx, board.FetchAll)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID == *taskID {
			if err = b.Tasks().Complete(ctx, t); err != nil {
				return err
			}
			fmt.Printf("task #%d completed\n", *taskID)
			return nil
		}
	}
	return errors.Errorf("task #%d not found", *taskID)
}

func (cli *commandLine) remind(ctx context.Context) error {
	b, err := cli.board()
	if err != nil {
		return err
	}
	tasks, err := b.Tasks().Fetch(ctx, board.FetchActive)
	if err != nil {
		return err
	}

	due := b.Tasks().Reminders(time.Now(), tasks)
	if len(due) == 0 {
		fmt.Println("nothing to log right now")
		return nil
	}
	fmt.Println("tasks still needing hours today:")
	printTasks(due)
	return nil
}
