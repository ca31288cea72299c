package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/AkashQuad/trackqfrontend/core/employee"
)

func (cli *commandLine) adminList(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("admin-list", flag.ExitOnError)
	page := cmd.Int("page", 1, "page number")
	size := cmd.Int("size", 10, "page size")
	search := cmd.String("search", "", "match username or email")
	deleted := cmd.Bool("deleted", false, "list soft-deleted accounts instead")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	b, err := cli.board()
	if err != nil {
		return err
	}
	dir, err := b.Directory()
	if err != nil {
		return err
	}

	q := employee.Query{Page: *page, PageSize: *size, SearchQuery: *search}
	var res employee.Page
	if *deleted {
		res, err = dir.Deleted(ctx, q)
	} else {
		res, err = dir.List(ctx, q)
	}
	if err != nil {
		return err
	}

	for _, emp := range res.Employees {
		manager := "-"
		if emp.ManagerID != nil {
			manager = fmt.Sprintf("#%d", *emp.ManagerID)
		}
		fmt.Printf("#%-4d %-20s %-30s %-10s manager %s\n",
			emp.ID, emp.Username, emp.Email, emp.RoleID, manager)
	}
	fmt.Printf("page %d/%d — %d employee(s)\n", *page, res.PageCount, res.TotalCount)
	return nil
}

func (cli *commandLine) adminImport(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("admin-import", flag.ExitOnError)
	file := cmd.String("file", "", "CSV file: employeeId,username,email,roleID,managerID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		cmd.Usage()
		return errHelp
	}

	b, err := cli.board()
	if err != nil {
		return err
	}
	dir, err := b.Directory()
	if err != nil {
		return err
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	count, err := dir.Import(ctx, f)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d employee(s)\n", count)
	return nil
}
