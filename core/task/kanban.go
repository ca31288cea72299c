package task

import "sort"

// KanbanBoard partitions tasks by status. Every input task lands in exactly
// one column; rows with a status outside the known domain collect in
// Unrecognized so a bad row never disappears from the board.
type KanbanBoard struct {
	Columns      map[Status][]Task
	Unrecognized []Task
}

func NewKanbanBoard(tasks []Task) KanbanBoard {
	board := KanbanBoard{Columns: make(map[Status][]Task, len(Statuses))}
	for _, st := range Statuses {
		board.Columns[st] = []Task{}
	}
	for _, t := range tasks {
		st, ok := ParseStatus(string(t.Status))
		if !ok {
			board.Unrecognized = append(board.Unrecognized, t)
			continue
		}
		board.Columns[st] = append(board.Columns[st], t)
	}
	for _, col := range board.Columns {
		col := col
		sort.SliceStable(col, func(i, j int) bool { return col[i].Priority < col[j].Priority })
	}
	return board
}

func (b KanbanBoard) Column(st Status) []Task { return b.Columns[st] }

func (b KanbanBoard) Size() int {
	n := len(b.Unrecognized)
	for _, col := range b.Columns {
		n += len(col)
	}
	return n
}
