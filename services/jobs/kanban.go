package jobs

import (
	"fmt"

	"shineops/models"
)

// KanbanColumn names one column of the four-column jobs board.
type KanbanColumn string

const (
	ColumnScheduled  KanbanColumn = "Scheduled"
	ColumnInProgress KanbanColumn = "In Progress"
	ColumnReady      KanbanColumn = "Ready for Pickup"
	ColumnCompleted  KanbanColumn = "Completed"
)

// Columns is the board's column order.
var Columns = []KanbanColumn{ColumnScheduled, ColumnInProgress, ColumnReady, ColumnCompleted}

// columnStatus maps each column 1:1 to a booking status. Moving a card to a
// column is nothing more than writing the mapped status.
var columnStatus = map[KanbanColumn]models.BookingStatus{
	ColumnScheduled:  models.StatusConfirmed,
	ColumnInProgress: models.StatusPending,
	ColumnReady:      models.StatusReady,
	ColumnCompleted:  models.StatusCompleted,
}

// StatusForColumn resolves a column to its mapped status.
func StatusForColumn(col KanbanColumn) (models.BookingStatus, error) {
	status, ok := columnStatus[col]
	if !ok {
		return "", fmt.Errorf("unknown kanban column %q", col)
	}
	return status, nil
}

// Board groups bookings into their columns for the operator view. Cancelled
// bookings have no column and are excluded.
type Board map[KanbanColumn][]models.Booking

// BuildBoard distributes bookings over the four columns, preserving the
// input order within each column.
func BuildBoard(bookings []models.Booking) Board {
	board := make(Board, len(Columns))
	for _, col := range Columns {
		board[col] = []models.Booking{}
	}
	for _, b := range bookings {
		for _, col := range Columns {
			if columnStatus[col] == b.Status {
				board[col] = append(board[col], b)
				break
			}
		}
	}
	return board
}
