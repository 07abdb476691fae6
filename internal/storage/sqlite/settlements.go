package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/models"
)

// CreateSettlement persists a new settlement and its expense links.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.Date == 0 {
		settlement.Date = time.Now().Unix()
	}

	var note, groupID interface{}
	if settlement.Note != "" {
		note = settlement.Note
	}
	if settlement.GroupID != "" {
		groupID = settlement.GroupID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (id, amount, note, date, paid_by, received_by, group_id, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.Amount, note, settlement.Date,
		settlement.PaidByUserID, settlement.ReceivedByUserID, groupID, settlement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	for _, expenseID := range settlement.RelatedExpenseIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO settlement_expenses (settlement_id, expense_id) VALUES (?, ?)",
			settlement.ID, expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement expense link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListGroupSettlements retrieves all settlements for a group in insertion order.
func (s *SQLiteStore) ListGroupSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		"SELECT id, amount, note, date, paid_by, received_by, group_id, created_by FROM settlements WHERE group_id = ? ORDER BY rowid",
		groupID,
	)
}

// ListUngroupedSettlementsByUser retrieves all 1:1 settlements in which the
// user paid or received, in insertion order.
func (s *SQLiteStore) ListUngroupedSettlementsByUser(ctx context.Context, userID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		`SELECT id, amount, note, date, paid_by, received_by, group_id, created_by
		 FROM settlements
		 WHERE group_id IS NULL AND (paid_by = ? OR received_by = ?)
		 ORDER BY rowid`,
		userID, userID,
	)
}

func (s *SQLiteStore) listSettlements(ctx context.Context, query string, args ...interface{}) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var note, groupID sql.NullString
		if err := rows.Scan(&settlement.ID, &settlement.Amount, &note, &settlement.Date,
			&settlement.PaidByUserID, &settlement.ReceivedByUserID, &groupID, &settlement.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlement.Note = note.String
		settlement.GroupID = groupID.String
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	for _, settlement := range settlements {
		if err := s.loadRelatedExpenses(ctx, settlement); err != nil {
			return nil, err
		}
	}

	return settlements, nil
}

func (s *SQLiteStore) loadRelatedExpenses(ctx context.Context, settlement *models.Settlement) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id FROM settlement_expenses WHERE settlement_id = ? ORDER BY rowid",
		settlement.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get settlement expense links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		if err := rows.Scan(&expenseID); err != nil {
			return fmt.Errorf("failed to scan settlement expense link: %w", err)
		}
		settlement.RelatedExpenseIDs = append(settlement.RelatedExpenseIDs, expenseID)
	}
	return rows.Err()
}
