package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// CreateSettlementRequest carries the caller's input for recording a payment.
type CreateSettlementRequest struct {
	Amount            float64
	Note              string
	PaidByUserID      string
	ReceivedByUserID  string
	GroupID           string
	RelatedExpenseIDs []string
}

// SettlementService records settlements. All validation happens here, on the
// write path; the read-side ledger assumes every persisted settlement was
// valid when created.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// CreateSettlement validates and persists a new settlement. Violations are
// rejected with ErrInvalidSettlement and nothing is persisted.
func (s *SettlementService) CreateSettlement(ctx context.Context, callerID string, req CreateSettlementRequest) (*models.Settlement, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidSettlement)
	}
	if req.PaidByUserID == "" {
		req.PaidByUserID = callerID
	}
	if req.PaidByUserID == req.ReceivedByUserID {
		return nil, fmt.Errorf("%w: payer and receiver must differ", ErrInvalidSettlement)
	}
	if req.ReceivedByUserID == "" {
		return nil, fmt.Errorf("%w: receiver required", ErrInvalidSettlement)
	}

	if req.GroupID != "" {
		group, err := s.store.GetGroup(ctx, req.GroupID)
		if err != nil {
			return nil, ErrGroupNotFound
		}
		if !group.HasMember(callerID) {
			return nil, ErrNotAMember
		}
		if !group.HasMember(req.PaidByUserID) || !group.HasMember(req.ReceivedByUserID) {
			return nil, fmt.Errorf("%w: both parties must be group members", ErrInvalidSettlement)
		}
	}

	settlement := &models.Settlement{
		Amount:            req.Amount,
		Note:              req.Note,
		PaidByUserID:      req.PaidByUserID,
		ReceivedByUserID:  req.ReceivedByUserID,
		GroupID:           req.GroupID,
		RelatedExpenseIDs: req.RelatedExpenseIDs,
		CreatedBy:         callerID,
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("CreateSettlement failed", "error", err)
		return nil, err
	}

	slog.Info("Settlement created",
		"settlement_id", settlement.ID,
		"amount", settlement.Amount,
		"paid_by", settlement.PaidByUserID,
		"received_by", settlement.ReceivedByUserID,
		"group_id", settlement.GroupID,
	)
	return settlement, nil
}

// ListSettlementsWithUser returns the caller's 1:1 settlements involving the
// given counterpart, in insertion order.
func (s *SettlementService) ListSettlementsWithUser(ctx context.Context, callerID, counterpartID string) ([]*models.Settlement, error) {
	settlements, err := s.store.ListUngroupedSettlementsByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	var out []*models.Settlement
	for _, st := range settlements {
		if st.PaidByUserID == counterpartID || st.ReceivedByUserID == counterpartID {
			out = append(out, st)
		}
	}
	return out, nil
}

// ListGroupSettlements returns a group's settlements in insertion order.
func (s *SettlementService) ListGroupSettlements(ctx context.Context, callerID, groupID string) ([]*models.Settlement, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	if !group.HasMember(callerID) {
		return nil, ErrNotAMember
	}
	return s.store.ListGroupSettlements(ctx, groupID)
}
