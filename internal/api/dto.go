package api

import "github.com/tallyhq/tally/internal/models"

// userResponse is the public shape of a user account.
type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

type splitResponse struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
	Paid   bool    `json:"paid"`
}

type expenseResponse struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       float64         `json:"amount"`
	Category     string          `json:"category,omitempty"`
	Date         int64           `json:"date"`
	PaidByUserID string          `json:"paidByUserId"`
	SplitType    string          `json:"splitType"`
	Splits       []splitResponse `json:"splits"`
	GroupID      string          `json:"groupId,omitempty"`
	CreatedBy    string          `json:"createdBy"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	splits := make([]splitResponse, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = splitResponse{UserID: s.UserID, Amount: s.Amount, Paid: s.Paid}
	}
	return expenseResponse{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount,
		Category:     e.Category,
		Date:         e.Date,
		PaidByUserID: e.PaidByUserID,
		SplitType:    e.SplitType,
		Splits:       splits,
		GroupID:      e.GroupID,
		CreatedBy:    e.CreatedBy,
	}
}

type settlementResponse struct {
	ID                string   `json:"id"`
	Amount            float64  `json:"amount"`
	Note              string   `json:"note,omitempty"`
	Date              int64    `json:"date"`
	PaidByUserID      string   `json:"paidByUserId"`
	ReceivedByUserID  string   `json:"receivedByUserId"`
	GroupID           string   `json:"groupId,omitempty"`
	RelatedExpenseIDs []string `json:"relatedExpenseIds,omitempty"`
	CreatedBy         string   `json:"createdBy"`
}

func toSettlementResponse(s *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:                s.ID,
		Amount:            s.Amount,
		Note:              s.Note,
		Date:              s.Date,
		PaidByUserID:      s.PaidByUserID,
		ReceivedByUserID:  s.ReceivedByUserID,
		GroupID:           s.GroupID,
		RelatedExpenseIDs: s.RelatedExpenseIDs,
		CreatedBy:         s.CreatedBy,
	}
}

type memberResponse struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

type groupResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Members   []memberResponse `json:"members"`
	CreatedBy string           `json:"createdBy"`
	CreatedAt int64            `json:"createdAt"`
}
