package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/service"
)

// -- auth --

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := a.authSvc.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{User: toUserResponse(user), Token: token})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := a.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{User: toUserResponse(user), Token: token})
}

// -- expenses --

type splitInputRequest struct {
	UserID string  `json:"userId"`
	Value  float64 `json:"value"`
}

type createExpenseRequest struct {
	Description  string              `json:"description"`
	Amount       float64             `json:"amount"`
	Category     string              `json:"category"`
	PaidByUserID string              `json:"paidByUserId"`
	SplitType    string              `json:"splitType"`
	Participants []splitInputRequest `json:"participants"`
	GroupID      string              `json:"groupId"`
}

func (a *API) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	participants := make([]ledger.SplitInput, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = ledger.SplitInput{UserID: p.UserID, Value: p.Value}
	}

	expense, err := a.expenses.CreateExpense(r.Context(), middleware.GetUserID(r.Context()), service.CreateExpenseRequest{
		Description:  req.Description,
		Amount:       req.Amount,
		Category:     req.Category,
		PaidByUserID: req.PaidByUserID,
		SplitType:    req.SplitType,
		Participants: participants,
		GroupID:      req.GroupID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (a *API) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	counterpartID := r.URL.Query().Get("user")
	if counterpartID == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "user query parameter required"})
		return
	}

	expenses, err := a.expenses.ListExpensesWithUser(r.Context(), middleware.GetUserID(r.Context()), counterpartID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	respondJSON(w, http.StatusOK, out)
}

// -- settlements --

type createSettlementRequest struct {
	Amount            float64  `json:"amount"`
	Note              string   `json:"note"`
	PaidByUserID      string   `json:"paidByUserId"`
	ReceivedByUserID  string   `json:"receivedByUserId"`
	GroupID           string   `json:"groupId"`
	RelatedExpenseIDs []string `json:"relatedExpenseIds"`
}

func (a *API) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req createSettlementRequest
	if !decodeBody(w, r, &req) {
		return
	}

	settlement, err := a.settlements.CreateSettlement(r.Context(), middleware.GetUserID(r.Context()), service.CreateSettlementRequest{
		Amount:            req.Amount,
		Note:              req.Note,
		PaidByUserID:      req.PaidByUserID,
		ReceivedByUserID:  req.ReceivedByUserID,
		GroupID:           req.GroupID,
		RelatedExpenseIDs: req.RelatedExpenseIDs,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toSettlementResponse(settlement))
}

func (a *API) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())

	var (
		settlements []*models.Settlement
		err         error
	)
	if groupID := r.URL.Query().Get("group"); groupID != "" {
		settlements, err = a.settlements.ListGroupSettlements(r.Context(), callerID, groupID)
	} else if counterpartID := r.URL.Query().Get("user"); counterpartID != "" {
		settlements, err = a.settlements.ListSettlementsWithUser(r.Context(), callerID, counterpartID)
	} else {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "user or group query parameter required"})
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]settlementResponse, len(settlements))
	for i, s := range settlements {
		out[i] = toSettlementResponse(s)
	}
	respondJSON(w, http.StatusOK, out)
}

// -- groups --

type createGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

func (a *API) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := a.groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.MemberIDs)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := groupResponse{
		ID:        group.ID,
		Name:      group.Name,
		CreatedBy: group.CreatedBy,
		CreatedAt: group.CreatedAt,
	}
	for _, m := range group.Members {
		resp.Members = append(resp.Members, memberResponse{UserID: m.UserID, Role: m.Role, JoinedAt: m.JoinedAt})
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (a *API) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["group_id"]

	detail, err := a.groups.GetGroup(r.Context(), middleware.GetUserID(r.Context()), groupID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := groupResponse{
		ID:        detail.Group.ID,
		Name:      detail.Group.Name,
		CreatedBy: detail.Group.CreatedBy,
		CreatedAt: detail.Group.CreatedAt,
	}
	for _, m := range detail.Group.Members {
		p := detail.Profiles[m.UserID]
		resp.Members = append(resp.Members, memberResponse{
			UserID:   m.UserID,
			Name:     p.Name,
			ImageURL: p.ImageURL,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

type addMemberRequest struct {
	UserID string `json:"userId"`
}

func (a *API) handleAddMember(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["group_id"]

	var req addMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := a.groups.AddMember(r.Context(), middleware.GetUserID(r.Context()), groupID, req.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// -- balances --

func (a *API) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	view, err := a.balances.GetBalances(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (a *API) handleGetPairBalance(w http.ResponseWriter, r *http.Request) {
	counterpartID := mux.Vars(r)["user_id"]

	view, err := a.balances.GetPairBalance(r.Context(), middleware.GetUserID(r.Context()), counterpartID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (a *API) handleGetGroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["group_id"]

	balances, err := a.balances.GetGroupBalances(r.Context(), middleware.GetUserID(r.Context()), groupID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balances)
}
