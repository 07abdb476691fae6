package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// GroupService manages groups and their membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group. The creator always becomes an admin
// member; any other listed members join with the member role.
func (s *GroupService) CreateGroup(ctx context.Context, callerID, name string, memberIDs []string) (*models.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("group name required")
	}

	members := []models.Member{{UserID: callerID, Role: models.RoleAdmin}}
	for _, id := range memberIDs {
		if id == callerID {
			continue
		}
		members = append(members, models.Member{UserID: id, Role: models.RoleMember})
	}

	group := &models.Group{
		Name:      name,
		Members:   members,
		CreatedBy: callerID,
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(group.Members))
	return group, nil
}

// GroupDetail is a group with resolved member identities.
type GroupDetail struct {
	Group    *models.Group
	Profiles map[string]ledger.Profile
}

// GetGroup retrieves a group with member display identities resolved.
// Only members may view a group.
func (s *GroupService) GetGroup(ctx context.Context, callerID, groupID string) (*GroupDetail, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	if !group.HasMember(callerID) {
		return nil, ErrNotAMember
	}

	profiles, err := resolveProfiles(ctx, s.store, group.MemberIDs())
	if err != nil {
		return nil, err
	}

	return &GroupDetail{Group: group, Profiles: profiles}, nil
}

// AddMember adds a user to a group. Only admins may add members.
func (s *GroupService) AddMember(ctx context.Context, callerID, groupID, userID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return ErrGroupNotFound
	}

	isAdmin := false
	for _, m := range group.Members {
		if m.UserID == callerID && m.Role == models.RoleAdmin {
			isAdmin = true
			break
		}
	}
	if !group.HasMember(callerID) {
		return ErrNotAMember
	}
	if !isAdmin {
		return fmt.Errorf("%w: only admins can add members", ErrNotAuthorized)
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrCounterpartNotFound
	}

	if err := s.store.AddMember(ctx, groupID, models.Member{UserID: userID, Role: models.RoleMember}); err != nil {
		return err
	}

	slog.Info("Member added", "group_id", groupID, "user_id", userID)
	return nil
}
