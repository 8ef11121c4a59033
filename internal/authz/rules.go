package authz

import (
	apierrors "github.com/yukikurage/tracker-api/internal/errors"
)

type check int

const (
	allowAll check = iota
	denyAll
	member
	manager
	owner
	ownerOrMember
	self
)

type ruleKey struct {
	res Resource
	act Action
}

type rule struct {
	check   check
	code    string
	message string
	// bindsAdmin marks rules that protect data rather than privilege.
	bindsAdmin bool
}

var rules = map[ruleKey]rule{
	{ResourceProject, ActionCreate}: {denyAll, apierrors.ErrCodeUnauthorized, "Only admins can create projects", false},
	{ResourceProject, ActionList}:   {allowAll, "", "", false},
	{ResourceProject, ActionRead}:   {member, apierrors.ErrCodeProjectAccessDenied, "You are not a member of this project", false},
	{ResourceProject, ActionUpdate}: {manager, apierrors.ErrCodeUnauthorized, "Only project managers can update the project", false},

	{ResourceMember, ActionCreate}: {manager, apierrors.ErrCodeUnauthorized, "Only project managers can add members", false},
	{ResourceMember, ActionDelete}: {manager, apierrors.ErrCodeUnauthorized, "Only project managers can remove members", false},
	{ResourceMember, ActionList}:   {member, apierrors.ErrCodeProjectAccessDenied, "You are not a member of this project", false},

	{ResourceTask, ActionCreate}:  {member, apierrors.ErrCodeTaskPermissionDenied, "You are not a member of this project", false},
	{ResourceTask, ActionList}:    {allowAll, "", "", false},
	{ResourceTask, ActionRead}:    {member, apierrors.ErrCodeTaskAccessDenied, "You do not have access to this task", false},
	{ResourceTask, ActionUpdate}:  {member, apierrors.ErrCodeTaskAccessDenied, "You do not have access to this task", false},
	{ResourceTask, ActionSuggest}: {member, apierrors.ErrCodeProjectAccessDenied, "You are not a member of this project", false},

	{ResourceLogTime, ActionCreate}: {member, apierrors.ErrCodeTaskAccessDenied, "You are not a member of the task's project", true},
	{ResourceLogTime, ActionList}:   {member, apierrors.ErrCodeUnauthorized, "You are not a member of this project", false},
	{ResourceLogTime, ActionRead}:   {ownerOrMember, apierrors.ErrCodeAccessDenied, "You do not have access to this time log", false},
	{ResourceLogTime, ActionUpdate}: {owner, apierrors.ErrCodeAccessDenied, "Only the author can update this time log", false},
	{ResourceLogTime, ActionDelete}: {owner, apierrors.ErrCodeAccessDenied, "Only the author can delete this time log", false},

	{ResourceUser, ActionCreate}: {denyAll, apierrors.ErrCodeUnauthorized, "Only admins can create users", false},
	{ResourceUser, ActionUpdate}: {self, apierrors.ErrCodeUnauthorized, "You can only update your own account", false},
	{ResourceUser, ActionDelete}: {self, apierrors.ErrCodeUnauthorized, "You can only delete your own account", false},

	{ResourceTargetVersion, ActionCreate}: {manager, apierrors.ErrCodeUnauthorized, "Only project managers can add versions", false},
	{ResourceTargetVersion, ActionList}:   {member, apierrors.ErrCodeProjectAccessDenied, "You are not a member of this project", false},
	{ResourceTag, ActionCreate}:           {manager, apierrors.ErrCodeUnauthorized, "Only project managers can add tags", false},
	{ResourceTag, ActionList}:             {member, apierrors.ErrCodeProjectAccessDenied, "You are not a member of this project", false},
}

// Scope restricts a listing. All means no restriction. Otherwise only rows
// tied to UserID are visible (memberships for projects, assignee for tasks,
// author for time logs).
type Scope struct {
	All    bool
	UserID uint64
}

// ListScope returns the visibility of a collection listing for id.
func ListScope(id Identity) Scope {
	if id.IsAdmin() {
		return Scope{All: true}
	}
	return Scope{UserID: id.UserID}
}
