// Package authz decides whether an authenticated identity may perform an
// action on a resource. Every service asks the Authorizer; no service compares
// roles on its own.
//
// Admins are allowed everything that is a matter of privilege. Checks that
// protect data consistency (a task assignee must belong to the task's
// project, a member is added at most once, a time log author must belong to
// the project) hold for admins too.
package authz

import (
	"context"
	"fmt"

	apierrors "github.com/yukikurage/tracker-api/internal/errors"
	"github.com/yukikurage/tracker-api/internal/models"
)

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID uint64
	Role   models.Role
	Token  string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

type Resource string

const (
	ResourceProject       Resource = "project"
	ResourceMember        Resource = "project_member"
	ResourceTask          Resource = "task"
	ResourceLogTime       Resource = "log_time"
	ResourceUser          Resource = "user"
	ResourceTargetVersion Resource = "target_version"
	ResourceTag           Resource = "tag"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionList    Action = "list"
	ActionSuggest Action = "suggest"
)

// Target carries the ownership data a rule needs. ProjectID is the governing
// project resolved through the ownership chain. OwnerID is the author of a
// time log or the id of a user record.
type Target struct {
	ProjectID uint64
	OwnerID   uint64
}

// Denial is returned when a rule rejects the request. Code is the machine
// readable reason sent to the client.
type Denial struct {
	Code    string
	Message string
}

func (d *Denial) Error() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

func deny(code, message string) *Denial {
	return &Denial{Code: code, Message: message}
}

// MembershipLookup returns the caller's role in a project. ok is false when
// no membership row exists.
type MembershipLookup interface {
	MemberRole(ctx context.Context, projectID, userID uint64) (role models.MemberRole, ok bool, err error)
}

type Authorizer struct {
	members MembershipLookup
}

func New(members MembershipLookup) *Authorizer {
	return &Authorizer{members: members}
}

// Authorize returns nil when id may perform act on res. A rejected request
// yields a *Denial; any other error comes from the membership lookup.
func (a *Authorizer) Authorize(ctx context.Context, id Identity, res Resource, act Action, t Target) error {
	r, ok := rules[ruleKey{res, act}]
	if !ok {
		return fmt.Errorf("authz: no rule for %s/%s", res, act)
	}
	if id.IsAdmin() && !r.bindsAdmin {
		return nil
	}

	allowed, err := a.check(ctx, r.check, id, t)
	if err != nil {
		return err
	}
	if !allowed {
		return deny(r.code, r.message)
	}
	return nil
}

func (a *Authorizer) check(ctx context.Context, c check, id Identity, t Target) (bool, error) {
	switch c {
	case allowAll:
		return true, nil
	case denyAll:
		return false, nil
	case self, owner:
		return t.OwnerID == id.UserID, nil
	case member, manager, ownerOrMember:
		if c == ownerOrMember && t.OwnerID == id.UserID {
			return true, nil
		}
		role, ok, err := a.members.MemberRole(ctx, t.ProjectID, id.UserID)
		if err != nil {
			return false, fmt.Errorf("authz: lookup membership: %w", err)
		}
		if c == manager {
			return ok && role == models.MemberRoleManager, nil
		}
		return ok, nil
	}
	return false, fmt.Errorf("authz: unknown check %d", c)
}

// EnsureAssignable fails with TASK_ASSIGNEE_NOT_FOUND unless userID is a
// member of projectID.
func (a *Authorizer) EnsureAssignable(ctx context.Context, projectID, userID uint64) error {
	_, ok, err := a.members.MemberRole(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("authz: lookup assignee membership: %w", err)
	}
	if !ok {
		return deny(apierrors.ErrCodeTaskAssigneeNotFound, "Assignee is not a member of the project")
	}
	return nil
}

// EnsureNotMember fails with ALREADY_ADD when userID already belongs to
// projectID.
func (a *Authorizer) EnsureNotMember(ctx context.Context, projectID, userID uint64) error {
	_, ok, err := a.members.MemberRole(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("authz: lookup membership: %w", err)
	}
	if ok {
		return AlreadyAdded()
	}
	return nil
}

// AlreadyAdded is the denial for a duplicate membership. It is also used when
// the store rejects a concurrent duplicate insert.
func AlreadyAdded() *Denial {
	return deny(apierrors.ErrCodeAlreadyAdded, "User is already a member of this project")
}
