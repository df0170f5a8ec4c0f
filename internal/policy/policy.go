// Package policy holds the role/action decision table. Every service asks
// this engine before touching the store, so the whole authorization surface
// is auditable in one place instead of scattered handler conditionals.
package policy

import "github.com/aidesk/ticket-backend/internal/domain"

// Action enumerates the operations subject to role checks.
type Action string

const (
	ActionTicketRead   Action = "ticket:read"
	ActionTicketWrite  Action = "ticket:write"
	ActionTicketList   Action = "ticket:list"
	ActionCommentRead  Action = "comment:read"
	ActionCommentWrite Action = "comment:write"
	ActionAuditRead    Action = "audit:read"
	ActionUserList     Action = "user:list"
)

// Decision is the outcome of a policy check. When Allow is false the caller
// must reject the operation outright rather than return an empty result.
type Decision struct {
	Allow bool

	// OwnerOnly restricts reads to resources created by the actor.
	OwnerOnly bool

	// PublicCommentsOnly filters comment reads to PUBLIC entries.
	PublicCommentsOnly bool

	// ForcePublicComment coerces comment writes to PUBLIC regardless of
	// the requested type.
	ForcePublicComment bool

	// OwnTicketsOnly constrains ticket listings to created_by = actor.
	OwnTicketsOnly bool

	// DefaultAssigneeSelf applies assigned_to = actor to ticket listings
	// when the caller supplied no explicit status or assignee filter.
	DefaultAssigneeSelf bool
}

var deny = Decision{}

// table is the full authorization matrix. Unknown roles fall through to
// deny-all.
var table = map[domain.Role]map[Action]Decision{
	domain.RoleUser: {
		ActionTicketRead:   {Allow: true, OwnerOnly: true},
		ActionTicketList:   {Allow: true, OwnTicketsOnly: true},
		ActionCommentRead:  {Allow: true, PublicCommentsOnly: true},
		ActionCommentWrite: {Allow: true, ForcePublicComment: true},
	},
	domain.RoleAssignee: {
		ActionTicketRead:   {Allow: true},
		ActionTicketWrite:  {Allow: true},
		ActionTicketList:   {Allow: true, DefaultAssigneeSelf: true},
		ActionCommentRead:  {Allow: true},
		ActionCommentWrite: {Allow: true},
		ActionAuditRead:    {Allow: true},
		ActionUserList:     {Allow: true},
	},
	domain.RoleAdmin: {
		ActionTicketRead:   {Allow: true},
		ActionTicketWrite:  {Allow: true},
		ActionTicketList:   {Allow: true},
		ActionCommentRead:  {Allow: true},
		ActionCommentWrite: {Allow: true},
		ActionAuditRead:    {Allow: true},
		ActionUserList:     {Allow: true},
	},
}

// Engine answers allow/deny plus the applicable visibility rule for a
// role/action pair. It is pure: no I/O, no state.
type Engine struct{}

// NewEngine returns the policy engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Decide looks up the decision for the given role and action.
func (e *Engine) Decide(role domain.Role, action Action) Decision {
	perms, ok := table[role]
	if !ok {
		return deny
	}
	decision, ok := perms[action]
	if !ok {
		return deny
	}
	return decision
}

// TicketVisibility is the implicit listing constraint derived from the
// actor's role, applied before any caller-supplied filter.
type TicketVisibility struct {
	CreatedBy  *string
	AssignedTo *string
}

// TicketListVisibility resolves the implicit filter for ticket listings.
// An explicit status or assignee filter from a privileged caller overrides
// the assignee default-self rule.
func (e *Engine) TicketListVisibility(role domain.Role, actorID string, hasExplicitFilter bool) (TicketVisibility, bool) {
	decision := e.Decide(role, ActionTicketList)
	if !decision.Allow {
		return TicketVisibility{}, false
	}
	if decision.OwnTicketsOnly {
		return TicketVisibility{CreatedBy: &actorID}, true
	}
	if decision.DefaultAssigneeSelf && !hasExplicitFilter {
		return TicketVisibility{AssignedTo: &actorID}, true
	}
	return TicketVisibility{}, true
}
