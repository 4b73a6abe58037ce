package query

import (
	"github.com/spec-kit/support-desk/pkg/dashboard"
)

// Ticket listing columns referenced by composed predicates.
const (
	ColSubject       = "subject"
	ColCustomerName  = "customer_name"
	ColCustomerEmail = "customer_email"
	ColStatus        = "status"
	ColPriority      = "priority"
	ColChannel       = "channel"
	ColAssigneeID    = "assignee_id"
)

// FromFilters translates the dashboard filter state into predicates, in
// fixed precedence: free-text search first as an OR group over subject,
// customer name and customer email; then one equality constraint per
// categorical filter not set to "all". The assignee filter only constrains
// for "unassigned" (assignee reference absent); a concrete agent id is
// accepted but applies no constraint.
func FromFilters(f dashboard.FilterState) []Predicate {
	var predicates []Predicate

	if f.Search != "" {
		predicates = append(predicates, OrGroup{Predicates: []Predicate{
			Contains{Column: ColSubject, Term: f.Search},
			Contains{Column: ColCustomerName, Term: f.Search},
			Contains{Column: ColCustomerEmail, Term: f.Search},
		}})
	}
	if f.Status != dashboard.FilterAll {
		predicates = append(predicates, Equals{Column: ColStatus, Value: f.Status})
	}
	if f.Priority != dashboard.FilterAll {
		predicates = append(predicates, Equals{Column: ColPriority, Value: f.Priority})
	}
	if f.Channel != dashboard.FilterAll {
		predicates = append(predicates, Equals{Column: ColChannel, Value: f.Channel})
	}
	if f.Assignee == dashboard.AssigneeUnassigned {
		predicates = append(predicates, IsNull{Column: ColAssigneeID})
	}

	return predicates
}
