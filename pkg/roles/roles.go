// Package roles maps a classified department onto the staff role that
// handles the ticket, with an escalation level from 1 (branch teller
// tier) to 4 (compliance and legal).
package roles

import "triagedesk/pkg/models"

var roleLevels = map[string]struct {
	level       int
	branchLevel bool
}{
	// level 1: front-line branch staff
	"customer_service_rep": {1, true},
	"call_center_agent":    {1, true},
	"loan_officer":         {1, true},
	"branch_teller":        {1, true},
	// level 2: branch management
	"branch_manager":    {2, true},
	"technical_support": {2, true},
	"complaint_officer": {2, true},
	"loan_manager":      {2, true},
	// level 3: regional specialists
	"regional_operations_manager": {3, false},
	"fraud_investigator":          {3, false},
	"it_manager":                  {3, false},
	"credit_risk_analyst":         {3, false},
	"regional_loan_head":          {3, false},
	// level 4: compliance and legal
	"compliance_officer":       {4, false},
	"risk_management":          {4, false},
	"legal_team":               {4, false},
	"risk_management_head":     {4, false},
	"loans_compliance_officer": {4, false},
}

// Classify returns the role assignment for a department. Unknown
// departments fall back to a level-1 customer service rep at the branch.
func Classify(department, queryType string) models.RoleAssignment {
	_ = queryType // reserved for type-specific routing
	ra := models.RoleAssignment{
		RoleName:    "customer_service_rep",
		RoleLevel:   1,
		Department:  department,
		BranchLevel: true,
	}
	if info, ok := roleLevels[department]; ok {
		ra.RoleName = department
		ra.RoleLevel = info.level
		ra.BranchLevel = info.branchLevel
	}
	return ra
}
