// Package taxonomy holds the static banking category taxonomy used for
// query classification. Names are snake_case throughout.
package taxonomy

import "encoding/json"

// Entry is one (department, service_type, request_category) triple.
type Entry struct {
	Department      string `json:"department"`
	ServiceType     string `json:"service_type"`
	RequestCategory string `json:"request_category"`
}

// Defaults applied when classification yields nothing more specific.
const (
	DefaultDepartment      = "operations"
	DefaultServiceType     = "general"
	DefaultRequestCategory = "general_banking_queries"
)

// Departments maps department -> service type -> request categories.
var Departments = map[string]map[string][]string{
	"operations": {
		"account_services": {
			"account_opening", "account_closure", "account_information",
			"balance_inquiry", "statement_request", "passbook_update",
		},
		"card_services": {
			"atm_issues", "credit_card_issues", "debit_card_issues",
			"card_activation", "card_blocking", "pin_generation",
		},
		"cheque_services": {
			"cheque_issuance", "cheque_renewal", "cheque_status",
			"cheque_stop_payment",
		},
		"digital_banking": {
			"internet_banking_registration", "mobile_banking_issues",
			"password_reset", "transaction_issues", "upi_related",
		},
		"general": {
			"general_banking_queries", "branch_information",
			"working_hours", "contact_information",
		},
	},
	"loans": {
		"home_loan": {
			"union_home", "union_mortgage", "union_rent", "union_construction",
		},
		"vehicle_loan": {
			"union_vehicle", "union_car", "union_two_wheeler",
		},
		"educational_loan": {
			"union_education_india_abroad_nri_student",
		},
		"personal_loan": {
			"union_personal_salaried_individual_other_than_government_employee",
			"union_personal_government_employee",
			"union_personal_pensioner",
		},
		"gold_loan": {
			"union_gold_loan_agriculture", "union_gold_loan_non_agriculture",
		},
		"msme_loan": {
			"union_msme_working_capital", "union_msme_term_loan",
			"union_msme_equipment_finance",
		},
	},
	"investments": {
		"deposits": {
			"fixed_deposit", "recurring_deposit", "tax_saving_deposit",
		},
		"mutual_funds": {
			"equity_funds", "debt_funds", "hybrid_funds", "sip_related",
		},
		"insurance": {
			"life_insurance", "health_insurance", "vehicle_insurance",
			"premium_payment",
		},
	},
	"complaints": {
		"service_issues": {
			"staff_behavior", "long_waiting_time", "incorrect_information",
		},
		"transaction_issues": {
			"failed_transaction", "wrong_amount", "duplicate_transaction",
			"unauthorized_transaction",
		},
		"digital_issues": {
			"website_problems", "app_problems", "login_issues",
		},
	},
	"fraud_security": {
		"fraud_reporting": {
			"account_fraud", "card_fraud", "phishing_attack", "identity_theft",
		},
		"security_concerns": {
			"suspicious_activity", "unauthorized_access", "data_privacy",
		},
	},
}

// All returns the flattened list of every taxonomy entry.
func All() []Entry {
	var out []Entry
	for dep, services := range Departments {
		for st, cats := range services {
			for _, rc := range cats {
				out = append(out, Entry{Department: dep, ServiceType: st, RequestCategory: rc})
			}
		}
	}
	return out
}

// HasDepartment reports whether dep is a known department.
func HasDepartment(dep string) bool {
	_, ok := Departments[dep]
	return ok
}

// PromptJSON renders the taxonomy as indented JSON for inclusion in
// classification prompts.
func PromptJSON() string {
	b, err := json.MarshalIndent(Departments, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
