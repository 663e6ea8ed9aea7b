package classify

import (
	"strings"

	"triagedesk/pkg/models"
	"triagedesk/pkg/taxonomy"
)

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Fallback classifies text by keyword groups. It is used when the model
// API is not configured or fails, and in tests.
func Fallback(text string) models.Classification {
	cls := models.Classification{
		Department:      taxonomy.DefaultDepartment,
		ServiceType:     taxonomy.DefaultServiceType,
		RequestCategory: taxonomy.DefaultRequestCategory,
	}
	text = strings.ToLower(text)

	switch {
	case containsAny(text, "loan", "credit", "borrow", "finance", "mortgage", "emi"):
		cls.Department = "loans"
		switch {
		case containsAny(text, "home", "house", "property", "flat", "apartment"):
			cls.ServiceType = "home_loan"
			cls.RequestCategory = "union_home"
		case containsAny(text, "car", "vehicle", "auto", "bike", "motorcycle"):
			cls.ServiceType = "vehicle_loan"
			cls.RequestCategory = "union_vehicle"
		case containsAny(text, "education", "college", "university", "school", "study"):
			cls.ServiceType = "educational_loan"
			cls.RequestCategory = "union_education_india_abroad_nri_student"
		case containsAny(text, "gold", "jewelry"):
			cls.ServiceType = "gold_loan"
			cls.RequestCategory = "union_gold_loan_agriculture"
		default:
			cls.ServiceType = "personal_loan"
			cls.RequestCategory = "union_personal_salaried_individual_other_than_government_employee"
		}

	case containsAny(text, "account", "savings", "current", "deposit", "withdraw"):
		cls.Department = "operations"
		cls.ServiceType = "account_services"
		switch {
		case strings.Contains(text, "open"):
			cls.RequestCategory = "account_opening"
		case containsAny(text, "close", "terminate"):
			cls.RequestCategory = "account_closure"
		default:
			cls.RequestCategory = "account_information"
		}

	case containsAny(text, "card", "atm", "debit"):
		cls.Department = "operations"
		cls.ServiceType = "card_services"
		switch {
		case strings.Contains(text, "atm"):
			cls.RequestCategory = "atm_issues"
		case strings.Contains(text, "credit"):
			cls.RequestCategory = "credit_card_issues"
		case strings.Contains(text, "debit"):
			cls.RequestCategory = "debit_card_issues"
		case containsAny(text, "activate", "activation"):
			cls.RequestCategory = "card_activation"
		case containsAny(text, "block", "lost", "stolen"):
			cls.RequestCategory = "card_blocking"
		default:
			cls.RequestCategory = "atm_issues"
		}

	case containsAny(text, "cheque", "check", "checkbook"):
		cls.Department = "operations"
		cls.ServiceType = "cheque_services"
		if containsAny(text, "new", "renew", "reorder") {
			cls.RequestCategory = "cheque_renewal"
		} else {
			cls.RequestCategory = "cheque_issuance"
		}

	case containsAny(text, "invest", "mutual fund", "insurance", "fd", "fixed deposit"):
		cls.Department = "investments"
		switch {
		case containsAny(text, "fd", "fixed deposit", "recurring"):
			cls.ServiceType = "deposits"
			cls.RequestCategory = "fixed_deposit"
		case containsAny(text, "mutual fund", "sip"):
			cls.ServiceType = "mutual_funds"
			cls.RequestCategory = "equity_funds"
		default:
			cls.ServiceType = "insurance"
			cls.RequestCategory = "life_insurance"
		}

	case containsAny(text, "complaint", "issue", "problem", "unhappy", "dissatisfied"):
		cls.Department = "complaints"
		switch {
		case containsAny(text, "staff", "behavior", "rude", "service"):
			cls.ServiceType = "service_issues"
			cls.RequestCategory = "staff_behavior"
		case containsAny(text, "transaction", "payment", "transfer"):
			cls.ServiceType = "transaction_issues"
			cls.RequestCategory = "failed_transaction"
		case containsAny(text, "website", "app", "online", "mobile"):
			cls.ServiceType = "digital_issues"
			cls.RequestCategory = "app_problems"
		default:
			cls.ServiceType = "service_issues"
			cls.RequestCategory = "incorrect_information"
		}

	case containsAny(text, "fraud", "scam", "hack", "unauthorized", "suspicious"):
		cls.Department = "fraud_security"
		switch {
		case containsAny(text, "account", "transaction"):
			cls.ServiceType = "fraud_reporting"
			cls.RequestCategory = "account_fraud"
		case containsAny(text, "card", "credit", "debit"):
			cls.ServiceType = "fraud_reporting"
			cls.RequestCategory = "card_fraud"
		case containsAny(text, "phishing", "email", "message", "call"):
			cls.ServiceType = "fraud_reporting"
			cls.RequestCategory = "phishing_attack"
		default:
			cls.ServiceType = "security_concerns"
			cls.RequestCategory = "suspicious_activity"
		}
	}

	return cls
}
