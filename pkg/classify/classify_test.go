package classify

import (
	"context"
	"testing"
)

func TestFallbackKeywordGroups(t *testing.T) {
	cases := []struct {
		text       string
		department string
		service    string
	}{
		{"I want to open a savings account", "operations", "account_services"},
		{"my home loan emi is too high", "loans", "home_loan"},
		{"need a new checkbook", "operations", "cheque_services"},
		{"atm swallowed my card", "operations", "card_services"},
		{"I want to start a sip in a mutual fund", "investments", "mutual_funds"},
		{"complaint about rude staff", "complaints", "service_issues"},
		{"someone is phishing my email", "fraud_security", "fraud_reporting"},
		{"hello there", "operations", "general"},
	}
	for _, c := range cases {
		cls := Fallback(c.text)
		if cls.Department != c.department {
			t.Fatalf("%q: department = %s, want %s", c.text, cls.Department, c.department)
		}
		if cls.ServiceType != c.service {
			t.Fatalf("%q: service_type = %s, want %s", c.text, cls.ServiceType, c.service)
		}
		if cls.RequestCategory == "" {
			t.Fatalf("%q: empty request_category", c.text)
		}
	}
}

func TestFallbackAccountOpening(t *testing.T) {
	cls := Fallback("please open a current account for me")
	if cls.RequestCategory != "account_opening" {
		t.Fatalf("request_category = %s, want account_opening", cls.RequestCategory)
	}
}

func TestParseClassification(t *testing.T) {
	out := "department: Loans\nservice_type: home loan\nrequest_category: union_home"
	cls := parseClassification(out)
	if cls.Department != "loans" {
		t.Fatalf("department = %s", cls.Department)
	}
	if cls.ServiceType != "home_loan" {
		t.Fatalf("service_type = %s", cls.ServiceType)
	}
	if cls.RequestCategory != "union_home" {
		t.Fatalf("request_category = %s", cls.RequestCategory)
	}
}

func TestParseClassificationDefaults(t *testing.T) {
	cls := parseClassification("department: operations\nrequest_category: none")
	if cls.ServiceType != "general" {
		t.Fatalf("service_type = %s", cls.ServiceType)
	}
	if cls.RequestCategory != "general_banking_queries" {
		t.Fatalf("request_category = %s", cls.RequestCategory)
	}
}

func TestClassifyWithoutModelUsesFallback(t *testing.T) {
	c := New(nil)
	cls := c.Classify(context.Background(), "I want a gold loan")
	if cls.Department != "loans" || cls.ServiceType != "gold_loan" {
		t.Fatalf("unexpected classification: %+v", cls)
	}
	if cls.DetectedLanguage != "unknown" {
		t.Fatalf("detected_language = %s, want unknown", cls.DetectedLanguage)
	}
}

func TestClassifyEmptyText(t *testing.T) {
	c := New(nil)
	cls := c.Classify(context.Background(), "   ")
	if cls.Department != "operations" || cls.DetectedLanguage != "en" {
		t.Fatalf("unexpected classification for empty text: %+v", cls)
	}
}
