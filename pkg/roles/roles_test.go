package roles

import "testing"

func TestClassifyKnownRoles(t *testing.T) {
	cases := []struct {
		department  string
		level       int
		branchLevel bool
	}{
		{"branch_teller", 1, true},
		{"branch_manager", 2, true},
		{"fraud_investigator", 3, false},
		{"compliance_officer", 4, false},
	}
	for _, c := range cases {
		ra := Classify(c.department, "text")
		if ra.RoleName != c.department {
			t.Fatalf("%s: role name = %s", c.department, ra.RoleName)
		}
		if ra.RoleLevel != c.level {
			t.Fatalf("%s: level = %d, want %d", c.department, ra.RoleLevel, c.level)
		}
		if ra.BranchLevel != c.branchLevel {
			t.Fatalf("%s: branch_level = %v, want %v", c.department, ra.BranchLevel, c.branchLevel)
		}
	}
}

func TestClassifyUnknownDepartmentDefaults(t *testing.T) {
	ra := Classify("operations", "video")
	if ra.RoleName != "customer_service_rep" || ra.RoleLevel != 1 || !ra.BranchLevel {
		t.Fatalf("unexpected default assignment: %+v", ra)
	}
	if ra.Department != "operations" {
		t.Fatalf("department not carried through: %s", ra.Department)
	}
}
