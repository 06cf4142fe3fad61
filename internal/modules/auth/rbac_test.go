package auth

import "testing"

func TestAdminHoldsEveryPermission(t *testing.T) {
	perms := []Permission{
		PermSubmitJobs, PermViewOwnJobs, PermManageJobs, PermDeleteJobs,
		PermManageCustomers, PermRequestQuotes, PermManageQuotes,
		PermManageInvoices, PermViewAnalytics, PermManageDeliveries,
		PermManagePayroll, PermManageSettings, PermManageShowcase,
		PermSendNotifications, PermManageUsers,
	}
	for _, p := range perms {
		if !Can(RoleAdmin, p) {
			t.Fatalf("expected admin to hold %q", p)
		}
	}
}

func TestStaffCannotTouchAdminOnlyAreas(t *testing.T) {
	for _, p := range []Permission{PermManagePayroll, PermManageSettings, PermManageUsers, PermDeleteJobs} {
		if Can(RoleStaff, p) {
			t.Fatalf("expected staff to lack %q", p)
		}
	}
	if !Can(RoleStaff, PermManageJobs) {
		t.Fatalf("expected staff to manage jobs")
	}
}

func TestCustomerIsReadMostly(t *testing.T) {
	if !Can(RoleCustomer, PermSubmitJobs) || !Can(RoleCustomer, PermViewOwnJobs) {
		t.Fatalf("expected customers to submit and view their jobs")
	}
	for _, p := range []Permission{PermManageJobs, PermManageInvoices, PermViewAnalytics, PermSendNotifications} {
		if Can(RoleCustomer, p) {
			t.Fatalf("expected customer to lack %q", p)
		}
	}
}

func TestUnknownRoleHoldsNothing(t *testing.T) {
	if Can(Role("superuser"), PermManageJobs) {
		t.Fatalf("unknown role must hold no permissions")
	}
}

func TestParseRole(t *testing.T) {
	if r := ParseRole("staff"); r != RoleStaff {
		t.Fatalf("ParseRole(staff) = %q", r)
	}
	if r := ParseRole("root"); r != "" {
		t.Fatalf("expected empty role for unknown string, got %q", r)
	}
	if Can(ParseRole("root"), PermSubmitJobs) {
		t.Fatalf("empty role must hold nothing")
	}
}
