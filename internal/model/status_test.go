package model

import "testing"

func TestParseItemStatus(t *testing.T) {
	cases := []struct {
		in   string
		want ItemStatus
		ok   bool
	}{
		{"lost", StatusLost, true},
		{"FOUND", StatusFound, true},
		{"  claimed ", StatusClaimed, true},
		{"returned", StatusReturned, true},
		{"", "", false},
		{"stolen", "", false},
	}
	for _, c := range cases {
		got, ok := ParseItemStatus(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseItemStatus(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseClaimStatus(t *testing.T) {
	cases := []struct {
		in   string
		want ClaimStatus
		ok   bool
	}{
		{"pending", ClaimPending, true},
		{"Approved", ClaimApproved, true},
		{"rejected", ClaimRejected, true},
		{"denied", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseClaimStatus(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseClaimStatus(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestClaimTransitions(t *testing.T) {
	if !ClaimPending.CanTransition(ClaimApproved) {
		t.Error("pending -> approved should be allowed")
	}
	if !ClaimPending.CanTransition(ClaimRejected) {
		t.Error("pending -> rejected should be allowed")
	}
	for _, from := range []ClaimStatus{ClaimApproved, ClaimRejected} {
		for _, to := range []ClaimStatus{ClaimPending, ClaimApproved, ClaimRejected} {
			if from.CanTransition(to) {
				t.Errorf("%s -> %s should not be in the nominal lifecycle", from, to)
			}
		}
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleStudent) || !ValidRole(RoleAdmin) {
		t.Error("student and admin must be valid roles")
	}
	if ValidRole("superuser") || ValidRole("") {
		t.Error("unknown roles must be rejected")
	}
}
