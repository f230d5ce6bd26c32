package enums

import "testing"

func TestParseSystemRole(t *testing.T) {
	role, err := ParseSystemRole("leader")
	if err != nil {
		t.Fatalf("parse leader: %v", err)
	}
	if role != SystemRoleLeader {
		t.Fatalf("unexpected role %s", role)
	}
	if _, err := ParseSystemRole("pastor"); err == nil {
		t.Fatal("expected unknown role to fail")
	}
}

func TestAssignmentStatusValidity(t *testing.T) {
	for _, status := range []AssignmentStatus{AssignmentStatusPending, AssignmentStatusConfirmed, AssignmentStatusDeclined} {
		if !status.IsValid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if AssignmentStatus("tentative").IsValid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestParseScheduleType(t *testing.T) {
	typ, err := ParseScheduleType("event")
	if err != nil {
		t.Fatalf("parse event: %v", err)
	}
	if typ != ScheduleTypeEvent {
		t.Fatalf("unexpected type %s", typ)
	}
	if _, err := ParseScheduleType("meeting"); err == nil {
		t.Fatal("expected unknown type to fail")
	}
}

func TestParseMembershipStatus(t *testing.T) {
	status, err := ParseMembershipStatus("active")
	if err != nil {
		t.Fatalf("parse active: %v", err)
	}
	if status != MembershipStatusActive {
		t.Fatalf("unexpected status %s", status)
	}
	if _, err := ParseMembershipStatus("ghost"); err == nil {
		t.Fatal("expected unknown status to fail")
	}
}
