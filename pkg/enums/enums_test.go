package enums

import (
	"reflect"
	"testing"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	if err != nil || role != RoleAdmin {
		t.Fatalf("expected admin, got %v %v", role, err)
	}

	if _, err := ParseRole("superuser"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if _, err := ParseRole(""); err == nil {
		t.Fatalf("expected error for empty role")
	}
}

func TestRoleValues(t *testing.T) {
	if !reflect.DeepEqual(RoleValues(), []string{"admin", "user"}) {
		t.Fatalf("unexpected role values %v", RoleValues())
	}
}

func TestParseStockAction(t *testing.T) {
	action, err := ParseStockAction("remove")
	if err != nil || action != StockActionRemove {
		t.Fatalf("expected remove, got %v %v", action, err)
	}

	if _, err := ParseStockAction("adjust"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
