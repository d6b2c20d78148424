package model

import (
	"testing"
)

func TestSigningOrderValue(t *testing.T) {
	tests := []struct {
		name  string
		order SigningOrder
		want  string
	}{
		{name: "nil order stores empty array", order: nil, want: "[]"},
		{name: "ids keep their order", order: SigningOrder{"a", "b"}, want: `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.order.Value()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSigningOrderScan(t *testing.T) {
	var so SigningOrder
	if err := so.Scan([]byte(`["b","a"]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(so) != 2 || so[0] != "b" || so[1] != "a" {
		t.Errorf("Scan() = %v", so)
	}

	if err := so.Scan(nil); err != nil {
		t.Fatalf("unexpected error scanning nil: %v", err)
	}
	if len(so) != 0 {
		t.Errorf("Scan(nil) = %v, want empty", so)
	}

	if err := so.Scan(42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestDocumentCopyName(t *testing.T) {
	d := Document{Name: "Lease Agreement"}
	if got := d.CopyName(); got != "Lease Agreement (Copy)" {
		t.Errorf("CopyName() = %q", got)
	}
}
