package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending approval", OrderStatusPendingApproval, "pending_approval"},
		{"paid", OrderStatusPaid, "paid"},
		{"shipped", OrderStatusShipped, "shipped"},
		{"completed", OrderStatusCompleted, "completed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestPaymentMethodRequiresVerification(t *testing.T) {
	if PaymentMethodCard.RequiresVerification() {
		t.Fatal("card payments must settle immediately")
	}
	if !PaymentMethodQRTransfer.RequiresVerification() {
		t.Fatal("qr transfers require receipt verification")
	}
	if !PaymentMethodBankTransfer.RequiresVerification() {
		t.Fatal("bank transfers require receipt verification")
	}
	if PaymentMethod("cash").IsValid() {
		t.Fatal("unknown payment method must be invalid")
	}
}

func TestEntryKindValidity(t *testing.T) {
	for _, k := range []EntryKind{EntryKindCommission, EntryKindAdjustment, EntryKindBonus, EntryKindFee, EntryKindPayout} {
		if !k.IsValid() {
			t.Fatalf("kind %s reported invalid", k)
		}
	}
	if EntryKind("refund").IsValid() {
		t.Fatal("unknown kind reported valid")
	}
}

func TestLineItemSubtotal(t *testing.T) {
	li := LineItem{Quantity: 3, UnitPrice: decimal.RequireFromString("19.90")}
	if got := li.Subtotal(); !got.Equal(decimal.RequireFromString("59.70")) {
		t.Fatalf("expected 59.70, got %s", got)
	}
}

func TestOrderAttributed(t *testing.T) {
	var o Order
	if o.Attributed() {
		t.Fatal("order without salesperson reported attributed")
	}
	id := int64(7)
	o.SalespersonID = &id
	if !o.Attributed() {
		t.Fatal("order with salesperson reported unattributed")
	}
}
