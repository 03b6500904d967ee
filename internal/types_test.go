package internal

import "testing"

func TestKindNumber(t *testing.T) {
	cases := map[MessageKind]string{
		KindSellerAgreement:         "01",
		KindCreditAssessmentRequest: "02",
		KindCreditCoverRequest:      "05",
		KindCreditCoverUpdate:       "07",
	}
	for kind, want := range cases {
		if got := kind.Number(); got != want {
			t.Fatalf("%s.Number() = %q, want %q", kind, got, want)
		}
	}
}

func TestTransactional(t *testing.T) {
	if KindSellerAgreement.Transactional() {
		t.Fatal("MSG01 is not transactional")
	}
	for _, kind := range TransactionalKinds {
		if !kind.Transactional() {
			t.Fatalf("%s must be transactional", kind)
		}
	}
}

func TestJoinKey(t *testing.T) {
	agreement := Message{
		Kind:   KindSellerAgreement,
		Info:   MsgInfo{SenderCode: "F1"},
		Seller: &SellerTerms{SellerNr: "S9"},
	}
	request := Message{
		Kind:    KindCreditCoverRequest,
		Info:    MsgInfo{SenderCode: "F1"},
		Request: &CreditRequest{SellerNr: "S9"},
	}
	if agreement.JoinKey() != request.JoinKey() {
		t.Fatalf("keys differ: %+v vs %+v", agreement.JoinKey(), request.JoinKey())
	}
}

func TestConvertedAmountString(t *testing.T) {
	v := 100000.0
	if got := (ConvertedAmount{Value: &v}).String(); got != "100000.00" {
		t.Fatalf("String = %q", got)
	}
	if got := (ConvertedAmount{Note: "no USD rate for EUR"}).String(); got != "no USD rate for EUR" {
		t.Fatalf("String = %q", got)
	}
	if got := (ConvertedAmount{}).String(); got != "" {
		t.Fatalf("empty String = %q", got)
	}
}
