package message

import (
	"reflect"
	"testing"

	"factorlink/internal"
	"factorlink/internal/lookup"
	"factorlink/internal/util"
)

type stubRates struct {
	rates map[string]float64
	calls map[string]int
}

func newStubRates(rates map[string]float64) *stubRates {
	return &stubRates{rates: rates, calls: map[string]int{}}
}

func (s *stubRates) Rate(currency string) (float64, bool) {
	s.calls[currency]++
	rate, ok := s.rates[currency]
	return rate, ok
}

func sellerAgreement(senderCode, sellerNr, name, industry string) internal.Message {
	return internal.Message{
		Kind:         internal.KindSellerAgreement,
		Info:         internal.MsgInfo{SenderCode: senderCode, DateTime: "2024-10-28 09:15:00"},
		ExportFactor: internal.Factor{Code: "DE01", Name: "EUROFACTOR AG NORD"},
		ImportFactor: internal.Factor{Code: "FR02", Name: "FACTOFRANCE SA"},
		Seller:       &internal.SellerTerms{SellerNr: sellerNr, Name: name, IndustryProduct: industry},
	}
}

func coverRequest(kind internal.MessageKind, senderCode, sellerNr, dateTime string, amount float64, currency string) internal.Message {
	return internal.Message{
		Kind:         kind,
		Info:         internal.MsgInfo{SenderCode: senderCode, DateTime: dateTime},
		ExportFactor: internal.Factor{Code: "DE01", Name: "EUROFACTOR AG NORD"},
		ImportFactor: internal.Factor{Code: "FR02", Name: "FACTOFRANCE SA"},
		Request: &internal.CreditRequest{
			SellerNr:        sellerNr,
			Buyer:           internal.BuyerDetails{BuyerNr: "B77", Name: "Lyon Retail SARL"},
			Amount:          util.FloatPtr(amount),
			Currency:        currency,
			PaymentTermDays: util.FloatPtr(60),
			ContactAllowed:  "Y",
		},
	}
}

func defaultResolver() *lookup.Resolver {
	return lookup.NewResolver(lookup.Defaults())
}

func TestCombineJoinsSellerAgreement(t *testing.T) {
	repo := NewRepository()
	repo.Register(sellerAgreement("F1", "S9", "Hanse Textil GmbH", "Textiles"))
	repo.Register(coverRequest(internal.KindCreditCoverRequest, "F1", "S9", "2024-11-03 14:02:00", 90000, "EUR"))

	rates := NewRateCache("USD", newStubRates(map[string]float64{"EUR": 0.9}))
	rows := Combine(repo, defaultResolver(), rates)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.MessageType != "05" {
		t.Fatalf("message type = %q", row.MessageType)
	}
	if row.SellerName != "Hanse Textil GmbH" || row.IndustryProduct != "Textiles" {
		t.Fatalf("seller enrichment missing: %+v", row)
	}
	if row.PartnerCountry != "France" || row.SellerCountry != "France" {
		t.Fatalf("countries = %q / %q", row.PartnerCountry, row.SellerCountry)
	}
	if row.AmountUSD.String() != "100000.00" {
		t.Fatalf("amount usd = %q", row.AmountUSD.String())
	}
	if row.CreditManager != "C. Moreau" {
		t.Fatalf("credit manager = %q", row.CreditManager)
	}
	if row.AccountExecutive != "P. Laurent" {
		t.Fatalf("account executive = %q", row.AccountExecutive)
	}
	if row.PaymentTermDays == nil || *row.PaymentTermDays != 60 || row.ContactAllowed != "Y" {
		t.Fatalf("term/contact = %v / %q", row.PaymentTermDays, row.ContactAllowed)
	}
}

func TestCombineUnmatchedSellerStaysBare(t *testing.T) {
	repo := NewRepository()
	repo.Register(coverRequest(internal.KindCreditCoverRequest, "F1", "S404", "2024-11-03 14:02:00", 1000, "USD"))

	rows := Combine(repo, defaultResolver(), NewRateCache("USD", nil))
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].SellerName != "" || rows[0].IndustryProduct != "" {
		t.Fatalf("unmatched row must stay unenriched: %+v", rows[0])
	}
	if rows[0].BuyerName != "Lyon Retail SARL" {
		t.Fatalf("request fields must survive: %+v", rows[0])
	}
}

func TestCombineKeySensitivity(t *testing.T) {
	repo := NewRepository()
	repo.Register(sellerAgreement("F1", "S9", "Hanse Textil GmbH", "Textiles"))
	// Same seller number, different sender: must not match.
	repo.Register(coverRequest(internal.KindCreditCoverRequest, "F2", "S9", "2024-11-03 14:02:00", 1000, "USD"))

	rows := Combine(repo, defaultResolver(), NewRateCache("USD", nil))
	if rows[0].SellerName != "" {
		t.Fatalf("join must use the full (senderCode, sellerNr) key: %+v", rows[0])
	}
}

func TestCombineLastAgreementWins(t *testing.T) {
	repo := NewRepository()
	repo.Register(sellerAgreement("F1", "S9", "Old Name", "Old"))
	repo.Register(sellerAgreement("F1", "S9", "New Name", "New"))
	repo.Register(coverRequest(internal.KindCreditCoverRequest, "F1", "S9", "2024-11-03 14:02:00", 1000, "USD"))

	rows := Combine(repo, defaultResolver(), NewRateCache("USD", nil))
	if rows[0].SellerName != "New Name" {
		t.Fatalf("seller name = %q, want the later agreement", rows[0].SellerName)
	}
}

func TestCombineOrderedByReceivedDate(t *testing.T) {
	repo := NewRepository()
	repo.Register(coverRequest(internal.KindCreditCoverRequest, "F1", "S1", "2024-11-03 14:02:00", 1, "USD"))
	repo.Register(coverRequest(internal.KindCreditCoverRequest, "F1", "S2", "garbled", 1, "USD"))
	repo.Register(coverRequest(internal.KindCreditCoverRequest, "F1", "S3", "2024-11-01 08:00:00", 1, "USD"))

	rows := Combine(repo, defaultResolver(), NewRateCache("USD", nil))
	var order []string
	for _, row := range rows {
		order = append(order, row.SellerNr)
	}
	// Unparsable dates sort first, then ascending.
	want := []string{"S2", "S3", "S1"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestCombineFieldSelectionPerKind(t *testing.T) {
	repo := NewRepository()
	repo.Register(coverRequest(internal.KindCreditAssessmentRequest, "F1", "S1", "2024-11-01 08:00:00", 100, "USD"))
	repo.Register(coverRequest(internal.KindCreditCoverRequest, "F1", "S2", "2024-11-02 08:00:00", 100, "USD"))
	repo.Register(coverRequest(internal.KindCreditCoverUpdate, "F1", "S3", "2024-11-03 08:00:00", 100, "USD"))

	rows := Combine(repo, defaultResolver(), NewRateCache("USD", nil))
	byType := map[string]internal.DisplayRow{}
	for _, row := range rows {
		byType[row.MessageType] = row
	}

	if row := byType["02"]; row.PaymentTermDays != nil || row.ContactAllowed != "" {
		t.Fatalf("MSG02 row must not carry term/contact: %+v", row)
	}
	if row := byType["05"]; row.PaymentTermDays == nil || row.ContactAllowed != "Y" {
		t.Fatalf("MSG05 row must carry term and contact: %+v", row)
	}
	if row := byType["07"]; row.PaymentTermDays == nil || row.ContactAllowed != "" {
		t.Fatalf("MSG07 row must carry term but not contact: %+v", row)
	}
}

func TestCombineIdempotent(t *testing.T) {
	repo := NewRepository()
	repo.Register(sellerAgreement("F1", "S9", "Hanse Textil GmbH", "Textiles"))
	repo.Register(coverRequest(internal.KindCreditCoverRequest, "F1", "S9", "2024-11-03 14:02:00", 90000, "EUR"))

	rates := NewRateCache("USD", newStubRates(map[string]float64{"EUR": 0.9}))
	first := Combine(repo, defaultResolver(), rates)
	second := Combine(repo, defaultResolver(), rates)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("combining the same repository twice must give identical rows")
	}
}
