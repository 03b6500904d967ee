package message

import (
	"sort"

	"factorlink/internal"
	"factorlink/internal/lookup"
	"factorlink/internal/util"
)

// fieldSelection picks the request fields one message kind contributes to a
// display row. The original message layouts differ per kind, so this stays a
// dispatch table rather than parallel branches.
type fieldSelection struct {
	amount   func(r *internal.CreditRequest) *float64
	currency func(r *internal.CreditRequest) string
	term     func(r *internal.CreditRequest) *float64
	contact  func(r *internal.CreditRequest) string
}

var selectionByKind = map[internal.MessageKind]fieldSelection{
	internal.KindCreditAssessmentRequest: {
		amount:   func(r *internal.CreditRequest) *float64 { return r.Amount },
		currency: func(r *internal.CreditRequest) string { return r.Currency },
		term:     func(r *internal.CreditRequest) *float64 { return nil },
		contact:  func(r *internal.CreditRequest) string { return "" },
	},
	internal.KindCreditCoverRequest: {
		amount:   func(r *internal.CreditRequest) *float64 { return r.Amount },
		currency: func(r *internal.CreditRequest) string { return r.Currency },
		term:     func(r *internal.CreditRequest) *float64 { return r.PaymentTermDays },
		contact:  func(r *internal.CreditRequest) string { return r.ContactAllowed },
	},
	internal.KindCreditCoverUpdate: {
		amount:   func(r *internal.CreditRequest) *float64 { return r.Amount },
		currency: func(r *internal.CreditRequest) string { return r.Currency },
		term:     func(r *internal.CreditRequest) *float64 { return r.PaymentTermDays },
		contact:  func(r *internal.CreditRequest) string { return "" },
	},
}

// Combine joins every transactional message with its seller agreement and
// produces the ordered audit log. Matching is best effort: a missing
// agreement yields an unenriched row, never an error.
func Combine(repo *Repository, lookups *lookup.Resolver, rates *RateCache) []internal.DisplayRow {
	var rows []internal.DisplayRow
	for _, kind := range internal.TransactionalKinds {
		for _, msg := range repo.All(kind) {
			rows = append(rows, buildRow(msg, repo, lookups, rates))
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return util.ParseReceivedDate(rows[i].ReceivedAt).Before(util.ParseReceivedDate(rows[j].ReceivedAt))
	})
	return rows
}

func buildRow(msg internal.Message, repo *Repository, lookups *lookup.Resolver, rates *RateCache) internal.DisplayRow {
	req := msg.Request
	sel := selectionByKind[msg.Kind]

	row := internal.DisplayRow{
		ReceivedAt:      msg.Info.DateTime,
		MessageType:     msg.Kind.Number(),
		SenderCode:      msg.Info.SenderCode,
		SellerNr:        req.SellerNr,
		PartnerName:     msg.ImportFactor.Name,
		BuyerName:       req.Buyer.Name,
		Amount:          sel.amount(req),
		Currency:        sel.currency(req),
		PaymentTermDays: sel.term(req),
		ContactAllowed:  sel.contact(req),
	}

	if agreement, ok := repo.LookupSeller(msg.Info.SenderCode, req.SellerNr); ok {
		row.SellerName = agreement.Seller.Name
		row.IndustryProduct = agreement.Seller.IndustryProduct
	}

	countryCode := factorCountryCode(msg.ImportFactor.Code)
	row.PartnerCountry = lookups.Country(countryCode)
	// The seller trades through the partner factor, so seller country is
	// defined to equal partner country.
	row.SellerCountry = row.PartnerCountry

	row.AmountUSD = rates.Convert(row.Amount, row.Currency)
	row.CreditManager = lookups.CreditManager(countryCode, row.AmountUSD.Value, row.PartnerName)
	row.AccountExecutive = lookups.AccountExecutive(countryCode, row.PartnerName)
	return row
}

// factorCountryCode takes the country prefix of a factor code, e.g. "DE" from
// "DE01".
func factorCountryCode(factorCode string) string {
	if len(factorCode) < 2 {
		return factorCode
	}
	return factorCode[:2]
}
