package internal

import (
	"strconv"
	"strings"
)

type MessageKind string

const (
	KindSellerAgreement         MessageKind = "MSG01"
	KindCreditAssessmentRequest MessageKind = "MSG02"
	KindCreditCoverRequest      MessageKind = "MSG05"
	KindCreditCoverUpdate       MessageKind = "MSG07"
)

// TransactionalKinds lists the credit-request kinds in the order the
// combiner visits them.
var TransactionalKinds = []MessageKind{
	KindCreditAssessmentRequest,
	KindCreditCoverRequest,
	KindCreditCoverUpdate,
}

func (k MessageKind) Transactional() bool {
	return k == KindCreditAssessmentRequest || k == KindCreditCoverRequest || k == KindCreditCoverUpdate
}

// Number returns the numeric suffix of the kind, e.g. "05" for MSG05.
func (k MessageKind) Number() string {
	return strings.TrimPrefix(string(k), "MSG")
}

// MsgInfo is the header section shared by all four message kinds.
type MsgInfo struct {
	SenderCode   string
	ReceiverCode string
	CreatedBy    string
	SequenceNr   string
	DateTime     string
	Status       string
}

// Factor identifies one side of the factoring relation (export "EF" or
// import "IF" factor).
type Factor struct {
	Code string
	Name string
}

// BankDetails is an optional section. A nil pointer means the section was
// missing from the source document; a zero value means it was present but
// unpopulated.
type BankDetails struct {
	Name    string
	Account string
	Swift   string
}

// SellerTerms is the MSG01-specific payload.
type SellerTerms struct {
	SellerNr         string
	Name             string
	Address          string
	City             string
	IndustryProduct  string
	ExpectedTurnover *float64
	Bank             *BankDetails
	Comment          string
}

type BuyerDetails struct {
	BuyerNr string
	Name    string
	Address string
	City    string
}

// CreditRequest is the payload shared by the three transactional kinds
// (MSG02/05/07).
type CreditRequest struct {
	SellerNr        string
	Buyer           BuyerDetails
	Amount          *float64
	Currency        string
	PaymentTermDays *float64
	ContactAllowed  string
	Comment         string
}

// Message is the closed variant over the four document kinds. Exactly one of
// Seller / Request is set, according to Kind.
type Message struct {
	Kind         MessageKind
	Info         MsgInfo
	ExportFactor Factor
	ImportFactor Factor
	Seller       *SellerTerms
	Request      *CreditRequest
}

// JoinKey associates a transactional message with its seller agreement.
type JoinKey struct {
	SenderCode string
	SellerNr   string
}

func (m Message) JoinKey() JoinKey {
	key := JoinKey{SenderCode: m.Info.SenderCode}
	switch {
	case m.Seller != nil:
		key.SellerNr = m.Seller.SellerNr
	case m.Request != nil:
		key.SellerNr = m.Request.SellerNr
	}
	return key
}

// ConvertedAmount is a number-or-annotation: Value is set when a conversion
// succeeded, otherwise Note explains why the amount is unavailable.
type ConvertedAmount struct {
	Value *float64
	Note  string
}

func (a ConvertedAmount) String() string {
	if a.Value != nil {
		return strconv.FormatFloat(*a.Value, 'f', 2, 64)
	}
	return a.Note
}

// DisplayRow is one line of the combined audit log. Rows are never mutated
// once produced and are ordered by received date ascending.
type DisplayRow struct {
	ReceivedAt       string
	MessageType      string
	SenderCode       string
	SellerNr         string
	SellerName       string
	PartnerName      string
	PartnerCountry   string
	SellerCountry    string
	BuyerName        string
	IndustryProduct  string
	Amount           *float64
	Currency         string
	AmountUSD        ConvertedAmount
	PaymentTermDays  *float64
	ContactAllowed   string
	CreditManager    string
	AccountExecutive string
}

type ReportType string

const (
	ReportVolume     ReportType = "VOLUME"
	ReportCommission ReportType = "COMMISSION"
	ReportUnknown    ReportType = "UNKNOWN"
)

// Bracket is a half-open [Start, End) character span inside a report line.
type Bracket struct {
	Start int
	End   int
}

// ColumnMap holds the layout inferred from one sampled data line plus the
// header line. Offsets are only valid for lines produced by the same layout.
type ColumnMap struct {
	Group       Bracket
	Code        Bracket
	Name        Bracket
	ColumnOrder []string
	ColumnStart map[string]int
}

type ReportRow struct {
	Group  string
	Code   string
	Name   string
	Values map[string]string
}

// ReportTable is one parsed fixed-width report plus the layout it was
// extracted with.
type ReportTable struct {
	Type    ReportType
	Columns ColumnMap
	Rows    []ReportRow
}

// LinkRow joins one factor's volume and commission figures by code.
type LinkRow struct {
	Code         string
	Name         string
	VolumeCurrMo string
	VolumeYTD    string
	VolumeDiff   string
	CommCurrMo   string
	CommYTD      string
	CommDiff     string
}

// DocumentRow is the intake bookkeeping record for one stored document.
type DocumentRow struct {
	ID         int
	Source     string
	ExternalID string
	Name       string
	Sender     string
	ReceivedAt string
	Hash       string
	Format     string
	Status     string
	RawRef     string
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}
