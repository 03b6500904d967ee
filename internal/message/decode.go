package message

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"factorlink/internal"
	"factorlink/internal/util"
)

// MalformedMessageError reports a message block missing one of its required
// sections. The offending block is skipped; the rest of the batch proceeds.
type MalformedMessageError struct {
	Kind           internal.MessageKind
	MissingSection string
}

func (e *MalformedMessageError) Error() string {
	return fmt.Sprintf("%s: missing required section %s", e.Kind, e.MissingSection)
}

var kindByElement = map[string]internal.MessageKind{
	"MSG01": internal.KindSellerAgreement,
	"MSG02": internal.KindCreditAssessmentRequest,
	"MSG05": internal.KindCreditCoverRequest,
	"MSG07": internal.KindCreditCoverUpdate,
}

type xmlMsgInfo struct {
	SenderCode   string `xml:"SenderCode"`
	ReceiverCode string `xml:"ReceiverCode"`
	CreatedBy    string `xml:"CreatedBy"`
	SequenceNr   string `xml:"SequenceNr"`
	DateTime     string `xml:"DateTime"`
	Status       string `xml:"Status"`
}

type xmlFactor struct {
	FactorCode string `xml:"FactorCode"`
	FactorName string `xml:"FactorName"`
}

type xmlSellerDetails struct {
	SellerNr   string `xml:"SellerNr"`
	SellerName string `xml:"SellerName"`
	Address    string `xml:"Address"`
	City       string `xml:"City"`
}

type xmlAgreementDetails struct {
	IndustryProduct  string `xml:"IndustryProduct"`
	ExpectedTurnover string `xml:"ExpectedTurnover"`
}

type xmlBuyerDetails struct {
	BuyerNr   string `xml:"BuyerNr"`
	BuyerName string `xml:"BuyerName"`
	Address   string `xml:"Address"`
	City      string `xml:"City"`
}

type xmlCreditDetails struct {
	RequestedAmount string `xml:"RequestedAmount"`
	Currency        string `xml:"Currency"`
	PaymentTermDays string `xml:"PaymentTermDays"`
	ContactAllowed  string `xml:"ContactAllowed"`
}

type xmlBankDetails struct {
	BankName string `xml:"BankName"`
	Account  string `xml:"Account"`
	Swift    string `xml:"Swift"`
}

type xmlDocument struct {
	MsgInfo          *xmlMsgInfo          `xml:"MsgInfo"`
	ExportFactor     *xmlFactor           `xml:"ExportFactor"`
	ImportFactor     *xmlFactor           `xml:"ImportFactor"`
	SellerDetails    *xmlSellerDetails    `xml:"SellerDetails"`
	AgreementDetails *xmlAgreementDetails `xml:"AgreementDetails"`
	BuyerDetails     *xmlBuyerDetails     `xml:"BuyerDetails"`
	CreditDetails    *xmlCreditDetails    `xml:"CreditDetails"`
	BankDetails      *xmlBankDetails      `xml:"BankDetails"`
	Comment          string               `xml:"Comment"`
}

// DecodeBatch scans text for top-level MSG01/02/05/07 blocks and decodes each
// one. Malformed blocks are returned as errors alongside the messages that
// did decode; the caller logs and moves on.
func DecodeBatch(text string) ([]internal.Message, []error) {
	decoder := xml.NewDecoder(strings.NewReader(text))

	var messages []internal.Message
	var errs []error
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("read message batch: %w", err))
			break
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		kind, known := kindByElement[start.Name.Local]
		if !known {
			continue
		}

		var doc xmlDocument
		if err := decoder.DecodeElement(&doc, &start); err != nil {
			errs = append(errs, fmt.Errorf("decode %s block: %w", kind, err))
			continue
		}

		msg, err := shape(doc, kind)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		messages = append(messages, msg)
	}

	return messages, errs
}

// shape checks the decoded fragment against the required sections of the
// expected kind and produces the typed message.
func shape(doc xmlDocument, kind internal.MessageKind) (internal.Message, error) {
	missing := func(section string) (internal.Message, error) {
		return internal.Message{}, &MalformedMessageError{Kind: kind, MissingSection: section}
	}

	if doc.MsgInfo == nil {
		return missing("MsgInfo")
	}
	if doc.ExportFactor == nil {
		return missing("ExportFactor")
	}
	if doc.ImportFactor == nil {
		return missing("ImportFactor")
	}
	if doc.SellerDetails == nil {
		return missing("SellerDetails")
	}

	msg := internal.Message{
		Kind: kind,
		Info: internal.MsgInfo{
			SenderCode:   doc.MsgInfo.SenderCode,
			ReceiverCode: doc.MsgInfo.ReceiverCode,
			CreatedBy:    doc.MsgInfo.CreatedBy,
			SequenceNr:   doc.MsgInfo.SequenceNr,
			DateTime:     doc.MsgInfo.DateTime,
			Status:       doc.MsgInfo.Status,
		},
		ExportFactor: internal.Factor{Code: doc.ExportFactor.FactorCode, Name: doc.ExportFactor.FactorName},
		ImportFactor: internal.Factor{Code: doc.ImportFactor.FactorCode, Name: doc.ImportFactor.FactorName},
	}

	if kind == internal.KindSellerAgreement {
		if doc.AgreementDetails == nil {
			return missing("AgreementDetails")
		}
		msg.Seller = &internal.SellerTerms{
			SellerNr:         doc.SellerDetails.SellerNr,
			Name:             doc.SellerDetails.SellerName,
			Address:          doc.SellerDetails.Address,
			City:             doc.SellerDetails.City,
			IndustryProduct:  doc.AgreementDetails.IndustryProduct,
			ExpectedTurnover: util.LenientFloat(doc.AgreementDetails.ExpectedTurnover),
			Bank:             bankDetails(doc.BankDetails),
			Comment:          strings.TrimSpace(doc.Comment),
		}
		return msg, nil
	}

	if doc.BuyerDetails == nil {
		return missing("BuyerDetails")
	}
	if doc.CreditDetails == nil {
		return missing("CreditDetails")
	}
	msg.Request = &internal.CreditRequest{
		SellerNr: doc.SellerDetails.SellerNr,
		Buyer: internal.BuyerDetails{
			BuyerNr: doc.BuyerDetails.BuyerNr,
			Name:    doc.BuyerDetails.BuyerName,
			Address: doc.BuyerDetails.Address,
			City:    doc.BuyerDetails.City,
		},
		Amount:          util.LenientFloat(doc.CreditDetails.RequestedAmount),
		Currency:        strings.ToUpper(strings.TrimSpace(doc.CreditDetails.Currency)),
		PaymentTermDays: util.LenientFloat(doc.CreditDetails.PaymentTermDays),
		ContactAllowed:  strings.TrimSpace(doc.CreditDetails.ContactAllowed),
		Comment:         strings.TrimSpace(doc.Comment),
	}
	return msg, nil
}

// bankDetails keeps the present-but-empty / absent distinction: a missing
// section stays nil, an empty one becomes a zero value.
func bankDetails(src *xmlBankDetails) *internal.BankDetails {
	if src == nil {
		return nil
	}
	return &internal.BankDetails{
		Name:    strings.TrimSpace(src.BankName),
		Account: strings.TrimSpace(src.Account),
		Swift:   strings.TrimSpace(src.Swift),
	}
}
