package internal

import (
	"fmt"
	"strings"
)

// CanonicalField is a semantic role a price-sheet column can be bound to,
// independent of the literal header text in the file.
type CanonicalField string

const (
	FieldBrand             CanonicalField = "brand"
	FieldERPCode           CanonicalField = "erp_code"
	FieldModel             CanonicalField = "model"
	FieldPower             CanonicalField = "power"
	FieldRetailCash        CanonicalField = "retail_cash_price"
	FieldProProgram        CanonicalField = "pro_program_price"
	FieldCommissionInvoice CanonicalField = "commission_invoice"
	FieldCommissionHand    CanonicalField = "commission_hand"
)

// RequiredFields are the bindings without which the catalog cannot be built.
func RequiredFields() []CanonicalField {
	return []CanonicalField{FieldERPCode, FieldModel, FieldRetailCash, FieldProProgram}
}

// RawTable is one worksheet as read from the file: rows of untyped cells,
// no header semantics attached.
type RawTable struct {
	Sheet string
	Rows  [][]string
}

// ResolvedColumn binds a canonical field to an actual column of the header row.
type ResolvedColumn struct {
	Index  int
	Header string
}

// ColumnMap holds the resolved bindings. Optional fields that did not resolve
// are simply missing from the map.
type ColumnMap map[CanonicalField]ResolvedColumn

// ProductRow is one selectable catalog entry. Monetary fields are nil when the
// source cell was missing or not parsable as a number; nil is never rendered
// as zero downstream.
type ProductRow struct {
	SheetRow int
	Brand    string
	ERPCode  string
	Model    string
	Power    string

	RetailCash        *float64
	ProProgram        *float64
	CommissionInvoice *float64
	CommissionHand    *float64
}

// Label renders the row for selection lists: "model | power | ERP: code",
// dropping the ERP part when the code is absent.
func (r ProductRow) Label() string {
	if strings.TrimSpace(r.ERPCode) == "" {
		return fmt.Sprintf("%s | %s", r.Model, r.Power)
	}
	return fmt.Sprintf("%s | %s | ERP: %s", r.Model, r.Power, r.ERPCode)
}

type CustomerType string

const (
	CustomerIndividual CustomerType = "individual"
	CustomerPlumber    CustomerType = "professional_plumber"
	CustomerEngineer   CustomerType = "professional_engineer"
)

func (c CustomerType) IsProfessional() bool {
	return c == CustomerPlumber || c == CustomerEngineer
}

type PaymentMethod string

const (
	PaymentProgram PaymentMethod = "program"
	PaymentCash    PaymentMethod = "cash"
)

type BillingRoute string

const (
	BillProfessional BillingRoute = "to_professional"
	BillEndCustomer  BillingRoute = "to_end_customer"
	BillNone         BillingRoute = "none"
)

type PayoutMode string

const (
	PayoutServiceInvoice PayoutMode = "service_invoice"
	PayoutNetHandoff     PayoutMode = "net_handoff"
	PayoutNone           PayoutMode = "none"
)

// ScenarioInput is the operator's billing-scenario choice for one quote.
type ScenarioInput struct {
	Customer CustomerType
	Payment  PaymentMethod
	Billing  BillingRoute
	Payout   PayoutMode
}

// ScenarioResult is the computed quote. Amounts are VAT-inclusive as in the
// source sheet and nil when the required source figure was absent.
type ScenarioResult struct {
	Label            string   `json:"label"`
	InvoiceAmount    *float64 `json:"invoiceAmount"`
	CommissionAmount *float64 `json:"commissionAmount"`
	Note             string   `json:"note,omitempty"`
}

// QuoteExportRow is the flat shape written to the xlsx export.
type QuoteExportRow struct {
	Model            string
	Power            string
	ERPCode          string
	Brand            string
	Customer         string
	Payment          string
	Billing          string
	Payout           string
	Label            string
	InvoiceAmount    *float64
	CommissionAmount *float64
	Note             string
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}

// StoredPriceList points at a spreadsheet attachment written to disk by the
// mail connectors.
type StoredPriceList struct {
	Path       string
	Attachment string
	Provider   string
	MessageID  string
	Subject    string
	ReceivedAt string
}

func ParseCustomerType(v string) (CustomerType, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "individual", "private":
		return CustomerIndividual, nil
	case "plumber", "professional_plumber":
		return CustomerPlumber, nil
	case "engineer", "professional_engineer":
		return CustomerEngineer, nil
	default:
		return "", fmt.Errorf("unknown customer type: %q", v)
	}
}

func ParsePaymentMethod(v string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "cash":
		return PaymentCash, nil
	case "program":
		return PaymentProgram, nil
	default:
		return "", fmt.Errorf("unknown payment method: %q", v)
	}
}

func ParseBillingRoute(v string) (BillingRoute, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return BillNone, nil
	case "professional", "to_professional":
		return BillProfessional, nil
	case "end-customer", "end_customer", "to_end_customer":
		return BillEndCustomer, nil
	default:
		return "", fmt.Errorf("unknown billing route: %q", v)
	}
}

func ParsePayoutMode(v string) (PayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return PayoutNone, nil
	case "invoice", "service_invoice":
		return PayoutServiceInvoice, nil
	case "hand", "net_handoff":
		return PayoutNetHandoff, nil
	default:
		return "", fmt.Errorf("unknown payout mode: %q", v)
	}
}
