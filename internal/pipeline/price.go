package pipeline

import (
	"pumpquote/internal"
	"pumpquote/internal/util"
)

const (
	noteCommissionInvoice = "professional issues own invoice for the commission amount"
	noteCommissionHand    = "tax/VAT withheld per policy; net amount handed to professional"
)

// Quote computes the invoice amount and, where relevant, the reseller payout
// for one product row and one scenario. Pure and deterministic; every input
// combination yields a well-formed result. Figures missing from the sheet come
// out as nil, never as zero or a substituted column. All amounts are
// VAT-inclusive as priced in the sheet; rounding to cents happens here and
// nowhere earlier.
func Quote(row internal.ProductRow, in internal.ScenarioInput) internal.ScenarioResult {
	if !in.Customer.IsProfessional() {
		return quoteIndividual(row, in)
	}

	// An unset billing route falls back to billing the professional, the
	// default the operator tool preselects.
	if in.Billing == internal.BillEndCustomer {
		return quoteBillEndCustomer(row, in)
	}
	return internal.ScenarioResult{
		Label:         "professional -> bill professional",
		InvoiceAmount: util.Round2Ptr(row.ProProgram),
	}
}

func quoteIndividual(row internal.ProductRow, in internal.ScenarioInput) internal.ScenarioResult {
	base := row.RetailCash
	if in.Payment == internal.PaymentProgram {
		// Program price missing: fall back to the retail cash price, as the
		// original pricing tool did.
		if row.ProProgram != nil {
			base = row.ProProgram
		}
	}
	return internal.ScenarioResult{
		Label:         "individual",
		InvoiceAmount: util.Round2Ptr(base),
	}
}

func quoteBillEndCustomer(row internal.ProductRow, in internal.ScenarioInput) internal.ScenarioResult {
	result := internal.ScenarioResult{
		Label:         "professional -> bill end customer",
		InvoiceAmount: util.Round2Ptr(row.RetailCash),
	}

	// Unset payout mode defaults to the service-invoice payout.
	if in.Payout == internal.PayoutNetHandoff {
		result.CommissionAmount = util.Round2Ptr(row.CommissionHand)
		result.Note = noteCommissionHand
	} else {
		result.CommissionAmount = util.Round2Ptr(row.CommissionInvoice)
		result.Note = noteCommissionInvoice
	}
	return result
}
