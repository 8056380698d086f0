// Package gst implements GST computation and compliance reporting for tax
// documents: the CGST/SGST/IGST breakup of a taxable amount, line item and
// document level aggregation, GSTIN format validation, and the periodic
// filing summaries (B2B, residual and HSN).
//
// Every computation in this package is a pure function of its inputs. The
// package holds no mutable state, performs no I/O, and is safe for
// concurrent use. All monetary arithmetic uses shopspring/decimal; amounts
// are rounded to two decimal places only when a result is finalized, never
// on intermediate values.
package gst
