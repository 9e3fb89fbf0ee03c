/**
 * @description
 * Export request/response shapes. The payload is an opaque byte blob tagged
 * with a MIME type; the engine only guarantees a non-empty payload in the
 * requested format.
 */

package domain

// ExportEntity selects which store an export reads.
type ExportEntity string

const (
	ExportEntityClients      ExportEntity = "clients"
	ExportEntityTransactions ExportEntity = "transactions"
	ExportEntitySettlements  ExportEntity = "settlements"
)

// ExportFormat selects the output encoding of an export.
type ExportFormat string

const (
	ExportFormatCSV   ExportFormat = "csv"
	ExportFormatExcel ExportFormat = "excel"
	ExportFormatPDF   ExportFormat = "pdf"
)

// ExportPayload is the result of an export operation.
type ExportPayload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}
