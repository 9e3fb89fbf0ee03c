/**
 * @description
 * Data export for the console's download buttons. CSV is real CSV; the excel
 * and pdf variants are simulation-grade payloads tagged with the right MIME
 * type — the contract only guarantees a non-empty payload in the requested
 * format, not spreadsheet or PDF fidelity.
 */

package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/transfa/console-engine/internal/domain"
)

// ExportData renders the requested store as an opaque, MIME-tagged payload.
func (s *Service) ExportData(ctx context.Context, entity domain.ExportEntity, format domain.ExportFormat) (*domain.ExportPayload, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	var (
		header []string
		rows   [][]string
	)
	switch entity {
	case domain.ExportEntityClients:
		clients, err := s.repo.SnapshotClients(ctx)
		if err != nil {
			return nil, err
		}
		header = []string{"client_code", "client_name", "email", "status", "kyc_status", "total_transactions", "total_volume", "created_at"}
		for i := range clients {
			c := &clients[i]
			rows = append(rows, []string{
				c.ClientCode, c.ClientName, c.Email, string(c.Status), string(c.KYCStatus),
				strconv.FormatInt(c.TotalTransactions, 10),
				strconv.FormatInt(c.TotalVolume, 10),
				c.CreatedAt.Format(time.RFC3339),
			})
		}
	case domain.ExportEntityTransactions:
		transactions, err := s.repo.SnapshotTransactions(ctx)
		if err != nil {
			return nil, err
		}
		header = []string{"transaction_id", "client_name", "type", "method", "amount", "net_amount", "status", "refunded_amount", "settled", "created_at"}
		for i := range transactions {
			t := &transactions[i]
			rows = append(rows, []string{
				t.TransactionID, t.ClientName, string(t.Type), string(t.Method),
				strconv.FormatInt(t.Amount, 10),
				strconv.FormatInt(t.NetAmount, 10),
				string(t.Status),
				strconv.FormatInt(t.RefundedAmount, 10),
				strconv.FormatBool(t.IsSettled),
				t.CreatedAt.Format(time.RFC3339),
			})
		}
	case domain.ExportEntitySettlements:
		settlements, err := s.repo.SnapshotSettlements(ctx)
		if err != nil {
			return nil, err
		}
		header = []string{"batch_id", "client_name", "status", "total_amount", "total_transactions", "utr", "processed_at", "created_at"}
		for i := range settlements {
			b := &settlements[i]
			utr, processedAt := "", ""
			if b.UTR != nil {
				utr = *b.UTR
			}
			if b.ProcessedAt != nil {
				processedAt = b.ProcessedAt.Format(time.RFC3339)
			}
			rows = append(rows, []string{
				b.BatchID, b.ClientName, string(b.Status),
				strconv.FormatInt(b.TotalAmount, 10),
				strconv.Itoa(b.TotalTransactions),
				utr, processedAt,
				b.CreatedAt.Format(time.RFC3339),
			})
		}
	default:
		return nil, fmt.Errorf("unknown export entity %q: %w", entity, domain.ErrInvalidArgument)
	}

	stamp := s.opts.Clock().Format("20060102-150405")
	switch format {
	case domain.ExportFormatCSV:
		data, err := renderCSV(header, rows)
		if err != nil {
			return nil, err
		}
		return &domain.ExportPayload{
			Filename:    fmt.Sprintf("%s-%s.csv", entity, stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case domain.ExportFormatExcel:
		// Excel opens tab-separated text transparently; good enough for a
		// simulated back office.
		data, err := renderTSV(header, rows)
		if err != nil {
			return nil, err
		}
		return &domain.ExportPayload{
			Filename:    fmt.Sprintf("%s-%s.xls", entity, stamp),
			ContentType: "application/vnd.ms-excel",
			Data:        data,
		}, nil
	case domain.ExportFormatPDF:
		return &domain.ExportPayload{
			Filename:    fmt.Sprintf("%s-%s.pdf", entity, stamp),
			ContentType: "application/pdf",
			Data:        renderStubPDF(entity, len(rows)),
		}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q: %w", format, domain.ErrInvalidArgument)
	}
}

func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderTSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderStubPDF emits a minimal single-page PDF naming the export and its
// row count.
func renderStubPDF(entity domain.ExportEntity, rowCount int) []byte {
	text := fmt.Sprintf("%s export (%d records)", entity, rowCount)
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	buf.WriteString("1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n")
	buf.WriteString("2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj\n")
	buf.WriteString("3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >> endobj\n")
	fmt.Fprintf(&buf, "4 0 obj << /Length %d >> stream\n%s\nendstream endobj\n", len(stream), stream)
	buf.WriteString("5 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj\n")
	buf.WriteString("trailer << /Root 1 0 R >>\n%%EOF\n")
	return buf.Bytes()
}
