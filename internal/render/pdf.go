package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/cuencos-cuarzo/boletos/internal/domain"
)

// Renderer writes a ticket document to w.
type Renderer interface {
	Render(ticket domain.Ticket, w io.Writer) error
}

// PDFRenderer lays out a one-page ticket with an embedded QR code.
type PDFRenderer struct {
	qrSize   int
	qrEdgeMM float64
}

// NewPDFRenderer constructs the renderer.
func NewPDFRenderer() *PDFRenderer {
	// 150pt, the size the printed tickets have always used.
	return &PDFRenderer{qrSize: DefaultQRSize, qrEdgeMM: 52.9}
}

// Render encodes the ticket id as a QR code and writes the PDF to w.
func (r *PDFRenderer) Render(ticket domain.Ticket, w io.Writer) error {
	qr, err := EncodeQR(ticket.ID, r.qrSize)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Boleto de Entrada", true)
	pdf.SetAuthor(ticket.EventName, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 14, tr("Boleto de Entrada"), "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 20)
	pdf.CellFormat(0, 10, tr(ticket.EventName), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 14)
	for _, line := range []string{
		"Nombre: " + ticket.Name,
		"Correo: " + ticket.Email,
		ticket.EventDateTime,
		ticket.Venue,
		"ID del Boleto: " + ticket.ID,
	} {
		pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	imageName := "qr-" + ticket.ID
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(qr))
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions(imageName, (pageW-r.qrEdgeMM)/2, pdf.GetY(), r.qrEdgeMM, r.qrEdgeMM, false, opts, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("layout ticket pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write ticket pdf: %w", err)
	}
	return nil
}
