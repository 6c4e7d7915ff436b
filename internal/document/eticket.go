package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/phpdave11/gofpdf"
)

// ETicketFilename is the download name for the tickets of one order.
func ETicketFilename(orderID int64) string {
	return fmt.Sprintf("order-%d-tickets.pdf", orderID)
}

// RenderETickets renders one A4 page per ticket of the order.
func RenderETickets(order *domain.Order, passenger string) ([]byte, error) {
	if order == nil || len(order.Tickets) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Order #%d", order.ID), false)

	for _, t := range order.Tickets {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 18)
		pdf.Cell(0, 10, "E-TICKET")
		pdf.Ln(12)

		pdf.SetFont("Helvetica", "", 12)
		lines := []string{
			fmt.Sprintf("Passenger : %s", orDash(passenger)),
			fmt.Sprintf("Order     : #%d (%s)", order.ID, order.CreatedAt.UTC().Format("2006-01-02 15:04")),
			fmt.Sprintf("Ticket    : TCK-%d-%d", order.ID, t.ID),
			fmt.Sprintf("Flight    : #%d", t.FlightID),
			fmt.Sprintf("Route     : %s", orDash(t.Route)),
			fmt.Sprintf("Departure : %s", departure(t.DepartureTime)),
			fmt.Sprintf("Seat      : row %d, seat %d", t.Row, t.Seat.Seat),
		}
		for _, line := range lines {
			pdf.Cell(0, 7, line)
			pdf.Ln(7)
		}

		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "One ticket is valid for one passenger and one seat. Boarding closes before departure.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render e-tickets: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func departure(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04 MST")
}
