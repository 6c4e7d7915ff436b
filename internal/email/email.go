package email

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Domenick1991/airport/internal/kafka"
)

// Sender writes order confirmation e-mails to a log sink.
type Sender struct {
	logger *log.Logger
}

func NewSender() *Sender {
	return NewSenderTo(os.Stdout)
}

func NewSenderTo(w io.Writer) *Sender {
	return &Sender{logger: log.New(w, "", log.LstdFlags)}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	if event.Type != kafka.EventOrderCreated {
		return nil
	}
	if event.Email == "" {
		log.Printf("skip email: order_id=%d has no recipient", event.OrderID)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	subject, body := Compose(event)
	s.logger.Printf("send email: to=%s subject=%q\n%s", event.Email, subject, body)
	return nil
}

// Compose renders the confirmation for an order_created event.
func Compose(event kafka.OrderEvent) (string, string) {
	subject := fmt.Sprintf("Your order #%d is confirmed", event.OrderID)

	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d placed at %s\n", event.OrderID, event.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	for _, t := range event.Tickets {
		fmt.Fprintf(&b, "  flight %d: row %d, seat %d\n", t.FlightID, t.Row, t.Seat)
	}
	return subject, b.String()
}
