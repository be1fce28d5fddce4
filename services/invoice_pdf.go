package services

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
)

var (
	invoiceDark   = color.Color{Red: 38, Green: 38, Blue: 34}
	invoiceMedium = color.Color{Red: 121, Green: 119, Blue: 109}
)

// The core PDF fonts have no taka sign.
func pdfMoney(v float64) string {
	return fmt.Sprintf("BDT %.2f", v)
}

func summaryRow(m pdf.Maroto, label, value string, size float64, style consts.Style) {
	m.Row(5+size/4, func() {
		m.Col(7, func() {})
		m.Col(2, func() {
			m.Text(label, props.Text{Size: size, Style: style, Color: invoiceMedium, Align: consts.Right})
		})
		m.Col(3, func() {
			m.Text(value, props.Text{Size: size, Style: style, Color: invoiceDark, Align: consts.Right})
		})
	})
}

// GenerateInvoicePDF renders an A4 invoice for order. order.Items must be loaded.
func GenerateInvoicePDF(order *models.Order) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("INVOICE", props.Text{Size: 24, Style: consts.Bold, Color: invoiceDark})
		})
	})
	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("ONLINE BAZAR", props.Text{Size: 16, Style: consts.Bold, Color: invoiceDark})
		})
	})
	m.Row(8, func() {})

	addr := order.ShippingAddress.Data()
	addrLine := addr.Line1
	if addr.Line2 != "" {
		addrLine += ", " + addr.Line2
	}
	cityLine := addr.City
	if addr.Area != "" {
		cityLine = addr.Area + ", " + cityLine
	}
	if addr.PostalCode != "" {
		cityLine += " " + addr.PostalCode
	}

	billTo := []string{order.CustomerName, order.CustomerEmail, order.CustomerPhone, addrLine, cityLine}
	details := []string{
		fmt.Sprintf("Invoice #%s", order.OrderNumber),
		fmt.Sprintf("Date: %s", order.CreatedAt.Format("Jan 02, 2006")),
		fmt.Sprintf("Payment: %s (%s)", order.PaymentMethod, order.PaymentStatus),
		fmt.Sprintf("Status: %s", order.Status),
		"",
	}

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text("BILL TO", props.Text{Size: 8, Style: consts.Bold, Color: invoiceDark})
		})
		m.Col(6, func() {
			m.Text("INVOICE DETAILS", props.Text{Size: 8, Style: consts.Bold, Color: invoiceDark, Align: consts.Right})
		})
	})
	for i := range billTo {
		left, right := billTo[i], details[i]
		m.Row(5, func() {
			m.Col(6, func() {
				m.Text(left, props.Text{Size: 9, Color: invoiceMedium})
			})
			m.Col(6, func() {
				m.Text(right, props.Text{Size: 9, Color: invoiceMedium, Align: consts.Right})
			})
		})
	}

	m.Row(8, func() {})

	header := props.Text{Size: 8, Style: consts.Bold, Color: invoiceDark, Align: consts.Right}
	m.Row(6, func() {
		m.Col(6, func() {
			m.Text("Description", props.Text{Size: 8, Style: consts.Bold, Color: invoiceDark})
		})
		m.Col(1, func() { m.Text("Qty", header) })
		m.Col(2, func() { m.Text("Price", header) })
		m.Col(3, func() { m.Text("Total", header) })
	})

	cell := props.Text{Size: 9, Color: invoiceDark, Align: consts.Right}
	for _, item := range order.Items {
		name := item.Name
		if item.Size != "" || item.Color != "" {
			name = fmt.Sprintf("%s (%s %s)", name, item.Size, item.Color)
		}
		m.Row(6, func() {
			m.Col(6, func() {
				m.Text(name, props.Text{Size: 9, Color: invoiceDark})
			})
			m.Col(1, func() { m.Text(fmt.Sprintf("%d", item.Quantity), cell) })
			m.Col(2, func() { m.Text(pdfMoney(item.UnitPrice), cell) })
			m.Col(3, func() { m.Text(pdfMoney(item.LineTotal), cell) })
		})
	}

	m.Row(8, func() {})

	summaryRow(m, "Subtotal", pdfMoney(order.Subtotal), 9, consts.Normal)
	summaryRow(m, "Shipping", pdfMoney(order.ShippingFee), 9, consts.Normal)
	if order.Discount > 0 {
		label := "Discount"
		if order.CouponCode != "" {
			label = "Discount (" + order.CouponCode + ")"
		}
		summaryRow(m, label, "-"+pdfMoney(order.Discount), 9, consts.Normal)
	}
	if order.Tax > 0 {
		summaryRow(m, "Tax", pdfMoney(order.Tax), 9, consts.Normal)
	}
	summaryRow(m, "Total", pdfMoney(order.Total), 12, consts.Bold)

	m.Row(12, func() {})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Thank you for shopping with Online Bazar!", props.Text{Size: 8, Style: consts.Bold, Color: invoiceDark})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

// SendInvoice renders the invoice and mails it to the customer.
func SendInvoice(ctx context.Context, order *models.Order) error {
	body, err := GenerateInvoicePDF(order)
	if err != nil {
		return err
	}
	if err := GetMailer().Send(ctx, InvoiceEmail(order, body)); err != nil {
		return err
	}
	config.Log.Info("[order.invoice] invoice sent", "order_number", order.OrderNumber)
	return nil
}
