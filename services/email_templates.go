package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
)

const storeName = "Online Bazar"

var emailTemplates = template.Must(template.New("emails").Funcs(template.FuncMap{
	"money": formatMoney,
	"title": func(s string) string {
		s = strings.ReplaceAll(s, "_", " ")
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}).Parse(`
{{define "layout_start"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>{{.Subject}}</title></head>
<body style="margin: 0; padding: 16px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif; background-color: #fafaf7; line-height: 1.5;">
<table width="100%" cellpadding="0" cellspacing="0" border="0" style="max-width: 640px; margin: auto; background: #ffffff; padding: 24px;">
<tr><td style="border-bottom: 1px solid #e5e5e0; padding-bottom: 16px;"><h1 style="margin: 0; font-size: 24px; color: #262622;">ONLINE BAZAR</h1></td></tr>
{{end}}

{{define "layout_end"}}<tr><td style="padding-top: 16px; border-top: 1px solid #e5e5e0;">
<p style="font-size: 12px; color: #79776d;">You are receiving this email because of activity on Online Bazar.</p>
</td></tr></table></body></html>{{end}}

{{define "lines"}}<table width="100%" cellpadding="0" cellspacing="0" border="0">
<thead><tr>
<th style="text-align: left; font-size: 12px; text-transform: uppercase; color: #262622; padding-bottom: 8px;">Item</th>
<th style="text-align: right; font-size: 12px; text-transform: uppercase; color: #262622; padding-bottom: 8px;">Qty</th>
<th style="text-align: right; font-size: 12px; text-transform: uppercase; color: #262622; padding-bottom: 8px;">Total</th>
</tr></thead><tbody>
{{range .}}<tr>
<td style="padding: 8px 0; font-size: 14px; color: #262622;">{{.Name}}{{if .Size}} / {{.Size}}{{end}}{{if .Color}} / {{.Color}}{{end}}</td>
<td style="padding: 8px 0; font-size: 14px; text-align: right; color: #262622;">{{.Quantity}}</td>
<td style="padding: 8px 0; font-size: 14px; text-align: right; font-weight: 600; color: #262622;">{{money .LineTotal}}</td>
</tr>{{end}}
</tbody></table>{{end}}

{{define "cart_reminder"}}{{template "layout_start" .}}
<tr><td style="padding: 16px 0;">
<p style="font-size: 16px; color: #262622;">Hi {{if .Cart.CustomerName}}{{.Cart.CustomerName}}{{else}}there{{end}},</p>
<p style="font-size: 14px; color: #262622;">{{if eq .Wave 1}}You left a few things in your cart.{{else}}Your cart is still waiting for you.{{end}} We saved it so you can pick up where you left off.</p>
{{template "lines" .Cart.Lines}}
<p style="font-size: 14px; font-weight: bold; color: #262622;">Subtotal: {{money .Cart.Subtotal}}</p>
<p style="padding: 16px 0;"><a href="{{.URL}}" style="background: #262622; color: #ffffff; padding: 12px 24px; text-decoration: none; font-size: 14px;">Return to your cart</a></p>
</td></tr>
{{template "layout_end" .}}{{end}}

{{define "order_confirmation"}}{{template "layout_start" .}}
<tr><td style="padding: 16px 0;">
<p style="font-size: 16px; color: #262622;">Thank you, {{.Order.CustomerName}}!</p>
<p style="font-size: 14px; color: #262622;">We received your order <strong>{{.Order.OrderNumber}}</strong>. Payment: {{if eq .Order.PaymentMethod "cod"}}cash on delivery{{else}}card{{end}}.</p>
{{template "lines" .Order.Items}}
<table align="right" width="260" cellpadding="0" cellspacing="0" border="0">
<tr><td style="font-size: 14px; color: #79776d;">Subtotal</td><td style="text-align: right; font-size: 14px;">{{money .Order.Subtotal}}</td></tr>
<tr><td style="font-size: 14px; color: #79776d;">Shipping</td><td style="text-align: right; font-size: 14px;">{{money .Order.ShippingFee}}</td></tr>
{{if gt .Order.Discount 0.0}}<tr><td style="font-size: 14px; color: #79776d;">Discount</td><td style="text-align: right; font-size: 14px;">-{{money .Order.Discount}}</td></tr>{{end}}
{{if gt .Order.Tax 0.0}}<tr><td style="font-size: 14px; color: #79776d;">Tax</td><td style="text-align: right; font-size: 14px;">{{money .Order.Tax}}</td></tr>{{end}}
<tr><td style="font-size: 14px; font-weight: bold; border-top: 1px solid #e5e5e0; padding-top: 8px;">Total</td><td style="text-align: right; font-size: 16px; font-weight: bold; border-top: 1px solid #e5e5e0; padding-top: 8px;">{{money .Order.Total}}</td></tr>
</table>
</td></tr>
{{template "layout_end" .}}{{end}}

{{define "order_status"}}{{template "layout_start" .}}
<tr><td style="padding: 16px 0;">
<p style="font-size: 16px; color: #262622;">Hi {{.Order.CustomerName}},</p>
<p style="font-size: 14px; color: #262622;">Your order <strong>{{.Order.OrderNumber}}</strong> is now <strong>{{title .Order.Status}}</strong>.</p>
{{if .Order.CancelReason}}<p style="font-size: 14px; color: #79776d;">Reason: {{.Order.CancelReason}}</p>{{end}}
</td></tr>
{{template "layout_end" .}}{{end}}

{{define "invoice"}}{{template "layout_start" .}}
<tr><td style="padding: 16px 0;">
<p style="font-size: 14px; color: #262622;">Hi {{.Order.CustomerName}}, your invoice for order <strong>{{.Order.OrderNumber}}</strong> is attached.</p>
<p style="font-size: 14px; font-weight: bold; color: #262622;">Total: {{money .Order.Total}}</p>
</td></tr>
{{template "layout_end" .}}{{end}}

{{define "registration"}}{{template "layout_start" .}}
<tr><td style="padding: 16px 0;">
<p style="font-size: 16px; color: #262622;">Hi {{.Registration.FullName}},</p>
<p style="font-size: 14px; color: #262622;">Your registration for <strong>{{.Registration.Program}}</strong> was received. Status: {{title .Registration.Status}}.</p>
</td></tr>
{{template "layout_end" .}}{{end}}
`))

func formatMoney(v float64) string {
	return fmt.Sprintf("৳%.2f", v)
}

func renderEmail(name string, data map[string]any) string {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		config.Log.Error("[mailer] failed to render template", "template", name, "error", err)
		return ""
	}
	return buf.String()
}

func CartReminderEmail(cart *models.AbandonedCart, wave int, url string) Email {
	subject := "You left something in your cart"
	if wave > 1 {
		subject = "Your cart is still waiting"
	}
	return Email{
		To:      cart.CustomerEmail,
		Subject: subject,
		HTML:    renderEmail("cart_reminder", map[string]any{"Subject": subject, "Cart": cart, "Wave": wave, "URL": url}),
		Text:    fmt.Sprintf("Your %s cart (%s) is saved. Return to it here: %s", storeName, formatMoney(cart.Subtotal), url),
	}
}

func OrderConfirmationEmail(order *models.Order) Email {
	subject := fmt.Sprintf("Order %s confirmed", order.OrderNumber)
	return Email{
		To:      order.CustomerEmail,
		Subject: subject,
		HTML:    renderEmail("order_confirmation", map[string]any{"Subject": subject, "Order": order}),
	}
}

func OrderStatusEmail(order *models.Order) Email {
	subject := fmt.Sprintf("Order %s is %s", order.OrderNumber, order.Status)
	return Email{
		To:      order.CustomerEmail,
		Subject: subject,
		HTML:    renderEmail("order_status", map[string]any{"Subject": subject, "Order": order}),
	}
}

func InvoiceEmail(order *models.Order, pdf []byte) Email {
	subject := fmt.Sprintf("Your invoice #%s from %s", order.OrderNumber, storeName)
	return Email{
		To:      order.CustomerEmail,
		Subject: subject,
		HTML:    renderEmail("invoice", map[string]any{"Subject": subject, "Order": order}),
		Attachments: []Attachment{{
			Filename: fmt.Sprintf("invoice-%s.pdf", order.OrderNumber),
			Content:  pdf,
		}},
	}
}

func RegistrationEmail(reg *models.Registration) Email {
	subject := fmt.Sprintf("Registration received: %s", reg.Program)
	return Email{
		To:      reg.Email,
		Subject: subject,
		HTML:    renderEmail("registration", map[string]any{"Subject": subject, "Registration": reg}),
	}
}
