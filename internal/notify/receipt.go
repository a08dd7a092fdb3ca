package notify

import (
	"html/template"
	"strings"
	"time"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

// Receipt is the notification payload built after a successful capture.
// Items may be empty when the pending-order metadata already expired;
// the receipt then simply has no itemized table.
type Receipt struct {
	TransactionID string
	Amount        string
	Currency      string
	Description   string
	PayerName     string
	PayerEmail    string
	When          time.Time
	Items         []domain.LineItem
}

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"orDefault": func(s, def string) string {
		if s == "" {
			return def
		}
		return s
	},
}).Parse(`<div style="font-family:system-ui,Segoe UI,Roboto,Arial;line-height:1.5;">
  <h2 style="margin:0 0 8px">Thank you for your purchase!</h2>
  <p style="margin:0 0 6px">Hello {{orDefault .PayerName "Customer"}} ({{orDefault .PayerEmail "N/A"}}),</p>
  <p style="margin:0 0 10px">We have received your payment.</p>
  <ul style="padding-left:16px;margin:0 0 10px">
    <li><strong>Transaction ID:</strong> {{.TransactionID}}</li>
    <li><strong>Amount:</strong> {{.Currency}} {{.Amount}}</li>
    <li><strong>Description:</strong> {{.Description}}</li>
    <li><strong>Date:</strong> {{.When.Format "1/2/2006, 3:04:05 PM"}}</li>
  </ul>
{{- if .Items}}
  <table style="width:100%;border-collapse:collapse;margin:10px 0">
    <thead>
      <tr>
        <th style="text-align:left;border-bottom:1px solid #e5e7eb;padding:6px 4px">Item</th>
        <th style="text-align:right;border-bottom:1px solid #e5e7eb;padding:6px 4px">Qty</th>
        <th style="text-align:right;border-bottom:1px solid #e5e7eb;padding:6px 4px">Price</th>
        <th style="text-align:right;border-bottom:1px solid #e5e7eb;padding:6px 4px">Total</th>
      </tr>
    </thead>
    <tbody>
{{- range .Items}}
      <tr>
        <td style="padding:6px 4px">{{.Name}}{{if .Store}} <span style="color:#6b7280">( {{.Store}} )</span>{{end}}</td>
        <td style="padding:6px 4px;text-align:right">{{.Quantity}}</td>
        <td style="padding:6px 4px;text-align:right">{{orDefault .Currency $.Currency}} {{.UnitPrice}}</td>
        <td style="padding:6px 4px;text-align:right">{{orDefault .Currency $.Currency}} {{.LineTotal}}</td>
      </tr>
{{- end}}
    </tbody>
  </table>
{{- end}}
  <p style="margin:10px 0 0">If you have any questions, just reply to this email.</p>
</div>`))

// HTML renders the receipt email body.
func (r Receipt) HTML() (string, error) {
	var sb strings.Builder
	if err := receiptTmpl.Execute(&sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}
