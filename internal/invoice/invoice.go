// Package invoice renders the post-checkout order invoice. A Snapshot is
// captured at submission time from the order and branding settings, so the
// invoice stays renderable after the cart has been cleared.
package invoice

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
)

// Line is one purchased item as printed on the invoice.
type Line struct {
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Snapshot is the immutable invoice content for one submitted order.
type Snapshot struct {
	OrderCode         string          `json:"orderId"`
	Date              time.Time       `json:"date"`
	CustomerName      string          `json:"customerName"`
	Phone             string          `json:"phone"`
	Address           string          `json:"address"`
	Lines             []Line          `json:"items"`
	Total             decimal.Decimal `json:"total"`
	CurrencySymbol    string          `json:"currencySymbol"`
	LogoURL           string          `json:"logoUrl"`
	CurrencyImageURL  string          `json:"currencyImageUrl"`
	WebsiteBarcodeURL string          `json:"websiteBarcodeUrl"`
}

// FromOrder builds the snapshot from a stored order plus branding settings.
// settings may be nil when the branding lookup failed; the invoice then falls
// back to textual rendering.
func FromOrder(order *models.Order, settings *models.SiteSettings, currencySymbol string) *Snapshot {
	snap := &Snapshot{
		OrderCode:      order.OrderCode,
		Date:           order.Date,
		CustomerName:   order.CustomerName,
		Phone:          order.CustomerPhone,
		Address:        order.CustomerAddress,
		Total:          order.Total,
		CurrencySymbol: currencySymbol,
	}
	for _, item := range order.Items {
		snap.Lines = append(snap.Lines, Line{
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	if settings != nil {
		snap.LogoURL = settings.LogoURL
		snap.CurrencyImageURL = settings.CurrencyImageURL
		snap.WebsiteBarcodeURL = settings.WebsiteBarcodeURL
	}
	return snap
}

// Renderer turns snapshots into a printable HTML document.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the invoice template once.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("invoice").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}).Parse(invoiceHTML)
	if err != nil {
		return nil, fmt.Errorf("invoice: parsing template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the invoice document for the snapshot.
func (r *Renderer) Render(_ context.Context, snap *Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no invoice available")
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, snap); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering invoice")
	}
	return buf.Bytes(), nil
}

// Store keeps the latest invoice snapshot per shopper session. Snapshots are
// ephemeral: they survive the cart being cleared but not a process restart.
type Store struct {
	mu        sync.Mutex
	bySession map[string]*Snapshot
}

// NewStore builds an empty snapshot store.
func NewStore() *Store {
	return &Store{bySession: make(map[string]*Snapshot)}
}

// Put records the snapshot for the session, replacing any previous one.
func (s *Store) Put(sessionID string, snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySession[sessionID] = snap
}

// Get returns the session's snapshot, or nil when none exists.
func (s *Store) Get(sessionID string) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bySession[sessionID]
}

// Drop discards the session's snapshot.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bySession, sessionID)
}

const invoiceHTML = `<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="utf-8">
<title>فاتورة الطلب #{{.OrderCode}}</title>
<style>
body { background:#000; color:#fff; font-family:'Tajawal',sans-serif; margin:0; padding:24px; }
.invoice { max-width:28rem; margin:0 auto; }
.header { text-align:center; }
.header img { width:64px; height:64px; border-radius:50%; object-fit:contain; }
.header h1 { font-size:1.5rem; margin:16px 0 4px; }
.muted { color:#9ca3af; font-size:.75rem; }
.section-title { color:#c084fc; font-weight:bold; margin:8px 0; }
.panel { background:#18181b; border-radius:8px; padding:16px; font-size:.875rem; }
.row { display:flex; justify-content:space-between; margin:4px 0; }
.item { display:flex; justify-content:space-between; gap:16px; background:#18181b; border-radius:8px; padding:16px; margin-bottom:12px; }
.item img { width:60px; height:60px; border-radius:8px; object-fit:cover; }
.total { font-weight:bold; font-size:1.125rem; color:#c084fc; border-top:1px solid #27272a; padding-top:8px; }
hr { border:0; border-top:1px solid #27272a; margin:24px 0; }
.footer { text-align:center; color:#9ca3af; font-size:.75rem; }
.footer img { width:80px; height:80px; object-fit:contain; }
</style>
</head>
<body>
<div class="invoice">
  <div class="header">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="">{{end}}
    <h1>فاتورة الطلب</h1>
    <p class="muted">رقم الطلب: #{{.OrderCode}}</p>
    <p class="muted">التاريخ: {{.Date.Format "2006-01-02"}}</p>
  </div>
  <hr>
  <h2 class="section-title">تفاصيل العميل:</h2>
  <div class="panel">
    <div class="row"><span class="muted">اسم العميل</span><span>{{.CustomerName}}</span></div>
    <div class="row"><span class="muted">رقم التواصل</span><span>+967 {{.Phone}}</span></div>
    <div class="row"><span class="muted">العنوان</span><span>{{.Address}}</span></div>
  </div>
  <hr>
  <h2 class="section-title">ملخص الطلب:</h2>
  {{range .Lines}}
  <div class="item">
    <div style="display:flex;gap:16px;align-items:center">
      {{if .ImageURL}}<img src="{{.ImageURL}}" alt="">{{end}}
      <div>
        <p>{{.Name}}</p>
        <p class="muted">الكمية: {{.Quantity}}</p>
      </div>
    </div>
    <div>{{money .LineTotal}} {{if $.CurrencyImageURL}}<img src="{{$.CurrencyImageURL}}" width="16" height="16" alt="">{{else}}{{$.CurrencySymbol}}{{end}}</div>
  </div>
  {{end}}
  <hr>
  <div class="row"><span>المجموع الفرعي:</span><span>{{money .Total}} {{.CurrencySymbol}}</span></div>
  <div class="row muted"><span>رسوم التوصيل:</span><span>عند الاستلام</span></div>
  <div class="row total"><span>الإجمالي:</span><span>{{money .Total}} {{.CurrencySymbol}}</span></div>
  <hr>
  <div class="footer">
    <p>شكرًا لتسوقك مع عدسات بتول!</p>
    {{if .WebsiteBarcodeURL}}<img src="{{.WebsiteBarcodeURL}}" alt="">{{end}}
    <p>نظرة جديدة لعالمك.</p>
  </div>
</div>
</body>
</html>
`
