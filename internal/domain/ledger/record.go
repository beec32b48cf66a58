// Package ledger defines the household ledger record and the two text
// conventions it is written in: the localized long-form purchase date
// (e.g. 2024年3月5日) and the two-decimal amount in yuan.
//
// The ledger CSV and the JSON snapshot both use the Chinese column
// spellings below as field names, so they are declared once here and
// shared by the readers, the writers, and the API layer.
package ledger

import (
	"time"

	"github.com/pkg/errors"
)

// Ledger CSV column names, in the order they are written.
const (
	ColProduct  = "所购商品"
	ColQuantity = "数量"
	ColDate     = "购买日期"
	ColAmount   = "金额（元）"
	ColCategory = "类别"
	ColNote     = "备注"
	ColPlatform = "购物平台"
)

// Columns is the fixed header of the ledger CSV.
var Columns = []string{ColProduct, ColQuantity, ColDate, ColAmount, ColCategory, ColNote, ColPlatform}

// Sentinel values for fields no rule has filled in.
const (
	DefaultProduct  = "未知商品"
	DefaultCategory = "待分类"
	DefaultPlatform = "线下"
)

// DateLayout is the locale long-form layout used for 购买日期 in both the
// ledger and freshly produced records. Fingerprinting and sorting re-parse
// this exact text form, so it must never drift between readers and writers.
const DateLayout = "2006年1月2日"

// ExportTimeLayout is the timestamp layout of the WeChat 交易时间 column.
const ExportTimeLayout = "2006-01-02 15:04:05"

// Record is one ledger row. JSON tags carry the ledger's original field
// spellings so the snapshot mirrors the CSV schema.
type Record struct {
	Product      string `json:"所购商品"`
	Quantity     string `json:"数量"`
	PurchaseDate string `json:"购买日期"`
	Amount       Amount `json:"金额（元）"`
	Category     string `json:"类别"`
	Note         string `json:"备注"`
	Platform     string `json:"购物平台"`
}

// Row projects the record into the fixed ledger column order.
func (r Record) Row() []string {
	return []string{r.Product, r.Quantity, r.PurchaseDate, r.Amount.String(), r.Category, r.Note, r.Platform}
}

// ParseDate parses a 购买日期 value. Zero-padded月/日 are accepted.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid purchase date %q", s)
	}
	return t, nil
}

// FormatDate renders a time in the ledger's long-form date convention.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseExportTime parses a WeChat 交易时间 value.
func ParseExportTime(s string) (time.Time, error) {
	t, err := time.Parse(ExportTimeLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid transaction time %q", s)
	}
	return t, nil
}
