package classifier

import (
	"strings"

	"github.com/quietbooks/ledgersync/internal/domain/ledger"
)

// Result is the classification outcome merged into a new transaction.
type Result struct {
	Category string
	Product  string
	Platform string
}

// Classify walks the rules in declaration order and returns the labels of
// the first rule whose keyword set has a substring match anywhere in the
// merchant text. Plain substring containment, no tokenization or regexp.
//
// With no match the category stays at the 待分类 sentinel, the product at
// defaultProduct (the export's item field, or 未知商品 when that is empty),
// and the platform at 线下. A matching rule without a platform keeps the
// platform default too.
func Classify(rules []Rule, merchant, defaultProduct string) Result {
	if defaultProduct == "" {
		defaultProduct = ledger.DefaultProduct
	}
	res := Result{
		Category: ledger.DefaultCategory,
		Product:  defaultProduct,
		Platform: ledger.DefaultPlatform,
	}
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw == "" || !strings.Contains(merchant, kw) {
				continue
			}
			res.Category = rule.Category
			res.Product = rule.Product
			if rule.Platform != "" {
				res.Platform = rule.Platform
			}
			return res
		}
	}
	return res
}
