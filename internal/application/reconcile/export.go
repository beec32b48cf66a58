package reconcile

import (
	"github.com/quietbooks/ledgersync/internal/tabular"
)

// WeChat export column names, applied positionally: the export embeds a
// human-readable preamble and does not self-describe its header in a way we
// trust, so column count and order are a contract with the provider. If the
// provider changes the layout, bump the schema version and the column list
// together; the scanner's row-shape check turns drift into a loud error
// instead of silently misaligned fields.
const (
	exportColTime      = "交易时间"
	exportColType      = "交易类型"
	exportColMerchant  = "交易对方"
	exportColItem      = "商品"
	exportColDirection = "收/支"
	exportColAmount    = "金额(元)"
	exportColMethod    = "支付方式"
	exportColStatus    = "当前状态"
	exportColTxnID     = "交易单号"
	exportColTradeID   = "商户单号"
	exportColRemark    = "备注"
)

// directionExpense is the 收/支 literal marking an expense row. All other
// rows (income, transfers, the embedded header row) are ignored.
const directionExpense = "支出"

// wechatSchemaVersion tracks the provider layout the pipeline understands.
const wechatSchemaVersion = 1

// wechatSchema returns the fixed layout of a WeChat Pay bill export:
// 16 preamble lines, then 11 positional columns.
func wechatSchema() tabular.FixedSchema {
	return tabular.FixedSchema{
		Version:   wechatSchemaVersion,
		SkipLines: 16,
		Columns: []string{
			exportColTime, exportColType, exportColMerchant, exportColItem,
			exportColDirection, exportColAmount, exportColMethod, exportColStatus,
			exportColTxnID, exportColTradeID, exportColRemark,
		},
	}
}
