package fundsync

import (
	"errors"
	"os"
	"strings"
)

// TradeProps names the properties of the trades database.
type TradeProps struct {
	Code        string // rich_text, raw fund code
	Name        string // title or rich_text, fund display name
	Relation    string // relation to the holdings database
	HoldingDays string // formula (number), days the position has been held
	Fee         string // number, estimated redemption fee, written back
	Quantity    string // number, units held
	Amount      string // number, amount paid for the trade
	Profit      string // number, unrealized holding profit, written back
}

// HoldingProps names the properties of the holdings database.
type HoldingProps struct {
	Title     string // title, fund display name
	Code      string // rich_text, 6-digit fund code
	UnitNAV   string // number, settled net value per unit
	EstNAV    string // number, estimated net value per unit
	ChangePct string // number, estimated change percent
	ValuedAt  string // date, feed valuation time
	Source    string // select, feed source label
	UpdatedAt string // date, when this tool last wrote the page
	Cost      string // number/formula/rollup, cost basis
	Weight    string // number, portfolio weight as a fraction, written back
	Dashboard string // relation, optional link to the dashboard marker page
}

// Config carries everything a run needs. Property names default to the
// ledger's original Notion schema and can be overridden per deployment
// through FUNDSYNC_PROP_* variables.
type Config struct {
	Token       string // Notion integration token, mandatory
	HoldingsDB  string // holdings database id, mandatory
	TradesDB    string // trades database id; link and metric phases need it
	DashboardDB string // dashboard database id; enables the dashboard tagger

	Trade   TradeProps
	Holding HoldingProps

	TradePageSize   int
	HoldingPageSize int
}

// DefaultConfig returns a config with the original ledger schema names.
func DefaultConfig() Config {
	return Config{
		Trade: TradeProps{
			Code:        "Code",
			Name:        "基金名称",
			Relation:    "Fund 持仓",
			HoldingDays: "持仓时间",
			Fee:         "预估卖出费率",
			Quantity:    "持仓份额",
			Amount:      "交易金额",
			Profit:      "持有收益",
		},
		Holding: HoldingProps{
			Title:     "基金名称",
			Code:      "Code",
			UnitNAV:   "单位净值",
			EstNAV:    "估算净值",
			ChangePct: "估算涨跌幅",
			ValuedAt:  "估值时间",
			Source:    "来源",
			UpdatedAt: "更新于",
			Cost:      "持仓成本",
			Weight:    "仓位",
			Dashboard: "Dashboard",
		},
		TradePageSize:   50,
		HoldingPageSize: 100,
	}
}

// ConfigFromEnv builds a Config from the environment on top of the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Token = strings.TrimSpace(os.Getenv("NOTION_TOKEN"))
	cfg.HoldingsDB = strings.TrimSpace(os.Getenv("HOLDINGS_DB_ID"))
	if cfg.HoldingsDB == "" {
		// legacy name from before the trades database existed
		cfg.HoldingsDB = strings.TrimSpace(os.Getenv("NOTION_DATABASE_ID"))
	}
	cfg.TradesDB = strings.TrimSpace(os.Getenv("TRADES_DB_ID"))
	cfg.DashboardDB = strings.TrimSpace(os.Getenv("DASHBOARD_DB_ID"))

	prop := func(key string, target *string) {
		if v := strings.TrimSpace(os.Getenv("FUNDSYNC_PROP_" + key)); v != "" {
			*target = v
		}
	}
	prop("TRADE_CODE", &cfg.Trade.Code)
	prop("TRADE_NAME", &cfg.Trade.Name)
	prop("TRADE_RELATION", &cfg.Trade.Relation)
	prop("TRADE_HOLDING_DAYS", &cfg.Trade.HoldingDays)
	prop("TRADE_FEE", &cfg.Trade.Fee)
	prop("TRADE_QUANTITY", &cfg.Trade.Quantity)
	prop("TRADE_AMOUNT", &cfg.Trade.Amount)
	prop("TRADE_PROFIT", &cfg.Trade.Profit)
	prop("HOLDING_TITLE", &cfg.Holding.Title)
	prop("HOLDING_CODE", &cfg.Holding.Code)
	prop("HOLDING_UNIT_NAV", &cfg.Holding.UnitNAV)
	prop("HOLDING_EST_NAV", &cfg.Holding.EstNAV)
	prop("HOLDING_CHANGE_PCT", &cfg.Holding.ChangePct)
	prop("HOLDING_VALUED_AT", &cfg.Holding.ValuedAt)
	prop("HOLDING_SOURCE", &cfg.Holding.Source)
	prop("HOLDING_UPDATED_AT", &cfg.Holding.UpdatedAt)
	prop("HOLDING_COST", &cfg.Holding.Cost)
	prop("HOLDING_WEIGHT", &cfg.Holding.Weight)
	prop("HOLDING_DASHBOARD", &cfg.Holding.Dashboard)
	return cfg
}

// Validate checks the mandatory settings. A missing trades database is not
// an error: the phases that need it degrade to a warning at run time.
func (c Config) Validate() error {
	if c.Token == "" {
		return errors.New("NOTION_TOKEN is not set")
	}
	if c.HoldingsDB == "" {
		return errors.New("HOLDINGS_DB_ID is not set (NOTION_DATABASE_ID is accepted as an alias)")
	}
	return nil
}
