package api

import (
	"context"
	"time"
)

// User is the account record returned by the backend. The session layer
// relies on ID, Username, Email and the boolean flags; everything else is
// carried for display and may grow without breaking this client.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`

	SplinterlandsUsername string `json:"splinterlands_username,omitempty"`
	HasPostingKey         bool   `json:"has_posting_key"`

	TradingEnabled          bool    `json:"trading_enabled"`
	MaxInvestmentPerCard    float64 `json:"max_investment_per_card"`
	MinimumProfitPercentage float64 `json:"minimum_profit_percentage"`
	AutoTradingEnabled      bool    `json:"auto_trading_enabled"`
	DailyBudget             float64 `json:"daily_budget"`
	BudgetUsedToday         float64 `json:"budget_used_today"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
	User      *User  `json:"user"`
}

// Registration is the payload sent to the register endpoint. Password
// confirmation is checked locally and never leaves the client.
type Registration struct {
	Username                string `json:"username"`
	Email                   string `json:"email"`
	Password                string `json:"password"`
	SplinterlandsUsername   string `json:"splinterlands_username,omitempty"`
	SplinterlandsPostingKey string `json:"splinterlands_posting_key,omitempty"`
}

// ActivityStatus describes what the trading bot is currently doing.
type ActivityStatus struct {
	IsActive     bool       `json:"is_active"`
	IsSearching  bool       `json:"is_searching"`
	LastScanTime *time.Time `json:"last_scan_time,omitempty"`
	NextScanTime *time.Time `json:"next_scan_time,omitempty"`
	ScanInterval int        `json:"scan_interval"`
	FoundDeals   int        `json:"found_deals"`
	Errors       int        `json:"errors"`
}

// Transaction is one entry of the trading journal.
type Transaction struct {
	ID               string     `json:"id"`
	CardName         string     `json:"card_name"`
	TransactionType  string     `json:"transaction_type"`
	Status           string     `json:"status"`
	Edition          string     `json:"edition"`
	Quantity         int        `json:"quantity"`
	PurchasePrice    float64    `json:"purchase_price"`
	SalePrice        *float64   `json:"sale_price,omitempty"`
	NetProfit        *float64   `json:"net_profit,omitempty"`
	ProfitPercentage *float64   `json:"profit_percentage,omitempty"`
	IsVerified       bool       `json:"is_verified"`
	CreatedAt        time.Time  `json:"created_at"`
	SaleDate         *time.Time `json:"sale_date,omitempty"`
}

// TransactionPage is one page of the trading journal.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
}

// TransactionQuery narrows and paginates the journal. Zero values are
// omitted from the request, leaving the server defaults in effect.
type TransactionQuery struct {
	SearchTerm string
	Status     string
	Page       int
	Limit      int
}

// LogEntry is one message from the server-side activity log.
type LogEntry struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardMetrics aggregates trading results for the dashboard view.
type DashboardMetrics struct {
	TotalInvested     float64   `json:"total_invested"`
	ConfirmedRevenue  float64   `json:"confirmed_revenue"`
	PendingRevenue    float64   `json:"pending_revenue"`
	ConfirmedProfits  float64   `json:"confirmed_profits"`
	PendingProfits    float64   `json:"pending_profits"`
	TotalTransactions int       `json:"total_transactions"`
	Currency          string    `json:"currency"`
	LastUpdated       time.Time `json:"last_updated"`
}

// Client is the transport-agnostic contract with the AutoTrader backend.
//
// SetToken installs the bearer token used on authenticated calls; an empty
// token reverts the client to anonymous requests.
type Client interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, reg *Registration) (*User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*User, error)
	ActivityStatus(ctx context.Context) (*ActivityStatus, error)
	DashboardMetrics(ctx context.Context) (*DashboardMetrics, error)
	Transactions(ctx context.Context, q TransactionQuery) (*TransactionPage, error)
	Logs(ctx context.Context, limit int) ([]LogEntry, error)
	SetToken(token string)
	Close() error
}
