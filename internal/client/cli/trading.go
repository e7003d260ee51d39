package cli

import (
	"context"
	"fmt"

	"github.com/mgiraud/autotrader/internal/client/api"
)

// Status shows what the trading bot is currently doing.
func (a *App) Status(ctx context.Context) error {
	st, err := a.client.ActivityStatus(ctx)
	if err != nil {
		printlnFn("Failed to fetch status:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("active: %v, searching: %v", st.IsActive, st.IsSearching))
	printlnFn(fmt.Sprintf("deals found: %d, errors: %d, scan interval: %d min",
		st.FoundDeals, st.Errors, st.ScanInterval))
	if st.LastScanTime != nil {
		printlnFn("last scan:", st.LastScanTime.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// transactionsPageSize bounds how much of the journal one command shows.
const transactionsPageSize = 20

// logsLimit bounds how many activity log entries one command shows.
const logsLimit = 50

// Transactions shows the most recent page of the trading journal.
func (a *App) Transactions(ctx context.Context) error {
	page, err := a.client.Transactions(ctx, api.TransactionQuery{Page: 1, Limit: transactionsPageSize})
	if err != nil {
		printlnFn("Failed to fetch transactions:", err.Error())
		return err
	}

	if len(page.Transactions) == 0 {
		printlnFn("No transactions yet.")
		return nil
	}

	printlnFn(fmt.Sprintf("showing %d of %d transactions", len(page.Transactions), page.Total))
	for _, tx := range page.Transactions {
		line := fmt.Sprintf("%s  %-4s %-10s %q x%d @ %.3f",
			tx.CreatedAt.Format("2006-01-02"), tx.TransactionType, tx.Status, tx.CardName, tx.Quantity, tx.PurchasePrice)
		if tx.NetProfit != nil {
			line += fmt.Sprintf("  profit %.3f", *tx.NetProfit)
		}
		printlnFn(line)
	}
	return nil
}

// Logs shows the most recent server-side activity log entries.
func (a *App) Logs(ctx context.Context) error {
	entries, err := a.client.Logs(ctx, logsLimit)
	if err != nil {
		printlnFn("Failed to fetch logs:", err.Error())
		return err
	}

	if len(entries) == 0 {
		printlnFn("No log entries.")
		return nil
	}

	for _, e := range entries {
		printlnFn(fmt.Sprintf("%s [%s] %s", e.Timestamp.Format("15:04:05"), e.Level, e.Message))
	}
	return nil
}

// Dashboard shows aggregated trading results.
func (a *App) Dashboard(ctx context.Context) error {
	m, err := a.client.DashboardMetrics(ctx)
	if err != nil {
		printlnFn("Failed to fetch dashboard:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("invested: %.2f %s over %d transactions", m.TotalInvested, m.Currency, m.TotalTransactions))
	printlnFn(fmt.Sprintf("revenue:  %.2f confirmed, %.2f pending", m.ConfirmedRevenue, m.PendingRevenue))
	printlnFn(fmt.Sprintf("profit:   %.2f confirmed, %.2f pending", m.ConfirmedProfits, m.PendingProfits))
	return nil
}
