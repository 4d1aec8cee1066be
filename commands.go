package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/shotweave/shotweave/internal/api"
	"github.com/shotweave/shotweave/internal/history"
	"github.com/shotweave/shotweave/internal/quote"
)

func loginCmd(c *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		u, err := c.Login(context.Background(), username, password)
		return loginDoneMsg{user: u, err: err}
	}
}

func signupCmd(c *api.Client, req api.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		msg, err := c.Signup(context.Background(), req)
		return signupDoneMsg{message: msg, err: err}
	}
}

func breakdownCmd(c *api.Client, scriptText string) tea.Cmd {
	return func() tea.Msg {
		result, err := c.ScriptBreakdown(context.Background(), scriptText)
		return breakdownDoneMsg{result: result, err: err}
	}
}

func vendorsCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		vendors, err := c.VendorList(context.Background())
		return vendorsDoneMsg{vendors: vendors, err: err}
	}
}

func submitQuoteCmd(c *api.Client, j *history.Journal, logger *zap.Logger, sub quote.Submission) tea.Cmd {
	return func() tea.Msg {
		msg, err := c.SubmitQuote(context.Background(), sub)
		if err == nil {
			record(j, logger, history.KindQuote,
				fmt.Sprintf("Quote to %s (%d days, %s)", sub.VendorName, sub.Days, sub.Scale))
		}
		return quoteDoneMsg{message: msg, err: err}
	}
}

func riskCmd(c *api.Client, in api.RiskInput) tea.Cmd {
	return func() tea.Msg {
		analysis, err := c.RiskMeter(context.Background(), in)
		return riskDoneMsg{analysis: analysis, err: err}
	}
}

func dprCmd(c *api.Client, j *history.Journal, logger *zap.Logger, report api.DPRReport) tea.Cmd {
	return func() tea.Msg {
		msg, err := c.SubmitDPR(context.Background(), report)
		if err == nil {
			record(j, logger, history.KindDPR,
				fmt.Sprintf("DPR: %d scenes, %.0f spend, %d min delay", report.ScenesShot, report.DailySpend, report.DelayMinutes))
		}
		return dprDoneMsg{message: msg, err: err}
	}
}

func assetCmd(c *api.Client, j *history.Journal, logger *zap.Logger, assetID, newStatus string) tea.Cmd {
	return func() tea.Msg {
		msg, err := c.UpdateAssetStatus(context.Background(), assetID, newStatus)
		if err == nil {
			record(j, logger, history.KindAsset,
				fmt.Sprintf("Asset %s -> %s", assetID, newStatus))
		}
		return assetDoneMsg{message: msg, err: err}
	}
}

func recentCmd(j *history.Journal) tea.Cmd {
	return func() tea.Msg {
		if j == nil {
			return historyLoadedMsg{}
		}
		entries, err := j.Recent(10)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// record appends to the journal; failures are logged and swallowed so
// the submission they describe still succeeds.
func record(j *history.Journal, logger *zap.Logger, kind, summary string) {
	if j == nil {
		return
	}
	if _, err := j.Record(kind, summary); err != nil && logger != nil {
		logger.Warn("journal write failed", zap.String("kind", kind), zap.Error(err))
	}
}
