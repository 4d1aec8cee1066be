package main

import (
	"github.com/shotweave/shotweave/internal/api"
	"github.com/shotweave/shotweave/internal/breakdown"
	"github.com/shotweave/shotweave/internal/catalog"
	"github.com/shotweave/shotweave/internal/history"
	"github.com/shotweave/shotweave/internal/session"
)

type loginDoneMsg struct {
	user session.User
	err  error
}

type signupDoneMsg struct {
	message string
	err     error
}

type breakdownDoneMsg struct {
	result breakdown.Result
	err    error
}

type vendorsDoneMsg struct {
	vendors []catalog.Vendor
	err     error
}

type quoteDoneMsg struct {
	message string
	err     error
}

type riskDoneMsg struct {
	analysis api.RiskAnalysis
	err      error
}

type dprDoneMsg struct {
	message string
	err     error
}

type assetDoneMsg struct {
	message string
	err     error
}

type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}
