// Package myfxbook talks to the Myfxbook proxy. The proxy owns
// authentication details; this client only moves JSON and unwraps the
// {error, message} envelope every endpoint shares.
package myfxbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ea-sentinel/internal/api"
	"ea-sentinel/internal/logger"
	"ea-sentinel/internal/trace"
	"ea-sentinel/internal/types"
)

type Client struct {
	api *api.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		api: api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithTimeout(timeout),
			api.WithHeader("Accept", "application/json"),
		),
	}
}

type envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func (e envelope) check(op string) error {
	if e.Error {
		if e.Message == "" {
			return fmt.Errorf("myfxbook %s failed", op)
		}
		return fmt.Errorf("myfxbook %s: %s", op, e.Message)
	}
	return nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "myfxbook-login")
	defer span.End()

	var resp struct {
		envelope
		Session string `json:"session"`
	}
	if err := c.api.PostJSON(ctx, "/login.json", map[string]string{
		"email":    email,
		"password": password,
	}, &resp); err != nil {
		return "", err
	}
	if err := resp.check("login"); err != nil {
		return "", err
	}
	if resp.Session == "" {
		return "", errors.New("myfxbook login ok but session is empty")
	}
	logger.Debug(ctx, "Myfxbook session opened")
	return resp.Session, nil
}

// MyAccounts lists the accounts visible to the session.
func (c *Client) MyAccounts(ctx context.Context, session string) ([]types.Account, error) {
	ctx, span := trace.StartSpan(ctx, "myfxbook-accounts")
	defer span.End()

	var resp struct {
		envelope
		Accounts []struct {
			types.Account
			Server struct {
				Name string `json:"name"`
			} `json:"server"`
		} `json:"accounts"`
	}
	if err := c.api.PostJSON(ctx, "/get-my-accounts.json", map[string]string{"session": session}, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("get-my-accounts"); err != nil {
		return nil, err
	}

	accounts := make([]types.Account, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		acc := a.Account
		if acc.Broker == "" {
			acc.Broker = a.Server.Name
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// History fetches the closed-trade history of one account. Records come back
// in whatever order the broker feels like; ConvertHistory sorts them.
func (c *Client) History(ctx context.Context, session string, accountID int) ([]types.HistoryRecord, error) {
	ctx, span := trace.StartSpan(ctx, "myfxbook-history")
	defer span.End()

	var resp struct {
		envelope
		History []types.HistoryRecord `json:"history"`
	}
	if err := c.api.PostJSON(ctx, "/get-history.json", map[string]any{
		"session": session,
		"id":      accountID,
	}, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("get-history"); err != nil {
		return nil, err
	}
	logger.Debug(ctx, "Fetched account history", "account_id", accountID, "records", len(resp.History))
	return resp.History, nil
}

// OpenTrades fetches currently open positions. Not part of the analysis
// pipeline, surfaced for dashboard panels.
func (c *Client) OpenTrades(ctx context.Context, session string, accountID int) ([]types.HistoryRecord, error) {
	ctx, span := trace.StartSpan(ctx, "myfxbook-open-trades")
	defer span.End()

	var resp struct {
		envelope
		OpenTrades []types.HistoryRecord `json:"openTrades"`
	}
	if err := c.api.PostJSON(ctx, "/get-open-trades.json", map[string]any{
		"session": session,
		"id":      accountID,
	}, &resp); err != nil {
		return nil, err
	}
	if err := resp.check("get-open-trades"); err != nil {
		return nil, err
	}
	return resp.OpenTrades, nil
}
