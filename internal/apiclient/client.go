// Package apiclient is the HTTP client for the fintrack backend. Every
// request carries the session's bearer credential, waits at most the
// configured timeout, and treats any non-2xx response as a remote failure —
// never as a success to be parsed.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/category"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/session"
)

// Client talks to the backend's /api/v1 surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    session.Session
}

// New returns a Client rooted at baseURL. The timeout bounds every call;
// there are no retries, so a failure surfaces after at most one wait.
func New(baseURL string, sess session.Session, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    sess,
	}
}

// expenseEnvelope matches the server's single-expense response body.
type expenseEnvelope struct {
	Expense models.Expense `json:"expense"`
}

// budgetsEnvelope matches the server's budget mapping response body.
type budgetsEnvelope struct {
	Budgets map[category.Category]decimal.Decimal `json:"budgets"`
}

// ListExpenses fetches the full expense sequence, walking the server's
// pages until exhausted.
func (c *Client) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	var all []models.Expense
	for page := 1; ; page++ {
		var resp pagination.PageResponse[models.Expense]
		path := fmt.Sprintf("/expenses?page=%d&page_size=100", page)
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Data...)
		if page >= resp.TotalPages {
			break
		}
	}
	return all, nil
}

// CreateExpense posts a new expense and returns the created record.
func (c *Client) CreateExpense(ctx context.Context, e models.Expense) (*models.Expense, error) {
	var resp expenseEnvelope
	if err := c.do(ctx, http.MethodPost, "/expenses", e, &resp); err != nil {
		return nil, err
	}
	return &resp.Expense, nil
}

// UpdateExpense replaces the expense with the given ID and returns the
// updated record.
func (c *Client) UpdateExpense(ctx context.Context, e models.Expense) (*models.Expense, error) {
	var resp expenseEnvelope
	if err := c.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(e.ID), e, &resp); err != nil {
		return nil, err
	}
	return &resp.Expense, nil
}

// DeleteExpense removes the expense with the given ID.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, nil)
}

// ListBudgets fetches the budget-limit mapping.
func (c *Client) ListBudgets(ctx context.Context) (map[category.Category]decimal.Decimal, error) {
	var resp budgetsEnvelope
	if err := c.do(ctx, http.MethodGet, "/budgets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Budgets, nil
}

// PutBudgetLimit upserts one category's monthly limit. The contract is
// keyed per category; the client never sends the whole mapping.
func (c *Client) PutBudgetLimit(ctx context.Context, cat category.Category, amount decimal.Decimal) error {
	body := map[string]decimal.Decimal{"amount": amount}
	return c.do(ctx, http.MethodPut, "/budgets/"+url.PathEscape(string(cat)), body, nil)
}

// DeleteBudgetLimit unsets one category's monthly limit.
func (c *Client) DeleteBudgetLimit(ctx context.Context, cat category.Category) error {
	return c.do(ctx, http.MethodDelete, "/budgets/"+url.PathEscape(string(cat)), nil, nil)
}

// errorEnvelope matches the server's error response body.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	credential := c.session.Credential()
	if credential == "" {
		return apperrors.ErrAuthNotReady
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+path, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRemoteFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error.Code != "" {
			return apperrors.Wrap(apperrors.ErrRemoteFailure,
				fmt.Errorf("%s %s: %d %s: %s", method, path, resp.StatusCode, envelope.Error.Code, envelope.Error.Message))
		}
		return apperrors.Wrap(apperrors.ErrRemoteFailure,
			fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrRemoteFailure, err)
	}
	return nil
}
