package chain

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/ratelimit"
)

// DefaultTimeout bounds a single call when Options.Timeout is unset.
const DefaultTimeout = 15 * time.Second

// Observer records the outcome of a single call.
type Observer interface {
	Observe(operation string, err error, started time.Time)
}

// Options configures a Client.
type Options struct {
	// Timeout bounds every call, including connection setup.
	Timeout time.Duration
	// RateLimit caps outbound calls per second; zero disables pacing.
	RateLimit int
	Observer  Observer
}

// Client sends single-attempt JSON-RPC 2.0 requests to a ledger endpoint.
type Client struct {
	rpcClient *rpc.Client
	timeout   time.Duration
	limiter   ratelimit.Limiter
	observer  Observer
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string, opts Options) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	limiter := ratelimit.NewUnlimited()
	if opts.RateLimit > 0 {
		limiter = ratelimit.New(opts.RateLimit)
	}

	return &Client{
		rpcClient: rpcClient,
		timeout:   timeout,
		limiter:   limiter,
		observer:  opts.Observer,
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// Call issues one request and decodes the result into result. It never
// retries. Failures are *TransportError or *RPCError.
func (c *Client) Call(ctx context.Context, result interface{}, method string, params ...interface{}) (err error) {
	if c.observer != nil {
		started := time.Now()
		defer func() { c.observer.Observe(method, err, started) }()
	}

	c.limiter.Take()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if callErr := c.rpcClient.CallContext(callCtx, result, method, params...); callErr != nil {
		return classifyError(method, callErr)
	}
	return nil
}

// GetAccountInfo fetches one account. It returns nil when the account does not exist.
func (c *Client) GetAccountInfo(ctx context.Context, address solana.PublicKey) (*Account, error) {
	var out accountInfoResult
	err := c.Call(ctx, &out, "getAccountInfo", address.String(), accountQuery{Encoding: EncodingBase64})
	if err != nil {
		return nil, err
	}
	if out.Value == nil {
		return nil, nil
	}

	return &Account{
		Pubkey:   address.String(),
		Owner:    out.Value.Owner,
		Lamports: out.Value.Lamports,
		Data:     out.Value.Data,
	}, nil
}

// GetProgramAccounts fetches the accounts owned by program that match every
// filter. Filters are sent exactly as given; the remote service evaluates them.
func (c *Client) GetProgramAccounts(ctx context.Context, program solana.PublicKey, filters ...Memcmp) ([]Account, error) {
	query := accountQuery{Encoding: EncodingBase64}
	for _, f := range filters {
		query.Filters = append(query.Filters, filter{Memcmp: f})
	}

	var out []programAccountResult
	if err := c.Call(ctx, &out, "getProgramAccounts", program.String(), query); err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, len(out))
	for _, item := range out {
		accounts = append(accounts, Account{
			Pubkey:   item.Pubkey,
			Owner:    item.Account.Owner,
			Lamports: item.Account.Lamports,
			Data:     item.Account.Data,
		})
	}
	return accounts, nil
}

func classifyError(method string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &RPCError{Method: method, Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
	}
	return &TransportError{Method: method, Err: err}
}
