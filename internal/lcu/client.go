package lcu

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"league-watcher/internal/domain"
)

// The loopback endpoint serves a certificate issued by the game vendor's own
// root, not a public authority; the client trusts only the embedded copy.
//
//go:embed riotgames.pem
var riotRootPEM []byte

// ErrNotFound is returned when the remote reports the resource does not
// exist, e.g. no gameflow session outside of a match.
var ErrNotFound = errors.New("resource not found")

// Client talks to the locally running game client over its loopback REST
// interface using Basic auth from the lockfile credential. A Client is bound
// to one ConnectionInfo; reconnects build a fresh Client.
type Client struct {
	baseURL    string
	authHeader string
	client     *fasthttp.Client
	logger     zerolog.Logger
}

func NewClient(info domain.ConnectionInfo, logger zerolog.Logger) (*Client, error) {
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(riotRootPEM) {
		return nil, errors.New("failed to parse embedded root certificate")
	}

	return &Client{
		baseURL:    info.BaseURL(),
		authHeader: "Basic " + info.Credential,
		client: &fasthttp.Client{
			TLSConfig: &tls.Config{RootCAs: pool},
		},
		logger: logger,
	}, nil
}

func (c *Client) GameflowPhase(ctx context.Context) (string, error) {
	var session GameflowSession
	err := c.do(ctx, fasthttp.MethodGet, "/lol-gameflow/v1/session", nil, &session)
	if errors.Is(err, ErrNotFound) {
		// No session outside of a match; callers treat this as phase None.
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return session.Phase, nil
}

func (c *Client) AcceptReadyCheck(ctx context.Context) error {
	return c.do(ctx, fasthttp.MethodPost, "/lol-matchmaking/v1/ready-check/accept", nil, nil)
}

func (c *Client) ChampSelectSession(ctx context.Context) (*ChampSelectSession, error) {
	var session ChampSelectSession
	if err := c.do(ctx, fasthttp.MethodGet, "/lol-champ-select/v1/session", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) GridChampion(ctx context.Context, championID int) (*GridChampion, error) {
	var grid GridChampion
	path := fmt.Sprintf("/lol-champ-select/v1/grid-champions/%d", championID)
	if err := c.do(ctx, fasthttp.MethodGet, path, nil, &grid); err != nil {
		return nil, err
	}
	return &grid, nil
}

func (c *Client) CompleteAction(ctx context.Context, actionID int, body ActionRequest) error {
	path := fmt.Sprintf("/lol-champ-select/v1/session/actions/%d", actionID)
	return c.do(ctx, fasthttp.MethodPatch, path, body, nil)
}

func (c *Client) SetSpells(ctx context.Context, selection SpellSelection) error {
	return c.do(ctx, fasthttp.MethodPatch, "/lol-champ-select/v1/session/my-selection", selection, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return err
		}
	}

	switch {
	case resp.StatusCode() == fasthttp.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode() >= fasthttp.StatusMultipleChoices:
		return fmt.Errorf("client API error: %d %s %s", resp.StatusCode(), method, path)
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
