package datadragon

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"

	"league-watcher/internal/domain"
)

const baseURL = "https://ddragon.leagueoflegends.com"

// Client fetches the static champion and summoner-spell tables from the
// public Data Dragon CDN.
type Client struct {
	client *fasthttp.Client
}

func NewClient() *Client {
	return &Client{
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	versions, err := doRequest[[]string](ctx, c, baseURL+"/api/versions.json")
	if err != nil {
		return "", err
	}
	if len(*versions) == 0 {
		return "", fmt.Errorf("empty version list")
	}
	return (*versions)[0], nil
}

func (c *Client) Champions(ctx context.Context, version string) ([]domain.Champion, error) {
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", baseURL, version)
	resp, err := doRequest[dataFile](ctx, c, url)
	if err != nil {
		return nil, err
	}

	champions := make([]domain.Champion, 0, len(resp.Data))
	for _, entry := range resp.Data {
		id, err := strconv.Atoi(entry.Key)
		if err != nil {
			return nil, fmt.Errorf("non-numeric champion key %q: %w", entry.Key, err)
		}
		champions = append(champions, domain.Champion{ID: id, Name: entry.Name})
	}
	sort.Slice(champions, func(i, j int) bool { return champions[i].ID < champions[j].ID })
	return champions, nil
}

func (c *Client) SummonerSpells(ctx context.Context, version string) ([]domain.SummonerSpell, error) {
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/summoner.json", baseURL, version)
	resp, err := doRequest[dataFile](ctx, c, url)
	if err != nil {
		return nil, err
	}

	spells := make([]domain.SummonerSpell, 0, len(resp.Data))
	for _, entry := range resp.Data {
		id, err := strconv.Atoi(entry.Key)
		if err != nil {
			return nil, fmt.Errorf("non-numeric spell key %q: %w", entry.Key, err)
		}
		spells = append(spells, domain.SummonerSpell{ID: id, Name: entry.Name})
	}
	sort.Slice(spells, func(i, j int) bool { return spells[i].ID < spells[j].ID })
	return spells, nil
}

// dataFile is the shared shape of champion.json and summoner.json: a map of
// entries keyed by internal name, each carrying a numeric key as a string.
type dataFile struct {
	Data map[string]struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("data dragon error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
