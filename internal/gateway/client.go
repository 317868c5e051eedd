package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/vfg2006/sales-quest-api/internal/config"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
	"github.com/vfg2006/sales-quest-api/pkg/log"
	"github.com/vfg2006/sales-quest-api/pkg/middleware"
)

// Remote é a API de vendas consumida pelo questctl
type Remote interface {
	SalesData(ctx context.Context) (*domain.SalesDataResponse, error)
	Upload(ctx context.Context, request *domain.UploadRequest) (*domain.UploadResponse, error)
	Settings(ctx context.Context) (*domain.SettingsResponse, error)
	UpdateSettings(ctx context.Context, weightings domain.Weightings) (*domain.SettingsResponse, error)
	Uploads(ctx context.Context) (*domain.UploadHistoryResponse, error)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(cfg config.Client) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		token:   cfg.Token,
	}
}

func (c *Client) SalesData(ctx context.Context) (*domain.SalesDataResponse, error) {
	var response domain.SalesDataResponse
	if err := c.do(ctx, http.MethodGet, "/v1/sales/data", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) Upload(ctx context.Context, request *domain.UploadRequest) (*domain.UploadResponse, error) {
	var response domain.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/v1/sales/upload", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) Settings(ctx context.Context) (*domain.SettingsResponse, error) {
	var response domain.SettingsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/sales/settings", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) UpdateSettings(ctx context.Context, weightings domain.Weightings) (*domain.SettingsResponse, error) {
	var response domain.SettingsResponse
	request := domain.UpdateSettingsRequest{Weightings: &weightings}
	if err := c.do(ctx, http.MethodPut, "/v1/sales/settings", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) Uploads(ctx context.Context) (*domain.UploadHistoryResponse, error) {
	var response domain.UploadHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/v1/sales/uploads", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// do executa a requisição e decodifica a resposta. Status fora de 2xx vira
// *apiErrors.APIError quando o corpo segue o envelope de erro da API.
func (c *Client) do(ctx context.Context, method, route string, body, out any) error {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, route)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("erro ao serializar a requisição: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if correlationID := log.GetCorrelationID(ctx); correlationID != "" {
		req.Header.Set(middleware.RequestIDHeader, correlationID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := apiErrors.APIError{}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Code != "" {
			return &apiErr
		}
		return fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return nil
}
