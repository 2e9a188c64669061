package lead

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"edenstone/internal/logger"

	"go.uber.org/zap"
)

const callbackPath = "/api/v1/callback"

// Gateway delivers a callback request to the lead intake API.
type Gateway interface {
	SendCallback(ctx context.Context, req CallbackRequest) error
}

type callbackGateway struct {
	endpoint   string
	httpClient *http.Client
}

func NewCallbackGateway(baseURL string, timeout time.Duration) Gateway {
	if baseURL == "" {
		logger.L().Warn("lead intake base URL is empty")
	}
	return &callbackGateway{
		endpoint: strings.TrimRight(baseURL, "/") + callbackPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *callbackGateway) SendCallback(ctx context.Context, body CallbackRequest) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "lead_gateway"),
		zap.Bool("has_email", body.Email != ""),
		zap.Bool("pref_whatsapp", body.PrefWhatsApp),
	)

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("failed to marshal callback request", zap.Error(err))
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("callback request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		log.Error("callback endpoint returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return &StatusError{Code: resp.StatusCode, Body: string(bodyBytes)}
	}

	log.Info("callback request delivered", zap.Int("status", resp.StatusCode))
	return nil
}
