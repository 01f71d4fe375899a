package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// RESTScorer calls the trained classifier over HTTP. The service accepts the
// full ordered feature vector and returns a single probability.
type RESTScorer struct {
	endpoint   string
	version    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRESTScorer creates a classifier client.
func NewRESTScorer(endpoint, version string, timeout time.Duration, logger *slog.Logger) *RESTScorer {
	return &RESTScorer{
		endpoint: endpoint,
		version:  version,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type scoreRequest struct {
	Unit     string    `json:"lgu"`
	Date     string    `json:"date"`
	Features []float64 `json:"features"`
}

type scoreResponse struct {
	Probability float64 `json:"suspension_probability"`
}

func (s *RESTScorer) Score(ctx context.Context, in Input) (float64, error) {
	body, err := json.Marshal(scoreRequest{
		Unit:     in.Vector.Unit,
		Date:     in.Vector.Date,
		Features: in.Vector.Values,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("classifier error: status %d: %s", resp.StatusCode, respBody)
	}

	var scored scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&scored); err != nil {
		return 0, fmt.Errorf("decode score response: %w", err)
	}

	if scored.Probability < 0 || scored.Probability > 1 {
		return 0, fmt.Errorf("classifier returned %g for %s/%s: %w",
			scored.Probability, in.Vector.Unit, in.Vector.Date, ErrProbabilityRange)
	}
	return scored.Probability, nil
}

func (s *RESTScorer) Version() string { return s.version }
