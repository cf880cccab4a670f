package translator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"ghana-translator/internal/logger"
	"ghana-translator/internal/types"
)

const (
	// defaultGoogleAPIURL is the free Google translate web endpoint
	defaultGoogleAPIURL = "https://translate.googleapis.com/translate_a/single"
	// defaultRequestTimeout is used when no timeout is configured
	defaultRequestTimeout = 30 * time.Second
	// defaultRequestsPerSecond limits how hard the free endpoint is hit
	defaultRequestsPerSecond = 5.0
	// userAgent identifies requests to the endpoint; the gtx client
	// expects a browser-like agent
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// GoogleClient translates text through the free Google translate web
// API. Failures surface as SERVICE_ERROR; the client never retries.
type GoogleClient struct {
	httpClient *http.Client
	apiURL     string
	limiter    *rate.Limiter
}

// NewGoogleClient creates a Google translate client. Empty apiURL and
// non-positive timeout or rps fall back to defaults.
func NewGoogleClient(apiURL string, timeout time.Duration, rps float64) *GoogleClient {
	if apiURL == "" {
		apiURL = defaultGoogleAPIURL
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	return &GoogleClient{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return types.NewAppError(types.ErrService, "too many redirects", nil)
				}
				return nil
			},
		},
		apiURL:  apiURL,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Name returns the client name for logs and results.
func (c *GoogleClient) Name() string {
	return "google"
}

// Translate sends text to the translation endpoint and returns the
// translated text.
func (c *GoogleClient) Translate(ctx context.Context, text, srcLang, destLang string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", types.NewAppError(types.ErrService, "translation request cancelled", err)
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", srcLang)
	params.Set("tl", destLang)
	params.Set("dt", "t")
	params.Set("q", text)
	requestURL := c.apiURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", types.NewAppError(types.ErrService, "failed to build translation request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", types.NewAppError(types.ErrService, "translation request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("translation service returned non-OK status",
			logger.Int("status", resp.StatusCode),
			logger.String("srcLang", srcLang),
			logger.String("destLang", destLang))
		return "", types.NewAppErrorWithDetails(types.ErrService,
			"translation service error",
			fmt.Sprintf("status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", types.NewAppError(types.ErrService, "failed to read translation response", err)
	}

	return parseGtxResponse(body)
}

// parseGtxResponse extracts the translated text from the gtx response,
// a nested JSON array whose first element holds one [translated,
// original, ...] row per segment.
func parseGtxResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", types.NewAppError(types.ErrService, "invalid translation response", nil)
	}

	segments := gjson.GetBytes(body, "0")
	if !segments.IsArray() {
		return "", types.NewAppError(types.ErrService, "unexpected translation response shape", nil)
	}

	var sb strings.Builder
	segments.ForEach(func(_, segment gjson.Result) bool {
		sb.WriteString(segment.Get("0").String())
		return true
	})
	return sb.String(), nil
}
