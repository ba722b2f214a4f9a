package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/biotutor/internal/errors"
	"github.com/diogo/biotutor/internal/models"
)

// SubmitQuery sends text to the chat endpoint. Any failure (transport error,
// non-2xx status, malformed body, missing answer) is returned as an error;
// callers are not expected to distinguish them.
func (c *Client) SubmitQuery(text string) (*models.Answer, error) {
	if text == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	body, contentType, err := encodeForm(func(w *multipart.Writer) error {
		return w.WriteField(models.FieldMessage, text)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	endpoint := c.endpoint(models.EndpointChat)
	req, err := fhttp.NewRequest(fhttp.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	log := c.logger.With(zap.String("request_id", requestID), zap.String("endpoint", endpoint))
	log.Debug("submitting query", zap.Int("length", len(text)))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("fetch error", zap.Error(err))
		return nil, apierrors.NewNetworkErrorWithEndpoint("submit query", endpoint, err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		log.Error("failed to read response", zap.Error(err))
		return nil, apierrors.NewNetworkErrorWithEndpoint("read response", endpoint, err)
	}

	if !isSuccess(resp.StatusCode) {
		log.Error("non-OK response from backend",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(data, 4096)),
		)
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "query failed", string(data))
	}

	answer, err := parseAnswer(data)
	if err != nil {
		log.Error("unusable response from backend", zap.Error(err), zap.ByteString("body", truncate(data, 4096)))
		return nil, err
	}

	log.Debug("query answered",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("sources", len(answer.Sources)),
	)
	return answer, nil
}

// parseAnswer decodes {"answer": string, "sources": [string]}.
// The answer must be a non-empty string; sources are optional and
// non-string entries are skipped.
func parseAnswer(data []byte) (*models.Answer, error) {
	if !gjson.ValidBytes(data) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, apierrors.NewParseError("response is not a JSON object", "")
	}

	answer := parsed.Get(PathAnswer)
	if answer.Type != gjson.String || answer.String() == "" {
		return nil, apierrors.NewMissingAnswerError()
	}

	sources := []string{}
	if src := parsed.Get(PathSources); src.IsArray() {
		src.ForEach(func(_, v gjson.Result) bool {
			if v.Type == gjson.String {
				sources = append(sources, v.String())
			}
			return true
		})
	}

	return &models.Answer{Text: answer.String(), Sources: sources}, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
