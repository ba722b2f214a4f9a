package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/biotutor/internal/errors"
	"github.com/diogo/biotutor/internal/models"
)

// SubmitFile uploads a file from disk for indexing
func (c *Client) SubmitFile(path string) (*models.UploadReceipt, error) {
	fileName := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, apierrors.NewUploadError(fileName, "failed to stat file", err)
	}
	if info.IsDir() {
		return nil, apierrors.NewUploadError(fileName, "path is a directory", nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, apierrors.NewUploadError(fileName, "failed to open file", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return c.SubmitReader(fileName, file)
}

// SubmitReader uploads content from reader under fileName.
//
// Only transport-level failures are errors. The backend's status code is
// recorded on the receipt (and a non-2xx status is logged) but does not fail
// the call.
func (c *Client) SubmitReader(fileName string, reader io.Reader) (*models.UploadReceipt, error) {
	body, contentType, err := encodeForm(func(w *multipart.Writer) error {
		part, err := w.CreateFormFile(models.FieldFile, fileName)
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, reader); err != nil {
			return fmt.Errorf("failed to write file data: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, apierrors.NewUploadError(fileName, "failed to build form", err)
	}

	endpoint := c.endpoint(models.EndpointUpload)
	req, err := fhttp.NewRequest(fhttp.MethodPost, endpoint, body)
	if err != nil {
		return nil, apierrors.NewUploadError(fileName, "failed to create request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(HeaderRequestID, requestID)

	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("endpoint", endpoint),
		zap.String("file", fileName),
	)
	log.Debug("uploading file", zap.Int("bytes", body.Len()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("upload failed", zap.Error(err))
		return nil, apierrors.NewUploadError(fileName, "upload request failed",
			apierrors.NewNetworkErrorWithEndpoint("upload file", endpoint, err))
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	receipt := &models.UploadReceipt{
		FileName:   fileName,
		StatusCode: resp.StatusCode,
	}

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if readErr != nil {
		log.Warn("failed to read upload response", zap.Error(readErr))
	} else if gjson.ValidBytes(data) {
		receipt.Preview = gjson.GetBytes(data, PathPreview).String()
	}

	if !receipt.Accepted() {
		log.Warn("upload returned non-success status", zap.Int("status", resp.StatusCode))
	} else {
		log.Info("file indexed", zap.Int("status", resp.StatusCode))
	}

	return receipt, nil
}
