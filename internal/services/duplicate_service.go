package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hauling-backend/internal/domain/models"
	"hauling-backend/internal/utils"
)

// DuplicateGuard decides whether a trip's consignee data is editable.
type DuplicateGuard interface {
	IsReadOnly(ctx context.Context, waybillNo string) bool
}

// DuplicateService asks the external duplicate-detection service whether a
// waybill was flagged as a content duplicate or marked view-only.
//
// Fail-open: any transport error, timeout or non-200 answer means editable.
// Availability beats strict enforcement here; the backend independently
// rejects writes on duplicated trips, this flag only drives the UI.
type DuplicateService struct {
	BaseURL   string
	Client    *http.Client
	RequestID string
}

const duplicateCheckTimeout = 3 * time.Second

func (s DuplicateService) Status(ctx context.Context, waybillNo string) (models.DuplicateStatus, error) {
	var status models.DuplicateStatus
	base := strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if base == "" {
		return status, nil
	}

	ctx, cancel := context.WithTimeout(ctx, duplicateCheckTimeout)
	defer cancel()

	endpoint := base + "/duplicates/" + url.PathEscape(waybillNo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return status, err
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return status, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return status, fmt.Errorf("duplicate service returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return status, err
	}
	return status, nil
}

func (s DuplicateService) IsReadOnly(ctx context.Context, waybillNo string) bool {
	status, err := s.Status(ctx, waybillNo)
	if err != nil {
		utils.LogEvent(s.RequestID, "duplicate", "check_failed", fmt.Sprintf("waybill_no=%s err=%v", waybillNo, err))
		return false
	}
	return status.Duplicated || status.ViewOnly
}
