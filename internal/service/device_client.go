package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DeviceClient 量测设备厂家 API 客户端
//
// 厂家网关以 HTTP 提供每台设备最近一次量测的 <Patient ...> XML 记录，
// 本客户端负责拉取原文，解析交给 parser 层。
type DeviceClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewDeviceClient 创建设备客户端
func NewDeviceClient(baseURL string, timeout time.Duration, logger *zap.Logger) *DeviceClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/xml")

	return &DeviceClient{
		httpClient: client,
		logger:     logger,
	}
}

// FetchPatientXML 拉取指定设备最近一次量测的 Patient XML 原文
func (c *DeviceClient) FetchPatientXML(ctx context.Context, deviceID string) (string, error) {
	c.logger.Info("Fetching patient record from device gateway",
		zap.String("device_id", deviceID),
	)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/records/%s/latest", deviceID))
	if err != nil {
		return "", fmt.Errorf("failed to fetch patient record: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("device gateway returned status %d", resp.StatusCode())
	}

	body := resp.String()
	if body == "" {
		return "", fmt.Errorf("device gateway returned empty record")
	}
	return body, nil
}
