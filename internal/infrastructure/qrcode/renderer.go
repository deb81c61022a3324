package qrcode

import (
	"context"
	"encoding/base64"
	"errors"
	"net/url"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"zerovicio/internal/infrastructure/telemetry"
	"zerovicio/internal/usecase/interfaces"
)

const (
	ModeHosted = "hosted"
	ModeLocal  = "local"

	HostedBaseURL = "https://api.qrserver.com/v1/create-qr-code/?size=250x250&data="
	pngSize       = 250
)

var ErrEmptyContent = errors.New("qr content is empty")

// HostedRenderer returns a public image URL. The customer's browser fetches the
// image, so the service never calls the host itself.
type HostedRenderer struct {
	baseURL string
}

var _ interfaces.IQRCodeRenderer = (*HostedRenderer)(nil)

func NewHostedRenderer() *HostedRenderer {
	return &HostedRenderer{baseURL: HostedBaseURL}
}

func (r *HostedRenderer) Render(_ context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	return r.baseURL + url.QueryEscape(content), nil
}

// LocalRenderer encodes the PNG in-process and returns it as a data URI.
// On encoder failure it falls back to the hosted URL.
type LocalRenderer struct {
	fallback *HostedRenderer
}

var _ interfaces.IQRCodeRenderer = (*LocalRenderer)(nil)

func NewLocalRenderer() *LocalRenderer {
	return &LocalRenderer{fallback: NewHostedRenderer()}
}

func (r *LocalRenderer) Render(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	png, err := goqrcode.Encode(content, goqrcode.Medium, pngSize)
	if err != nil {
		telemetry.Logger.Warn("[qrcode] local encode failed, using hosted renderer", zap.Error(err))
		return r.fallback.Render(ctx, content)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// NewRenderer picks a renderer by mode; anything but "local" is hosted.
func NewRenderer(mode string) interfaces.IQRCodeRenderer {
	if strings.EqualFold(strings.TrimSpace(mode), ModeLocal) {
		return NewLocalRenderer()
	}
	return NewHostedRenderer()
}
