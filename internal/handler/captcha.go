package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/kyiku/captcha-engine/internal/bridge"
	"github.com/kyiku/captcha-engine/internal/captcha"
	"github.com/kyiku/captcha-engine/internal/response"
	"github.com/labstack/echo/v4"
)

// DefaultMaxUploadSize is the default limit for uploaded slider source images.
const DefaultMaxUploadSize = 10 << 20

// ChallengeService renders captcha challenges as encoded bytes.
type ChallengeService interface {
	CodeCaptcha(text string) ([]byte, error)
	SliderCaptcha(raw []byte) ([]byte, error)
	RandomSlider(pool *bridge.Pool) (*bridge.SliderCaptcha, error)
}

// ChallengePublisher uploads challenge images and returns their public URLs.
type ChallengePublisher interface {
	UploadChallenge(kind string, data []byte, ext string) (string, error)
}

// CaptchaHandler handles captcha generation requests.
type CaptchaHandler struct {
	service       ChallengeService
	pool          *bridge.Pool
	publisher     ChallengePublisher
	maxUploadSize int64
}

// NewCaptchaHandler creates a new CaptchaHandler.
func NewCaptchaHandler(service ChallengeService, pool *bridge.Pool) *CaptchaHandler {
	return &CaptchaHandler{
		service:       service,
		pool:          pool,
		maxUploadSize: DefaultMaxUploadSize,
	}
}

// SetPublisher makes RandomSlider return image URLs instead of inline base64.
func (h *CaptchaHandler) SetPublisher(publisher ChallengePublisher) {
	h.publisher = publisher
}

// SetMaxUploadSize sets the body limit for Slider in bytes.
func (h *CaptchaHandler) SetMaxUploadSize(size int64) {
	h.maxUploadSize = size
}

// CodeRequest represents the code captcha request.
type CodeRequest struct {
	Text string `json:"text"`
}

// Code renders the requested text as a JPEG challenge.
func (h *CaptchaHandler) Code(c echo.Context) error {
	var req CodeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "リクエストの解析に失敗しました")
	}

	if req.Text == "" {
		return response.Error(c, http.StatusBadRequest, "テキストが指定されていません")
	}

	data, err := h.service.CodeCaptcha(req.Text)
	if err != nil {
		return h.fail(c, err)
	}

	return response.Blob(c, "image/jpeg", data)
}

// Slider renders a slider challenge from the raw image in the request body
// and returns the packed buffer.
func (h *CaptchaHandler) Slider(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, h.maxUploadSize+1))
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "リクエストの読み込みに失敗しました")
	}

	if int64(len(body)) > h.maxUploadSize {
		return response.Error(c, http.StatusRequestEntityTooLarge, "画像サイズが大きすぎます")
	}

	packed, err := h.service.SliderCaptcha(body)
	if err != nil {
		return h.fail(c, err)
	}

	return response.Blob(c, echo.MIMEOctetStream, packed)
}

// RandomSlider renders a slider challenge from a random pool background.
func (h *CaptchaHandler) RandomSlider(c echo.Context) error {
	slider, err := h.service.RandomSlider(h.pool)
	if err != nil {
		return h.fail(c, err)
	}

	data := map[string]interface{}{
		"id": uuid.New().String(),
		"x":  slider.X,
		"y":  slider.Y,
	}

	if h.publisher == nil {
		data["background"] = base64.StdEncoding.EncodeToString(slider.Background)
		data["cutout"] = base64.StdEncoding.EncodeToString(slider.Cutout)
		return response.Success(c, data)
	}

	backgroundURL, err := h.publisher.UploadChallenge("slider/background", slider.Background, "png")
	if err != nil {
		return h.fail(c, err)
	}
	cutoutURL, err := h.publisher.UploadChallenge("slider/cutout", slider.Cutout, "png")
	if err != nil {
		return h.fail(c, err)
	}

	data["background"] = backgroundURL
	data["cutout"] = cutoutURL
	return response.Success(c, data)
}

// fail maps a generation error to an error response.
func (h *CaptchaHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, captcha.ErrDecode), errors.Is(err, captcha.ErrIO):
		return response.ErrorWithCode(c, http.StatusBadRequest, "invalid_image", "画像を読み込めませんでした")
	case errors.Is(err, captcha.ErrMissingGlyph):
		return response.ErrorWithCode(c, http.StatusBadRequest, "unsupported_text", "使用できない文字が含まれています")
	case errors.Is(err, bridge.ErrEmptyPool):
		return response.ErrorWithCode(c, http.StatusServiceUnavailable, "no_background", "背景画像が登録されていません")
	}

	c.Logger().Errorf("captcha generation failed: %v", err)
	return response.ErrorWithCode(c, http.StatusInternalServerError, "generation_failed", "CAPTCHA生成に失敗しました")
}
