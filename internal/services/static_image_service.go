package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/db/repositories"
	"appfiy/backoffice/internal/logging"
	"appfiy/backoffice/internal/metrics"
	"appfiy/backoffice/internal/models/dtos"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type StaticImageOptions struct {
	PublicPath    string
	MaxWidth      int
	MaxBytes      int64
	MaxPixels     int64
	RequireStatic bool
}

// StaticImageService stores the static screen image of a theme page.
type StaticImageService struct {
	repo    *repositories.ThemeRepository
	themes  *ThemeService
	storage common.FileStorage
	metrics *metrics.MetricsRegistry
	opts    StaticImageOptions
}

func NewStaticImageService(
	repo *repositories.ThemeRepository,
	themes *ThemeService,
	storage common.FileStorage,
	metricsReg *metrics.MetricsRegistry,
	opts StaticImageOptions,
) *StaticImageService {
	return &StaticImageService{repo: repo, themes: themes, storage: storage, metrics: metricsReg, opts: opts}
}

// Upload decodes the image, downscales it to the configured width, stores it
// under a unique name and records the path on the page.
func (s *StaticImageService) Upload(ctx context.Context, pageID uint, file io.Reader) (*dtos.StaticImageUploadResult, error) {
	res, err := s.upload(ctx, pageID, file)
	s.metrics.ObserveImageUpload(resultLabel(err))
	if err != nil {
		logging.Warn("Static image upload failed", "theme_page_id", pageID, "error", err.Error())
		return nil, err
	}
	logging.Info("Static image stored", "theme_page_id", pageID, "path", res.StoredPath)
	return res, nil
}

func (s *StaticImageService) upload(ctx context.Context, pageID uint, file io.Reader) (*dtos.StaticImageUploadResult, error) {
	page, err := s.repo.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("theme page %d: %w", pageID, ErrNotFound)
	}
	if s.opts.RequireStatic && page.ScreenStatus != constants.ScreenStatusStatic {
		return nil, newFieldError(constants.FieldStaticScreenImage, constants.MsgPageNotStatic, nil)
	}

	data, err := readLimited(file, s.opts.MaxBytes)
	if err != nil {
		return nil, err
	}

	img, format, err := decodeImage(data, s.opts.MaxPixels)
	if errors.Is(err, errTooManyPixels) {
		return nil, newFieldError(constants.FieldStaticScreenImage,
			fmt.Sprintf("must be at most %d pixels", s.opts.MaxPixels), err)
	}
	if err != nil {
		return nil, newFieldError(constants.FieldStaticScreenImage, "must be a jpeg, png or gif image", err)
	}

	if s.opts.MaxWidth > 0 && img.Bounds().Dx() > s.opts.MaxWidth {
		img = imaging.Resize(img, s.opts.MaxWidth, 0, imaging.Lanczos)
	}

	var (
		buf bytes.Buffer
		ext string
	)
	switch format {
	case "jpeg":
		ext = ".jpg"
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85))
	default:
		// gif frames are flattened to the first one
		ext = ".png"
		err = imaging.Encode(&buf, img, imaging.PNG)
	}
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	storedPath := constants.StaticImageDir + "/" + uuid.NewString() + ext
	if err := s.storage.Save(ctx, storedPath, &buf); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	updated, err := s.repo.UpdatePageColumn(ctx, pageID, constants.FieldStaticScreenImage, storedPath)
	if err != nil || !updated {
		_ = s.storage.Remove(ctx, storedPath)
		if err == nil {
			err = fmt.Errorf("theme page %d: %w", pageID, ErrNotFound)
		}
		return nil, err
	}

	if previous := common.StringValue(page.StaticScreenImage); previous != "" && previous != storedPath {
		if err := s.storage.Remove(ctx, previous); err != nil {
			logging.Warn("Failed to remove replaced image", "path", previous, "error", err.Error())
		}
	}
	s.themes.Invalidate(ctx, page.ThemeID)

	bounds := img.Bounds()
	return &dtos.StaticImageUploadResult{
		ThemePageID: pageID,
		StoredPath:  storedPath,
		URL:         common.JoinPublicPath(s.opts.PublicPath, storedPath),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, newFieldError(constants.FieldStaticScreenImage,
			fmt.Sprintf("must be at most %d bytes", maxBytes), nil)
	}
	return data, nil
}

var errTooManyPixels = errors.New("image dimensions exceed pixel limit")

// decodeImage checks the header before decoding; imaging allocates the full
// pixel buffer the header declares.
func decodeImage(data []byte, maxPixels int64) (image.Image, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	switch format {
	case "jpeg", "png", "gif":
	default:
		return nil, "", errors.New("unsupported image format " + format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, "", fmt.Errorf("%dx%d: %w", cfg.Width, cfg.Height, errTooManyPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}
