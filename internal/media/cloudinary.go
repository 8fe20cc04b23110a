package media

import (
	"context"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// uploadTimeout bounds the synchronous in-request provider call. Expiry
// is treated exactly like any other upload failure: skip and fall back.
const uploadTimeout = 15 * time.Second

// sizeTransformation caps stored images at 500x500 on the provider side.
const sizeTransformation = "c_limit,w_500,h_500"

type cloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

// NewCloudinaryUploader builds the gateway. Missing credentials do not
// halt the process: a warning is logged and every upload is skipped so
// records fall back to the default image.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret string, logger ...*zap.Logger) Uploader {
	l := zap.L().Named("media.cloudinary")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("media.cloudinary")
	}

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		l.Warn("cloudinary credentials missing, profile picture uploads disabled")
		return &cloudinaryUploader{logger: l}
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		l.Warn("cloudinary init failed, profile picture uploads disabled", zap.Error(err))
		return &cloudinaryUploader{logger: l}
	}

	return &cloudinaryUploader{cld: cld, logger: l}
}

func (u *cloudinaryUploader) Upload(ctx context.Context, file File) UploadResult {
	if u.cld == nil {
		return Skip("media provider is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	publicID := PublicID(file.Name)
	resp, err := u.cld.Upload.Upload(ctx, file.Reader, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         UploadFolder,
		Transformation: sizeTransformation,
	})
	if err != nil {
		u.logger.Warn("cloudinary upload failed",
			zap.String("filename", file.Name),
			zap.Error(err),
		)
		return Skip(err.Error())
	}

	if resp.SecureURL == "" {
		u.logger.Warn("cloudinary upload returned no url",
			zap.String("filename", file.Name),
			zap.String("response_error", resp.Error.Message),
		)
		return Skip("provider returned no url")
	}

	u.logger.Info("cloudinary upload success",
		zap.String("public_id", resp.PublicID),
	)
	return Uploaded(resp.SecureURL, resp.PublicID)
}

func (u *cloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	if u.cld == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
