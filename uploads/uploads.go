package uploads

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"vendora/utils"

	"github.com/disintegration/imaging"
)

const baseDir = "static"

// maxImageWidth caps stored images; anything wider is downscaled.
const maxImageWidth = 1280

// ProcessImage decodes an uploaded image, re-encodes it as JPEG at a
// bounded size, writes original and a 300px thumbnail, and returns the
// public URL of the stored image.
func ProcessImage(file *multipart.FileHeader, subdir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	uniqueID := utils.GenerateRandomString(16)
	fileName := uniqueID + ".jpg"

	dir := filepath.Join(baseDir, subdir)
	thumbDir := filepath.Join(dir, "thumb")
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(dir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/" + baseDir + "/" + subdir + "/" + fileName, nil
}

// SaveUploadedImages processes every file under formKey, validating the
// declared content type first. Returns the stored URLs.
func SaveUploadedImages(r *http.Request, formKey, subdir string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File[formKey]
	if len(files) == 0 {
		return nil, nil
	}

	var urls []string
	for _, file := range files {
		if !utils.SupportedImageTypes[file.Header.Get("Content-Type")] {
			return nil, fmt.Errorf("unsupported image type: %s", file.Filename)
		}
		url, err := ProcessImage(file, subdir)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
