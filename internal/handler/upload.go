package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/equiledger/backend/internal/apperr"
)

var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// Uploads stores receipt images on local disk under a single
// directory, served back at /uploads/.
type Uploads struct {
	dir      string
	maxBytes int64
}

func NewUploads(dir string, maxBytes int64) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("handler.Uploads, create upload dir error: %v", err)
	}
	return &Uploads{dir: dir, maxBytes: maxBytes}, nil
}

func (u *Uploads) Dir() string {
	return u.dir
}

// SaveReceipt extracts the optional receipt_image part, rejects
// anything that is not an image or exceeds the size cap, and writes it
// under a randomized name. Returns the public URL path, or "" when no
// file was sent.
func (u *Uploads) SaveReceipt(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, u.maxBytes)
	if err := r.ParseMultipartForm(u.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", apperr.Validationf("File too large. Images must be 10MB or less.")
		}
		return "", apperr.Validationf("Invalid multipart form.")
	}

	file, header, err := r.FormFile("receipt_image")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", apperr.Validationf("Invalid receipt image upload.")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		return "", apperr.Validationf("Error: Images Only!")
	}

	// sniff the leading bytes too, the extension alone is spoofable
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", apperr.Validationf("Invalid receipt image upload.")
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return "", apperr.Validationf("Error: Images Only!")
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", apperr.Validationf("Invalid receipt image upload.")
	}

	name := fmt.Sprintf("receipt_image-%s%s", uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("handler.Uploads, create file error: %v", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("handler.Uploads, write file error: %v", err)
	}

	logrus.Infof("receipt image stored: %s", name)
	return "/uploads/" + name, nil
}
