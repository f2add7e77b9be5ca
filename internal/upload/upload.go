package upload

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	AllowedMIME []string
	AllowedExt  []string
	MaxSize     int64
	Directory   string
}

// PostImageConfig valida a imagem opcional anexada a um post.
var PostImageConfig = Config{
	AllowedMIME: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
	AllowedExt:  []string{".jpg", ".jpeg", ".png", ".webp", ".gif"},
	MaxSize:     10 * 1024 * 1024, // 10MB
	Directory:   "images",
}

type Result struct {
	Path     string
	Filename string
	Size     int64
	MIMEType string
	URL      string
}

type UploadError struct {
	Code    string
	Message string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func IsUploadError(err error) bool {
	_, ok := err.(*UploadError)
	return ok
}

// ErrNoFile indica que o campo do formulário veio vazio; para campos
// opcionais o chamador trata isso como "sem imagem".
func IsNoFile(err error) bool {
	ue, ok := err.(*UploadError)
	return ok && ue.Code == "NO_FILE"
}

func SaveFile(r *http.Request, fieldName, baseDir string, cfg Config) (*Result, error) {
	file, header, err := r.FormFile(fieldName)
	if err != nil {
		return nil, &UploadError{Code: "NO_FILE", Message: "Nenhum arquivo enviado"}
	}
	defer file.Close()

	if header.Size > cfg.MaxSize {
		return nil, &UploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("Arquivo excede o limite de %dMB", cfg.MaxSize/1024/1024),
		}
	}

	contentType := header.Header.Get("Content-Type")
	if !slices.Contains(cfg.AllowedMIME, contentType) {
		return nil, &UploadError{
			Code:    "INVALID_TYPE",
			Message: fmt.Sprintf("Tipo de arquivo não permitido: %s", contentType),
		}
	}

	ext := filepath.Ext(header.Filename)
	if !slices.Contains(cfg.AllowedExt, ext) {
		return nil, &UploadError{
			Code:    "INVALID_EXTENSION",
			Message: fmt.Sprintf("Extensão não permitida: %s", ext),
		}
	}

	dir := filepath.Join(baseDir, cfg.Directory)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &UploadError{
			Code:    "DIRECTORY_ERROR",
			Message: "Falha ao criar diretório de upload",
		}
	}

	filename := generateFilename(ext)
	dstPath := filepath.Join(dir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, &UploadError{
			Code:    "CREATE_ERROR",
			Message: "Falha ao criar arquivo",
		}
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(dstPath)
		return nil, &UploadError{
			Code:    "WRITE_ERROR",
			Message: "Falha ao salvar arquivo",
		}
	}

	url := fmt.Sprintf("/storage/%s/%s", cfg.Directory, filename)

	return &Result{
		Path:     dstPath,
		Filename: filename,
		Size:     written,
		MIMEType: contentType,
		URL:      url,
	}, nil
}

func generateFilename(ext string) string {
	timestamp := time.Now().Unix()
	unique := uuid.New().String()[:8]
	return fmt.Sprintf("%d_%s%s", timestamp, unique, ext)
}

func DeleteFile(path string) error {
	return os.Remove(path)
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
