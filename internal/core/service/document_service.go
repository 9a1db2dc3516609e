package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
)

const (
	DefaultMaxFiles    = 10
	DefaultMaxFileSize = 10 << 20
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var allowedMimeTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"application/pdf":    true,
	"application/msword": true,

	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// RejectedFile tells which file of an upload failed validation.
type RejectedFile struct {
	Name string
	Err  error
}

func (e *RejectedFile) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *RejectedFile) Unwrap() error {
	return e.Err
}

// DocumentConfig bounds an upload. Zero values mean the defaults.
type DocumentConfig struct {
	MaxFiles    int
	MaxFileSize int64
}

// DocumentService stores user uploads and guards access to them.
type DocumentService struct {
	repo  ports.DocumentRepository
	files ports.FileStore
	cfg   DocumentConfig
	now   func() time.Time
	log   zerolog.Logger
}

func NewDocumentService(repo ports.DocumentRepository, files ports.FileStore, cfg DocumentConfig, log zerolog.Logger) *DocumentService {
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = DefaultMaxFiles
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	return &DocumentService{
		repo:  repo,
		files: files,
		cfg:   cfg,
		now:   time.Now,
		log:   log.With().Str("component", "documents").Logger(),
	}
}

// Upload validates every file first and only then writes them. If a write
// fails, files already written by this call are removed.
func (s *DocumentService) Upload(ctx context.Context, ownerID string, files []ports.UploadFile) ([]domain.Document, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files: %w", domain.ErrBadRequest)
	}
	if len(files) > s.cfg.MaxFiles {
		return nil, fmt.Errorf("%d files: %w", len(files), domain.ErrTooManyFiles)
	}

	types := make([]string, len(files))
	for i, f := range files {
		mt, err := s.validate(f)
		if err != nil {
			return nil, &RejectedFile{Name: f.Name, Err: err}
		}
		types[i] = mt
	}

	base := s.now().UnixNano()
	docs := make([]domain.Document, 0, len(files))
	for i, f := range files {
		doc := domain.Document{
			Filename:     fmt.Sprintf("%s-%d-%s", ownerID, base+int64(i), sanitizeName(f.Name)),
			OriginalName: f.Name,
			OwnerID:      ownerID,
			MimeType:     types[i],
			UploadedAt:   s.now().UTC(),
		}
		if err := s.store(ctx, f, &doc); err != nil {
			s.rollback(ctx, docs)
			return nil, err
		}
		docs = append(docs, doc)
	}

	s.log.Info().Str("owner_id", ownerID).Int("files", len(docs)).Msg("documents uploaded")
	return docs, nil
}

func (s *DocumentService) store(ctx context.Context, f ports.UploadFile, doc *domain.Document) error {
	r, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer r.Close()

	n, err := s.files.Save(doc.Filename, io.LimitReader(r, s.cfg.MaxFileSize+1))
	if err != nil {
		return fmt.Errorf("save %s: %w", f.Name, err)
	}
	if n > s.cfg.MaxFileSize {
		_ = s.files.Remove(doc.Filename)
		return &RejectedFile{Name: f.Name, Err: domain.ErrFileTooLarge}
	}
	doc.Size = n

	if err := s.repo.Create(ctx, doc); err != nil {
		_ = s.files.Remove(doc.Filename)
		return fmt.Errorf("record %s: %w", f.Name, err)
	}
	return nil
}

func (s *DocumentService) rollback(ctx context.Context, docs []domain.Document) {
	for _, d := range docs {
		if err := s.files.Remove(d.Filename); err != nil {
			s.log.Warn().Err(err).Str("filename", d.Filename).Msg("rollback: remove file")
		}
		if err := s.repo.Delete(ctx, d.Filename); err != nil {
			s.log.Warn().Err(err).Str("filename", d.Filename).Msg("rollback: delete record")
		}
	}
}

// validate checks size, extension and MIME type, and returns the MIME type
// to record.
func (s *DocumentService) validate(f ports.UploadFile) (string, error) {
	if f.Size > s.cfg.MaxFileSize {
		return "", domain.ErrFileTooLarge
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(f.Name))] {
		return "", domain.ErrInvalidDocument
	}

	mt := ""
	if f.ContentType != "" {
		parsed, _, err := mime.ParseMediaType(f.ContentType)
		if err == nil {
			mt = strings.ToLower(parsed)
		}
	}
	if mt == "" || mt == "application/octet-stream" {
		sniffed, err := sniff(f)
		if err != nil {
			return "", err
		}
		mt = sniffed
	}

	if !allowedMimeTypes[mt] {
		return "", domain.ErrInvalidDocument
	}
	return mt, nil
}

func sniff(f ports.UploadFile) (string, error) {
	r, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer r.Close()

	m, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect type of %s: %w", f.Name, err)
	}
	mt, _, _ := mime.ParseMediaType(m.String())
	return mt, nil
}

func (s *DocumentService) List(ctx context.Context, ownerID string) ([]domain.Document, error) {
	docs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	// only what Open would serve
	out := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if d.OwnerID == ownerID && ownsName(ownerID, d.Filename) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *DocumentService) Open(ctx context.Context, ownerID, filename string) (*domain.Document, io.ReadSeekCloser, error) {
	doc, err := s.authorize(ctx, ownerID, filename)
	if err != nil {
		return nil, nil, err
	}
	r, err := s.files.Open(doc.Filename)
	if err != nil {
		return nil, nil, err
	}
	return doc, r, nil
}

func (s *DocumentService) Delete(ctx context.Context, ownerID, filename string) error {
	doc, err := s.authorize(ctx, ownerID, filename)
	if err != nil {
		return err
	}
	if err := s.files.Remove(doc.Filename); err != nil {
		return fmt.Errorf("remove %s: %w", doc.Filename, err)
	}
	if err := s.repo.Delete(ctx, doc.Filename); err != nil {
		return fmt.Errorf("delete record %s: %w", doc.Filename, err)
	}
	s.log.Info().Str("owner_id", ownerID).Str("filename", doc.Filename).Msg("document deleted")
	return nil
}

// ownsName reports whether filename is a plain name stored under ownerID.
func ownsName(ownerID, filename string) bool {
	if ownerID == "" || filename == "" ||
		strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return false
	}
	return strings.HasPrefix(filename, ownerID+"-")
}

// authorize returns the record of filename if ownerID owns it. Foreign and
// unknown files both yield domain.ErrDocumentNotFound.
func (s *DocumentService) authorize(ctx context.Context, ownerID, filename string) (*domain.Document, error) {
	if !ownsName(ownerID, filename) {
		return nil, domain.ErrDocumentNotFound
	}

	doc, err := s.repo.FindByFilename(ctx, filename)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) || errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	if doc.OwnerID != ownerID {
		s.log.Warn().Str("owner_id", ownerID).Str("filename", filename).Msg("access to foreign document refused")
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// sanitizeName keeps the base name and replaces anything outside a safe
// character set.
func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(name))
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		out = "document"
	}
	if len(out) > 100 {
		out = out[:100]
	}
	return out + ext
}
