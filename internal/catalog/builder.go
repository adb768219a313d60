package catalog

import (
	"path/filepath"
	"time"

	"github.com/IvanShishkin/filecommander/internal/filesystem"
	"github.com/IvanShishkin/filecommander/pkg/models"
	"go.uber.org/zap"
)

// ProgressCallback is called after each file is cataloged
type ProgressCallback func(current, total int, path string)

// Builder turns a directory tree into a Catalog
type Builder struct {
	walker     *filesystem.Walker
	classifier *Classifier
	logger     *zap.Logger
	progress   ProgressCallback
	stat       func(path string) (*models.FileInfo, error)
}

// NewBuilder creates a builder. A nil classifier uses the default table.
func NewBuilder(classifier *Classifier, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if classifier == nil {
		classifier = defaultClassifier
	}
	return &Builder{
		walker:     filesystem.NewWalker(logger),
		classifier: classifier,
		logger:     logger,
		stat:       filesystem.Stat,
	}
}

// SetProgressCallback sets the progress callback function
func (b *Builder) SetProgressCallback(cb ProgressCallback) {
	b.progress = cb
}

// Build walks root and returns one record per regular file. Walker errors
// are returned unchanged. If any file cannot be stat'ed (for example it
// was removed after the walk) the whole build fails with ErrIO.
func (b *Builder) Build(root string) (*models.Catalog, error) {
	scannedAt := time.Now()

	paths, err := b.walker.ListFiles(root)
	if err != nil {
		return nil, err
	}

	records := make([]models.FileRecord, 0, len(paths))
	for i, path := range paths {
		record, err := b.record(path)
		if err != nil {
			return nil, err
		}
		records = append(records, record)

		if b.progress != nil {
			b.progress(i+1, len(paths), path)
		}
	}

	b.logger.Info("Catalog built",
		zap.String("root", root),
		zap.Int("files", len(records)),
		zap.Duration("duration", time.Since(scannedAt)))

	return models.NewCatalog(root, scannedAt, records), nil
}

func (b *Builder) record(path string) (models.FileRecord, error) {
	info, err := b.stat(path)
	if err != nil {
		return models.FileRecord{}, err
	}

	ext := filesystem.GetExtension(path)
	fileType := b.classifier.Classify(ext)

	b.logger.Debug("Cataloged file",
		zap.String("path", path),
		zap.String("file_type", string(fileType)),
		zap.Int64("size", info.Size))

	return models.FileRecord{
		Path:           path,
		Name:           filepath.Base(path),
		Extension:      ext,
		FileType:       fileType,
		SizeBytes:      info.Size,
		CreatedAt:      info.CreateTime,
		ModifiedAt:     info.ModTime,
		LastAccessedAt: info.AccessTime,
	}, nil
}

// BuildFileCatalog builds a catalog of root with the default classifier
func BuildFileCatalog(root string) (*models.Catalog, error) {
	return NewBuilder(nil, nil).Build(root)
}
