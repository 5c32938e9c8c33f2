// Package backup periodically snapshots the SQLite database and uploads the
// copy to an S3-compatible bucket.
package backup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/promptdesk/internal/dbx"
	"github.com/dmitrijs2005/promptdesk/internal/logging"
	"github.com/dmitrijs2005/promptdesk/internal/server/config"
	"github.com/google/uuid"
)

var ErrUnsupportedDialect = errors.New("backup: only sqlite databases can be snapshotted")

// Uploader is the subset of *s3.Client used for uploads.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Snapshotter struct {
	db       *sql.DB
	dialect  dbx.Dialect
	uploader Uploader
	bucket   string
	logger   logging.Logger
	now      func() time.Time
}

func NewSnapshotter(db *sql.DB, dialect dbx.Dialect, u Uploader, bucket string, l logging.Logger) *Snapshotter {
	return &Snapshotter{
		db:       db,
		dialect:  dialect,
		uploader: u,
		bucket:   bucket,
		logger:   l.With("module", "backup"),
		now:      time.Now,
	}
}

// NewS3Client builds an S3 client from the server's static credentials.
// A non-empty base endpoint selects path-style addressing for MinIO.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		)),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// objectKey places snapshots under a dated prefix with a random name.
func (s *Snapshotter) objectKey() string {
	d := s.now().UTC()
	return fmt.Sprintf("backups/%d/%02d/%02d/%v.db", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Snapshot writes a consistent copy of the database with VACUUM INTO and
// uploads it. It returns the object key.
func (s *Snapshotter) Snapshot(ctx context.Context) (string, error) {
	if s.dialect != dbx.DialectSQLite {
		return "", ErrUnsupportedDialect
	}

	dir, err := os.MkdirTemp("", "promptdesk-backup-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "snapshot.db")
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("vacuum into: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	key := s.objectKey()
	_, err = s.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String("application/vnd.sqlite3"),
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	return key, nil
}

// Run snapshots every interval until ctx is cancelled. Failures are logged
// and retried on the next tick.
func (s *Snapshotter) Run(ctx context.Context, interval time.Duration) error {
	if s.dialect != dbx.DialectSQLite {
		return ErrUnsupportedDialect
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info(ctx, "Starting backups", "interval", interval, "bucket", s.bucket)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping backups...")
			return nil
		case <-ticker.C:
			key, err := s.Snapshot(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Error(ctx, "backup failed", "error", err)
				continue
			}
			s.logger.Info(ctx, "backup uploaded", "key", key)
		}
	}
}
