// Package sink delivers rendered batch output to stdout, a file or an S3 bucket
package sink

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"chatter/internal/platform/config"
	perr "chatter/internal/platform/errors"
)

// Sink receives one rendered document per call
type Sink interface {
	Put(ctx context.Context, body []byte, contentType string) error
	Describe() string
}

// Writer sends documents to an io.Writer, e.g. os.Stdout
type Writer struct{ W io.Writer }

// Put writes body followed by a newline when missing
func (s Writer) Put(_ context.Context, body []byte, _ string) error {
	if _, err := s.W.Write(body); err != nil {
		return err
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		_, err := io.WriteString(s.W, "\n")
		return err
	}
	return nil
}

// Describe names the destination for logs
func (Writer) Describe() string { return "stdout" }

// File replaces the file at Path on every Put
type File struct{ Path string }

// Put writes body to a temp file and renames it over Path
func (s File) Put(_ context.Context, body []byte, _ string) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".hotlist-*")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "create temp in %s", dir)
	}
	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

// Describe names the destination for logs
func (s File) Describe() string { return s.Path }

// Open picks a sink from an output target: "" or "-" is stdout, s3://bucket/key is S3,
// anything else is a file path. S3 credentials come from cfg (SINK_S3_*)
func Open(ctx context.Context, out string, cfg config.Conf) (Sink, error) {
	switch {
	case out == "" || out == "-":
		return Writer{W: os.Stdout}, nil
	case strings.HasPrefix(out, "s3://"):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(out, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			return nil, perr.InvalidArgf("s3 output must look like s3://bucket/key, got %q", out)
		}
		opt := S3FromConfig(cfg)
		opt.Bucket = bucket
		opt.Key = key
		return NewS3(ctx, opt)
	default:
		return File{Path: out}, nil
	}
}
