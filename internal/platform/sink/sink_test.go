package sink

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chatter/internal/platform/config"
	perr "chatter/internal/platform/errors"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestWriterAppendsNewline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (Writer{W: &buf}).Put(context.Background(), []byte(`{"a":1}`), "application/json"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\"a\":1}\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestFileReplacesContent(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "hot.json")
	f := File{Path: p}
	for _, body := range []string{"first", "second"} {
		if err := f.Put(context.Background(), []byte(body), "text/plain"); err != nil {
			t.Fatal(err)
		}
	}
	got, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("file = %q", got)
	}
}

func TestOpenPicksSink(t *testing.T) {
	t.Parallel()

	cfg := config.New().Prefix("SINKTEST_UNSET_")
	cases := []struct {
		out  string
		want string
	}{
		{"", "stdout"},
		{"-", "stdout"},
		{"/tmp/x.json", "/tmp/x.json"},
	}
	for _, tc := range cases {
		s, err := Open(context.Background(), tc.out, cfg)
		if err != nil {
			t.Fatalf("Open(%q): %v", tc.out, err)
		}
		if s.Describe() != tc.want {
			t.Fatalf("Open(%q) = %s", tc.out, s.Describe())
		}
	}

	_, err := Open(context.Background(), "s3://bucket-only", cfg)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body string
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Put(t *testing.T) {
	t.Parallel()

	fp := &fakePutter{}
	s := &S3{client: fp, bucket: "links", key: objectKey("/daily/", "hot.json")}
	if err := s.Put(context.Background(), []byte("{}"), "application/json"); err != nil {
		t.Fatal(err)
	}
	if *fp.in.Key != "daily/hot.json" || *fp.in.Bucket != "links" || fp.body != "{}" {
		t.Fatalf("unexpected put: key=%s bucket=%s body=%s", *fp.in.Key, *fp.in.Bucket, fp.body)
	}
	if s.Describe() != "s3://links/daily/hot.json" {
		t.Fatalf("describe = %s", s.Describe())
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	out := string(Table([]string{"rank", "url"}, [][]any{{1, "https://example.com/a"}}))
	if !strings.Contains(out, "RANK") || !strings.Contains(out, "https://example.com/a") {
		t.Fatalf("table output:\n%s", out)
	}
}
