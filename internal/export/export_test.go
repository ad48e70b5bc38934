package export

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/dailycontents/internal/errors"
	"github.com/vango-dev/dailycontents/pkg/middleware"
	"github.com/vango-dev/dailycontents/pkg/vtest"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

type memStore struct {
	files map[string]string
}

func (m *memStore) Put(_ context.Context, key string, body []byte, _ string) error {
	if m.files == nil {
		m.files = make(map[string]string)
	}
	m.files[key] = string(body)
	return nil
}

func (m *memStore) Location(key string) string { return "mem://" + key }

func testExporter(opts Options) *Exporter {
	if opts.Now == nil {
		opts.Now = vtest.YearClock(2024)
	}
	if opts.Owner == "" {
		opts.Owner = "Acme"
	}
	return New(opts)
}

func TestKeyFor(t *testing.T) {
	tests := map[string]string{
		"/":       "index.html",
		"":        "index.html",
		"/users":  "users/index.html",
		"/users/": "users/index.html",
		"/a/b":    "a/b/index.html",
	}
	for path, want := range tests {
		if got := KeyFor(path); got != want {
			t.Errorf("KeyFor(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestExportWritesOneDocumentPerPage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("NewDirStore: %v", err)
	}

	files, err := testExporter(Options{Lang: "de", Scripts: []string{"https://cdn.example/t.js"}}).Export(context.Background(), store)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var keys []string
	for _, f := range files {
		keys = append(keys, f.Key)
	}
	if diff := cmp.Diff([]string{"index.html", "users/index.html"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	landing, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatalf("read landing: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", `lang="de"`, "<title>Landing Page</title>", `<script src="https://cdn.example/t.js"></script>`, "Click Me"} {
		if !strings.Contains(string(landing), want) {
			t.Errorf("landing missing %q", want)
		}
	}
	if strings.Contains(string(landing), "/_live") {
		t.Error("exported document should not load the live client")
	}

	users, err := os.ReadFile(filepath.Join(dir, "users", "index.html"))
	if err != nil {
		t.Fatalf("read users: %v", err)
	}
	if !strings.Contains(string(users), "© 2024 Acme. All rights reserved.") {
		t.Errorf("users footer missing, got:\n%s", users)
	}

	if files[1].Location != filepath.Join(dir, "users", "index.html") {
		t.Errorf("Location = %q", files[1].Location)
	}
	if files[1].Bytes != len(users) {
		t.Errorf("Bytes = %d, want %d", files[1].Bytes, len(users))
	}
}

func TestExportRunsMiddleware(t *testing.T) {
	var ops []string
	mw := middleware.MiddlewareFunc(func(op *middleware.Op, next func() error) error {
		ops = append(ops, string(op.Kind)+" "+op.Page)
		return next()
	})

	store := &memStore{}
	if _, err := testExporter(Options{Middleware: []middleware.Middleware{mw}}).Export(context.Background(), store); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if diff := cmp.Diff([]string{"render /", "render /users"}, ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestExportRenderFailure(t *testing.T) {
	boom := stderrors.New("boom")
	mw := middleware.MiddlewareFunc(func(op *middleware.Op, next func() error) error {
		return boom
	})

	_, err := testExporter(Options{Middleware: []middleware.Middleware{mw}}).Export(context.Background(), &memStore{})
	if !errors.Is(err, "E200") {
		t.Fatalf("err = %v, want E200", err)
	}
	if !stderrors.Is(err, boom) {
		t.Error("E200 should wrap the middleware error")
	}
}

func TestExportNilStore(t *testing.T) {
	_, err := testExporter(Options{}).Export(context.Background(), nil)
	if !errors.Is(err, "E203") {
		t.Fatalf("err = %v, want E203", err)
	}
}

func TestExportCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &memStore{}
	files, err := testExporter(Options{}).Export(ctx, store)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(files) != 0 || len(store.files) != 0 {
		t.Errorf("nothing should be written after cancel, got %d files", len(store.files))
	}
}

func TestRender(t *testing.T) {
	e := testExporter(Options{Now: func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }})

	html, err := e.Render(context.Background(), "/users")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "© 2031 Acme.") {
		t.Errorf("footer year missing in:\n%s", html)
	}

	_, err = e.Render(context.Background(), "/missing")
	var unknown *errors.Error
	if !stderrors.As(err, &unknown) || unknown.Code != "E204" || unknown.Category != errors.CategoryExport {
		t.Errorf("err = %v, want export error E204", err)
	}
}

func TestDirStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore: %v", err)
	}
	for _, key := range []string{"", ".", "..", "../x.html", "a/../../x.html", "/etc/passwd"} {
		if err := store.Put(context.Background(), key, []byte("x"), ContentType); !errors.Is(err, "E201") {
			t.Errorf("Put(%q) err = %v, want E201", key, err)
		}
	}
}

func TestNewDirStoreEmptyDir(t *testing.T) {
	if _, err := NewDirStore(""); !errors.Is(err, "E203") {
		t.Errorf("err = %v, want E203", err)
	}
}

func TestS3StorePut(t *testing.T) {
	client := &fakeS3{}
	store := NewS3Store(client, "site-bucket", "/daily")

	if err := store.Put(context.Background(), "users/index.html", []byte("<p>hi</p>"), ContentType); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("PutObject calls = %d, want 1", len(client.inputs))
	}

	in := client.inputs[0]
	got := map[string]string{
		"bucket":       aws.ToString(in.Bucket),
		"key":          aws.ToString(in.Key),
		"contentType":  aws.ToString(in.ContentType),
		"cacheControl": aws.ToString(in.CacheControl),
		"body":         client.bodies[0],
	}
	want := map[string]string{
		"bucket":       "site-bucket",
		"key":          "daily/users/index.html",
		"contentType":  "text/html; charset=utf-8",
		"cacheControl": "public, max-age=300",
		"body":         "<p>hi</p>",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PutObject input mismatch (-want +got):\n%s", diff)
	}

	if loc := store.Location("index.html"); loc != "s3://site-bucket/daily/index.html" {
		t.Errorf("Location = %q", loc)
	}
}

func TestS3StorePutError(t *testing.T) {
	denied := stderrors.New("access denied")
	store := NewS3Store(&fakeS3{err: denied}, "b", "")

	err := store.Put(context.Background(), "index.html", nil, ContentType)
	if !errors.Is(err, "E202") {
		t.Fatalf("err = %v, want E202", err)
	}
	if !stderrors.Is(err, denied) {
		t.Error("E202 should wrap the client error")
	}
}

func TestExportToS3(t *testing.T) {
	client := &fakeS3{}
	files, err := testExporter(Options{}).Export(context.Background(), NewS3Store(client, "b", ""))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(client.inputs) != 2 {
		t.Fatalf("PutObject calls = %d, want 2", len(client.inputs))
	}
	if files[0].Location != "s3://b/index.html" {
		t.Errorf("Location = %q", files[0].Location)
	}
}

func TestNewS3Client(t *testing.T) {
	client := NewS3Client(S3Options{Endpoint: "http://localhost:9000", PathStyle: true})
	opts := client.Options()
	if opts.Region != "us-east-1" {
		t.Errorf("Region = %q, want us-east-1", opts.Region)
	}
	if !opts.UsePathStyle {
		t.Error("UsePathStyle should be set")
	}
	if aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %q", aws.ToString(opts.BaseEndpoint))
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	if _, err := envCredentials(context.Background()); !errors.Is(err, "E202") {
		t.Errorf("err = %v, want E202", err)
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_SESSION_TOKEN", "token")
	creds, err := envCredentials(context.Background())
	if err != nil {
		t.Fatalf("envCredentials: %v", err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "secret" || creds.SessionToken != "token" {
		t.Errorf("creds = %+v", creds)
	}
}
