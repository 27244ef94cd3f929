package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"folio-cli/internal/web"

	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

const testData = `[
  {"id":"a","title":"Alpha","summary":"First","tags":["x"]},
  {"id":"b","title":"Beta","summary":"Second","tags":["y","x"],"repo":"https://example.com/beta"}
]`

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func writeData(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	return path
}

func decodeEnvelope(t *testing.T, stdout []byte) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s", err, string(stdout))
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected data key; got %v", env)
	}
	return env
}

func TestList_FiltersByQueryAndTag(t *testing.T) {
	src := writeData(t, testData)

	stdout, stderr, err := runCLI(t, []string{"--source", src, "list", "--tag", "x", "--query", "SEC"})
	if err != nil {
		t.Fatalf("list: %v\nstderr:\n%s", err, stderr)
	}
	env := decodeEnvelope(t, stdout)
	items := env["data"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["id"] != "b" {
		t.Fatalf("expected only b, got %v", items)
	}
	meta := env["meta"].(map[string]any)
	if meta["total"].(float64) != 2 || meta["matched"].(float64) != 1 {
		t.Fatalf("unexpected meta: %v", meta)
	}
}

func TestTags_SortedVocabulary(t *testing.T) {
	src := writeData(t, testData)

	stdout, _, err := runCLI(t, []string{"--source", src, "tags"})
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	got := decodeEnvelope(t, stdout)["data"].([]any)
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("expected [x y], got %v", got)
	}
}

func TestShow_DetailAndNotFound(t *testing.T) {
	src := writeData(t, testData)

	stdout, _, err := runCLI(t, []string{"--source", src, "show", "b"})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	d := decodeEnvelope(t, stdout)["data"].(map[string]any)
	if d["title"] != "Beta" || d["hasRepo"] != true {
		t.Fatalf("unexpected detail: %v", d)
	}

	_, stderr, err := runCLI(t, []string{"--source", src, "show", "zzz"})
	if err == nil {
		t.Fatalf("expected not found error")
	}
	if _, ok := err.(notFoundError); !ok {
		t.Fatalf("expected notFoundError, got %T", err)
	}
	if !strings.Contains(string(stderr), "project not found: zzz") {
		t.Fatalf("expected not found message, got:\n%s", stderr)
	}
}

func TestShow_Markdown(t *testing.T) {
	src := writeData(t, testData)

	stdout, _, err := runCLI(t, []string{"--source", src, "show", "a", "--markdown"})
	if err != nil {
		t.Fatalf("show --markdown: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "## Alpha\n") {
		t.Fatalf("expected markdown, got:\n%s", stdout)
	}
}

func TestLoadError_ReportsGuidance(t *testing.T) {
	src := writeData(t, `{"id":"a"}`)

	_, stderr, err := runCLI(t, []string{"--source", src, "list"})
	if err == nil {
		t.Fatalf("expected load error")
	}
	if !strings.Contains(string(stderr), "Check that "+src+" exists and is valid JSON.") {
		t.Fatalf("expected load guidance, got:\n%s", stderr)
	}
}

func TestFormat_YAML(t *testing.T) {
	src := writeData(t, testData)

	stdout, _, err := runCLI(t, []string{"--source", src, "--format", "yaml", "tags"})
	if err != nil {
		t.Fatalf("tags --format yaml: %v", err)
	}
	var env struct {
		Data []string `yaml:"data"`
	}
	if err := yaml.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal yaml: %v\n%s", err, stdout)
	}
	if strings.Join(env.Data, ",") != "x,y" {
		t.Fatalf("unexpected yaml data: %v", env.Data)
	}
}

func TestConfigFile_SuppliesSource(t *testing.T) {
	src := writeData(t, testData)
	cfgPath := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(cfgPath, []byte("source: "+src+"\nowner: Sam\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"--config", cfgPath, "show", "a"})
	if err != nil {
		t.Fatalf("show with config: %v", err)
	}
	if decodeEnvelope(t, stdout)["data"].(map[string]any)["id"] != "a" {
		t.Fatalf("expected project a from configured source")
	}

	_, _, err = runCLI(t, []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "tags"})
	if err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestPublish_WritesSite(t *testing.T) {
	src := writeData(t, testData)
	out := t.TempDir()

	stdout, stderr, err := runCLI(t, []string{"--source", src, "publish", "--to", out, "--markdown"})
	if err != nil {
		t.Fatalf("publish: %v\nstderr:\n%s", err, stderr)
	}
	written := decodeEnvelope(t, stdout)["data"].(map[string]any)["written"].([]any)
	if len(written) == 0 || written[0] != "index.html" {
		t.Fatalf("unexpected written list: %v", written)
	}
	for _, rel := range []string{"index.html", "project-a.html", "project-b.html", "tag-x.html", "PROJECTS.md"} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Fatalf("expected %s: %v", rel, err)
		}
	}

	if _, _, err := runCLI(t, []string{"--source", src, "publish", "--to", out, "--overwrite=false"}); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
}

func TestPublish_RequiresTo(t *testing.T) {
	src := writeData(t, testData)
	if _, _, err := runCLI(t, []string{"--source", src, "publish"}); err == nil {
		t.Fatalf("expected missing --to error")
	}
}

func TestServe_ServesUntilCanceled(t *testing.T) {
	src := writeData(t, testData)
	srv, err := web.NewServer(context.Background(), web.ServerConfig{Source: src, Logger: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, ln, true, zaptest.NewLogger(t)) }()

	client := &http.Client{Timeout: 5 * time.Second, Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		cancel()
		t.Fatalf("GET /health: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "ok\n" {
		t.Fatalf("unexpected health body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop after cancel")
	}
}

func TestPublish_CopiesMediaFromRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "assets", "img"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "assets", "img", "a.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	src := writeData(t, `[{"id":"a","title":"Alpha","coverImage":"assets/img/a.png"}]`)
	out := t.TempDir()

	if _, stderr, err := runCLI(t, []string{"--source", src, "publish", "--to", out, "--root", root}); err != nil {
		t.Fatalf("publish: %v\nstderr:\n%s", err, stderr)
	}
	if _, err := os.Stat(filepath.Join(out, "assets", "img", "a.png")); err != nil {
		t.Fatalf("expected copied image: %v", err)
	}
}

func TestDocs_TopicsAndTopic(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"docs"})
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	topics := decodeEnvelope(t, stdout)["data"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}

	stdout, _, err = runCLI(t, []string{"docs", "data-format"})
	if err != nil {
		t.Fatalf("docs data-format: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "# ") {
		t.Fatalf("expected markdown topic, got:\n%s", stdout)
	}

	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected unknown topic error")
	}
}
