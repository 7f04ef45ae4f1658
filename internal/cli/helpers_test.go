package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/hobbyparts/hpt/internal/config"
	"github.com/hobbyparts/hpt/internal/fakeapi"
	"github.com/hobbyparts/hpt/internal/model"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

// exampleData is the two-item, one-container inventory used across tests.
func exampleData() fakeapi.Data {
	return fakeapi.Data{
		Items: []model.Item{
			{ItemID: 1, ItemName: "Screws", Weight: model.Ptr(10.0), Price: model.Ptr(5.0), Image: []byte{0xff, 0xd8}},
			{ItemID: 2, ItemName: "Servo", Weight: model.Ptr(20.0), Price: model.Ptr(15.0)},
		},
		Containers: []model.Container{
			{ContainerID: 100, ContainerName: "Bin A", LocationID: model.Ptr[model.ID](10)},
		},
		Locations: []model.Location{{LocationID: 10, LocationName: "Garage"}},
		Links:     []model.ItemLocationLink{{ItemLocationID: 1, ItemID: 1, ContainerID: 100}},
		Projects: []model.Project{
			{ProjectID: 1, ProjectName: "Robot arm"},
			{ProjectID: 2, ProjectName: "Drone"},
		},
	}
}

// useBackend points the CLI at srv for the duration of the test and
// restores the package globals afterwards.
func useBackend(t *testing.T, srv *fakeapi.Server, asJSON bool) {
	t.Helper()

	prevEndpoint := endpoint
	prevJSON := jsonOutput
	prevWarnings := pendingWarnings
	prevTimeout := timeoutFlag
	prevCfg := cfg
	t.Cleanup(func() {
		endpoint = prevEndpoint
		jsonOutput = prevJSON
		pendingWarnings = prevWarnings
		timeoutFlag = prevTimeout
		cfg = prevCfg
	})

	endpoint = &config.Endpoint{APIURL: srv.URL, URLSource: config.SourceFlag}
	jsonOutput = asJSON
	pendingWarnings = nil
	timeoutFlag = 0
	cfg = &config.Config{}
}

// resetCommandFlags clears command-local flag variables before and after a test.
func resetCommandFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		summaryWithItems = false
		summaryMarkdown = false
		itemsLoose = false
		itemsContainer = ""
		itemsSort = sortByBackend
		itemsDescribe = false
		placeNone = false
		exportForce = false
		includeImages = false
		checkStrict = false
	}
	reset()
	t.Cleanup(reset)
}

// envelope is Response with the data left raw for per-test decoding.
type envelope struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
	Meta     *Meta           `json:"meta"`
}

func decodeEnvelope(t *testing.T, out string, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v; data=%s", err, env.Data)
		}
	}
	return env
}
