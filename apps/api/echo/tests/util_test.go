package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/trackademics/apps/api/echo"
	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/assistant"
	"github.com/trezcool/trackademics/core/task"
	"github.com/trezcool/trackademics/tests"
)

var (
	// Saturday 10 May 2025, 15:30 local time
	now = time.Date(2025, time.May, 10, 15, 30, 0, 0, time.Local)

	errNotFound = httpErr{Error: "not found"}
)

type providerMock struct {
	calls  int
	gotCtx string
	answer string
	err    error
}

func (p *providerMock) Ask(_ context.Context, background, _ string) (string, error) {
	p.calls++
	p.gotCtx = background
	return p.answer, p.err
}

type testApp struct {
	*Server
	repos    testutil.Repos
	provider *providerMock
}

func setup(t *testing.T) testApp {
	core.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { core.NowFunc = time.Now })

	conf := testutil.NewConfig()
	logger := testutil.NewLogger(conf)
	repos := testutil.NewRepos(t)
	validate, translator := testutil.NewValidator()
	provider := &providerMock{answer: "Start with an outline."}

	server := NewServer(
		ServerDeps{
			Conf:         conf,
			Logger:       logger,
			TaskSvc:      task.NewService(repos.Exams, repos.Submissions),
			AssistantSvc: assistant.NewService(provider, 0 /* no cache */, logger),
			Validate:     validate,
			Translator:   translator,
		},
	)
	return testApp{Server: server, repos: repos, provider: provider}
}

// day returns midnight `offset` days from `now`, optionally at `hour`.
func day(offset int, hour ...int) core.DateTime {
	h := 0
	if len(hour) > 0 {
		h = hour[0]
	}
	y, m, d := now.Date()
	return core.NaiveDateTime(y, m, d+offset, h, 0)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (app testApp) run(t *testing.T, tt httpTest) *httptest.ResponseRecorder {
	req, rec := newRequest(tt.method, tt.path, tt.body)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
