package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// apiError is a non-2xx answer of the API.
type apiError struct {
	Code    int
	Message string
}

func (err *apiError) Error() string {
	return err.Message
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do sends `body` as JSON and decodes the response into `out` when it is not nil.
func (c *apiClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apiError{Code: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}
	if out == nil {
		return nil
	}
	return errors.Wrap(json.Unmarshal(data, out), "decoding response")
}

// errorMessage flattens `{"error": msg}` and `{field: msg}` bodies.
func errorMessage(code int, data []byte) string {
	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil || len(body) == 0 {
		if msg := strings.TrimSpace(string(data)); msg != "" {
			return msg
		}
		return http.StatusText(code)
	}
	if msg, ok := body["error"].(string); ok {
		return msg
	}
	fields := make([]string, 0, len(body))
	for field, msg := range body {
		fields = append(fields, fmt.Sprintf("%s: %v", field, msg))
	}
	sort.Strings(fields)
	return strings.Join(fields, "; ")
}

func filterQuery(status, typ, subject string) string {
	v := make(url.Values)
	if status != "" {
		v.Set("status", status)
	}
	if typ != "" {
		v.Set("type", typ)
	}
	if subject != "" {
		v.Set("subject", subject)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Records

func (c *apiClient) listSubmissions(ctx context.Context, status, subject string) ([]record, error) {
	var resp struct {
		Submissions []record `json:"submissions"`
	}
	if err := c.do(ctx, http.MethodGet, "/submission/all"+filterQuery(status, "", subject), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Submissions, nil
}

func (c *apiClient) listExams(ctx context.Context, status, typ, subject string) ([]record, error) {
	var resp struct {
		Exams []record `json:"exams"`
	}
	if err := c.do(ctx, http.MethodGet, "/exam/all"+filterQuery(status, typ, subject), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Exams, nil
}

func (c *apiClient) add(ctx context.Context, kind string, payload map[string]string) (record, error) {
	var resp struct {
		Message string `json:"message"`
		Data    record `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/"+kind+"/add", payload, &resp); err != nil {
		return record{}, err
	}
	return resp.Data, nil
}

func (c *apiClient) delete(ctx context.Context, kind, id string) error {
	return c.do(ctx, http.MethodDelete, "/"+kind+"/"+url.PathEscape(id), nil, nil)
}

// transition fires `event` (complete | reopen) on a record.
func (c *apiClient) transition(ctx context.Context, kind, id, event string) (record, error) {
	var resp struct {
		Data record `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/"+kind+"/"+url.PathEscape(id)+"/"+event, nil, &resp); err != nil {
		return record{}, err
	}
	return resp.Data, nil
}

func (c *apiClient) ask(ctx context.Context, kind, id, question string) (string, error) {
	var resp struct {
		Answer string `json:"answer"`
	}
	body := map[string]string{"question": question}
	if err := c.do(ctx, http.MethodPost, "/"+kind+"/"+url.PathEscape(id)+"/ask", body, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// askGeneral sends a question without any record context.
func (c *apiClient) askGeneral(ctx context.Context, question string) (string, error) {
	var resp struct {
		Answer string `json:"answer"`
	}
	body := map[string]string{"question": question}
	if err := c.do(ctx, http.MethodPost, "/assistant/ask", body, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}
