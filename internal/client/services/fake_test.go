package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

// call records one request seen by fakeAPI.
type call struct {
	Method   string
	Path     string
	Query    url.Values
	Body     any
	Field    string
	Filename string
	Upload   string
}

type reply struct {
	body string
	err  error
}

// fakeAPI answers requests from a table keyed by "METHOD path".
type fakeAPI struct {
	replies map[string]reply
	calls   []call
	pingErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{replies: map[string]reply{}}
}

func (f *fakeAPI) on(method, path, body string, err error) *fakeAPI {
	f.replies[method+" "+path] = reply{body: body, err: err}
	return f
}

func (f *fakeAPI) answer(method, path string, out any) error {
	r, ok := f.replies[method+" "+path]
	if !ok {
		return fmt.Errorf("unexpected %s %s", method, path)
	}
	if r.err != nil {
		return r.err
	}
	if out == nil || r.body == "" {
		return nil
	}
	return json.Unmarshal([]byte(r.body), out)
}

func (f *fakeAPI) GetJSON(_ context.Context, path string, query url.Values, out any) error {
	f.calls = append(f.calls, call{Method: "GET", Path: path, Query: query})
	return f.answer("GET", path, out)
}

func (f *fakeAPI) PostJSON(_ context.Context, path string, in, out any) error {
	f.calls = append(f.calls, call{Method: "POST", Path: path, Body: in})
	return f.answer("POST", path, out)
}

func (f *fakeAPI) PutJSON(_ context.Context, path string, in, out any) error {
	f.calls = append(f.calls, call{Method: "PUT", Path: path, Body: in})
	return f.answer("PUT", path, out)
}

func (f *fakeAPI) Delete(_ context.Context, path string) error {
	f.calls = append(f.calls, call{Method: "DELETE", Path: path})
	return f.answer("DELETE", path, nil)
}

func (f *fakeAPI) PostMultipart(_ context.Context, path, field, filename string, r io.Reader, out any) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.calls = append(f.calls, call{Method: "POST", Path: path, Field: field, Filename: filename, Upload: string(b)})
	return f.answer("POST", path, out)
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }
