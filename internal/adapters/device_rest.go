package adapters

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosync/internal/ports"
	"rosync/internal/shared"
	"rosync/internal/types"
)

const defaultDeviceTimeout = 30 * time.Second

// DeviceRESTAdapter talks to the device's REST API. Requests are never
// retried: a reconciliation run aborts on the first failure.
type DeviceRESTAdapter struct {
	BaseURL  string
	Username string
	Password string
	Client   *http.Client
}

func NewDeviceRESTAdapter(host string, username string, password string, useTLS bool, insecure bool, timeoutSec int) DeviceRESTAdapter {
	scheme := "http"
	if useTLS {
		scheme = "https"
	}
	base := strings.TrimRight(strings.TrimSpace(host), "/")
	if !strings.Contains(base, "://") {
		base = scheme + "://" + base
	}
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultDeviceTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return DeviceRESTAdapter{
		BaseURL:  base + "/rest",
		Username: username,
		Password: password,
		Client:   &http.Client{Timeout: timeout, Transport: transport},
	}
}

func (a DeviceRESTAdapter) Version(ctx context.Context) (string, error) {
	var resource map[string]any
	if err := a.do(ctx, http.MethodGet, a.pathURL(types.ParsePath("system resource")), nil, &resource); err != nil {
		return "", err
	}
	version, _ := resource["version"].(string)
	if strings.TrimSpace(version) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("device did not report a version")
	}
	return version, nil
}

// List reads every entry of path. Single-value paths answer with one JSON
// object instead of an array; that object becomes the only entry.
func (a DeviceRESTAdapter) List(ctx context.Context, path types.Path) ([]types.Entry, error) {
	var body json.RawMessage
	if err := a.do(ctx, http.MethodGet, a.pathURL(path), nil, &body); err != nil {
		return nil, err
	}
	raw, err := decodeRESTList(body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to decode entries of %q", path.String())).
			WithCause(err)
	}
	out := make([]types.Entry, 0, len(raw))
	for _, item := range raw {
		entry, err := decodeRESTEntry(item)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to decode entry of %q", path.String())).
				WithCause(err)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (a DeviceRESTAdapter) Add(ctx context.Context, path types.Path, fields types.Fields) (string, error) {
	var created map[string]any
	if err := a.do(ctx, http.MethodPut, a.pathURL(path), encodeRESTFields(fields), &created); err != nil {
		return "", err
	}
	id, _ := created[".id"].(string)
	if id == "" {
		if ret, ok := created["ret"].(string); ok {
			id = ret
		}
	}
	if id == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("device did not return an id for the new entry of %q", path.String()))
	}
	return id, nil
}

// Update sets changed values with PATCH and unsets removed fields through
// the unset command. An empty id uses the set command of a single-value
// path.
func (a DeviceRESTAdapter) Update(ctx context.Context, path types.Path, id string, changes types.Changes) error {
	values := map[string]string{}
	var unset []string
	for _, name := range changes.Keys() {
		state, _ := changes.Get(name)
		if value, ok := state.Value(); ok {
			values[name] = value.String()
			continue
		}
		unset = append(unset, name)
	}
	if len(values) > 0 {
		if id == "" {
			if err := a.do(ctx, http.MethodPost, a.commandURL(path, "set"), values, nil); err != nil {
				return err
			}
		} else if err := a.do(ctx, http.MethodPatch, a.itemURL(path, id), values, nil); err != nil {
			return err
		}
	}
	for _, name := range unset {
		body := map[string]string{"value-name": name}
		if id != "" {
			body["numbers"] = id
		}
		if err := a.do(ctx, http.MethodPost, a.commandURL(path, "unset"), body, nil); err != nil {
			return err
		}
	}
	return nil
}

func (a DeviceRESTAdapter) Remove(ctx context.Context, path types.Path, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]string{".id": strings.Join(ids, ",")}
	return a.do(ctx, http.MethodPost, a.commandURL(path, "remove"), body, nil)
}

func (a DeviceRESTAdapter) Invoke(ctx context.Context, path types.Path, command string, args types.Fields) error {
	return a.do(ctx, http.MethodPost, a.commandURL(path, command), encodeRESTFields(args), nil)
}

func (a DeviceRESTAdapter) pathURL(path types.Path) string {
	segments := make([]string, 0, len(path))
	for _, segment := range path {
		segments = append(segments, url.PathEscape(segment))
	}
	return a.BaseURL + "/" + strings.Join(segments, "/")
}

// Device ids such as *1A are used verbatim.
func (a DeviceRESTAdapter) itemURL(path types.Path, id string) string {
	return a.pathURL(path) + "/" + id
}

func (a DeviceRESTAdapter) commandURL(path types.Path, command string) string {
	return a.pathURL(path) + "/" + url.PathEscape(command)
}

func (a DeviceRESTAdapter) do(ctx context.Context, method string, target string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode device request").
				WithCause(err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create device request").
			WithCause(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(a.Username, a.Password)
	resp, err := a.Client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("device request failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return restStatusError(resp.StatusCode, method, target, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode device response").
			WithCause(err)
	}
	return nil
}

type restError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func restStatusError(status int, method string, target string, body []byte) error {
	var parsed restError
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &parsed); err == nil && (parsed.Detail != "" || parsed.Message != "") {
		message = strings.TrimSpace(parsed.Message + ": " + parsed.Detail)
	}
	code := errbuilder.CodeInternal
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = errbuilder.CodePermissionDenied
	case status == http.StatusNotFound:
		code = errbuilder.CodeNotFound
	case status == http.StatusBadRequest:
		code = errbuilder.CodeFailedPrecondition
	}
	return errbuilder.New().
		WithCode(code).
		WithMsg(fmt.Sprintf("device rejected %s request: %s", method, message)).
		WithCause(shared.HTTPStatusErrorWithBody(status, target, message))
}

func decodeRESTList(body json.RawMessage) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '{' {
		var item map[string]any
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return nil, err
		}
		return []map[string]any{item}, nil
	}
	var items []map[string]any
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeRESTEntry(item map[string]any) (types.Entry, error) {
	entry := types.Entry{}
	keys := make([]string, 0, len(item))
	for key := range item {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		raw := item[key]
		switch key {
		case ".id":
			entry.ID = fmt.Sprint(raw)
			continue
		case "dynamic":
			entry.Dynamic = restFlag(raw)
			continue
		case "builtin":
			entry.Builtin = restFlag(raw)
			continue
		}
		if strings.HasPrefix(key, ".") {
			continue
		}
		switch typed := raw.(type) {
		case string:
			entry.Fields.Set(key, types.ParseDeviceWord(typed))
		default:
			value, err := types.ValueOf(typed)
			if err != nil {
				return types.Entry{}, fmt.Errorf("field %q: %w", key, err)
			}
			entry.Fields.Set(key, value)
		}
	}
	return entry, nil
}

func restFlag(raw any) bool {
	switch typed := raw.(type) {
	case bool:
		return typed
	case string:
		return typed == "true" || typed == "yes"
	default:
		return false
	}
}

func encodeRESTFields(fields types.Fields) map[string]string {
	out := make(map[string]string, fields.Len())
	for _, name := range fields.Keys() {
		value, _ := fields.Get(name)
		out[name] = value.String()
	}
	return out
}

var _ ports.DevicePort = DeviceRESTAdapter{}
