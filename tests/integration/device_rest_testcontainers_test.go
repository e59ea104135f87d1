//go:build integration

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"rosync/internal/adapters"
	"rosync/internal/app"
	"rosync/internal/ports"
	"rosync/internal/types"
	"rosync/tests/testutil"
)

func TestE2ERESTSyncWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers e2e in short mode")
	}

	ctx := t.Context()
	host, cleanup := startRouterMock(ctx, t)
	t.Cleanup(cleanup)

	target := ports.DeviceTarget{
		Backend:    "rest",
		Host:       host,
		Username:   "admin",
		Password:   "secret",
		TimeoutSec: 10,
	}
	desired := filepath.Join(testutil.RepoRoot(t), "fixtures", "desired-state.yaml")
	service := app.NewService()

	first, err := service.Sync(ctx, app.SyncRequest{DesiredPath: desired, Target: target})
	require.NoError(t, err)
	assert.True(t, first.Changed)
	assert.Equal(t, "7.16.1 (stable)", first.Version)

	device := adapters.NewDeviceRESTAdapter(host, "admin", "secret", false, false, 10)

	identity, err := device.List(ctx, types.ParsePath("system identity"))
	require.NoError(t, err)
	require.Len(t, identity, 1)
	assert.Empty(t, identity[0].ID)
	name, _ := identity[0].Fields.Get("name")
	assert.Equal(t, types.Text("edge-router"), name)

	addresses, err := device.List(ctx, types.ParsePath("ip address"))
	require.NoError(t, err)
	var addressList []string
	for _, entry := range addresses {
		address, _ := entry.Fields.Get("address")
		addressList = append(addressList, address.String())
	}
	assert.ElementsMatch(t, []string{"192.0.2.1/24", "10.0.0.1/8", "198.51.100.1/24"}, addressList)

	filter, err := device.List(ctx, types.ParsePath("ip firewall filter"))
	require.NoError(t, err)
	var actions []string
	for _, entry := range filter {
		action, _ := entry.Fields.Get("action")
		actions = append(actions, action.String())
	}
	assert.Equal(t, []string{"accept", "drop", "fasttrack-connection"}, actions)

	second, err := service.Sync(ctx, app.SyncRequest{DesiredPath: desired, Target: target})
	require.NoError(t, err)
	assert.False(t, second.Changed)
}

func TestE2ERESTRejectsBadCredentials(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers e2e in short mode")
	}

	ctx := t.Context()
	host, cleanup := startRouterMock(ctx, t)
	t.Cleanup(cleanup)

	_, err := app.NewService().Sync(ctx, app.SyncRequest{
		DesiredPath: filepath.Join(testutil.RepoRoot(t), "fixtures", "desired-state.yaml"),
		Target:      ports.DeviceTarget{Backend: "rest", Host: host, Username: "admin", Password: "wrong"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func startRouterMock(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"python", "-c", routerMockScript},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(context.Background())
	}
	return fmt.Sprintf("%s:%s", host, port.Port()), cleanup
}

// routerMockScript serves a small in-memory subset of the RouterOS REST
// API seeded with the same state as fixtures/device-state.yaml.
const routerMockScript = `
import base64, json
from http.server import BaseHTTPRequestHandler, ThreadingHTTPServer

STATE = {
    "system/identity": {"name": "MikroTik"},
    "ip/address": [
        {".id": "*1", "address": "192.0.2.1/24", "interface": "ether1", "network": "192.0.2.0", "disabled": "false", "dynamic": "false"},
        {".id": "*2", "address": "203.0.113.1/24", "interface": "ether2", "network": "203.0.113.0", "disabled": "false", "dynamic": "false"},
        {".id": "*3", "address": "10.0.0.1/8", "interface": "ether1", "network": "10.0.0.0", "disabled": "false", "dynamic": "true"},
    ],
    "ip/firewall/filter": [
        {".id": "*4", "chain": "input", "action": "drop", "in-interface": "ether1", "disabled": "false", "dynamic": "false"},
        {".id": "*5", "chain": "input", "action": "accept", "connection-state": "established,related", "disabled": "false", "dynamic": "false"},
        {".id": "*6", "chain": "forward", "action": "accept", "log": "true", "disabled": "false", "dynamic": "false"},
    ],
}
NEXT = [10]
AUTH = "Basic " + base64.b64encode(b"admin:secret").decode()


class Handler(BaseHTTPRequestHandler):
    def send(self, status, body):
        data = json.dumps(body).encode()
        self.send_response(status)
        self.send_header("Content-Type", "application/json")
        self.send_header("Content-Length", str(len(data)))
        self.end_headers()
        self.wfile.write(data)

    def fail(self, status, message, detail=""):
        self.send(status, {"error": status, "message": message, "detail": detail})

    def body(self):
        length = int(self.headers.get("Content-Length") or 0)
        return json.loads(self.rfile.read(length)) if length else {}

    def route(self):
        if self.headers.get("Authorization") != AUTH:
            self.fail(401, "Unauthorized")
            return None, None
        parts = self.path.split("?")[0].strip("/").split("/")
        if not parts or parts[0] != "rest":
            self.fail(404, "Not Found")
            return None, None
        parts = parts[1:]
        for n in range(len(parts), 0, -1):
            key = "/".join(parts[:n])
            if key in STATE:
                return key, parts[n:]
        return "/".join(parts), None

    def find(self, key, item_id):
        for entry in STATE[key]:
            if entry.get(".id") == item_id:
                return entry
        return None

    def do_GET(self):
        key, rest = self.route()
        if key is None:
            return
        if key == "system/resource":
            self.send(200, {"version": "7.16.1 (stable)", "uptime": "1d"})
            return
        if rest != []:
            self.fail(404, "Not Found")
            return
        self.send(200, STATE[key])

    def do_PUT(self):
        key, rest = self.route()
        if key is None:
            return
        if rest != []:
            self.fail(404, "Not Found")
            return
        entry = {".id": "*%X" % NEXT[0]}
        NEXT[0] += 1
        entry.update(self.body())
        entry.setdefault("disabled", "false")
        entry.setdefault("dynamic", "false")
        STATE[key].append(entry)
        self.send(201, entry)

    def do_PATCH(self):
        key, rest = self.route()
        if key is None:
            return
        entry = self.find(key, rest[0]) if rest and len(rest) == 1 else None
        if entry is None:
            self.fail(404, "Not Found")
            return
        entry.update(self.body())
        self.send(200, entry)

    def do_POST(self):
        key, rest = self.route()
        if key is None:
            return
        if not rest or len(rest) != 1:
            self.fail(404, "Not Found")
            return
        command, args = rest[0], self.body()
        entries = STATE[key]
        if command == "set":
            entry = self.find(key, args.pop("numbers")) if "numbers" in args else entries
            if not isinstance(entry, dict):
                self.fail(400, "Bad Request", "no such item")
                return
            entry.update(args)
        elif command == "unset":
            entry = self.find(key, args.get("numbers")) if args.get("numbers") else entries
            if not isinstance(entry, dict):
                entry = None
            if entry is None:
                self.fail(400, "Bad Request", "no such item")
                return
            entry.pop(args.get("value-name"), None)
        elif command == "remove":
            ids = args.get(".id", "").split(",")
            if any(self.find(key, i) is None for i in ids):
                self.fail(400, "Bad Request", "no such item")
                return
            STATE[key] = [e for e in entries if e.get(".id") not in ids]
        elif command == "move":
            moved = [self.find(key, i) for i in args.get("numbers", "").split(",")]
            if any(m is None for m in moved):
                self.fail(400, "Bad Request", "no such item")
                return
            rest_entries = [e for e in entries if e not in moved]
            dest = args.get("destination", "")
            index = len(rest_entries)
            for i, e in enumerate(rest_entries):
                if e.get(".id") == dest:
                    index = i
            STATE[key] = rest_entries[:index] + moved + rest_entries[index:]
        else:
            self.fail(400, "Bad Request", "no such command")
            return
        self.send(200, [])

    def log_message(self, format, *args):
        pass


ThreadingHTTPServer(("0.0.0.0", 8080), Handler).serve_forever()
`
