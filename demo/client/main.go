// Command demo/client starts a local pathnorm server in-process and issues
// a handful of normalize/check/subpath requests against it, printing the
// responses. It exists to give the API a runnable, human-readable example
// without needing a config file; the server listens on a loopback port that
// httptest picks.
//
// Grounded on demo/app/main.go (teacher): kept the tiny standalone
// http.Server-and-log.Println demo shape, replaced the fake upstream
// echo endpoints with a real client of internal/server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/klyr/pathnorm/internal/config"
	"github.com/klyr/pathnorm/internal/server"
)

func main() {
	cfg := &config.Config{
		ConfigVersion: 1,
		Dialects: map[string]config.Dialect{
			"posix": {},
			"win":   {AllowWindowsPath: true, AllowBackslash: true},
		},
	}

	srv := httptest.NewServer(server.New(cfg, nil, nil))
	defer srv.Close()

	log.Printf("demo server listening at %s", srv.URL)

	post(srv.URL+"/v1/normalize", map[string]string{"path": "/aa/bb/../cc", "dialect": "posix"})
	post(srv.URL+"/v1/normalize", map[string]string{"path": `C:\aa\..\..\bb`, "dialect": "win"})
	post(srv.URL+"/v1/check", map[string]string{"path": "/aa/bb", "dialect": "posix"})
	post(srv.URL+"/v1/subpath", map[string]string{"p1": "/a/b", "p2": "/a/b/c"})
}

func post(url string, body map[string]string) {
	data, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("marshal request: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		log.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("decode response: %v", err)
	}
	fmt.Printf("%s %v -> %v\n", url, body, out)
}
