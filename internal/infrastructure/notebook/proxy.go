package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	ProxyHost = "https://kkb-production.jupyter-proxy.kaggle.net"
	WebPort   = "8000"
)

var (
	ErrNoServers       = errors.New("no running jupyter servers found")
	ErrNoBaseURL       = errors.New("no base_url found for running jupyter server")
	ErrUnparsedBaseURL = errors.New("could not parse kernel/token from base url")
)

// Server is the subset of a Jupyter server info file we need.
type Server struct {
	URL     string `json:"url"`
	BaseURL string `json:"base_url"`
	PID     int    `json:"pid"`
	Port    int    `json:"port"`
	Root    string `json:"root_dir"`
}

type ProxyURL struct {
	Prefix string
	URL    string
}

// RuntimeDir resolves the Jupyter runtime directory the same way Jupyter does.
func RuntimeDir() string {
	if dir := os.Getenv("JUPYTER_RUNTIME_DIR"); dir != "" {
		return dir
	}
	if data := os.Getenv("JUPYTER_DATA_DIR"); data != "" {
		return filepath.Join(data, "runtime")
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "jupyter", "runtime")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "share", "jupyter", "runtime")
	}
	return filepath.Join(home, ".local", "share", "jupyter", "runtime")
}

// ListRunningServers reads server info files from dir in name order.
// Unreadable or malformed files are skipped.
func ListRunningServers(dir string) ([]Server, error) {
	var files []string
	for _, pattern := range []string{"jpserver-*.json", "nbserver-*.json"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	servers := make([]Server, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		var s Server
		if err := json.Unmarshal(data, &s); err != nil {
			continue
		}
		servers = append(servers, s)
	}
	return servers, nil
}

// BuildProxyURL derives the proxied web UI location from a server base url
// such as /k/<user>/<kernel>/<token>/.
func BuildProxyURL(baseURL string) (ProxyURL, error) {
	if baseURL == "" {
		return ProxyURL{}, ErrNoBaseURL
	}

	var parts []string
	for _, p := range strings.Split(baseURL, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 4 {
		return ProxyURL{}, fmt.Errorf("%w: %s", ErrUnparsedBaseURL, baseURL)
	}

	prefix := fmt.Sprintf("/k/%s/%s/proxy/proxy/%s", parts[2], parts[3], WebPort)
	return ProxyURL{Prefix: prefix, URL: ProxyHost + prefix}, nil
}

// DiscoverProxyURL uses the first running server found in dir.
func DiscoverProxyURL(dir string) (ProxyURL, error) {
	servers, err := ListRunningServers(dir)
	if err != nil {
		return ProxyURL{}, err
	}
	if len(servers) == 0 {
		return ProxyURL{}, ErrNoServers
	}
	return BuildProxyURL(servers[0].BaseURL)
}
