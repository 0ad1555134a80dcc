// Package fetch performs a single HTTP/1.1 GET over a raw TCP or TLS
// socket — no net/http client — returning the response body when the
// status is 200 and the content type is text/html, and following up to a
// bounded number of redirects otherwise.
package fetch

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const headerNameKey = "no-name"

// Fetch performs an HTTP/1.1 GET against rawURL. redirects is the number of
// 3xx responses it will still follow; it returns ok=false without error for
// every non-success outcome (malformed URL, I/O failure, non-HTML content,
// non-2xx/3xx status, or redirect budget exhausted) per the fetcher's
// contract of never surfacing these as errors to the crawler.
func Fetch(rawURL string, redirects int) (body string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	return fetchURL(u, redirects)
}

func fetchURL(u *url.URL, redirects int) (string, bool) {
	conn, err := openConnection(u)
	if err != nil {
		return "", false
	}
	defer conn.Close()

	if err := writeGetRequest(conn, u); err != nil {
		return "", false
	}

	reader := bufio.NewReader(conn)
	status, headers, err := readHeaders(reader)
	if err != nil {
		return "", false
	}

	if isRedirect(status, headers) && redirects > 0 {
		loc := headers["location"]
		if len(loc) == 0 {
			return "", false
		}
		target, err := u.Parse(loc[0])
		if err != nil {
			return "", false
		}
		return fetchURL(target, redirects-1)
	}

	if status == 200 && isHTML(headers) {
		content, err := readAll(reader)
		if err != nil {
			return "", false
		}
		return content, true
	}
	return "", false
}

func openConnection(u *url.URL) (net.Conn, error) {
	host := u.Hostname()
	port := u.Port()
	dialer := net.Dialer{Timeout: 10 * time.Second}

	switch u.Scheme {
	case "https":
		if port == "" {
			port = "443"
		}
		return tls.DialWithDialer(&dialer, "tcp", net.JoinHostPort(host, port), &tls.Config{ServerName: host})
	case "http":
		if port == "" {
			port = "80"
		}
		return dialer.Dial("tcp", net.JoinHostPort(host, port))
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func writeGetRequest(conn net.Conn, u *url.URL) error {
	path := u.RequestURI()
	if path == "" {
		path = "/"
	}
	request := fmt.Sprintf("GET %s HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n", path, u.Host)
	_, err := conn.Write([]byte(request))
	return err
}

// readHeaders reads the status line (stored under headerNameKey) and every
// header line up to the blank line separating headers from the body.
// Header values are split on ": " and lowercased by name for lookup.
func readHeaders(reader *bufio.Reader) (status int, headers map[string][]string, err error) {
	headers = make(map[string][]string)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, nil, err
	}
	line = strings.TrimRight(line, "\r\n")
	headers[headerNameKey] = []string{line}
	status = parseStatusCode(line)

	for {
		line, err = reader.ReadString('\n')
		if err != nil {
			return 0, nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		key := strings.ToLower(name)
		headers[key] = append(headers[key], value)
	}
	return status, headers, nil
}

func readAll(reader *bufio.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			sb.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	return sb.String(), nil
}

func parseStatusCode(statusLine string) int {
	parts := strings.Fields(statusLine)
	if len(parts) < 2 {
		return -1
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	return code
}

func isHTML(headers map[string][]string) bool {
	values := headers["content-type"]
	if len(values) == 0 {
		return false
	}
	return strings.HasPrefix(strings.ToLower(values[0]), "text/html")
}

func isRedirect(status int, headers map[string][]string) bool {
	if status < 300 || status > 399 {
		return false
	}
	return len(headers["location"]) > 0
}
