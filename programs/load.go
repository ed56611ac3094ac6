package programs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/reusee/bf/logs"
	"github.com/reusee/bf/nets"
)

// MaxRemoteSize bounds programs fetched over http.
const MaxRemoteSize = 64 << 20

// Load reads the whole program text from a file path or an http(s) URL.
type Load func(ctx context.Context, source string) ([]byte, error)

func (Module) Load(
	client nets.HTTPClient,
	logger logs.Logger,
) Load {
	return func(ctx context.Context, source string) (program []byte, err error) {
		defer func() {
			if err == nil {
				logger.DebugContext(ctx, "program loaded",
					"source", source,
					"length", len(program),
				)
			}
		}()

		if isRemote(source) {
			return fetch(ctx, client, source)
		}

		program, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read program: %w", err)
		}
		return program, nil
	}
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://")
}

func fetch(ctx context.Context, client nets.HTTPClient, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch program: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch program: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch program: %s: %s", url, resp.Status)
	}
	program, err := io.ReadAll(io.LimitReader(resp.Body, MaxRemoteSize+1))
	if err != nil {
		return nil, fmt.Errorf("fetch program: %w", err)
	}
	if len(program) > MaxRemoteSize {
		return nil, fmt.Errorf("fetch program: %s: larger than %d bytes", url, MaxRemoteSize)
	}
	return program, nil
}
