package extip

import (
	"context"
	"net"
	"os/exec"
	"strings"

	"github.com/uciwire/uciwire/pkg/errors"
	"github.com/uciwire/uciwire/pkg/result"
)

// Lookup services tried in order; any one of them may be down.
var services = []string{
	"https://api.ipify.org",
	"https://icanhazip.com",
	"https://ifconfig.me/ip",
	"https://checkip.amazonaws.com",
}

// runCommand is swapped out in tests.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// fetcher is one way of issuing a plain HTTP GET by shelling out. The
// per-platform fetchers variable lists them in preference order.
type fetcher struct {
	name string
	args func(url string) []string
}

// Detect finds the host's external IPv4 address by shelling out to whichever
// of the platform's HTTP fetchers is available. Best-effort: callers treat
// failure as a warning, never as fatal.
func Detect(ctx context.Context) (string, error) {
	for _, service := range services {
		res := lookup(ctx, service)
		if res.IsOk() {
			return res.Value(), nil
		}
	}
	return "", errors.New("all IP lookup services failed")
}

func lookup(ctx context.Context, url string) result.Result[string] {
	var out []byte
	var err error
	for _, f := range fetchers {
		out, err = runCommand(ctx, f.name, f.args(url)...)
		if err == nil {
			break
		}
	}
	if err != nil {
		return result.Err[string](err)
	}

	ip := strings.TrimSpace(string(out))
	if net.ParseIP(ip) == nil {
		return result.Err[string](errors.New("service returned something that is not an IP address"))
	}
	return result.Ok(ip)
}
