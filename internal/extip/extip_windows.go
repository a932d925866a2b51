//go:build windows

package extip

// PowerShell is the only fetcher guaranteed on a stock Windows host; curl and
// wget still come first for hosts that have them.
var fetchers = []fetcher{
	{name: "curl", args: func(url string) []string {
		return []string{"-s", "-4", "--max-time", "5", url}
	}},
	{name: "wget", args: func(url string) []string {
		return []string{"-qO-", "--timeout=5", url}
	}},
	{name: "powershell", args: func(url string) []string {
		return []string{"-Command", "(Invoke-WebRequest -Uri " + url + " -UseBasicParsing -TimeoutSec 5).Content"}
	}},
}
