// SPDX-License-Identifier: MIT
package gitx

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/skaphos/gitbuddy/internal/model"
)

// DefaultHost is used for bare "owner/repo" input.
const DefaultHost = "github.com"

// FormatHint lists the accepted repository URL forms.
const FormatHint = "use https://github.com/owner/repo, git@github.com:owner/repo.git or owner/repo"

// ErrInvalidFormat is returned when a repository URL matches no accepted form.
var ErrInvalidFormat = errors.New("invalid repository URL format")

// Accepted forms, tried in order:
//
//	https://host/owner/repo[.git][/]
//	[user@]host:owner/repo.git
//	owner/repo
var (
	httpsPattern = regexp.MustCompile(`^https://([^/\s:@]+)/([^/\s]+)/([^/\s]+?)/?$`)
	sshPattern   = regexp.MustCompile(`^(?:[^@\s/:]+@)?([^@\s/:]+):([^/\s]+)/([^/\s]+\.git)$`)
	shortPattern = regexp.MustCompile(`^([^/\s:@]+)/([^/\s:@]+)$`)
)

// ValidateURL normalizes raw into the canonical https clone URL,
// https://<host>/<owner>/<repo>.git. Bare owner/repo uses DefaultHost.
//
// Examples:
//
//	octo/cat                         → https://github.com/octo/cat.git
//	https://github.com/octo/cat/     → https://github.com/octo/cat.git
//	git@github.com:octo/cat.git      → https://github.com/octo/cat.git
func ValidateURL(raw string) (string, error) {
	target, err := ParseRemoteTarget(raw, DefaultHost)
	if err != nil {
		return "", err
	}
	return target.URL, nil
}

// ParseRemoteTarget validates raw and splits it into host, owner and repo.
// defaultHost is used for the owner/repo form; empty means DefaultHost.
func ParseRemoteTarget(raw, defaultHost string) (model.RemoteTarget, error) {
	input := strings.TrimSpace(raw)
	if defaultHost = strings.TrimSpace(defaultHost); defaultHost == "" {
		defaultHost = DefaultHost
	}

	var host, owner, repo string
	switch {
	case input == "":
	case httpsPattern.MatchString(input):
		m := httpsPattern.FindStringSubmatch(input)
		host, owner, repo = m[1], m[2], m[3]
	case sshPattern.MatchString(input):
		m := sshPattern.FindStringSubmatch(input)
		host, owner, repo = m[1], m[2], m[3]
	case shortPattern.MatchString(input):
		m := shortPattern.FindStringSubmatch(input)
		host, owner, repo = defaultHost, m[1], m[2]
	}

	repo = strings.TrimSuffix(repo, ".git")
	if host == "" || owner == "" || repo == "" {
		return model.RemoteTarget{}, fmt.Errorf("%w %q: %s", ErrInvalidFormat, input, FormatHint)
	}
	host = strings.ToLower(host)
	return model.RemoteTarget{
		URL:   "https://" + host + "/" + owner + "/" + repo + ".git",
		Host:  host,
		Owner: owner,
		Repo:  repo,
	}, nil
}
