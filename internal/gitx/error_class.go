// SPDX-License-Identifier: MIT
package gitx

import "strings"

// PushCause classifies why a push failed.
type PushCause int

const (
	// CauseNone means the push succeeded.
	CauseNone PushCause = iota
	// CauseNotFound means the remote repository does not exist or is not visible.
	CauseNotFound
	// CauseAuthFailure means the credentials were rejected.
	CauseAuthFailure
	// CausePasswordAuthRemoved means the host no longer accepts account passwords.
	CausePasswordAuthRemoved
	// CauseNonFastForward means the remote has commits the local branch lacks.
	CauseNonFastForward
	// CauseNoUpstreamBranch means the branch is missing locally or has no upstream.
	CauseNoUpstreamBranch
	// CauseUnknown means no rule matched.
	CauseUnknown
)

// String returns a stable name for the cause.
func (c PushCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseNotFound:
		return "not_found"
	case CauseAuthFailure:
		return "auth"
	case CausePasswordAuthRemoved:
		return "password_auth_removed"
	case CauseNonFastForward:
		return "non_fast_forward"
	case CauseNoUpstreamBranch:
		return "no_upstream"
	case CauseUnknown:
		return "unknown"
	}
	return "unknown"
}

// Recoverable reports whether the conflict resolver should handle the cause.
func (c PushCause) Recoverable() bool {
	return c == CauseNonFastForward || c == CauseNoUpstreamBranch
}

// PushResult is the classified result of one push attempt.
type PushResult struct {
	OK     bool
	Cause  PushCause
	Output string
}

// causeRule pairs a cause with lowercase substrings that indicate it.
type causeRule struct {
	cause    PushCause
	patterns []string
}

// pushRules are evaluated in order and the first match wins. This is a
// best-effort reading of human-oriented git output; git's wording is not a
// stable contract, so anything unmatched is CauseUnknown.
//
// Password removal is checked before generic auth failure because the host
// prints both messages for the same rejection. Missing branches are checked
// before rejections because git follows "src refspec ... does not match any"
// with "failed to push some refs".
var pushRules = []causeRule{
	{cause: CauseNotFound, patterns: []string{
		"repository not found",
		"repository does not exist",
		"does not appear to be a git repository",
	}},
	{cause: CausePasswordAuthRemoved, patterns: []string{
		"support for password authentication was removed",
	}},
	{cause: CauseAuthFailure, patterns: []string{
		"permission denied",
		"authentication failed",
		"could not read username",
		"invalid username or password",
		"returned error: 403",
	}},
	{cause: CauseNoUpstreamBranch, patterns: []string{
		"has no upstream branch",
		"no upstream branch",
		"does not match any",
		"no such branch",
	}},
	{cause: CauseNonFastForward, patterns: []string{
		"updates were rejected",
		"non-fast-forward",
		"fetch first",
		"failed to push some refs",
		"rejected",
	}},
}

// ClassifyPush maps a push outcome to a PushResult.
func ClassifyPush(o Outcome) PushResult {
	if o.OK {
		return PushResult{OK: true, Cause: CauseNone, Output: o.Output}
	}
	return PushResult{Cause: ClassifyPushOutput(o.Output), Output: o.Output}
}

// ClassifyPushOutput applies the ordered push rules to raw output text.
func ClassifyPushOutput(output string) PushCause {
	lower := strings.ToLower(output)
	for _, rule := range pushRules {
		if containsAny(lower, rule.patterns...) {
			return rule.cause
		}
	}
	return CauseUnknown
}

// IsMissingRemoteBranch reports whether pull output says the remote branch
// does not exist or there is no tracking relationship to pull from.
func IsMissingRemoteBranch(output string) bool {
	return containsAny(strings.ToLower(output),
		"couldn't find remote ref",
		"no such ref was fetched",
		"no tracking information",
		"remote ref does not exist",
	)
}

// IsIdentityMissing reports whether commit output says user.name/user.email
// are not configured.
func IsIdentityMissing(output string) bool {
	return containsAny(strings.ToLower(output),
		"please tell me who you are",
		"unable to auto-detect email address",
		"empty ident name",
	)
}

// IsNothingToCommit reports whether commit output says there was nothing staged.
func IsNothingToCommit(output string) bool {
	return containsAny(strings.ToLower(output),
		"nothing to commit",
		"no changes added to commit",
	)
}

// HasMergeConflict reports whether pull/merge output left conflicts behind.
func HasMergeConflict(output string) bool {
	return strings.Contains(output, "CONFLICT") ||
		strings.Contains(strings.ToLower(output), "automatic merge failed")
}

func containsAny(msg string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
