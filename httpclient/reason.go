package httpclient

import (
	"unicode/utf8"

	"golang.org/x/xerrors"
)

// maxReasonLength is the audit-log reason header's codepoint budget. Requests
// exceeding it fail validation before anything is sent, rather than arriving
// at the server as an opaque 400.
const maxReasonLength = 512

const auditLogReasonHeader = "X-Audit-Log-Reason"

// Reason validates an audit-log reason header value.
func Reason(s string) error {
	if n := utf8.RuneCountInString(s); n > maxReasonLength {
		return newError(KindValidation, xerrors.Errorf("reason is %d codepoints, exceeds %d", n, maxReasonLength))
	}

	return nil
}
