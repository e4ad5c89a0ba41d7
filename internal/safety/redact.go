package safety

import "regexp"

type redactionRule struct {
	pattern     *regexp.Regexp
	replacement string
}

const secretWord = `(?:token|secret|password|passwd|passphrase|api[_-]?key|access[_-]?key)`

var messageRedactionRules = []redactionRule{
	{
		pattern:     regexp.MustCompile(`(?i)\b([a-z0-9_]*` + secretWord + `[a-z0-9_]*)\s*[=:]\s*([^\s"',]+|"[^"]*"|'[^']*')`),
		replacement: `$1=<redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(authorization\s*:\s*bearer)\s+([^\s"']+)`),
		replacement: `$1 <redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(--[a-z0-9_-]*` + secretWord + `[a-z0-9_-]*)\s*=\s*([^\s"']+|"[^"]*"|'[^']*')`),
		replacement: `$1=<redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(--[a-z0-9_-]*` + secretWord + `[a-z0-9_-]*)\s+([^\s"'-][^\s"']*|"[^"]*"|'[^']*')`),
		replacement: `$1 <redacted>`,
	},
}

// RedactMessage scrubs secrets from a command line or its captured stderr before
// the text is shown in an error notice.
func RedactMessage(input string) string {
	redacted := input
	for _, rule := range messageRedactionRules {
		redacted = rule.pattern.ReplaceAllString(redacted, rule.replacement)
	}
	return redacted
}
