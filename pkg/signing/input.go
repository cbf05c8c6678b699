// Copyright 2025 Truthcrawl Contributors

package signing

import "strings"

// BuildInput concatenates domain+"\n" followed by each field+"\n", the
// shared shape of every domain-separated signing input in this system
// (see domains.go and spec §4.3).
func BuildInput(domain string, fields ...string) []byte {
	var b strings.Builder
	b.WriteString(domain)
	b.WriteByte('\n')
	for _, f := range fields {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
