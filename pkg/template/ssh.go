package template

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// [options] keytype key comment
	protocol2KeyPattern = regexp.MustCompile(`^((.*)\s+)?(ssh-dss|ssh-rsa|ssh-ed25519|ecdsa-sha2-nistp\d+)\s+([^\s]+)\s+(.*)$`)

	// [options] bits exponent modulus comment
	protocol1KeyPattern = regexp.MustCompile(`^((.*)\s+)?\d+\s+\d+\s+(\d+)\s+(.*)$`)
)

// Key is one line of an authorized_keys file
type Key struct {
	Complete string
	Options  string
	Type     string // empty for protocol 1 keys
	Key      string
	Comment  string

	// Name is the first word of the comment, usually user@host
	Name string
}

// ParseKey parses a protocol 2 or protocol 1 public key line. Quoted spaces
// in the options are supported as long as the options do not contain a key
// type keyword.
func ParseKey(line string) (*Key, error) {
	key := &Key{Complete: line}

	if m := protocol2KeyPattern.FindStringSubmatch(line); m != nil {
		key.Options = m[2]
		key.Type = m[3]
		key.Key = m[4]
		key.Comment = m[5]
	} else if m := protocol1KeyPattern.FindStringSubmatch(line); m != nil {
		key.Options = m[2]
		key.Key = m[3]
		key.Comment = m[4]
	} else {
		return nil, fmt.Errorf("invalid key %q", line)
	}

	fields := strings.Fields(key.Comment)
	if len(fields) == 0 {
		return nil, fmt.Errorf("key without a name %q", line)
	}
	key.Name = fields[0]

	return key, nil
}

// ParseKeys parses key lines, skipping blank ones, and indexes them by name.
// A later key replaces an earlier one with the same name.
func ParseKeys(lines []string) (map[string]*Key, error) {
	keys := make(map[string]*Key)
	for _, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, err := ParseKey(line)
		if err != nil {
			return nil, err
		}
		keys[key.Name] = key
	}
	return keys, nil
}
