package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		options string
		typ     string
		key     string
		comment string
		keyName string
	}{
		{
			name:    "plain key with long comment",
			line:    "ssh-dss AAAAB3Nz...fz8= deffi@aquilae (Zeta Aquilae)",
			typ:     "ssh-dss",
			key:     "AAAAB3Nz...fz8=",
			comment: "deffi@aquilae (Zeta Aquilae)",
			keyName: "deffi@aquilae",
		},
		{
			name:    "with options",
			line:    `from="acme.de",command="bin/bam" ssh-dss AAAAB3Nz...fz8= deffi@brimspark`,
			options: `from="acme.de",command="bin/bam"`,
			typ:     "ssh-dss",
			key:     "AAAAB3Nz...fz8=",
			comment: "deffi@brimspark",
			keyName: "deffi@brimspark",
		},
		{
			name:    "quoted space in command",
			line:    `command="ls /tmp" ssh-dss AAAAB3Nz...fz8= deffi@limefrost`,
			options: `command="ls /tmp"`,
			typ:     "ssh-dss",
			key:     "AAAAB3Nz...fz8=",
			comment: "deffi@limefrost",
			keyName: "deffi@limefrost",
		},
		{
			name:    "quoted quote in command",
			line:    `command="ls \"/tmp\"" ssh-dss AAAAB3Nz...fz8= deffi@baloris`,
			options: `command="ls \"/tmp\""`,
			typ:     "ssh-dss",
			key:     "AAAAB3Nz...fz8=",
			comment: "deffi@baloris",
			keyName: "deffi@baloris",
		},
		{
			name:    "ed25519",
			line:    "ssh-ed25519 AAAAC3Nz deffi@puuma",
			typ:     "ssh-ed25519",
			key:     "AAAAC3Nz",
			comment: "deffi@puuma",
			keyName: "deffi@puuma",
		},
		{
			name:    "ssh1 without options",
			line:    "2048 65537 1234567890 deffi@tycho (SSH1)",
			key:     "1234567890",
			comment: "deffi@tycho (SSH1)",
			keyName: "deffi@tycho",
		},
		{
			name:    "ssh1 with options",
			line:    "foo=bar 2048 65537 1234567890 deffi@brahe (SSH1)",
			options: "foo=bar",
			key:     "1234567890",
			comment: "deffi@brahe (SSH1)",
			keyName: "deffi@brahe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseKey(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.line, key.Complete)
			assert.Equal(t, tt.options, key.Options)
			assert.Equal(t, tt.typ, key.Type)
			assert.Equal(t, tt.key, key.Key)
			assert.Equal(t, tt.comment, key.Comment)
			assert.Equal(t, tt.keyName, key.Name)
		})
	}
}

func TestParseKeyInvalid(t *testing.T) {
	for _, line := range []string{
		"ssh-xyz AAAAB3Nz...fz8= deffi@quartzon",
		"ssh-dss AAAAB3Nz...fz8=",
		"",
	} {
		_, err := ParseKey(line)
		assert.Error(t, err, line)
	}
}

func TestParseKeys(t *testing.T) {
	keys, err := ParseKeys([]string{
		"ssh-dss foo deffi@tycho",
		"",
		"ssh-dss bar deffi@brahe (omega)",
	})
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "ssh-dss foo deffi@tycho", keys["deffi@tycho"].Complete)
	assert.Equal(t, "ssh-dss bar deffi@brahe (omega)", keys["deffi@brahe"].Complete)

	_, err = ParseKeys([]string{"garbage"})
	assert.Error(t, err)
}
