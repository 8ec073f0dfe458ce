// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/olmapi/olmapi/internal/proptag"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantExit   int
		wantStdout []string
		wantStderr string
	}{
		{
			name:     "explain by hex",
			args:     []string{"0x0070001E"},
			wantExit: 0,
			wantStdout: []string{
				"0x0070001E",
				"PR_CONVERSATION_TOPIC_A",
				"PT_STRING8",
			},
		},
		{
			name:     "explain by name",
			args:     []string{"PR_CONVERSATION_TOPIC_A"},
			wantExit: 0,
			wantStdout: []string{
				"0x0070001E",
				"id:           0x0070",
			},
		},
		{
			name:     "named multi-valued tag",
			args:     []string{"0x8233101F"},
			wantExit: 0,
			wantStdout: []string{
				"multi-valued: true",
				"named:        true",
			},
		},
		{
			name:       "malformed tag",
			args:       []string{"banana"},
			wantExit:   1,
			wantStderr: "banana",
		},
		{
			name:     "mixed good and bad",
			args:     []string{"0x0070001E", "nope"},
			wantExit: 1,
			wantStdout: []string{
				"0x0070001E",
			},
			wantStderr: "nope",
		},
		{
			name:     "type listing",
			args:     []string{"-type", "PT_STRING8"},
			wantExit: 0,
			wantStdout: []string{
				"PR_CONVERSATION_TOPIC_A",
			},
		},
		{
			name:       "unknown type",
			args:       []string{"-type", "PT_BANANA"},
			wantExit:   1,
			wantStderr: "unknown property type",
		},
		{
			name:       "no arguments",
			args:       nil,
			wantExit:   2,
			wantStderr: "at least one tag is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			exit := run(tt.args, &stdout, &stderr)

			if exit != tt.wantExit {
				t.Fatalf("exit = %d, want %d (stderr: %s)", exit, tt.wantExit, stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout.String())
				}
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exit := run([]string{"-json", "0x0070001E"}, &stdout, &stderr)

	if exit != 0 {
		t.Fatalf("exit = %d, want 0 (stderr: %s)", exit, stderr.String())
	}

	var infos []proptag.Info
	if err := json.Unmarshal(stdout.Bytes(), &infos); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if len(infos) != 1 {
		t.Fatalf("len(infos) = %d, want 1", len(infos))
	}
	if infos[0].Hex != "0x0070001E" {
		t.Errorf("hex = %q, want 0x0070001E", infos[0].Hex)
	}
	if infos[0].Name != "PR_CONVERSATION_TOPIC_A" {
		t.Errorf("name = %q, want PR_CONVERSATION_TOPIC_A", infos[0].Name)
	}
}
