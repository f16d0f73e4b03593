package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptYesNoIO(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes lowercase lf", input: "y\n", want: true},
		{name: "yes word lf", input: "yes\n", want: true},
		{name: "yes mixed case lf", input: "YeS\n", want: true},
		{name: "yes lowercase cr", input: "y\r", want: true},
		{name: "yes without newline", input: "y", want: true},
		{name: "no default lf", input: "\n", want: false},
		{name: "no explicit cr", input: "n\r", want: false},
		{name: "eof", input: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			got := promptYesNoIO(strings.NewReader(tc.input), &out, "Reset? [y/N]: ")
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Reset? [y/N]: ", out.String())
		})
	}
}

func TestReadPromptLine_StopsAtFirstLineBreak(t *testing.T) {
	in := strings.NewReader("84.5\r\nnext")
	line, err := readPromptLine(in)
	assert.NoError(t, err)
	assert.Equal(t, "84.5", line)
}
