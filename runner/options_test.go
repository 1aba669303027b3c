package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "no arguments",
			args: nil,
			want: Options{Path: "my_sketch.rb", Args: []string{}},
		},
		{
			name: "action only defaults the path to the directory name",
			args: []string{"run"},
			want: Options{Action: "run", Path: "my_sketch.rb", Args: []string{}},
		},
		{
			name: "trailing arguments pass through",
			args: []string{"create", "wishy", "640", "480"},
			want: Options{Action: "create", Path: "wishy", Args: []string{"640", "480"}},
		},
		{
			name: "flags before the action",
			args: []string{"--jruby", "--bare", "create", "wishy"},
			want: Options{Action: "create", Path: "wishy", Args: []string{}, Bare: true, JRuby: true},
		},
		{
			name: "flags between positionals",
			args: []string{"create", "wishy", "--bare", "640", "--jruby", "480"},
			want: Options{Action: "create", Path: "wishy", Args: []string{"640", "480"}, Bare: true, JRuby: true},
		},
		{
			name: "repeated flags",
			args: []string{"run", "--jruby", "a.rb", "--jruby"},
			want: Options{Action: "run", Path: "a.rb", Args: []string{}, JRuby: true},
		},
		{
			name: "other dashed arguments are positional",
			args: []string{"-v"},
			want: Options{Action: "-v", Path: "my_sketch.rb", Args: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOptions(tt.args, "/home/me/my_sketch")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionsDoesNotMutateInput(t *testing.T) {
	args := []string{"run", "--bare", "a.rb"}
	ParseOptions(args, "/tmp")
	assert.Equal(t, []string{"run", "--bare", "a.rb"}, args)
}
