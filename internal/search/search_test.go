package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixture = []string{
	"cat spam",
	"cat SPAM",
	"git add .",
	"git add . --dry-run",
	"git push origin master",
	"git rebase -i HEAD~2",
	"git checkout -b tests",
	"grep -r spam .",
	"ping -c 10 www.google.com",
	"ls -la",
	"lsusb",
	"lspci",
	"sudo reboot",
	"source .venv/bin/activate",
	"deactivate",
	"pytest",
	"cargo test",
	"xfce4-panel -r",
	"nano .gitignore",
	"sudo dkms add .",
	"cd ~/Downloads",
	"make -j4",
	"gpg --card-status",
	"echo šampion",
	"nano .github/workflows/build.yml",
	"cd /home/bwk/",
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		mode          Mode
		caseSensitive bool
		want          []string
	}{
		{"exact", "cat", ModeExact, false, []string{"cat spam", "cat SPAM"}},
		{"exact insensitive", "spam", ModeExact, false, []string{"cat spam", "cat SPAM", "grep -r spam ."}},
		{"exact sensitive", "SPAM", ModeExact, true, []string{"cat SPAM"}},
		{"exact metacharacters are literal", "~/", ModeExact, false, []string{"cd ~/Downloads"}},
		{"exact dot is literal", ".g", ModeExact, false, []string{"ping -c 10 www.google.com", "nano .gitignore", "nano .github/workflows/build.yml"}},
		{"regex", "[0-9]+", ModeRegex, false, []string{
			"git rebase -i HEAD~2",
			"ping -c 10 www.google.com",
			"xfce4-panel -r",
			"make -j4",
		}},
		{"regex anchors", "^ls", ModeRegex, false, []string{"ls -la", "lsusb", "lspci"}},
		{"fuzzy unicode", "šp", ModeFuzzy, false, []string{"echo šampion"}},
		{"fuzzy subsequence", "hwk", ModeFuzzy, false, []string{"nano .github/workflows/build.yml", "cd /home/bwk/"}},
		{"fuzzy sensitive", "SP", ModeFuzzy, true, []string{"cat SPAM"}},
		{"fuzzy insensitive", "SP", ModeFuzzy, false, []string{"cat spam", "cat SPAM", "grep -r spam .", "lspci"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(fixture, tt.query, tt.mode, tt.caseSensitive))
		})
	}
}

func TestFilterEmptyQuery(t *testing.T) {
	for _, mode := range []Mode{ModeExact, ModeRegex, ModeFuzzy} {
		t.Run(mode.String(), func(t *testing.T) {
			assert.Equal(t, fixture, Filter(fixture, "", mode, false))
			assert.Equal(t, fixture, Filter(fixture, "", mode, true))
		})
	}
}

func TestFilterInvalidRegex(t *testing.T) {
	assert.Equal(t, fixture, Filter(fixture, "[0-9", ModeRegex, false))
	assert.Equal(t, fixture, Filter(fixture, "(", ModeRegex, true))
}

func TestFilterIdempotent(t *testing.T) {
	once := Filter(fixture, "git", ModeExact, false)
	assert.Equal(t, once, Filter(once, "git", ModeExact, false))
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	input := []string{"b", "a", "ab"}
	Filter(input, "a", ModeExact, false)
	assert.Equal(t, []string{"b", "a", "ab"}, input)
}

func TestMatcherIndices(t *testing.T) {
	tests := []struct {
		name  string
		cmd   string
		query string
		mode  Mode
		want  []int
	}{
		{"exact", "cat spam", "cat", ModeExact, []int{0, 1, 2}},
		{"exact repeated", "spam spam", "spam", ModeExact, []int{0, 1, 2, 3, 5, 6, 7, 8}},
		{"regex single", "make -j4", "[0-9]+", ModeRegex, []int{7}},
		{"regex run", "ping -c 10 www.google.com", "[0-9]+", ModeRegex, []int{8, 9}},
		{"regex multibyte", "echo šampion", "š.", ModeRegex, []int{5, 7}},
		{"fuzzy", "cd /home/bwk/", "hwk", ModeFuzzy, []int{4, 10, 11}},
		{"no match", "ls", "zzz", ModeExact, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(tt.query, tt.mode, false)
			assert.Equal(t, tt.want, m.Indices(tt.cmd))
		})
	}
}

func TestSubsequenceMatcher(t *testing.T) {
	m := NewMatcher("gA", ModeFuzzy, true)
	assert.True(t, m.Match("git Add"))
	assert.False(t, m.Match("git add"))
	assert.Equal(t, []int{0, 4}, m.Indices("git Add"))

	unicode := NewMatcher("šp", ModeFuzzy, true)
	assert.Equal(t, []int{5, 9}, unicode.Indices("echo šampion"))
}

func TestMode(t *testing.T) {
	assert.Equal(t, ModeRegex, ModeExact.Next())
	assert.Equal(t, ModeFuzzy, ModeRegex.Next())
	assert.Equal(t, ModeExact, ModeFuzzy.Next())
	assert.Equal(t, ModeExact, Mode(9).Next())

	for _, mode := range []Mode{ModeExact, ModeRegex, ModeFuzzy} {
		parsed, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	_, err := ParseMode("glob")
	assert.Error(t, err)
}
