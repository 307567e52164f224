package handler

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

func newTestPrompt(input string) (*Prompt, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompt(strings.NewReader(input), &out, nil), &out
}

func TestPromptFloatReprompts(t *testing.T) {
	p, out := newTestPrompt("lots\n12.5\n")

	v, err := p.Float("budget")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)
	assert.Contains(t, out.String(), "incorrect input")
}

func TestPromptOptionalInt(t *testing.T) {
	p, _ := newTestPrompt("\n4\n")

	v, err := p.OptionalInt("prof_id")
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = p.OptionalInt("prof_id")
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)
}

func TestPromptConfirm(t *testing.T) {
	p, out := newTestPrompt("maybe\nN\n")

	ok, err := p.Confirm("create")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "create (y/n): ")
}

func TestPromptEndOfInput(t *testing.T) {
	p, _ := newTestPrompt("")

	_, err := p.Int("select")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptShowRemembersOnlySuccess(t *testing.T) {
	p, out := newTestPrompt("")
	result := &models.ResultSet{Columns: []string{"club_id"}, Rows: [][]string{{"1"}}}

	p.Show("Clubs", result, nil)
	p.Show("Broken", nil, appErrors.Clone(appErrors.ErrQuery, "boom"))

	last, title := p.Last()
	assert.Same(t, result, last)
	assert.Equal(t, "Clubs", title)
	assert.Contains(t, out.String(), "1 row(s)")
	assert.Contains(t, out.String(), "[query] boom")
}

func TestPromptLineRejectsOversizedLine(t *testing.T) {
	p, out := newTestPrompt(strings.Repeat("x", 70*1024) + "\nok\n")

	v, err := p.Line("name")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Contains(t, out.String(), "incorrect input")
}

func TestPromptLineAcceptsLineAtLimit(t *testing.T) {
	long := strings.Repeat("y", maxLineLength-1)
	p, out := newTestPrompt(long + "\n")

	v, err := p.Line("name")
	require.NoError(t, err)
	assert.Equal(t, long, v)
	assert.NotContains(t, out.String(), "incorrect input")
}

func TestPromptLineOversizedAtEOF(t *testing.T) {
	p, out := newTestPrompt(strings.Repeat("z", 70*1024))

	_, err := p.Line("name")
	assert.ErrorIs(t, err, io.EOF)
	assert.Contains(t, out.String(), "incorrect input")
}
