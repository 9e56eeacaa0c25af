package interp

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tortuga/pkg/asm"
)

// recorder collects the sink's emissions as rendered instruction lines.
type recorder struct {
	got []string
}

func (r *recorder) sink(op string, args []string) {
	r.got = append(r.got, strings.TrimSpace(op+" "+strings.Join(args, " ")))
}

func run(t *testing.T, lines []string) ([]string, error) {
	t.Helper()
	rec := &recorder{}
	ip := New(SliceSource(lines), rec.sink)
	err := ip.Run()
	return rec.got, err
}

func TestBasicForwarding(t *testing.T) {
	got, err := run(t, []string{"create a", "fd a 10.0", "deg a", "destroy a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"create a", "fd a 10.0", "deg a", "destroy a"}, got)
}

func TestBlankLinesDiscarded(t *testing.T) {
	got, err := run(t, []string{"", "fd a 1", "   ", "fd b 2", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"fd a 1", "fd b 2"}, got)
}

func TestRepeatThree(t *testing.T) {
	got, err := run(t, []string{"repeat 3", "fd a 10", "end", "bk a 1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fd a 10", "fd a 10", "fd a 10", "bk a 1"}, got)
}

func TestRepeatZeroSkipsBody(t *testing.T) {
	got, err := run(t, []string{"repeat 0", "fd a 10", "end", "fd b 2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fd b 2"}, got, "execution must resume right after the matching end")
}

func TestNestedRepeatZeroAllSkipped(t *testing.T) {
	got, err := run(t, []string{
		"repeat 0",
		"repeat 0",
		"fd a 1",
		"end",
		"repeat 2",
		"fd b 1",
		"end",
		"end",
		"fd c 3",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fd c 3"}, got, "nested blocks inside a skipped region must not execute")
}

func TestRepeatZeroInsideLiveLoop(t *testing.T) {
	got, err := run(t, []string{
		"repeat 2",
		"fd a 1",
		"repeat 0",
		"fd b 1",
		"end",
		"end",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fd a 1", "fd a 1"}, got)
}

func TestNestedLoops(t *testing.T) {
	got, err := run(t, []string{
		"repeat 2",
		"fd a 1",
		"repeat 2",
		"fd b 1",
		"end",
		"end",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"fd a 1", "fd b 1", "fd b 1",
		"fd a 1", "fd b 1", "fd b 1",
	}, got)
}

func TestUnmatchedEnd(t *testing.T) {
	_, err := run(t, []string{"fd a 1", "end"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnmatchedEnd)
}

func TestInvalidOpcodeFatal(t *testing.T) {
	got, err := run(t, []string{"fd a 1", "teleport a 5", "fd b 1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, asm.ErrInvalidOpcode)
	assert.Equal(t, []string{"fd a 1"}, got, "execution halts at the bad instruction")
}

func TestArityMismatchFatal(t *testing.T) {
	_, err := run(t, []string{"fd a"})
	assert.ErrorIs(t, err, asm.ErrArityMismatch)
}

func TestLoopReplaysFromHistory(t *testing.T) {
	// The source must be pulled exactly once per distinct line; loop
	// iterations replay from history.
	pulls := 0
	lines := []string{"repeat 3", "fd a 1", "end"}
	src := func() (string, error) {
		if pulls >= len(lines) {
			return "", io.EOF
		}
		line := lines[pulls]
		pulls++
		return line, nil
	}
	rec := &recorder{}
	require.NoError(t, New(src, rec.sink).Run())
	assert.Equal(t, 3, pulls)
	assert.Len(t, rec.got, 3)
}

func TestLargeLoopTerminates(t *testing.T) {
	got, err := run(t, []string{"repeat 1000", "fd a 1", "end"})
	require.NoError(t, err)
	assert.Len(t, got, 1000)
}

func TestReaderSource(t *testing.T) {
	var input strings.Builder
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&input, "fd t%d 1\n", i)
	}
	rec := &recorder{}
	ip := New(ReaderSource(strings.NewReader(input.String())), rec.sink)
	require.NoError(t, ip.Run())
	assert.Equal(t, []string{"fd t0 1", "fd t1 1", "fd t2 1"}, rec.got)
}

func TestNilSink(t *testing.T) {
	ip := New(SliceSource([]string{"fd a 1"}), nil)
	require.NoError(t, ip.Run())
}

func TestSourceErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	src := func() (string, error) { return "", boom }
	err := New(src, nil).Run()
	assert.ErrorIs(t, err, boom)
}
