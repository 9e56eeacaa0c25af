package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tortuga/pkg/annotate"
	"tortuga/pkg/compiler"
	"tortuga/pkg/interp"
)

// loopResponse annotates "create Tom and do move Tom forward 10 pixels twice".
const loopResponse = `{
  "sentences": [
    {
      "tokens": [
        {"word": "create", "index": 1, "pos": "VB"},
        {"word": "Tom", "index": 2, "pos": "NNP"},
        {"word": "and", "index": 3, "pos": "CC"},
        {"word": "do", "index": 4, "pos": "VB"},
        {"word": "move", "index": 5, "pos": "VB"},
        {"word": "Tom", "index": 6, "pos": "NNP"},
        {"word": "forward", "index": 7, "pos": "RB"},
        {"word": "10", "index": 8, "pos": "CD"},
        {"word": "pixels", "index": 9, "pos": "NNS"},
        {"word": "twice", "index": 10, "pos": "RB"}
      ],
      "basic-dependencies": [
        {"governor": 0, "dependent": 1, "dep": "root"},
        {"governor": 1, "dependent": 2, "dep": "dobj"},
        {"governor": 1, "dependent": 3, "dep": "cc"},
        {"governor": 1, "dependent": 4, "dep": "conj"},
        {"governor": 4, "dependent": 5, "dep": "ccomp"},
        {"governor": 5, "dependent": 6, "dep": "dobj"},
        {"governor": 5, "dependent": 7, "dep": "advmod"},
        {"governor": 5, "dependent": 9, "dep": "nmod"},
        {"governor": 9, "dependent": 8, "dep": "nummod"},
        {"governor": 4, "dependent": 10, "dep": "advmod"}
      ]
    }
  ]
}`

// TestPipeline runs a sentence through annotation, compilation and the
// interpreter, end to end.
func TestPipeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, loopResponse)
	}))
	defer srv.Close()

	drv := compiler.NewDriver(compiler.New(), annotate.NewClient(srv.URL+"/", nil), nil)
	lines, errs, err := drv.CompileText(context.Background(), "create Tom and do move Tom forward 10 pixels twice")
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Equal(t, []string{
		"create Tom",
		"repeat 2",
		"fd Tom 10.0",
		"end",
	}, lines)

	var executed []string
	sink := func(op string, args []string) {
		executed = append(executed, op+" "+strings.Join(args, " "))
	}
	require.NoError(t, interp.New(interp.SliceSource(lines), sink).Run())
	assert.Equal(t, []string{
		"create Tom",
		"fd Tom 10.0",
		"fd Tom 10.0",
	}, executed)
}

func TestPrintSink(t *testing.T) {
	var b strings.Builder
	sink := printSink(&b)
	sink("create", []string{"Tom"})
	sink("fd", []string{"Tom", "10.0"})
	sink("end", nil)
	assert.Equal(t, "create Tom\nfd Tom 10.0\nend\n", b.String())
}
