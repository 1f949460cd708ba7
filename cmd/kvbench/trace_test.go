package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTraceLine_ParsesIDsAndType(t *testing.T) {
	is := assert.New(t)

	rec, err := parseTraceLine("{1,2,3} 4")
	is.NoError(err)
	is.Equal([]uint64{1, 2, 3}, rec.prefixIDs)
	is.Equal(int32(4), rec.reqType)
}

func TestParseTraceLine_EmptyBraces(t *testing.T) {
	is := assert.New(t)

	rec, err := parseTraceLine("{} 1")
	is.NoError(err)
	is.Empty(rec.prefixIDs)
	is.Equal(int32(1), rec.reqType)
}

func TestParseTraceLine_BlankAndCommentReturnNil(t *testing.T) {
	is := assert.New(t)

	rec, err := parseTraceLine("   ")
	is.NoError(err)
	is.Nil(rec)

	rec, err = parseTraceLine("# a comment")
	is.NoError(err)
	is.Nil(rec)
}

func TestParseTraceLine_MissingBraces(t *testing.T) {
	is := assert.New(t)

	_, err := parseTraceLine("1,2,3 1")
	is.Error(err)
}

func TestParseTraceLine_InvalidIdentifier(t *testing.T) {
	is := assert.New(t)

	_, err := parseTraceLine("{1,x,3} 1")
	is.Error(err)
}

func TestParseTraceLine_MissingRequestType(t *testing.T) {
	is := assert.New(t)

	_, err := parseTraceLine("{1,2,3}")
	is.Error(err)
}

func TestParseTraceLine_InvalidRequestType(t *testing.T) {
	is := assert.New(t)

	_, err := parseTraceLine("{1,2,3} abc")
	is.Error(err)
}

func TestLoadTrace_SkipsBlankAndCommentLines(t *testing.T) {
	is := assert.New(t)

	input := "# header\n{1,2} 1\n\n{3} 2\n"
	records, err := loadTrace(strings.NewReader(input))
	is.NoError(err)
	is.Len(records, 2)
	is.Equal([]uint64{1, 2}, records[0].prefixIDs)
	is.Equal([]uint64{3}, records[1].prefixIDs)
}

func TestLoadTrace_EmptyInputErrors(t *testing.T) {
	is := assert.New(t)

	_, err := loadTrace(strings.NewReader("# only a comment\n"))
	is.Error(err)
}

func TestLoadTrace_MalformedLineReportsLineNumber(t *testing.T) {
	is := assert.New(t)

	input := "{1,2} 1\n{bad} 1\n"
	_, err := loadTrace(strings.NewReader(input))
	is.Error(err)
	is.Contains(err.Error(), "line 2")
}
