package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var requestTypeNames = map[string]int32{
	"text":   1,
	"search": 2,
	"image":  3,
	"file":   4,
}

// jsonlRecord mirrors the two JSONL shapes the upstream trace format uses:
// a nested "requests → turns → llm_messages → chunks → block_ids" shape, and
// a flat "hash_ids" + "type" shape.
type jsonlRecord struct {
	Requests []struct {
		Turns []struct {
			LLMMessages []struct {
				Chunks []struct {
					BlockIDs []uint64 `json:"block_ids"`
				} `json:"chunks"`
			} `json:"llm_messages"`
		} `json:"turns"`
	} `json:"requests"`
	HashIDs []uint64 `json:"hash_ids"`
	Type    string   `json:"type"`
}

// preprocessJSONL converts one JSONL trace file into the `{id1,id2,...} T`
// line format consumed by loadTrace, writing each record to w.
func preprocessJSONL(r io.Reader, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	lineWriter := bufio.NewWriter(w)
	defer lineWriter.Flush()

	written := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec jsonlRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return written, fmt.Errorf("preprocess: line %d: %w", lineNo, err)
		}

		if len(rec.Requests) > 0 {
			for _, request := range rec.Requests {
				for _, turn := range request.Turns {
					for _, msg := range turn.LLMMessages {
						for _, chunk := range msg.Chunks {
							if len(chunk.BlockIDs) == 0 {
								continue
							}
							if err := writeTraceLine(lineWriter, chunk.BlockIDs, 1); err != nil {
								return written, err
							}
							written++
						}
					}
				}
			}
			continue
		}

		if len(rec.HashIDs) == 0 {
			continue
		}
		reqType := int32(1)
		if rec.Type != "" {
			if t, ok := requestTypeNames[rec.Type]; ok {
				reqType = t
			}
		}
		if err := writeTraceLine(lineWriter, rec.HashIDs, reqType); err != nil {
			return written, err
		}
		written++
	}
	if err := scanner.Err(); err != nil {
		return written, fmt.Errorf("preprocess: %w", err)
	}
	return written, nil
}

func writeTraceLine(w *bufio.Writer, ids []uint64, reqType int32) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	_, err := fmt.Fprintf(w, "{%s} %d\n", strings.Join(parts, ","), reqType)
	return err
}
