package logx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitWriterLevels(t *testing.T) {
	var buf bytes.Buffer

	InitWriter(&buf, Config{})
	log.Debug().Msg("hidden")
	log.Info().Str("run_id", "r1").Msg("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatal("debug event written at info level")
	}
	if !strings.Contains(buf.String(), `"run_id":"r1"`) {
		t.Fatalf("unexpected output: %s", buf.String())
	}

	buf.Reset()
	InitWriter(&buf, Config{Debug: true})
	log.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatal("debug event missing at debug level")
	}

	buf.Reset()
	InitWriter(&buf, Config{Debug: true, Level: "warn"})
	if got := log.Logger.GetLevel(); got != zerolog.WarnLevel {
		t.Fatalf("level = %s, want warn", got)
	}
}
