package analyzer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vermi/gnlp-analyze/internal/logging"
	"github.com/vermi/gnlp-analyze/internal/models"
)

// file name timestamps carry microseconds so consecutive runs never collide
const fileTimestamp = "2006-01-02T15:04:05.000000"

// Sink writes assembled blob results to their destination: pretty-printed
// JSON on stdout, or a timestamped file under the output directory. Either
// way the full document is serialized before a single write.
type Sink struct {
	StdoutOnly bool
	Dir        string

	out io.Writer
	now func() time.Time
	log *slog.Logger
}

// NewSink creates a sink for blob results
func NewSink(stdoutOnly bool, dir string) *Sink {
	return &Sink{
		StdoutOnly: stdoutOnly,
		Dir:        dir,
		out:        os.Stdout,
		now:        time.Now,
		log:        logging.WithComponent("sink"),
	}
}

// WriteBlob persists one blob result
func (s *Sink) WriteBlob(result *models.BlobResult) error {
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	if s.StdoutOnly {
		s.log.Info("no JSON file will be written")
		_, err := fmt.Fprintln(s.out, string(data))
		return err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("textblob_syntactical_analysis_%s.json", s.now().Format(fileTimestamp))
	path := filepath.Join(s.Dir, name)

	s.log.Info("writing analysis", "path", path)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	s.log.Info("write complete", "path", path)
	return nil
}
