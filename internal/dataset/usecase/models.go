package usecase

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
)

var checksumPattern = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

// Config is everything a run needs to know about its inputs and outputs.
type Config struct {
	Datasets []entity.Descriptor

	// ChunkBytes is the nominal size of one output file. Together with
	// AvgBytesPerLine it fixes the number of rows per file; actual file sizes
	// drift from it.
	ChunkBytes      int64
	AvgBytesPerLine float64
	FilePattern     string

	IDColumn   string
	TextColumn string
}

// LinesPerChunk is ChunkBytes/AvgBytesPerLine rounded to the nearest row, at
// least one.
func (c Config) LinesPerChunk() int {
	if c.ChunkBytes <= 0 || c.AvgBytesPerLine <= 0 {
		return 1
	}

	lines := int(math.Round(float64(c.ChunkBytes) / c.AvgBytesPerLine))
	if lines < 1 {
		return 1
	}
	return lines
}

// ChunkName is the output file name for the chunk at index.
func (c Config) ChunkName(index int) string {
	return fmt.Sprintf(c.FilePattern, index)
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if len(c.Datasets) == 0 {
		errs = append(errs, errors.New("datasets: at least one dataset is required"))
	}

	seen := make(map[string]struct{}, len(c.Datasets))
	for i, d := range c.Datasets {
		if d.Name == "" || strings.ContainsAny(d.Name, `/\`) || d.Name == "." || d.Name == ".." {
			errs = append(errs, fmt.Errorf("datasets[%d]: invalid name %q", i, d.Name))
		}
		if _, dup := seen[d.Name]; dup {
			errs = append(errs, fmt.Errorf("datasets[%d]: duplicate name %q", i, d.Name))
		}
		seen[d.Name] = struct{}{}

		if !checksumPattern.MatchString(d.Checksum) {
			errs = append(errs, fmt.Errorf("datasets[%d]: checksum must be 32 hex characters", i))
		}
		if !strings.HasPrefix(d.URL, "http://") && !strings.HasPrefix(d.URL, "https://") {
			errs = append(errs, fmt.Errorf("datasets[%d]: url must be http(s)", i))
		}
	}

	if c.ChunkBytes <= 0 {
		errs = append(errs, errors.New("chunk.target_bytes must be positive"))
	}
	if c.AvgBytesPerLine <= 0 {
		errs = append(errs, errors.New("chunk.avg_bytes_per_line must be positive"))
	}
	if strings.Count(c.FilePattern, "%d") != 1 || strings.Count(c.FilePattern, "%") != 1 || strings.ContainsAny(c.FilePattern, `/\`) {
		errs = append(errs, fmt.Errorf("chunk.file_pattern %q must be a file name with exactly one %%d", c.FilePattern))
	}

	if c.IDColumn == "" || c.TextColumn == "" {
		errs = append(errs, errors.New("columns.id and columns.text are required"))
	}

	return errors.Join(errs...)
}

// RunResult summarizes one completed pipeline run.
type RunResult struct {
	Datasets int
	Records  int
	Chunks   int
	Files    []string
	Elapsed  time.Duration
}
