package dataset

import (
	"log/slog"

	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
	"github.com/shandysiswandi/tweetprep/internal/dataset/event"
	"github.com/shandysiswandi/tweetprep/internal/dataset/source"
	"github.com/shandysiswandi/tweetprep/internal/dataset/store"
	"github.com/shandysiswandi/tweetprep/internal/dataset/usecase"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkguid"
)

type Dependency struct {
	Config pkgconfig.Config
	// TempID names temporary part files while downloading and writing.
	TempID pkguid.NumberID
	Logger *slog.Logger
	// Source overrides the HTTP downloader built from config.
	Source usecase.Downloader
}

// Defaults are the compiled-in configuration values; a config file only needs
// to list what it changes.
func Defaults() map[string]any {
	return map[string]any{
		"data_dir":                 "./data",
		"output_dir":               "./data",
		"http.timeout":             "0s",
		"http.header_timeout":      "30s",
		"http.user_agent":          "tweetprep/1.0",
		"http.progress_every":      8 << 20,
		"chunk.target_bytes":       95000000,
		"chunk.avg_bytes_per_line": 258.866,
		"chunk.file_pattern":       "out-%d.csv",
		"columns.id":               "id_str",
		"columns.text":             "text",
		"datasets": []map[string]any{
			{
				"name":     "full_who_dataset1.csv",
				"checksum": "259389f2f6c1b232fe248c91107eeccd",
				"url":      "https://zenodo.org/record/3928240/files/full_who_dataset1.csv?download=1",
			},
			{
				"name":     "full_who_dataset2.csv",
				"checksum": "ea266ada5b1b817638ab89388138d95e",
				"url":      "https://zenodo.org/record/3928240/files/full_who_dataset2.csv?download=1",
			},
			{
				"name":     "full_who_dataset3.csv",
				"checksum": "fc4b898f8d7c81293a776bf116668bab",
				"url":      "https://zenodo.org/record/3928240/files/full_who_dataset3.csv?download=1",
			},
		},
	}
}

// LoadConfig decodes and validates the pipeline configuration.
func LoadConfig(cfg pkgconfig.Config) (usecase.Config, error) {
	var datasets []entity.Descriptor
	if err := cfg.Unmarshal("datasets", &datasets); err != nil {
		return usecase.Config{}, pkgerror.NewInvalidConfig(err)
	}

	out := usecase.Config{
		Datasets:        datasets,
		ChunkBytes:      cfg.GetInt("chunk.target_bytes"),
		AvgBytesPerLine: cfg.GetFloat("chunk.avg_bytes_per_line"),
		FilePattern:     cfg.GetString("chunk.file_pattern"),
		IDColumn:        cfg.GetString("columns.id"),
		TextColumn:      cfg.GetString("columns.text"),
	}

	if err := out.Validate(); err != nil {
		return usecase.Config{}, pkgerror.NewInvalidConfig(err)
	}

	return out, nil
}

func New(dep Dependency) (*usecase.Usecase, error) {
	cfg, err := LoadConfig(dep.Config)
	if err != nil {
		return nil, err
	}

	if dep.TempID == nil {
		sf, err := pkguid.NewSnowflake()
		if err != nil {
			return nil, pkgerror.NewInternal(err)
		}
		dep.TempID = sf
	}

	src := dep.Source
	if src == nil {
		src = source.NewHTTP(source.Options{
			Timeout:       dep.Config.GetDuration("http.timeout"),
			HeaderTimeout: dep.Config.GetDuration("http.header_timeout"),
			UserAgent:     dep.Config.GetString("http.user_agent"),
			ProgressEvery: dep.Config.GetInt("http.progress_every"),
		})
	}

	return usecase.New(usecase.Dependency{
		Config:   cfg,
		Inputs:   store.NewFS(dep.Config.GetString("data_dir"), dep.TempID),
		Outputs:  store.NewFS(dep.Config.GetString("output_dir"), dep.TempID),
		Source:   src,
		Reporter: event.NewLogReporter(dep.Logger),
	}), nil
}
