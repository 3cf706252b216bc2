package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/mapty/internal/models"
)

// Export writes the stored workouts to a TOML file and returns how many were
// written.
func (a *Adapter) Export(ctx context.Context, outputPath string) (int, error) {
	workouts := a.Load(ctx)

	dump := models.WorkoutDump{Workouts: make([]models.WorkoutTOML, 0, len(workouts))}
	for _, w := range workouts {
		dump.Workouts = append(dump.Workouts, models.ToTOML(w))
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(dump); err != nil {
		return 0, fmt.Errorf("encoding TOML: %w", err)
	}

	// Make the output path absolute relative to the current directory.
	outputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return 0, fmt.Errorf("writing export file: %w", err)
	}

	return len(workouts), nil
}

// Import replaces the stored workouts with the ones dumped in filePath.
// Records are taken verbatim, like a load from the store.
func (a *Adapter) Import(ctx context.Context, filePath string) ([]models.Workout, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", filePath, err)
	}

	var dump models.WorkoutDump
	if _, err := toml.Decode(string(data), &dump); err != nil {
		return nil, fmt.Errorf("decoding TOML: %w", err)
	}

	workouts := make([]models.Workout, 0, len(dump.Workouts))
	for _, rec := range dump.Workouts {
		workouts = append(workouts, rec.Workout())
	}

	if err := a.Save(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}
