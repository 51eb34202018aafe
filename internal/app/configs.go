package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nomoriel/phase2vec/internal/cli"
	"github.com/nomoriel/phase2vec/internal/configstore"
)

// runGenerateConfig writes one of the standalone default configuration
// documents (train, data or net).
func (a *App) runGenerateConfig(ctx context.Context, cmd *cli.Command, defaults *configstore.Document) error {
	output, err := filepath.Abs(cmd.OutputFile)
	if err != nil {
		return err
	}
	if err := configstore.WriteFile(output, defaults); err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "Successfully generated config file at %q.\n", output)
	return nil
}
