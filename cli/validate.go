package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/modelcheck/modelcheck/model"
	"github.com/modelcheck/modelcheck/validate"
)

func (a *App) validate(ctx *cli.Context) error {
	modelID := ctx.Args().First()
	if modelID == "" {
		return fmt.Errorf("no model id specified")
	}

	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}

	card, err := model.LoadCard(cfg.ModelsDir, modelID)
	if err != nil {
		return err
	}
	if err := validate.New(modelID).Validate(card); err != nil {
		return err
	}

	a.logger.Info().Str("model", modelID).Msg("Model information verified")
	return nil
}
