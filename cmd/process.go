package cmd

import (
	"fmt"
	"os"

	"github.com/rm-hull/edge-blur/internal"
	"github.com/rm-hull/edge-blur/internal/config"
	"github.com/rm-hull/edge-blur/internal/png"
	"github.com/sirupsen/logrus"
)

// Process blurs the edges of the image at input and writes the result to
// output. The diagnostic panel and stage animation are only written when a
// path is given for them, and failures there are logged rather than returned.
func Process(input, output, panelPath, animatePath string, cfg config.Config, logger *logrus.Logger) error {
	internal.ShowVersion(logger)
	internal.UserInfo(logger)
	internal.EnvironmentVars(logger)

	processor, err := internal.NewProcessor(cfg, logger)
	if err != nil {
		return err
	}

	img, err := internal.LoadImage(internal.NewImageSource(logger), input)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	frame, err := processor.Process(img)
	if err != nil {
		return err
	}

	if err := png.Save(output, frame.Result); err != nil {
		return fmt.Errorf("failed to save result to %s: %w", output, err)
	}
	logger.WithField("path", output).Info("Result saved")

	if panelPath != "" {
		if err := png.Save(panelPath, processor.Panel(frame)); err != nil {
			logger.WithError(err).WithField("path", panelPath).Warn("Failed to save diagnostic panel")
		} else {
			logger.WithField("path", panelPath).Info("Diagnostic panel saved")
		}
	}

	if animatePath != "" {
		data, err := processor.Animation(frame)
		if err == nil {
			err = os.WriteFile(animatePath, data, 0644)
		}
		if err != nil {
			logger.WithError(err).WithField("path", animatePath).Warn("Failed to save stage animation")
		} else {
			logger.WithField("path", animatePath).Info("Stage animation saved")
		}
	}

	return nil
}
