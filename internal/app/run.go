package app

import (
	"fmt"
	"io"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"yashubustudio/calibrator/calibrator"
)

const fyneAppID = "yashubustudio.calibrator"

// Run loads configuration and data, then starts the desktop UI.
func Run() error {
	cfg, err := calibrator.LoadConfig("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sink := newLogSink(logLineLimit)
	level := zap.NewAtomicLevel()
	setLogLevel(level, cfg.Log.Level)
	logger := newLogger(io.MultiWriter(os.Stdout, sink), level)
	defer func() { _ = logger.Sync() }()

	svc, err := calibrator.Open(cfg, logger)
	if err != nil {
		return err
	}

	a := fyneapp.NewWithID(fyneAppID)
	u := buildUI(a, svc, sink, logger, level)
	defer u.closeService()
	u.w.ShowAndRun()
	return nil
}
