package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RunScheduler registers the three daily scans on their configured
// specs and blocks until SIGINT/SIGTERM, waiting for any running job to
// finish before returning.
func (a *Application) RunScheduler() error {
	logger := zap.L().Named("app.scheduler")

	c := cron.New()

	if _, err := c.AddJob(a.Config.VehicleScanSpec, a.Modules.VehicleJob); err != nil {
		return err
	}
	if _, err := c.AddJob(a.Config.LicenseScanSpec, a.Modules.LicenseJob); err != nil {
		return err
	}
	if _, err := c.AddJob(a.Config.TodoScanSpec, a.Modules.TodoJob); err != nil {
		return err
	}

	c.Start()
	logger.Info("scheduler started",
		zap.String("vehicle_spec", a.Config.VehicleScanSpec),
		zap.String("license_spec", a.Config.LicenseScanSpec),
		zap.String("todo_spec", a.Config.TodoScanSpec),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("scheduler shutting down", zap.String("signal", sig.String()))
	<-c.Stop().Done()
	return nil
}
