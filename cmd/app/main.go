package main

import (
	"peakpath/config"
	"peakpath/di"
	"peakpath/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()
	app.Sweeper.Start()
	app.HTTP.RegisterOnShutdown(app.Sweeper.Stop)
	app.HTTP.Serve()
}
